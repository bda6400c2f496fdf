package resources

const summaryBullets = 3

// Summary is the text of the detail panel for one record.
type Summary struct {
	Title     string
	Company   string
	Period    string
	Location  string
	Overview  string
	Problems  []string
	Solutions []string
	Tags      []string
}

func (e Experience) Summary() Summary {
	end := e.EndDate
	if e.Current {
		end = "Present"
	}
	return Summary{
		Title:     e.Position,
		Company:   e.Company,
		Period:    e.StartDate + " - " + end,
		Location:  e.Location,
		Overview:  e.Description,
		Problems:  firstN(e.Responsibilities, summaryBullets),
		Solutions: firstN(e.Achievements, summaryBullets),
		Tags:      e.Technologies,
	}
}

// Lines flattens the summary into the rows the panel prints, headings included.
// Sections with nothing to show are left out.
func (s Summary) Lines() []string {
	lines := []string{s.Title, s.Company, s.Period}
	if s.Location != "" {
		lines = append(lines, s.Location)
	}
	lines = append(lines, "", "Work Summary", s.Overview)
	if len(s.Problems) > 0 {
		lines = append(lines, "", "Problem")
		for _, p := range s.Problems {
			lines = append(lines, "• "+p)
		}
	}
	if len(s.Solutions) > 0 {
		lines = append(lines, "", "Solution")
		for _, p := range s.Solutions {
			lines = append(lines, "• "+p)
		}
	}
	if len(s.Tags) > 0 {
		tags := ""
		for i, t := range s.Tags {
			if i > 0 {
				tags += " "
			}
			tags += "[" + t + "]"
		}
		lines = append(lines, "", tags)
	}
	return lines
}

func firstN(in []string, n int) []string {
	if len(in) <= n {
		return in
	}
	return in[:n]
}
