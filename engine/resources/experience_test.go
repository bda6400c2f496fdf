package resources

import (
	"reflect"
	"testing"
)

func TestSortExperiences(t *testing.T) {
	list := []Experience{
		{ID: 4, DiceOrder: 1},
		{ID: 2, DiceOrder: 0},
		{ID: 3, DiceOrder: 1},
		{ID: 1, DiceOrder: 2},
	}
	SortExperiences(list)
	var got []int
	for _, e := range list {
		got = append(got, e.ID)
	}
	if want := []int{2, 3, 4, 1}; !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestSummary(t *testing.T) {
	tests := []struct {
		name   string
		in     Experience
		period string
		probs  int
		sols   int
	}{
		{
			name:   "current role",
			in:     Experience{StartDate: "2021", EndDate: "2023", Current: true},
			period: "2021 - Present",
		},
		{
			name:   "past role",
			in:     Experience{StartDate: "2018", EndDate: "2020"},
			period: "2018 - 2020",
		},
		{
			name: "bullets capped",
			in: Experience{
				StartDate:        "2019",
				EndDate:          "2020",
				Responsibilities: []string{"a", "b", "c", "d"},
				Achievements:     []string{"x", "y"},
			},
			period: "2019 - 2020",
			probs:  3,
			sols:   2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.in.Summary()
			if s.Period != tt.period {
				t.Errorf("Period = %q, want %q", s.Period, tt.period)
			}
			if len(s.Problems) != tt.probs || len(s.Solutions) != tt.sols {
				t.Errorf("bullets = %d/%d, want %d/%d", len(s.Problems), len(s.Solutions), tt.probs, tt.sols)
			}
		})
	}
}

func TestSummaryLinesSkipsEmptySections(t *testing.T) {
	s := Experience{Position: "Engineer", Company: "Acme", StartDate: "2020", Current: true, Description: "Built things"}.Summary()
	want := []string{"Engineer", "Acme", "2020 - Present", "", "Work Summary", "Built things"}
	if got := s.Lines(); !reflect.DeepEqual(got, want) {
		t.Errorf("Lines() = %q", got)
	}

	s.Tags = []string{"Go", "SQL"}
	lines := s.Lines()
	if last := lines[len(lines)-1]; last != "[Go] [SQL]" {
		t.Errorf("tags line = %q", last)
	}
}

func TestEligibility(t *testing.T) {
	e := Experience{ShowOnDice: true, LogoURL: "/uploads/experience-logos/a.png"}
	if !e.Eligible() || e.ImageRef() != "/uploads/experience-logos/a.png" {
		t.Errorf("Eligible %v ImageRef %q", e.Eligible(), e.ImageRef())
	}
}
