package resources

import "sort"

// Experience is one work history entry as served by the portfolio data
// service and as written in local content files.
type Experience struct {
	ID               int      `json:"id" toml:"id" yaml:"id"`
	Company          string   `json:"company" toml:"company" yaml:"company"`
	Position         string   `json:"position" toml:"position" yaml:"position"`
	Location         string   `json:"location,omitempty" toml:"location,omitempty" yaml:"location,omitempty"`
	Description      string   `json:"description" toml:"description" yaml:"description"`
	LogoURL          string   `json:"logoUrl,omitempty" toml:"logo_url,omitempty" yaml:"logo_url,omitempty"`
	Responsibilities []string `json:"responsibilities" toml:"responsibilities" yaml:"responsibilities"`
	Achievements     []string `json:"achievements,omitempty" toml:"achievements,omitempty" yaml:"achievements,omitempty"`
	Technologies     []string `json:"technologies,omitempty" toml:"technologies,omitempty" yaml:"technologies,omitempty"`
	StartDate        string   `json:"startDate" toml:"start_date" yaml:"start_date"`
	EndDate          string   `json:"endDate,omitempty" toml:"end_date,omitempty" yaml:"end_date,omitempty"`
	Current          bool     `json:"current" toml:"current" yaml:"current"`
	ShowOnDice       bool     `json:"showOnDice" toml:"show_on_dice" yaml:"show_on_dice"`
	DiceOrder        int      `json:"diceOrder" toml:"dice_order" yaml:"dice_order"`
}

func (e Experience) Eligible() bool {
	return e.ShowOnDice
}

func (e Experience) ImageRef() string {
	return e.LogoURL
}

// SortExperiences orders records by (DiceOrder, ID), the order the data
// service returns them in. The sort is stable for equal keys.
func SortExperiences(list []Experience) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].DiceOrder != list[j].DiceOrder {
			return list[i].DiceOrder < list[j].DiceOrder
		}
		return list[i].ID < list[j].ID
	})
}
