// Package family loads the profile the pipeline works for. The profile
// is configuration-owned and immutable for the duration of a run.
package family

import (
	contractx "github.com/daltonw/bookline/pipeline/contract"
)

// Config maps FAMILY_* environment values onto the profile. Missing
// required values abort at startup.
type Config struct {
	ID              string `split_words:"true" default:"leo"`
	ParentName      string `split_words:"true"`
	ChildName       string `split_words:"true" required:"true"`
	ChildAge        int    `split_words:"true" required:"true"`
	PreferredBranch string `split_words:"true"`
	PhoneNumber     string `split_words:"true"`
}

func (c Config) Profile() contractx.FamilyProfile {
	return contractx.FamilyProfile{
		FamilyID:        c.ID,
		ParentName:      c.ParentName,
		ChildName:       c.ChildName,
		ChildAge:        c.ChildAge,
		PreferredBranch: c.PreferredBranch,
		PhoneNumber:     c.PhoneNumber,
	}
}
