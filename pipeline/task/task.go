// Package task synthesizes the natural-language directives handed to the
// external agent. Builders are pure: everything they embed comes from the
// family profile and the prior stage's artifact, and their output is
// testable by asserting on structural components of the string.
package task

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	contractx "github.com/daltonw/bookline/pipeline/contract"
)

const (
	// MinConfirmedPicks is the hard floor of verified-available books the
	// Discovery agent must reach before it may terminate.
	MinConfirmedPicks = 2

	// TargetPicks is what the agent aims for when the site cooperates.
	TargetPicks = 3

	brainstormMin = 8
	brainstormMax = 10

	// DefaultCatalogURL is the library catalog the agent browses.
	DefaultCatalogURL = "https://sfpl.org"
)

var (
	//go:embed template/discovery.txt
	discoveryRaw string

	//go:embed template/hold.txt
	holdRaw string

	discoveryTmpl = template.Must(template.New("discovery").Parse(discoveryRaw))
	holdTmpl      = template.Must(template.New("hold").Parse(holdRaw))
)

// Credentials are the library-account login values embedded into the
// Hold-Placement task.
type Credentials struct {
	Username string
	Password string
}

// BuildDiscoveryTask renders the Discovery directive: persona, recent
// interests, the brainstorm-first rule, mandatory detail-page
// verification, and the minimum-confirmed termination contract.
func BuildDiscoveryTask(profile contractx.FamilyProfile, summaries []string) (string, error) {
	data := struct {
		Persona           string
		Summaries         []string
		BrainstormMin     int
		BrainstormMax     int
		CatalogURL        string
		TargetPicks       int
		MinConfirmedPicks int
	}{
		Persona:           personaFor(profile),
		Summaries:         summaries,
		BrainstormMin:     brainstormMin,
		BrainstormMax:     brainstormMax,
		CatalogURL:        DefaultCatalogURL,
		TargetPicks:       TargetPicks,
		MinConfirmedPicks: MinConfirmedPicks,
	}

	var b strings.Builder
	if err := discoveryTmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render discovery task: %w", err)
	}
	return b.String(), nil
}

// BuildHoldTask renders the Hold-Placement directive: the login procedure
// with its fail-fast rule, the raw Discovery picks as per-book
// instructions, and the attempt-everything-before-done contract.
func BuildHoldTask(profile contractx.FamilyProfile, creds Credentials, picks contractx.PickSet) (string, error) {
	branch := strings.TrimSpace(profile.PreferredBranch)
	if branch == "" {
		branch = "any branch"
	}

	data := struct {
		CatalogURL      string
		Username        string
		Password        string
		Picks           string
		PreferredBranch string
	}{
		CatalogURL:      DefaultCatalogURL,
		Username:        creds.Username,
		Password:        creds.Password,
		Picks:           strings.TrimSpace(picks.Result),
		PreferredBranch: branch,
	}

	var b strings.Builder
	if err := holdTmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render hold task: %w", err)
	}
	return b.String(), nil
}

// personaFor derives the reader persona from the child's age plus a fixed
// trait heuristic.
func personaFor(profile contractx.FamilyProfile) string {
	return fmt.Sprintf("%d-year-old kid, showing signs of being nerdy", profile.ChildAge)
}
