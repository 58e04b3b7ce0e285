package task

import (
	"fmt"
	"strings"
	"testing"
	"time"

	contractx "github.com/daltonw/bookline/pipeline/contract"
)

var testProfile = contractx.FamilyProfile{
	FamilyID:        "leo",
	ChildName:       "Leo",
	ChildAge:        4,
	PreferredBranch: "Noe Valley",
	PhoneNumber:     "+15555550100",
}

func TestBuildDiscoveryTask(t *testing.T) {
	t.Parallel()

	summaries := []string{"loves robots", "asked about rockets"}
	got, err := BuildDiscoveryTask(testProfile, summaries)
	if err != nil {
		t.Fatalf("BuildDiscoveryTask() error = %v", err)
	}

	for _, want := range []string{
		"4-year-old kid",
		"- loves robots",
		"- asked about rockets",
		fmt.Sprintf("think of %d-%d children's books", brainstormMin, brainstormMax),
		"CLICK INTO the book's detail page",
		"Do NOT judge availability from the",
		fmt.Sprintf("at least %d confirmed books", MinConfirmedPicks),
		DefaultCatalogURL,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("discovery task missing %q", want)
		}
	}
}

func TestBuildDiscoveryTaskSingleDoneSignal(t *testing.T) {
	t.Parallel()

	got, err := BuildDiscoveryTask(testProfile, []string{"dinosaurs"})
	if err != nil {
		t.Fatalf("BuildDiscoveryTask() error = %v", err)
	}
	if n := strings.Count(got, "this is the ONLY time you should call \"done\""); n != 1 {
		t.Fatalf("termination contract stated %d times, want exactly 1", n)
	}
}

func TestBuildDiscoveryTaskEmbedsEverySummary(t *testing.T) {
	t.Parallel()

	summaries := []string{"s1", "s2", "s3", "s4", "s5"}
	got, err := BuildDiscoveryTask(testProfile, summaries)
	if err != nil {
		t.Fatalf("BuildDiscoveryTask() error = %v", err)
	}
	for _, s := range summaries {
		if !strings.Contains(got, "- "+s) {
			t.Errorf("discovery task missing summary bullet %q", s)
		}
	}
}

func TestBuildHoldTask(t *testing.T) {
	t.Parallel()

	picks := contractx.PickSet{
		SearchedAt: time.Now().UTC(),
		Result: `FINAL PICKS:
1. "Wild Robot" by Peter Brown — robots, available at Noe Valley
2. "Mousetronaut" by Mark Kelly — space, available at Main`,
	}
	creds := Credentials{Username: "1234567890", Password: "9999"}

	got, err := BuildHoldTask(testProfile, creds, picks)
	if err != nil {
		t.Fatalf("BuildHoldTask() error = %v", err)
	}

	for _, want := range []string{
		"Username/Barcode: 1234567890",
		"Password/PIN: 9999",
		"If login fails, report the error and call \"done\" immediately.",
		`1. "Wild Robot" by Peter Brown`,
		`2. "Mousetronaut" by Mark Kelly`,
		"prefer Noe Valley if offered",
		"Do NOT call \"done\" until you have attempted holds for all books.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("hold task missing %q", want)
		}
	}
}

func TestBuildHoldTaskNoPreferredBranch(t *testing.T) {
	t.Parallel()

	profile := testProfile
	profile.PreferredBranch = ""

	got, err := BuildHoldTask(profile, Credentials{Username: "u", Password: "p"}, contractx.PickSet{Result: "1. \"T\""})
	if err != nil {
		t.Fatalf("BuildHoldTask() error = %v", err)
	}
	if !strings.Contains(got, "prefer any branch if offered") {
		t.Error("hold task should fall back to any branch when no preference is set")
	}
}
