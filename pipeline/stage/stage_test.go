package stage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	contractx "github.com/daltonw/bookline/pipeline/contract"
	"github.com/daltonw/bookline/pipeline/interests"
	"github.com/daltonw/bookline/pipeline/notify"
	"github.com/daltonw/bookline/pipeline/task"
)

type fakeAgent struct {
	report string
	err    error
	tasks  []string
}

func (f *fakeAgent) Run(ctx context.Context, instructions string) (string, error) {
	f.tasks = append(f.tasks, instructions)
	if f.err != nil {
		return "", f.err
	}
	return f.report, nil
}

type fakePickStore struct {
	stored *contractx.PickSet
	putErr error
	getErr error
	puts   int
}

func (f *fakePickStore) Put(ctx context.Context, picks contractx.PickSet) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.puts++
	f.stored = &picks
	return nil
}

func (f *fakePickStore) Get(ctx context.Context) (contractx.PickSet, error) {
	if f.getErr != nil {
		return contractx.PickSet{}, f.getErr
	}
	if f.stored == nil {
		return contractx.PickSet{}, contractx.ErrPicksNotFound
	}
	return *f.stored, nil
}

type fakeSource struct{ summaries []string }

func (f *fakeSource) Fetch(ctx context.Context, familyID string) ([]string, error) {
	return f.summaries, nil
}

type fakeCallStore struct {
	err     error
	upserts []string
}

func (f *fakeCallStore) Upsert(ctx context.Context, phone, booksContext string) error {
	if f.err != nil {
		return f.err
	}
	f.upserts = append(f.upserts, booksContext)
	return nil
}

type fakeTrigger struct {
	calls int
}

func (f *fakeTrigger) Call(ctx context.Context, phone string) error {
	f.calls++
	return nil
}

var testProfile = contractx.FamilyProfile{
	FamilyID:        "leo",
	ChildName:       "Leo",
	ChildAge:        4,
	PreferredBranch: "Noe Valley",
	PhoneNumber:     "+15555550100",
}

func TestDiscoveryRunPersistsAcceptedReport(t *testing.T) {
	t.Parallel()

	agent := &fakeAgent{report: "FINAL PICKS:\n1. \"Wild Robot\" by Peter Brown — Noe Valley"}
	store := &fakePickStore{}
	agg := interests.NewAggregator(&fakeSource{summaries: []string{"robots"}})

	d, err := NewDiscovery(testProfile, agg, agent, store)
	if err != nil {
		t.Fatalf("NewDiscovery() error = %v", err)
	}
	d.now = func() time.Time { return time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC) }

	got, err := d.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if store.puts != 1 {
		t.Fatalf("picks persisted %d times, want 1", store.puts)
	}
	if got.Result != agent.report {
		t.Fatalf("PickSet.Result = %q, want the raw report", got.Result)
	}
	if !got.SearchedAt.Equal(time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("SearchedAt = %v", got.SearchedAt)
	}
	if len(agent.tasks) != 1 || !strings.Contains(agent.tasks[0], "- robots") {
		t.Fatalf("agent task missing summaries: %v", agent.tasks)
	}
}

func TestDiscoveryRunRejectedReportNotPersisted(t *testing.T) {
	t.Parallel()

	agent := &fakeAgent{report: "   "}
	store := &fakePickStore{}
	agg := interests.NewAggregator(&fakeSource{summaries: []string{"robots"}})

	d, _ := NewDiscovery(testProfile, agg, agent, store)
	_, err := d.Run(context.Background())
	if !errors.Is(err, contractx.ErrStageRejected) {
		t.Fatalf("Run() error = %v, want ErrStageRejected", err)
	}
	if store.puts != 0 {
		t.Fatal("rejected report must not be persisted")
	}
}

func TestDiscoveryRunAgentFailureIsFatal(t *testing.T) {
	t.Parallel()

	agent := &fakeAgent{err: contractx.ErrAgentRun}
	store := &fakePickStore{}
	agg := interests.NewAggregator(&fakeSource{summaries: []string{"robots"}})

	d, _ := NewDiscovery(testProfile, agg, agent, store)
	if _, err := d.Run(context.Background()); !errors.Is(err, contractx.ErrAgentRun) {
		t.Fatalf("Run() error = %v, want ErrAgentRun", err)
	}
	if store.puts != 0 {
		t.Fatal("nothing may be persisted when the agent fails")
	}
}

func TestHoldPlacementRun(t *testing.T) {
	t.Parallel()

	picks := contractx.PickSet{
		SearchedAt: time.Now().UTC(),
		Result:     "FINAL PICKS:\n1. \"Wild Robot\" by Peter Brown",
	}
	store := &fakePickStore{stored: &picks}
	agent := &fakeAgent{report: "HOLD RESULTS:\n1. \"Wild Robot\" — placed (Noe Valley)"}

	h, err := NewHoldPlacement(testProfile, task.Credentials{Username: "u", Password: "p"}, agent, store)
	if err != nil {
		t.Fatalf("NewHoldPlacement() error = %v", err)
	}

	report, err := h.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report != agent.report {
		t.Fatalf("Run() = %q", report)
	}
	if !strings.Contains(agent.tasks[0], `1. "Wild Robot" by Peter Brown`) {
		t.Fatal("hold task must embed the raw picks text")
	}
}

func TestHoldPlacementRunMissingPicks(t *testing.T) {
	t.Parallel()

	h, _ := NewHoldPlacement(testProfile, task.Credentials{}, &fakeAgent{report: "x"}, &fakePickStore{})
	if _, err := h.Run(context.Background()); !errors.Is(err, contractx.ErrPicksNotFound) {
		t.Fatalf("Run() error = %v, want ErrPicksNotFound", err)
	}
}

func TestNotificationRun(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "holds.md")
	doc := `- "Wild Robot" by Peter Brown | Status: Ready for Pickup | Branch: Noe Valley | Why: robots and sci-fi`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	callStore := &fakeCallStore{}
	trigger := &fakeTrigger{}
	notifier, err := notify.New(callStore, trigger, "+15555550100")
	if err != nil {
		t.Fatal(err)
	}

	n, err := NewNotification(path, notifier)
	if err != nil {
		t.Fatalf("NewNotification() error = %v", err)
	}
	if err := n.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if trigger.calls != 1 {
		t.Fatalf("calls = %d, want 1", trigger.calls)
	}
	if len(callStore.upserts) != 1 || !strings.Contains(callStore.upserts[0], `1. "Wild Robot" by Peter Brown — robots and sci-fi`) {
		t.Fatalf("books context = %v", callStore.upserts)
	}
}

func TestNotificationRunNothingReady(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "holds.md")
	doc := `- "A" by B | Status: On Hold | Branch: Main | Why: x`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	callStore := &fakeCallStore{}
	trigger := &fakeTrigger{}
	notifier, _ := notify.New(callStore, trigger, "+15555550100")

	n, _ := NewNotification(path, notifier)
	if err := n.Run(context.Background()); !errors.Is(err, contractx.ErrNothingToDo) {
		t.Fatalf("Run() error = %v, want ErrNothingToDo", err)
	}
	if len(callStore.upserts) != 0 || trigger.calls != 0 {
		t.Fatal("nothing-to-do runs must perform no store write and no call")
	}
}

func TestNotificationRunMissingDocument(t *testing.T) {
	t.Parallel()

	notifier, _ := notify.New(&fakeCallStore{}, &fakeTrigger{}, "+15555550100")
	n, _ := NewNotification(filepath.Join(t.TempDir(), "holds.md"), notifier)

	if err := n.Run(context.Background()); !errors.Is(err, contractx.ErrNothingToDo) {
		t.Fatalf("Run() error = %v, want ErrNothingToDo for a missing document", err)
	}
}
