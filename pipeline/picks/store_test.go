package picks

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	contractx "github.com/daltonw/bookline/pipeline/contract"
)

func TestPutGetRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewFileStore(filepath.Join(t.TempDir(), "picks.json"))
	want := contractx.PickSet{
		SearchedAt: time.Date(2026, 8, 28, 9, 30, 0, 0, time.UTC),
		Result:     "FINAL PICKS:\n1. \"Wild Robot\" by Peter Brown — Noe Valley",
	}

	if err := store.Put(context.Background(), want); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	got, err := store.Get(context.Background())
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !got.SearchedAt.Equal(want.SearchedAt) || got.Result != want.Result {
		t.Fatalf("Get() = %+v, want %+v", got, want)
	}
}

func TestPutLastWriteWins(t *testing.T) {
	t.Parallel()

	store := NewFileStore(filepath.Join(t.TempDir(), "picks.json"))
	ctx := context.Background()
	first := contractx.PickSet{SearchedAt: time.Now().UTC(), Result: "first"}
	second := contractx.PickSet{SearchedAt: time.Now().UTC().Add(time.Hour), Result: "second"}

	if err := store.Put(ctx, first); err != nil {
		t.Fatal(err)
	}
	if err := store.Put(ctx, second); err != nil {
		t.Fatal(err)
	}

	got, err := store.Get(ctx)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Result != "second" {
		t.Fatalf("Get().Result = %q, want latest write", got.Result)
	}
}

func TestGetMissingArtifact(t *testing.T) {
	t.Parallel()

	store := NewFileStore(filepath.Join(t.TempDir(), "picks.json"))
	_, err := store.Get(context.Background())
	if !errors.Is(err, contractx.ErrPicksNotFound) {
		t.Fatalf("Get() error = %v, want ErrPicksNotFound", err)
	}
}

func TestPutRejectsZeroTimestamp(t *testing.T) {
	t.Parallel()

	store := NewFileStore(filepath.Join(t.TempDir(), "picks.json"))
	err := store.Put(context.Background(), contractx.PickSet{Result: "r"})
	if !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("Put() error = %v, want ErrValidation", err)
	}
}
