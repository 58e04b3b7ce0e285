// Package picks persists the Discovery hand-off artifact. One document,
// last write wins, no history: a fresh Discovery run replaces whatever an
// earlier run left behind.
package picks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	contractx "github.com/daltonw/bookline/pipeline/contract"
)

// DefaultPath is the well-known artifact location, relative to the run's
// working directory.
const DefaultPath = "picks.json"

type FileStore struct {
	path string
}

var _ contractx.PickStore = (*FileStore)(nil)

func NewFileStore(path string) *FileStore {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}
	return &FileStore{path: path}
}

func (s *FileStore) Put(ctx context.Context, picks contractx.PickSet) error {
	if picks.SearchedAt.IsZero() {
		return fmt.Errorf("%w: picks search timestamp is zero", contractx.ErrValidation)
	}

	payload, err := json.MarshalIndent(picks, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal picks: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write picks to %s: %w", s.path, err)
	}
	return nil
}

func (s *FileStore) Get(ctx context.Context) (contractx.PickSet, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return contractx.PickSet{}, contractx.ErrPicksNotFound
		}
		return contractx.PickSet{}, fmt.Errorf("read picks from %s: %w", s.path, err)
	}

	var picks contractx.PickSet
	if err := json.Unmarshal(data, &picks); err != nil {
		return contractx.PickSet{}, fmt.Errorf("decode picks from %s: %w", s.path, err)
	}
	return picks, nil
}
