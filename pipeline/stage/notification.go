package stage

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/daltonw/bookline/pipeline/holds"
	"github.com/daltonw/bookline/pipeline/notify"
	"github.com/daltonw/bookline/pipeline/validate"
)

type Notification struct {
	holdsPath string
	notifier  *notify.Notifier
}

func NewNotification(holdsPath string, notifier *notify.Notifier) (*Notification, error) {
	if notifier == nil {
		return nil, errors.New("notifier is required")
	}
	if holdsPath == "" {
		holdsPath = holds.DefaultPath
	}
	return &Notification{holdsPath: holdsPath, notifier: notifier}, nil
}

// Run re-derives the ready-set from the status document and, when it is
// non-empty and well formed, places exactly one notification call.
// ErrNothingToDo propagates so callers can exit zero-effort and clean.
func (n *Notification) Run(ctx context.Context) error {
	records, err := holds.Load(n.holdsPath)
	if err != nil {
		return fmt.Errorf("load status document: %w", err)
	}

	ready := holds.FilterReady(records)
	if err := validate.NotifyEligible(ready); err != nil {
		return err
	}

	for _, r := range ready {
		log.Info().Str("title", r.Title).Str("author", r.Author).Str("branch", r.Branch).Msg("book ready for pickup")
	}
	return n.notifier.Notify(ctx, ready)
}
