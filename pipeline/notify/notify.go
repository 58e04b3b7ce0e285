// Package notify turns a validated ready-set into one phone call. The
// books context is written to the pending-call document first and the
// call is only triggered once that write is confirmed; a voice agent with
// nothing to read is worse than no call at all.
package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/daltonw/bookline/pipeline/contract"
)

type Notifier struct {
	store       contractx.PendingCallStore
	trigger     contractx.CallTrigger
	phoneNumber string
}

func New(store contractx.PendingCallStore, trigger contractx.CallTrigger, phoneNumber string) (*Notifier, error) {
	if store == nil {
		return nil, errors.New("pending call store is required")
	}
	if trigger == nil {
		return nil, errors.New("call trigger is required")
	}
	phone := strings.TrimSpace(phoneNumber)
	if phone == "" {
		return nil, errors.New("recipient phone number is required")
	}
	return &Notifier{store: store, trigger: trigger, phoneNumber: phone}, nil
}

// Notify upserts the books context for the recipient, then triggers the
// outbound call. A store failure means no call. A call failure is
// surfaced without rolling back the store write, so retrying just the
// call step stays possible. Re-running the whole pipeline is idempotent
// through the keyed overwrite, not through internal retries.
func (n *Notifier) Notify(ctx context.Context, ready []contractx.HoldRecord) error {
	if len(ready) == 0 {
		return contractx.ErrNothingToDo
	}

	booksContext := FormatContext(ready)
	if err := n.store.Upsert(ctx, n.phoneNumber, booksContext); err != nil {
		return fmt.Errorf("persist call context for %s: %w", n.phoneNumber, err)
	}
	log.Info().Str("phone", n.phoneNumber).Int("books", len(ready)).Msg("call context persisted")

	if err := n.trigger.Call(ctx, n.phoneNumber); err != nil {
		return fmt.Errorf("trigger call to %s: %w", n.phoneNumber, err)
	}
	log.Info().Str("phone", n.phoneNumber).Msg("call triggered")
	return nil
}

// FormatContext renders the ready records for the voice agent, grouped by
// branch in first-seen order. A second branch gets its own section rather
// than being dropped. Numbering restarts per section.
func FormatContext(ready []contractx.HoldRecord) string {
	var branches []string
	byBranch := make(map[string][]contractx.HoldRecord)
	for _, r := range ready {
		if _, seen := byBranch[r.Branch]; !seen {
			branches = append(branches, r.Branch)
		}
		byBranch[r.Branch] = append(byBranch[r.Branch], r)
	}

	var sections []string
	for _, branch := range branches {
		var b strings.Builder
		fmt.Fprintf(&b, "Books ready for pickup at %s:", branch)
		for i, r := range byBranch[branch] {
			fmt.Fprintf(&b, "\n%d. %q by %s — %s", i+1, r.Title, r.Author, r.Why)
		}
		sections = append(sections, b.String())
	}
	return strings.Join(sections, "\n\n")
}
