// Package validate holds the per-stage acceptance policies applied to
// agent output before anything is persisted or any effect fires.
package validate

import (
	"fmt"
	"strings"

	contractx "github.com/daltonw/bookline/pipeline/contract"
)

// DiscoveryReport accepts a Discovery agent report. The report must be
// non-empty; the minimum-confirmed-count invariant is enforced through
// the synthesized task rather than re-checked on the free text, since the
// report is stored opaque and never machine-parsed at this stage.
func DiscoveryReport(report string) error {
	if strings.TrimSpace(report) == "" {
		return fmt.Errorf("%w: discovery report is empty", contractx.ErrStageRejected)
	}
	return nil
}

// HoldReport accepts a Hold-Placement agent report. The report has no
// automated consumer, so acceptance mirrors Discovery: non-empty only.
func HoldReport(report string) error {
	if strings.TrimSpace(report) == "" {
		return fmt.Errorf("%w: hold placement report is empty", contractx.ErrStageRejected)
	}
	return nil
}

// NotifyEligible decides whether a parsed ready-set warrants a call.
// Zero ready records is the normal nothing-to-do outcome, not a
// rejection; records missing the fields a call needs are rejections.
func NotifyEligible(ready []contractx.HoldRecord) error {
	if len(ready) == 0 {
		return contractx.ErrNothingToDo
	}
	for _, r := range ready {
		if strings.TrimSpace(r.Title) == "" || strings.TrimSpace(r.Branch) == "" {
			return fmt.Errorf("%w: ready record missing title or branch: %+v", contractx.ErrStageRejected, r)
		}
	}
	return nil
}
