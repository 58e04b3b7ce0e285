package stage

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	contractx "github.com/daltonw/bookline/pipeline/contract"
	"github.com/daltonw/bookline/pipeline/task"
	"github.com/daltonw/bookline/pipeline/validate"
)

type HoldPlacement struct {
	profile contractx.FamilyProfile
	creds   task.Credentials
	agent   contractx.Agent
	picks   contractx.PickStore
}

func NewHoldPlacement(
	profile contractx.FamilyProfile,
	creds task.Credentials,
	agent contractx.Agent,
	picks contractx.PickStore,
) (*HoldPlacement, error) {
	if agent == nil {
		return nil, errors.New("agent is required")
	}
	if picks == nil {
		return nil, errors.New("pick store is required")
	}
	return &HoldPlacement{profile: profile, creds: creds, agent: agent, picks: picks}, nil
}

// Run consumes the Discovery artifact and attempts the holds. The report
// is returned but deliberately not persisted here: the curated status
// document, not this free text, is the authoritative record downstream.
func (h *HoldPlacement) Run(ctx context.Context) (string, error) {
	pickSet, err := h.picks.Get(ctx)
	if err != nil {
		return "", err
	}
	log.Info().Time("searched_at", pickSet.SearchedAt).Msg("loaded discovery picks")

	instructions, err := task.BuildHoldTask(h.profile, h.creds, pickSet)
	if err != nil {
		return "", err
	}

	report, err := h.agent.Run(ctx, instructions)
	if err != nil {
		return "", err
	}

	if err := validate.HoldReport(report); err != nil {
		return "", err
	}
	return report, nil
}
