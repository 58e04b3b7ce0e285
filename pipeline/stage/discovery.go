// Package stage wires the pipeline stages: synthesize the task, run the
// agent, validate the report, persist the hand-off artifact. Stages run
// strictly sequentially; each one's persisted output gates the next.
package stage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	contractx "github.com/daltonw/bookline/pipeline/contract"
	"github.com/daltonw/bookline/pipeline/interests"
	"github.com/daltonw/bookline/pipeline/task"
	"github.com/daltonw/bookline/pipeline/validate"
)

type Discovery struct {
	profile   contractx.FamilyProfile
	interests *interests.Aggregator
	agent     contractx.Agent
	picks     contractx.PickStore
	now       func() time.Time
}

func NewDiscovery(
	profile contractx.FamilyProfile,
	aggregator *interests.Aggregator,
	agent contractx.Agent,
	picks contractx.PickStore,
) (*Discovery, error) {
	if aggregator == nil {
		return nil, errors.New("interest aggregator is required")
	}
	if agent == nil {
		return nil, errors.New("agent is required")
	}
	if picks == nil {
		return nil, errors.New("pick store is required")
	}
	return &Discovery{
		profile:   profile,
		interests: aggregator,
		agent:     agent,
		picks:     picks,
		now:       time.Now,
	}, nil
}

// Run executes the Discovery stage and persists the accepted report as
// the PickSet artifact. A rejected report is never persisted.
func (d *Discovery) Run(ctx context.Context) (contractx.PickSet, error) {
	summaries, err := d.interests.Aggregate(ctx, d.profile.FamilyID)
	if err != nil {
		return contractx.PickSet{}, fmt.Errorf("aggregate interests: %w", err)
	}
	log.Info().Str("family", d.profile.FamilyID).Int("summaries", len(summaries)).Msg("interests aggregated")

	instructions, err := task.BuildDiscoveryTask(d.profile, summaries)
	if err != nil {
		return contractx.PickSet{}, err
	}

	report, err := d.agent.Run(ctx, instructions)
	if err != nil {
		return contractx.PickSet{}, err
	}

	if err := validate.DiscoveryReport(report); err != nil {
		return contractx.PickSet{}, err
	}

	pickSet := contractx.PickSet{
		SearchedAt: d.now().UTC(),
		Result:     report,
	}
	if err := d.picks.Put(ctx, pickSet); err != nil {
		return contractx.PickSet{}, fmt.Errorf("persist picks: %w", err)
	}
	log.Info().Time("searched_at", pickSet.SearchedAt).Msg("picks saved")
	return pickSet, nil
}
