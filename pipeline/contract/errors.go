package contract

import "errors"

var (
	// ErrAgentRun means the agent capability failed to produce any report.
	ErrAgentRun = errors.New("agent run failed")

	// ErrStageRejected means a stage's output failed its acceptance policy
	// and was not persisted. The run halts before the next stage.
	ErrStageRejected = errors.New("stage output rejected")

	// ErrNothingToDo is the normal zero-effort outcome: no books ready.
	ErrNothingToDo = errors.New("no books ready for pickup")

	// ErrNoSummaries is the "try next source" signal in the interest
	// aggregation chain.
	ErrNoSummaries = errors.New("no interest summaries available")

	// ErrPicksNotFound means Hold-Placement was started without a
	// persisted Discovery artifact.
	ErrPicksNotFound = errors.New("discovery picks not found")

	ErrValidation = errors.New("validation failed")
)
