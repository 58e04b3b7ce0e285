package contract

import "context"

// Agent is the external autonomous browsing capability. One invocation
// takes a natural-language task and yields a free-text report. The report
// content is never interpreted here; only a missing report is an error.
type Agent interface {
	Run(ctx context.Context, instructions string) (string, error)
}

// PickStore persists the Discovery hand-off artifact. Last write wins,
// no history.
type PickStore interface {
	Put(ctx context.Context, picks PickSet) error
	Get(ctx context.Context) (PickSet, error)
}

// PendingCallStore upserts the books context for a recipient before any
// call is placed. The upsert must be confirmed complete before a caller
// may trigger telephony.
type PendingCallStore interface {
	Upsert(ctx context.Context, phoneNumber, booksContext string) error
}

// CallTrigger starts one outbound call to the recipient. The recipient's
// pending-call context must already be persisted.
type CallTrigger interface {
	Call(ctx context.Context, phoneNumber string) error
}
