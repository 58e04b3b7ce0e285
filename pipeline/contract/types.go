package contract

import "time"

// Stage identifies one phase of the pipeline. Each stage is driven by a
// natural-language task handed to an external agent capability.
type Stage string

const (
	StageDiscovery     Stage = "discovery"
	StageHoldPlacement Stage = "hold_placement"
	StageNotification  Stage = "notification"
)

// FamilyProfile describes who the pipeline is working for. It is owned by
// configuration and read-only for the duration of a run.
type FamilyProfile struct {
	FamilyID        string
	ParentName      string
	ChildName       string
	ChildAge        int
	PreferredBranch string
	PhoneNumber     string
}

// PickSet is the persisted Discovery output and the hand-off artifact
// consumed by Hold-Placement. The agent report stays unparsed: no
// downstream consumer needs structure from it, it is only re-embedded
// as instructions.
type PickSet struct {
	SearchedAt time.Time `json:"searched_at"`
	Result     string    `json:"result"`
}

// HoldRecord is one parsed entry of the curated status document. Records
// are derived fresh on every read, never stored.
type HoldRecord struct {
	Title  string
	Author string
	Status string
	Branch string
	Why    string
}

// StatusReady is the one status value that makes a HoldRecord eligible
// for notification. Comparison is case-insensitive.
const StatusReady = "ready for pickup"

// PendingCall is the per-phone-number context document the voice agent
// reads when it answers. A write replaces any prior pending state for
// the same number.
type PendingCall struct {
	BooksContext string    `firestore:"books_context"`
	CreatedAt    time.Time `firestore:"created_at,serverTimestamp"`
}
