package progress

import "errors"

var (
	ErrScopeInvalid    = errors.New("progress: scope is invalid")
	ErrVerbInvalid     = errors.New("progress: activity verb must be submitted or approved")
	ErrSnapshotInvalid = errors.New("progress: snapshot counts must be zero or positive")
)

// Activity verbs accepted by RecordActivity.
const (
	VerbSubmitted = "submitted"
	VerbApproved  = "approved"
)
