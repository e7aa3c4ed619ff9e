package models

// Disposition is the terminal state of the moderation pipeline for one
// message.
type Disposition uint8

const (
	// Skipped: the message was not evaluated, or was compliant.
	Skipped Disposition = iota
	// Enforced: the message was deleted and the author timed out and warned.
	Enforced
	// AdminReported: the message was deleted but the author is an
	// administrator, so they were notified instead of timed out.
	AdminReported
	// ErrorRecorded: enforcement stopped partway; the failure was logged and
	// written to the audit log.
	ErrorRecorded
)

func (d Disposition) String() string {
	switch d {
	case Skipped:
		return "skipped"
	case Enforced:
		return "enforced"
	case AdminReported:
		return "admin_reported"
	case ErrorRecorded:
		return "error_recorded"
	default:
		return "unknown"
	}
}

// ThreadCheck is the result of the thread probe. The probe can fail (message
// deleted, channel inaccessible, transient network error); that is a distinct
// outcome from a definite "no thread", even though policy downgrades both to
// non-compliant.
type ThreadCheck uint8

const (
	ThreadAbsent ThreadCheck = iota
	ThreadPresent
	ThreadUnknown
)

// Satisfied reports whether the check counts as "has thread" for compliance.
// ThreadUnknown downgrades to false.
func (t ThreadCheck) Satisfied() bool {
	return t == ThreadPresent
}

// ModerationOutcome is the transient result of evaluating one message. It is
// returned for logging and tests, never persisted.
type ModerationOutcome struct {
	HasMedia    bool
	HasThread   bool
	Disposition Disposition
	Err         error
}
