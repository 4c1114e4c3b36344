package session

// State is the start-up lifecycle of a session.
//
//	uninitialized ─Begin─▶ checking ─Resolve(true)──▶ authenticated
//	                                 └Resolve(false)─▶ anonymous
//
// Logout or a rejected token moves any state to anonymous. Begin from
// anonymous or authenticated re-enters checking so a stale session can
// be revalidated.
type State int

const (
	StateUninitialized State = iota
	StateChecking
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateChecking:
		return "checking"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}
