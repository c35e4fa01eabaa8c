package pipeline

// State is a step of the search state machine.
type State int

const (
	Idle State = iota
	Validating
	Loading
	ProfileReady
	Errored
	ReposReady
	ReposFailed
	ReadmesStreaming
	Settled
)

var stateNames = [...]string{
	Idle:             "idle",
	Validating:       "validating",
	Loading:          "loading",
	ProfileReady:     "profile-ready",
	Errored:          "errored",
	ReposReady:       "repos-ready",
	ReposFailed:      "repos-failed",
	ReadmesStreaming: "readmes-streaming",
	Settled:          "settled",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Terminal reports whether no further sink calls follow for the search.
func (s State) Terminal() bool {
	return s == Errored || s == Settled
}
