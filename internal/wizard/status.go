package wizard

type Status uint8

const (
	StatusInProgress Status = iota
	StatusUserUnavailable
	StatusDisqualifiedSelfExcluded
	StatusDisqualifiedPlatform
	StatusDisqualifiedWagerLow
)

func (s Status) Terminal() bool {
	return s != StatusInProgress
}

func (s Status) String() string {
	switch s {
	case StatusInProgress:
		return "in-progress"
	case StatusUserUnavailable:
		return "user-unavailable"
	case StatusDisqualifiedSelfExcluded:
		return "disqualified-self-excluded"
	case StatusDisqualifiedPlatform:
		return "disqualified-platform"
	case StatusDisqualifiedWagerLow:
		return "disqualified-wager-low"
	default:
		return "unknown"
	}
}
