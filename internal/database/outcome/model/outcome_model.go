package model

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusSubmitted                Status = "submitted"
	StatusUserUnavailable          Status = "user-unavailable"
	StatusDisqualifiedSelfExcluded Status = "disqualified-self-excluded"
	StatusDisqualifiedPlatform     Status = "disqualified-platform"
	StatusDisqualifiedWagerLow     Status = "disqualified-wager-low"
	StatusAbandoned                Status = "abandoned"
)

func NewOutcome(userID int64, status Status) Outcome {
	return Outcome{ID: uuid.New(), UserID: userID, Status: status, CreatedAt: time.Now()}
}

// Outcome is how one questionnaire run ended. Answers are never part of it.
type Outcome struct {
	ID        uuid.UUID `json:"-"`
	UserID    int64     `json:"userID"`
	Status    Status    `json:"status"`
	Platform  string    `json:"platform"`
	Bonus     bool      `json:"bonus"`
	Reference string    `json:"reference,omitempty"`
	Steps     int       `json:"steps"`
	CreatedAt time.Time `json:"createdAt"`
}

type Summary struct {
	Count    int
	ByStatus map[Status]int
	Last     Outcome
}
