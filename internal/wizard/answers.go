package wizard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrUnknownField = errors.New("unknown field")
	ErrFieldType    = errors.New("mismatched field type")
	ErrPlatform     = errors.New("unknown platform")
	ErrAmount       = errors.New("invalid amount")
)

type Platform string

const (
	PlatformNone    Platform = ""
	PlatformStake   Platform = "Stake.com"
	PlatformBCGame  Platform = "BC.Game"
	PlatformShuffle Platform = "Shuffle"
	PlatformOther   Platform = "Other"
)

// Platforms is the selectable set in display order.
var Platforms = []Platform{PlatformStake, PlatformBCGame, PlatformShuffle, PlatformOther}

func ParsePlatform(s string) (Platform, error) {
	for _, p := range Platforms {
		if strings.EqualFold(string(p), strings.TrimSpace(s)) {
			return p, nil
		}
	}

	return PlatformNone, fmt.Errorf("%q: %w", s, ErrPlatform)
}

// Supported reports whether transfers from the platform are accepted.
func (p Platform) Supported() bool {
	return p == PlatformStake || p == PlatformBCGame || p == PlatformShuffle
}

// Tri is a yes/no answer that may still be unanswered.
type Tri uint8

const (
	TriUnset Tri = iota
	TriYes
	TriNo
)

func TriOf(v bool) Tri {
	if v {
		return TriYes
	}
	return TriNo
}

func (t Tri) Answered() bool { return t != TriUnset }

func (t Tri) String() string {
	switch t {
	case TriYes:
		return "yes"
	case TriNo:
		return "no"
	default:
		return "unanswered"
	}
}

// Amount is a USD amount that may be left empty.
type Amount struct {
	Value decimal.Decimal
	Valid bool
}

func NewAmount(v int64) Amount {
	return Amount{Value: decimal.NewFromInt(v), Valid: true}
}

// ParseAmount accepts "", "150000", "150,000" and "$150000.50". Empty input
// yields an empty amount.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return Amount{}, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("%q: %w", s, ErrAmount)
	}

	return Amount{Value: d, Valid: true}, nil
}

func (a Amount) LessThan(v decimal.Decimal) bool {
	return a.Valid && a.Value.LessThan(v)
}

func (a Amount) String() string {
	if !a.Valid {
		return ""
	}
	return a.Value.String()
}

type AttestationStatus uint8

const (
	AttestationNone AttestationStatus = iota
	AttestationPending
	AttestationVerifying
	AttestationSuccess
)

func (s AttestationStatus) String() string {
	switch s {
	case AttestationPending:
		return "pending"
	case AttestationVerifying:
		return "verifying"
	case AttestationSuccess:
		return "success"
	default:
		return "none"
	}
}

// Attestation holds the values echoed back by the simulated Stake check.
type Attestation struct {
	Status AttestationStatus
	Rank   string
	Wager  Amount
}

// FileHandle is an opaque reference to an uploaded asset. Only its presence
// matters.
type FileHandle string

func (h FileHandle) Present() bool { return h != "" }

type Answers struct {
	RulesConfirmed bool
	Username       string
	Email          string

	Platform         Platform
	PlatformUsername string
	Rank             string
	TotalWagered     Amount
	RecentWager      Tri
	SelfExcluded     Tri

	Attestation Attestation

	Available          Tri
	ProofsPrepared     bool
	IntegrityConfirmed bool

	LimboLink         string
	Part1Screenshot   FileHandle
	WagerVideo        FileHandle
	LimboScreenshot   FileHandle
	WagerHistoryEmail FileHandle
}

// BonusEligible reports whether the 7-day bonus sub-flow applies.
func (a Answers) BonusEligible() bool {
	return a.RecentWager == TriYes
}

type Field string

const (
	FieldRulesConfirmed     Field = "rulesConfirmed"
	FieldUsername           Field = "username"
	FieldEmail              Field = "email"
	FieldPlatform           Field = "platform"
	FieldPlatformUsername   Field = "platformUsername"
	FieldRank               Field = "rank"
	FieldTotalWagered       Field = "totalWagered"
	FieldRecentWager        Field = "recentWager"
	FieldSelfExcluded       Field = "selfExcluded"
	FieldAttestationStatus  Field = "attestationStatus"
	FieldAttestedRank       Field = "attestedRank"
	FieldAttestedWager      Field = "attestedWager"
	FieldAvailable          Field = "available"
	FieldProofsPrepared     Field = "proofsPrepared"
	FieldIntegrityConfirmed Field = "integrityConfirmed"
	FieldLimboLink          Field = "limboLink"
	FieldPart1Screenshot    Field = "part1Screenshot"
	FieldWagerVideo         Field = "wagerVideo"
	FieldLimboScreenshot    Field = "limboScreenshot"
	FieldWagerHistoryEmail  Field = "wagerHistoryEmail"
)

// Set replaces exactly one field. The value must have the field's type,
// otherwise the answers are left untouched.
func (a *Answers) Set(field Field, value interface{}) error {
	var ok bool
	switch field {
	case FieldRulesConfirmed:
		ok = setValue(&a.RulesConfirmed, value)
	case FieldUsername:
		ok = setValue(&a.Username, value)
	case FieldEmail:
		ok = setValue(&a.Email, value)
	case FieldPlatform:
		ok = setValue(&a.Platform, value)
	case FieldPlatformUsername:
		ok = setValue(&a.PlatformUsername, value)
	case FieldRank:
		ok = setValue(&a.Rank, value)
	case FieldTotalWagered:
		ok = setValue(&a.TotalWagered, value)
	case FieldRecentWager:
		ok = setValue(&a.RecentWager, value)
	case FieldSelfExcluded:
		ok = setValue(&a.SelfExcluded, value)
	case FieldAttestationStatus:
		ok = setValue(&a.Attestation.Status, value)
	case FieldAttestedRank:
		ok = setValue(&a.Attestation.Rank, value)
	case FieldAttestedWager:
		ok = setValue(&a.Attestation.Wager, value)
	case FieldAvailable:
		ok = setValue(&a.Available, value)
	case FieldProofsPrepared:
		ok = setValue(&a.ProofsPrepared, value)
	case FieldIntegrityConfirmed:
		ok = setValue(&a.IntegrityConfirmed, value)
	case FieldLimboLink:
		ok = setValue(&a.LimboLink, value)
	case FieldPart1Screenshot:
		ok = setValue(&a.Part1Screenshot, value)
	case FieldWagerVideo:
		ok = setValue(&a.WagerVideo, value)
	case FieldLimboScreenshot:
		ok = setValue(&a.LimboScreenshot, value)
	case FieldWagerHistoryEmail:
		ok = setValue(&a.WagerHistoryEmail, value)
	default:
		return fmt.Errorf("%s: %w", field, ErrUnknownField)
	}

	if !ok {
		return fmt.Errorf("%s got %T: %w", field, value, ErrFieldType)
	}

	return nil
}

func setValue[T any](dst *T, value interface{}) bool {
	v, ok := value.(T)
	if !ok {
		return false
	}
	*dst = v
	return true
}
