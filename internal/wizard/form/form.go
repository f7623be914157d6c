// Package form holds the per-step field checks the step views run before
// asking the wizard to advance. Failures are inline messages keyed by field
// and never change the application status.
package form

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/junglebet-games/viptransfer/internal/wizard"
)

// LimboLinkPrefix is the exact prefix a Limbo bet details link must carry.
const LimboLinkPrefix = "https://stake.com/casino/games/limbo?iid=house%3A"

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Errors maps a field to its inline message.
type Errors map[wizard.Field]string

func (e Errors) OK() bool { return len(e) == 0 }

// Fields returns the failing fields in form order.
func (e Errors) Fields() []wizard.Field {
	fields := make([]wizard.Field, 0, len(e))
	for _, f := range fieldOrder {
		if _, ok := e[f]; ok {
			fields = append(fields, f)
		}
	}
	return fields
}

var fieldOrder = []wizard.Field{
	wizard.FieldUsername,
	wizard.FieldEmail,
	wizard.FieldRulesConfirmed,
	wizard.FieldPlatform,
	wizard.FieldPlatformUsername,
	wizard.FieldRank,
	wizard.FieldTotalWagered,
	wizard.FieldRecentWager,
	wizard.FieldSelfExcluded,
	wizard.FieldAttestationStatus,
	wizard.FieldAvailable,
	wizard.FieldProofsPrepared,
	wizard.FieldIntegrityConfirmed,
	wizard.FieldLimboLink,
	wizard.FieldPart1Screenshot,
	wizard.FieldWagerVideo,
	wizard.FieldLimboScreenshot,
	wizard.FieldWagerHistoryEmail,
}

type Validator struct {
	validate *validator.Validate
}

var customTags = map[string]validator.Func{
	"plain_email":      validatePlainEmail,
	"trimmed_required": validateTrimmedRequired,
}

func NewValidator() *Validator {
	v := validator.New()
	mustRegister(v, customTags)

	return &Validator{validate: v}
}

func mustRegister(v *validator.Validate, tags map[string]validator.Func) {
	for tag, fn := range tags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register validation %q: %v", tag, err))
		}
	}
}

func validatePlainEmail(fl validator.FieldLevel) bool {
	return emailRegex.MatchString(fl.Field().String())
}

func validateTrimmedRequired(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

type welcome struct {
	Username       string `validate:"trimmed_required"`
	Email          string `validate:"trimmed_required,plain_email"`
	RulesConfirmed bool   `validate:"required"`
}

var welcomeMessages = map[string]struct {
	field wizard.Field
	text  map[string]string
}{
	"Username": {wizard.FieldUsername, map[string]string{"": "Please enter your JungleBet username."}},
	"Email": {wizard.FieldEmail, map[string]string{
		"trimmed_required": "Please enter your JungleBet email address.",
		"plain_email":      "Please enter a valid email address.",
	}},
	"RulesConfirmed": {wizard.FieldRulesConfirmed, map[string]string{"": "You must confirm you have read the rules."}},
}

// Welcome checks the applicant's JungleBet identity and rules confirmation.
func (v *Validator) Welcome(a wizard.Answers) Errors {
	err := v.validate.Struct(welcome{
		Username:       a.Username,
		Email:          a.Email,
		RulesConfirmed: a.RulesConfirmed,
	})

	errs := Errors{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errs
	}

	for _, fe := range verrs {
		m, ok := welcomeMessages[fe.Field()]
		if !ok {
			continue
		}
		text, ok := m.text[fe.Tag()]
		if !ok {
			text = m.text[""]
		}
		errs[m.field] = text
	}

	return errs
}

type eligibility struct {
	Platform         string `validate:"required"`
	PlatformUsername string `validate:"required_unless=Platform Other"`
	Rank             string `validate:"required_unless=Platform Other"`
	WagerSet         bool   `validate:"required_unless=Platform Other"`
	RecentWager      uint8  `validate:"required_unless=Platform Other"`
	SelfExcluded     uint8  `validate:"required_unless=Platform Other"`
}

var eligibilityMessages = map[string]struct {
	field wizard.Field
	text  string
}{
	"Platform":         {wizard.FieldPlatform, "Please select your platform."},
	"PlatformUsername": {wizard.FieldPlatformUsername, "Please enter your username on the transferring platform."},
	"Rank":             {wizard.FieldRank, "Please select your VIP rank."},
	"WagerSet":         {wizard.FieldTotalWagered, "Please enter your total lifetime wager."},
	"RecentWager":      {wizard.FieldRecentWager, "Please select for recent wagering."},
	"SelfExcluded":     {wizard.FieldSelfExcluded, "Please confirm self-exclusion status."},
}

// Eligibility checks the platform form. Everything but the platform is
// optional once Other is chosen, the gate rejects that platform anyway.
func (v *Validator) Eligibility(a wizard.Answers) Errors {
	if a.Platform == wizard.PlatformNone {
		return Errors{wizard.FieldPlatform: eligibilityMessages["Platform"].text}
	}

	err := v.validate.Struct(eligibility{
		Platform:         string(a.Platform),
		PlatformUsername: strings.TrimSpace(a.PlatformUsername),
		Rank:             strings.TrimSpace(a.Rank),
		WagerSet:         a.TotalWagered.Valid && !a.TotalWagered.Value.IsNegative(),
		RecentWager:      uint8(a.RecentWager),
		SelfExcluded:     uint8(a.SelfExcluded),
	})

	errs := Errors{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errs
	}

	for _, fe := range verrs {
		if m, ok := eligibilityMessages[fe.Field()]; ok {
			errs[m.field] = m.text
		}
	}

	return errs
}

func (v *Validator) StakeVerification(a wizard.Answers) Errors {
	if a.Attestation.Status != wizard.AttestationSuccess {
		return Errors{wizard.FieldAttestationStatus: "Please confirm you have posted '" + wizard.StakeProofPhrase + "' first."}
	}
	return Errors{}
}

// Preparation checks the availability section. An explicit "no" is not an
// error here: the view routes it to the unavailable status instead.
func (v *Validator) Preparation(a wizard.Answers) Errors {
	errs := Errors{}
	switch a.Available {
	case wizard.TriUnset:
		errs[wizard.FieldAvailable] = "Please select your availability."
	case wizard.TriYes:
		if !a.ProofsPrepared {
			errs[wizard.FieldProofsPrepared] = "Please confirm you have prepared the Part 1 proofs."
		}
		if !a.IntegrityConfirmed {
			errs[wizard.FieldIntegrityConfirmed] = "Please confirm you agree to the integrity guidelines."
		}
	}

	return errs
}

// LimboLinkReady reports whether link starts with the exact Limbo prefix.
func LimboLinkReady(link string) bool {
	return strings.HasPrefix(link, LimboLinkPrefix)
}

func (v *Validator) LimboChallenge(a wizard.Answers) Errors {
	if !LimboLinkReady(a.LimboLink) {
		return Errors{wizard.FieldLimboLink: "Please paste the direct link to your Limbo bet."}
	}
	return Errors{}
}

func (v *Validator) AssetSubmission(a wizard.Answers) Errors {
	errs := Errors{}
	for _, asset := range Assets {
		if !asset.Handle(a).Present() {
			errs[asset.Field] = asset.Label + " is required."
		}
	}
	return errs
}

// Asset describes one file the bonus path asks for.
type Asset struct {
	Field  wizard.Field
	Label  string
	Kind   string
	Handle func(a wizard.Answers) wizard.FileHandle
}

var Assets = []Asset{
	{wizard.FieldPart1Screenshot, "Part 1 Screenshot", "image", func(a wizard.Answers) wizard.FileHandle { return a.Part1Screenshot }},
	{wizard.FieldWagerVideo, "7-Day Wager Video", "video", func(a wizard.Answers) wizard.FileHandle { return a.WagerVideo }},
	{wizard.FieldLimboScreenshot, "Limbo Bet Screenshot", "image", func(a wizard.Answers) wizard.FileHandle { return a.LimboScreenshot }},
	{wizard.FieldWagerHistoryEmail, "Wager History Email", "email file (.eml, .msg)", func(a wizard.Answers) wizard.FileHandle { return a.WagerHistoryEmail }},
}

// Step runs the check for step. Steps without fields always pass.
func (v *Validator) Step(step wizard.Step, a wizard.Answers) Errors {
	switch step {
	case wizard.StepWelcome:
		return v.Welcome(a)
	case wizard.StepEligibilityForm:
		return v.Eligibility(a)
	case wizard.StepStakeVerification:
		return v.StakeVerification(a)
	case wizard.StepPreparationAndIntegrity:
		return v.Preparation(a)
	case wizard.StepLimboChallenge:
		return v.LimboChallenge(a)
	case wizard.StepAssetSubmission:
		return v.AssetSubmission(a)
	}
	return Errors{}
}
