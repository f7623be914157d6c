package questionnaire

import (
	"strings"

	"github.com/junglebet-games/viptransfer/internal/wizard"
	"github.com/junglebet-games/viptransfer/internal/wizard/form"
)

// textFields lists the fields of each step filled by typing a message.
var textFields = map[wizard.Step][]wizard.Field{
	wizard.StepWelcome:         {wizard.FieldUsername, wizard.FieldEmail},
	wizard.StepEligibilityForm: {wizard.FieldPlatformUsername, wizard.FieldTotalWagered},
	wizard.StepLimboChallenge:  {wizard.FieldLimboLink},
}

// choiceFields lists the fields of each step filled from the inline keyboard.
var choiceFields = map[wizard.Step][]wizard.Field{
	wizard.StepWelcome:                 {wizard.FieldRulesConfirmed},
	wizard.StepEligibilityForm:         {wizard.FieldPlatform, wizard.FieldRank, wizard.FieldRecentWager, wizard.FieldSelfExcluded},
	wizard.StepPreparationAndIntegrity: {wizard.FieldAvailable, wizard.FieldProofsPrepared, wizard.FieldIntegrityConfirmed},
}

func isChoiceField(step wizard.Step, f wizard.Field) bool {
	for _, cf := range choiceFields[step] {
		if cf == f {
			return true
		}
	}
	return false
}

var fieldLabels = map[wizard.Field]string{
	wizard.FieldUsername:         "JungleBet username",
	wizard.FieldEmail:            "JungleBet email",
	wizard.FieldPlatformUsername: "username on the transferring platform",
	wizard.FieldTotalWagered:     "total lifetime wager in USD",
	wizard.FieldLimboLink:        "Limbo bet link",
}

func fieldLabel(f wizard.Field) string {
	if l, ok := fieldLabels[f]; ok {
		return l
	}
	if a, ok := asset(f); ok {
		return a.Label
	}
	return string(f)
}

func isTextField(step wizard.Step, f wizard.Field) bool {
	for _, tf := range textFields[step] {
		if tf == f {
			return true
		}
	}
	return false
}

func textValue(a wizard.Answers, f wizard.Field) string {
	switch f {
	case wizard.FieldUsername:
		return a.Username
	case wizard.FieldEmail:
		return a.Email
	case wizard.FieldPlatformUsername:
		return a.PlatformUsername
	case wizard.FieldTotalWagered:
		return a.TotalWagered.String()
	case wizard.FieldLimboLink:
		return a.LimboLink
	}
	return ""
}

// nextEmptyTextField returns the first text field of step still empty, or ""
// when every text field is filled. Other platforms collect no text.
func nextEmptyTextField(step wizard.Step, a wizard.Answers) wizard.Field {
	if step == wizard.StepEligibilityForm && !a.Platform.Supported() {
		return ""
	}

	for _, f := range textFields[step] {
		if strings.TrimSpace(textValue(a, f)) == "" {
			return f
		}
	}
	return ""
}

// assetKind buckets an asset field by what kind of upload can fill it.
type assetKind uint8

const (
	kindImage assetKind = iota + 1
	kindVideo
	kindEmail
)

var assetKinds = map[wizard.Field]assetKind{
	wizard.FieldPart1Screenshot:   kindImage,
	wizard.FieldWagerVideo:        kindVideo,
	wizard.FieldLimboScreenshot:   kindImage,
	wizard.FieldWagerHistoryEmail: kindEmail,
}

func asset(f wizard.Field) (form.Asset, bool) {
	for _, a := range form.Assets {
		if a.Field == f {
			return a, true
		}
	}
	return form.Asset{}, false
}

// assetTarget picks the asset field an upload of kind fills: the prompted
// field when it accepts kind, else the first missing one, else the first
// that accepts kind.
func assetTarget(prompt wizard.Field, kind assetKind, a wizard.Answers) (form.Asset, bool) {
	if target, ok := asset(prompt); ok && assetKinds[prompt] == kind {
		return target, true
	}

	var fallback *form.Asset
	for i := range form.Assets {
		candidate := form.Assets[i]
		if assetKinds[candidate.Field] != kind {
			continue
		}
		if !candidate.Handle(a).Present() {
			return candidate, true
		}
		if fallback == nil {
			fallback = &candidate
		}
	}

	if fallback != nil {
		return *fallback, true
	}
	return form.Asset{}, false
}
