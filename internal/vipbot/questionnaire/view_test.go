package questionnaire

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/junglebet-games/viptransfer/internal/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buttonData(markup tgbotapi.InlineKeyboardMarkup) []string {
	var out []string
	for _, row := range markup.InlineKeyboard {
		for _, b := range row {
			if b.CallbackData != nil {
				out = append(out, *b.CallbackData)
			}
		}
	}
	return out
}

func TestDecodeData(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want callbackData
	}{
		{"nav:next", callbackData{action: actionNav, arg: navNext}},
		{"tri:recentWager:yes", callbackData{action: actionTri, arg: "recentWager", value: triYes}},
		{"plat:Stake.com", callbackData{action: actionPlatform, arg: "Stake.com"}},
		{"att", callbackData{action: actionAttest}},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, decodeData(tc.in), tc.in)
	}
}

func TestViewEligibilityKeyboard(t *testing.T) {
	t.Parallel()

	v := view{
		step:     wizard.StepEligibilityForm,
		position: 2,
		total:    4,
		ranks:    wizard.DefaultRanks(),
		answers:  wizard.Answers{Platform: wizard.PlatformShuffle},
	}

	data := buttonData(v.keyboard())
	assert.Contains(t, data, "plat:Stake.com")
	assert.Contains(t, data, "rank:0")
	assert.Contains(t, data, "tri:selfExcluded:no")
	assert.Contains(t, data, "nav:back")
	assert.Contains(t, data, "nav:next")

	v.answers.Platform = wizard.PlatformOther
	data = buttonData(v.keyboard())
	assert.NotContains(t, data, "rank:0")
	assert.Contains(t, v.text(), "Transfers are only accepted from")
}

func TestViewTerminal(t *testing.T) {
	t.Parallel()

	v := view{
		step:     wizard.StepEligibilityForm,
		status:   wizard.StatusDisqualifiedWagerLow,
		position: 2,
		total:    4,
		answers:  wizard.Answers{Platform: wizard.PlatformBCGame, TotalWagered: wizard.NewAmount(50000)},
		support:  "@support",
	}

	text := v.text()
	assert.Contains(t, text, "Eligibility Issue: Low Wager")
	assert.Contains(t, text, "$50,000")
	assert.Contains(t, text, "@support")
	assert.Equal(t, []string{"nav:back", RestartData}, buttonData(v.keyboard()))
}

func TestViewStakeKeyboard(t *testing.T) {
	t.Parallel()

	v := view{step: wizard.StepStakeVerification, position: 3, total: 4}
	v.answers.Attestation.Status = wizard.AttestationPending
	assert.Equal(t, []string{"att:confirm", "nav:back"}, buttonData(v.keyboard()))

	v.answers.Attestation.Status = wizard.AttestationVerifying
	assert.Equal(t, []string{"nav:back"}, buttonData(v.keyboard()))

	v.answers.Attestation = wizard.Attestation{Status: wizard.AttestationSuccess, Rank: "Gold", Wager: wizard.NewAmount(150000)}
	assert.Equal(t, []string{"nav:back", "nav:next"}, buttonData(v.keyboard()))
	assert.Contains(t, v.text(), "$150,000")
}

func TestAssetTarget(t *testing.T) {
	t.Parallel()

	var a wizard.Answers
	target, ok := assetTarget("", kindImage, a)
	require.True(t, ok)
	assert.Equal(t, wizard.FieldPart1Screenshot, target.Field)

	target, ok = assetTarget(wizard.FieldLimboScreenshot, kindImage, a)
	require.True(t, ok)
	assert.Equal(t, wizard.FieldLimboScreenshot, target.Field)

	target, ok = assetTarget(wizard.FieldLimboScreenshot, kindEmail, a)
	require.True(t, ok)
	assert.Equal(t, wizard.FieldWagerHistoryEmail, target.Field)

	a.Part1Screenshot = "p"
	a.LimboScreenshot = "l"
	target, ok = assetTarget("", kindImage, a)
	require.True(t, ok)
	assert.Equal(t, wizard.FieldPart1Screenshot, target.Field)

	assert.Equal(t, kindVideo, documentKind("video/mp4"))
	assert.Equal(t, kindEmail, documentKind("application/octet-stream"))
}

func TestNextEmptyTextField(t *testing.T) {
	t.Parallel()

	a := wizard.Answers{Username: "ana"}
	assert.Equal(t, wizard.FieldEmail, nextEmptyTextField(wizard.StepWelcome, a))
	assert.Equal(t, wizard.Field(""), nextEmptyTextField(wizard.StepEligibilityForm, a))

	a.Platform = wizard.PlatformStake
	assert.Equal(t, wizard.FieldPlatformUsername, nextEmptyTextField(wizard.StepEligibilityForm, a))
	assert.Equal(t, wizard.Field(""), nextEmptyTextField(wizard.StepActionProofs, a))
}
