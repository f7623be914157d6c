package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequence(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		platform Platform
		bonus    bool
		expected []Step
	}{
		{
			name:     "unset_platform",
			expected: []Step{StepWelcome, StepEligibilityForm, StepPreparationAndIntegrity, StepReceiptReview},
		},
		{
			name:     "stake",
			platform: PlatformStake,
			expected: []Step{StepWelcome, StepEligibilityForm, StepStakeVerification, StepPreparationAndIntegrity, StepReceiptReview},
		},
		{
			name:     "stake_bonus",
			platform: PlatformStake,
			bonus:    true,
			expected: []Step{
				StepWelcome, StepEligibilityForm, StepStakeVerification, StepPreparationAndIntegrity,
				StepLimboChallenge, StepActionProofs, StepAssetSubmission, StepReceiptReview,
			},
		},
		{
			name:     "shuffle_bonus",
			platform: PlatformShuffle,
			bonus:    true,
			expected: []Step{
				StepWelcome, StepEligibilityForm, StepPreparationAndIntegrity,
				StepLimboChallenge, StepActionProofs, StepAssetSubmission, StepReceiptReview,
			},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, Sequence(tc.platform, tc.bonus))
		})
	}
}

func TestSequenceShape(t *testing.T) {
	t.Parallel()

	for _, p := range append([]Platform{PlatformNone}, Platforms...) {
		for _, bonus := range []bool{false, true} {
			steps := Sequence(p, bonus)

			assert.Equal(t, []Step{StepWelcome, StepEligibilityForm}, steps[:2])
			assert.Equal(t, StepReceiptReview, steps[len(steps)-1])
			assert.Equal(t, p == PlatformStake, containsStep(steps, StepStakeVerification), "platform %q", p)

			idx := indexOf(steps, StepLimboChallenge)
			if !bonus {
				assert.Equal(t, -1, idx)
				assert.False(t, containsStep(steps, StepActionProofs))
				assert.False(t, containsStep(steps, StepAssetSubmission))
				continue
			}

			if assert.NotEqual(t, -1, idx) {
				assert.Equal(t, []Step{StepLimboChallenge, StepActionProofs, StepAssetSubmission}, steps[idx:idx+3])
			}
		}
	}
}

func TestStepTitle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Application Submitted", StepReceiptReview.Title())
	assert.Equal(t, "bogus", Step("bogus").Title())
}

func containsStep(steps []Step, s Step) bool {
	return indexOf(steps, s) != -1
}

func indexOf(steps []Step, s Step) int {
	for i := range steps {
		if steps[i] == s {
			return i
		}
	}
	return -1
}
