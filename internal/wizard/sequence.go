package wizard

type Step string

const (
	StepWelcome                 Step = "welcome"
	StepEligibilityForm         Step = "eligibilityForm"
	StepStakeVerification       Step = "stakeVerification"
	StepPreparationAndIntegrity Step = "preparationAndIntegrity"
	StepLimboChallenge          Step = "limboChallenge"
	StepActionProofs            Step = "actionProofs"
	StepAssetSubmission         Step = "assetSubmission"
	StepReceiptReview           Step = "receiptReview"
)

var stepTitles = map[Step]string{
	StepWelcome:                 "Welcome & Your Details",
	StepEligibilityForm:         "Eligibility Confirmation",
	StepStakeVerification:       "Stake.com Account Verification",
	StepPreparationAndIntegrity: "Preparation & Integrity Check",
	StepLimboChallenge:          "Part 1: Limbo Challenge",
	StepActionProofs:            "Part 2: Action Proofs (Bonus)",
	StepAssetSubmission:         "Asset Submission (Bonus)",
	StepReceiptReview:           "Application Submitted",
}

func (s Step) Title() string {
	if t, ok := stepTitles[s]; ok {
		return t
	}
	return string(s)
}

// Sequence builds the ordered list of active steps. It always returns a new
// slice.
func Sequence(platform Platform, bonusEligible bool) []Step {
	steps := make([]Step, 0, 8)
	steps = append(steps, StepWelcome, StepEligibilityForm)
	if platform == PlatformStake {
		steps = append(steps, StepStakeVerification)
	}

	steps = append(steps, StepPreparationAndIntegrity)
	if bonusEligible {
		steps = append(steps, StepLimboChallenge, StepActionProofs, StepAssetSubmission)
	}

	return append(steps, StepReceiptReview)
}
