package wizard

import "github.com/shopspring/decimal"

const (
	MinWagerTotal  = 100000
	MinRecentWager = 1000
)

var minWagerTotal = decimal.NewFromInt(MinWagerTotal)

// Gate evaluates the eligibility checks attached to leaving step. It returns
// StatusInProgress when the transition may proceed.
func Gate(step Step, a Answers) Status {
	switch step {
	case StepEligibilityForm:
		return gateEligibility(a)
	case StepStakeVerification:
		return gateStakeVerification(a)
	case StepPreparationAndIntegrity:
		if a.Available == TriNo {
			return StatusUserUnavailable
		}
	}

	return StatusInProgress
}

func gateEligibility(a Answers) Status {
	if a.SelfExcluded == TriYes {
		return StatusDisqualifiedSelfExcluded
	}

	if a.Platform == PlatformOther {
		return StatusDisqualifiedPlatform
	}

	// an attested Stake account is checked when leaving the verification step
	attested := a.Platform == PlatformStake && a.Attestation.Status == AttestationSuccess
	if !attested && a.TotalWagered.LessThan(minWagerTotal) {
		return StatusDisqualifiedWagerLow
	}

	return StatusInProgress
}

func gateStakeVerification(a Answers) Status {
	if a.Attestation.Status != AttestationSuccess {
		return StatusInProgress
	}

	if EffectiveWager(a).LessThan(minWagerTotal) {
		return StatusDisqualifiedWagerLow
	}

	return StatusInProgress
}

// EffectiveWager is the attested wager when present, otherwise the
// self-reported one.
func EffectiveWager(a Answers) Amount {
	if a.Attestation.Wager.Valid {
		return a.Attestation.Wager
	}
	return a.TotalWagered
}
