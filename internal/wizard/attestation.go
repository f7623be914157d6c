package wizard

import "time"

const (
	DefaultAttestationDelay = 1500 * time.Millisecond
	StakeProofPhrase        = "Jungle time"
	unreportedRank          = "N/A (Self-Reported)"
)

// EnterStakeVerification marks the attestation pending unless it already
// succeeded earlier in the session.
func (w *Wizard) EnterStakeVerification() {
	if w.answers.Attestation.Status != AttestationSuccess {
		w.answers.Attestation.Status = AttestationPending
	}
}

// BeginAttestation moves pending to verifying. It returns false when there is
// nothing to start, so the caller must not schedule the completion.
func (w *Wizard) BeginAttestation() bool {
	if w.answers.Attestation.Status != AttestationPending {
		return false
	}

	w.answers.Attestation.Status = AttestationVerifying
	return true
}

// CompleteAttestation finishes a verifying attestation by echoing the
// self-reported rank and wager into the attested fields. Success is stable.
func (w *Wizard) CompleteAttestation() bool {
	if w.answers.Attestation.Status != AttestationVerifying {
		return false
	}

	rank := w.answers.Rank
	if rank == "" {
		rank = unreportedRank
	}

	wager := w.answers.TotalWagered
	if !wager.Valid {
		wager = NewAmount(0)
	}

	w.answers.Attestation = Attestation{Status: AttestationSuccess, Rank: rank, Wager: wager}
	return true
}
