// Package wizard implements the VIP transfer questionnaire: the answers
// record, the step list derived from it, the eligibility gate and the
// application status.
//
// A Wizard is a single-actor state machine and is not safe for concurrent
// use; callers serialize access.
package wizard

// Wizard tracks one applicant's progress through the questionnaire.
type Wizard struct {
	answers  Answers
	position int
	status   Status
}

func New() *Wizard {
	return &Wizard{position: 1, status: StatusInProgress}
}

// Answers returns a copy of the collected answers.
func (w *Wizard) Answers() Answers {
	return w.answers
}

func (w *Wizard) Update(field Field, value interface{}) error {
	return w.answers.Set(field, value)
}

// Steps recomputes the active step list from the current answers.
func (w *Wizard) Steps() []Step {
	return Sequence(w.answers.Platform, w.answers.BonusEligible())
}

func (w *Wizard) Total() int {
	return len(w.Steps())
}

// Position is the 1-indexed position in the active step list. A position left
// past the end by a shrinking list reads as the last step.
func (w *Wizard) Position() int {
	if total := w.Total(); w.position > total {
		return total
	}
	return w.position
}

func (w *Wizard) Current() Step {
	steps := w.Steps()
	return steps[w.Position()-1]
}

func (w *Wizard) Status() Status {
	return w.status
}

// SetStatus is the only status mutator besides Retreat and Restart.
func (w *Wizard) SetStatus(s Status) {
	w.status = s
}

// MarkUnavailable pauses the application on the applicant's request.
func (w *Wizard) MarkUnavailable() {
	w.SetStatus(StatusUserUnavailable)
}

// Advance runs the gate for the current step and moves forward when it
// passes. It is a no-op while the status is terminal and on the last step.
func (w *Wizard) Advance() Status {
	if w.status.Terminal() {
		return w.status
	}

	if s := Gate(w.Current(), w.answers); s.Terminal() {
		w.SetStatus(s)
		return s
	}

	if pos := w.Position(); pos < w.Total() {
		w.position = pos + 1
	}

	return w.status
}

// Retreat dismisses a terminal status without moving, otherwise steps back.
func (w *Wizard) Retreat() {
	if w.status.Terminal() {
		w.SetStatus(StatusInProgress)
		return
	}

	if pos := w.Position(); pos > 1 {
		w.position = pos - 1
	}
}

// Restart wipes every answer and returns to the first step.
func (w *Wizard) Restart() {
	w.answers = Answers{}
	w.position = 1
	w.status = StatusInProgress
}

// Finished reports whether the applicant reached the receipt screen.
func (w *Wizard) Finished() bool {
	return w.status == StatusInProgress && w.Current() == StepReceiptReview
}
