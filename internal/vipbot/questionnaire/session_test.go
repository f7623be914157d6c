package questionnaire

import (
	"context"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/junglebet-games/viptransfer/internal/hashutil"
	"github.com/junglebet-games/viptransfer/internal/vipbot/resource"
	"github.com/junglebet-games/viptransfer/internal/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const limboLink = "https://stake.com/casino/games/limbo?iid=house%3A123456"

type fakeSender struct {
	mtx      sync.Mutex
	nextID   int
	messages []tgbotapi.MessageConfig
	edits    []tgbotapi.EditMessageTextConfig
	answers  []tgbotapi.CallbackConfig
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	switch m := c.(type) {
	case tgbotapi.MessageConfig:
		f.nextID++
		f.messages = append(f.messages, m)
		return tgbotapi.Message{MessageID: f.nextID}, nil
	case tgbotapi.EditMessageTextConfig:
		f.edits = append(f.edits, m)
		return tgbotapi.Message{MessageID: m.MessageID}, nil
	}

	return tgbotapi.Message{}, nil
}

func (f *fakeSender) AnswerCallbackQuery(config tgbotapi.CallbackConfig) (tgbotapi.APIResponse, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	f.answers = append(f.answers, config)
	return tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeSender) lastMessage() tgbotapi.MessageConfig {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	return f.messages[len(f.messages)-1]
}

func (f *fakeSender) lastEdit() tgbotapi.EditMessageTextConfig {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	return f.edits[len(f.edits)-1]
}

func (f *fakeSender) lastAnswer() tgbotapi.CallbackConfig {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	return f.answers[len(f.answers)-1]
}

func (f *fakeSender) sentText(text string) bool {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	for _, m := range f.messages {
		if m.Text == text {
			return true
		}
	}
	return false
}

type recorder struct {
	mtx      sync.Mutex
	outcomes []Outcome
	done     chan struct{}
}

func (r *recorder) outcomeFn(o Outcome) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.outcomes = append(r.outcomes, o)
	return nil
}

func (r *recorder) list() []Outcome {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	out := make([]Outcome, len(r.outcomes))
	copy(out, r.outcomes)
	return out
}

func newTestSession(t *testing.T, timeout time.Duration) (*Session, *fakeSender, *recorder) {
	t.Helper()

	tg := &fakeSender{}
	rec := &recorder{done: make(chan struct{})}
	s := NewSession(tg, Config{
		ChatID:           1,
		UserID:           1,
		Username:         "ana",
		Timeout:          timeout,
		AttestationDelay: 10 * time.Millisecond,
		SupportContact:   "@junglebet_support",
		OutcomeFn:        rec.outcomeFn,
		DoneFn: func(*Session) error {
			close(rec.done)
			return nil
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, s.Run(ctx))

	return s, tg, rec
}

func (s *Session) currentMessageID() int {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.messageID
}

func click(t *testing.T, s *Session, data string) {
	t.Helper()
	require.NoError(t, s.Execute(tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "query",
		Data:    data,
		Message: &tgbotapi.Message{MessageID: s.currentMessageID()},
	}}))
}

func send(t *testing.T, s *Session, text string) {
	t.Helper()
	require.NoError(t, s.Execute(tgbotapi.Update{Message: &tgbotapi.Message{Text: text}}))
}

func upload(t *testing.T, s *Session, msg *tgbotapi.Message) {
	t.Helper()
	require.NoError(t, s.Execute(tgbotapi.Update{Message: msg}))
}

func waitDone(t *testing.T, rec *recorder) {
	t.Helper()
	select {
	case <-rec.done:
	case <-time.After(2 * time.Second):
		t.Fatal("session did not stop")
	}
}

func passWelcome(t *testing.T, s *Session) {
	t.Helper()
	send(t, s, "ana")
	send(t, s, "ana@example.com")
	click(t, s, "tog:rulesConfirmed")
	click(t, s, "nav:next")
}

func fillEligibility(t *testing.T, s *Session, platform wizard.Platform, wager string, recent, excluded wizard.Tri) {
	t.Helper()
	click(t, s, "plat:"+string(platform))
	click(t, s, "rank:0")
	send(t, s, "ana_"+string(platform))
	send(t, s, wager)
	click(t, s, triData(wizard.FieldRecentWager, recent))
	click(t, s, triData(wizard.FieldSelfExcluded, excluded))
}

func TestSessionWelcomeValidation(t *testing.T) {
	t.Parallel()

	s, tg, _ := newTestSession(t, time.Minute)
	click(t, s, "nav:next")

	_, status, step := s.Snapshot()
	assert.Equal(t, wizard.StatusInProgress, status)
	assert.Equal(t, wizard.StepWelcome, step)

	text := tg.lastEdit().Text
	assert.Contains(t, text, "Please enter your JungleBet username.")
	assert.Contains(t, text, "Please enter your JungleBet email address.")
	assert.Contains(t, text, "You must confirm you have read the rules.")

	send(t, s, "ana")
	send(t, s, "not-an-email")
	click(t, s, "tog:rulesConfirmed")
	click(t, s, "nav:next")

	_, _, step = s.Snapshot()
	assert.Equal(t, wizard.StepWelcome, step)
	assert.Contains(t, tg.lastEdit().Text, "Please enter a valid email address.")
}

func TestSessionStakeBonusPath(t *testing.T) {
	t.Parallel()

	s, tg, rec := newTestSession(t, time.Minute)
	assert.Contains(t, tg.lastMessage().Text, "Step 1 of 4")

	passWelcome(t, s)
	fillEligibility(t, s, wizard.PlatformStake, "150,000", wizard.TriYes, wizard.TriNo)
	click(t, s, "nav:next")

	a, _, step := s.Snapshot()
	require.Equal(t, wizard.StepStakeVerification, step)
	assert.Equal(t, wizard.AttestationPending, a.Attestation.Status)
	assert.Contains(t, tg.lastMessage().Text, "Step 3 of 8")

	click(t, s, "att:confirm")
	require.Eventually(t, func() bool {
		a, _, _ := s.Snapshot()
		return a.Attestation.Status == wizard.AttestationSuccess
	}, time.Second, 5*time.Millisecond)

	a, _, _ = s.Snapshot()
	assert.Equal(t, "150000", a.Attestation.Wager.String())
	assert.Equal(t, "Gold", a.Attestation.Rank)
	assert.Contains(t, tg.lastEdit().Text, "Attestation Confirmed")

	click(t, s, "nav:next")
	click(t, s, "tri:available:yes")
	click(t, s, "tog:proofsPrepared")
	click(t, s, "tog:integrityConfirmed")
	click(t, s, "nav:next")

	_, _, step = s.Snapshot()
	require.Equal(t, wizard.StepLimboChallenge, step)

	send(t, s, limboLink)
	click(t, s, "nav:next")
	click(t, s, "nav:next")

	_, _, step = s.Snapshot()
	require.Equal(t, wizard.StepAssetSubmission, step)

	upload(t, s, &tgbotapi.Message{Photo: &[]tgbotapi.PhotoSize{{FileID: "small"}, {FileID: "part1"}}})
	upload(t, s, &tgbotapi.Message{Video: &tgbotapi.Video{FileID: "video"}})
	upload(t, s, &tgbotapi.Message{Photo: &[]tgbotapi.PhotoSize{{FileID: "limbo"}}})
	upload(t, s, &tgbotapi.Message{Document: &tgbotapi.Document{FileID: "mail", MimeType: "message/rfc822"}})

	a, _, _ = s.Snapshot()
	assert.Equal(t, wizard.FileHandle("part1"), a.Part1Screenshot)
	assert.Equal(t, wizard.FileHandle("video"), a.WagerVideo)
	assert.Equal(t, wizard.FileHandle("limbo"), a.LimboScreenshot)
	assert.Equal(t, wizard.FileHandle("mail"), a.WagerHistoryEmail)

	click(t, s, "nav:next")
	waitDone(t, rec)

	outcomes := rec.list()
	require.Len(t, outcomes, 1)
	assert.True(t, outcomes[0].Submitted)
	assert.True(t, outcomes[0].Bonus)
	assert.Equal(t, wizard.PlatformStake, outcomes[0].Platform)
	assert.True(t, hashutil.ValidReference(outcomes[0].Reference))
	assert.True(t, tg.sentText(resource.TextApplicationFinishedMsg))
}

func TestSessionSelfExcludedDismiss(t *testing.T) {
	t.Parallel()

	s, tg, rec := newTestSession(t, time.Minute)
	passWelcome(t, s)
	fillEligibility(t, s, wizard.PlatformBCGame, "500000", wizard.TriNo, wizard.TriYes)
	click(t, s, "nav:next")

	_, status, step := s.Snapshot()
	assert.Equal(t, wizard.StatusDisqualifiedSelfExcluded, status)
	assert.Equal(t, wizard.StepEligibilityForm, step)
	assert.Contains(t, tg.lastMessage().Text, "Eligibility Issue: Self-Exclusion")

	click(t, s, "nav:next")
	_, status, _ = s.Snapshot()
	assert.Equal(t, wizard.StatusDisqualifiedSelfExcluded, status)

	click(t, s, "nav:back")
	_, status, step = s.Snapshot()
	assert.Equal(t, wizard.StatusInProgress, status)
	assert.Equal(t, wizard.StepEligibilityForm, step)

	outcomes := rec.list()
	require.Len(t, outcomes, 1)
	assert.Equal(t, wizard.StatusDisqualifiedSelfExcluded, outcomes[0].Status)
}

func TestSessionOtherPlatform(t *testing.T) {
	t.Parallel()

	s, _, rec := newTestSession(t, time.Minute)
	passWelcome(t, s)
	click(t, s, "plat:Other")
	click(t, s, "nav:next")

	_, status, _ := s.Snapshot()
	assert.Equal(t, wizard.StatusDisqualifiedPlatform, status)
	require.Len(t, rec.list(), 1)
}

func TestSessionPlatformChangeClearsRank(t *testing.T) {
	t.Parallel()

	s, _, _ := newTestSession(t, time.Minute)
	passWelcome(t, s)
	fillEligibility(t, s, wizard.PlatformShuffle, "200000", wizard.TriNo, wizard.TriNo)

	click(t, s, "plat:Stake.com")
	a, _, _ := s.Snapshot()
	assert.Empty(t, a.Rank)
	assert.Equal(t, "ana_Shuffle", a.PlatformUsername)

	click(t, s, "plat:Other")
	a, _, _ = s.Snapshot()
	assert.Empty(t, a.PlatformUsername)
	assert.False(t, a.TotalWagered.Valid)
	assert.Equal(t, wizard.TriUnset, a.RecentWager)
}

func TestSessionInvalidAmount(t *testing.T) {
	t.Parallel()

	s, tg, _ := newTestSession(t, time.Minute)
	passWelcome(t, s)
	click(t, s, "plat:Shuffle")
	send(t, s, "ana_shuffle")
	send(t, s, "a lot")

	a, _, _ := s.Snapshot()
	assert.False(t, a.TotalWagered.Valid)
	assert.Equal(t, resource.TextInvalidAmount, tg.lastMessage().Text)
}

func TestSessionUnavailable(t *testing.T) {
	t.Parallel()

	s, _, rec := newTestSession(t, time.Minute)
	passWelcome(t, s)
	fillEligibility(t, s, wizard.PlatformShuffle, "200000", wizard.TriNo, wizard.TriNo)
	click(t, s, "nav:next")

	_, _, step := s.Snapshot()
	require.Equal(t, wizard.StepPreparationAndIntegrity, step)

	click(t, s, "tri:available:yes")
	click(t, s, "tog:proofsPrepared")
	click(t, s, "tri:available:no")

	a, _, _ := s.Snapshot()
	assert.False(t, a.ProofsPrepared)

	click(t, s, "nav:next")
	_, status, _ := s.Snapshot()
	assert.Equal(t, wizard.StatusUserUnavailable, status)
	assert.Equal(t, wizard.StatusUserUnavailable, rec.list()[0].Status)
}

func TestSessionChoiceOffCurrentStep(t *testing.T) {
	t.Parallel()

	s, tg, rec := newTestSession(t, time.Minute)
	passWelcome(t, s)
	fillEligibility(t, s, wizard.PlatformShuffle, "200000", wizard.TriNo, wizard.TriNo)
	click(t, s, "nav:next")

	_, _, step := s.Snapshot()
	require.Equal(t, wizard.StepPreparationAndIntegrity, step)

	click(t, s, "plat:Other")
	assert.Equal(t, resource.TextStaleKeyboard, tg.lastAnswer().Text)
	click(t, s, triData(wizard.FieldSelfExcluded, wizard.TriYes))
	assert.Equal(t, resource.TextStaleKeyboard, tg.lastAnswer().Text)
	click(t, s, "rank:1")
	click(t, s, "tog:rulesConfirmed")

	a, _, _ := s.Snapshot()
	assert.Equal(t, wizard.PlatformShuffle, a.Platform)
	assert.Equal(t, wizard.TriNo, a.SelfExcluded)
	assert.True(t, a.RulesConfirmed)
	assert.Equal(t, "Jade", a.Rank)

	click(t, s, "tri:available:yes")
	click(t, s, "tog:proofsPrepared")
	click(t, s, "tog:integrityConfirmed")
	click(t, s, "nav:next")
	waitDone(t, rec)

	outcomes := rec.list()
	require.Len(t, outcomes, 1)
	assert.True(t, outcomes[0].Submitted)
	assert.Equal(t, wizard.PlatformShuffle, outcomes[0].Platform)
}

func TestSessionStaleKeyboard(t *testing.T) {
	t.Parallel()

	s, tg, _ := newTestSession(t, time.Minute)
	require.NoError(t, s.Execute(tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "old",
		Data:    "tog:rulesConfirmed",
		Message: &tgbotapi.Message{MessageID: s.currentMessageID() + 100},
	}}))

	a, _, _ := s.Snapshot()
	assert.False(t, a.RulesConfirmed)
	assert.Equal(t, resource.TextStaleKeyboard, tg.lastAnswer().Text)
}

func TestSessionLateAttestationAfterStop(t *testing.T) {
	t.Parallel()

	tg := &fakeSender{}
	done := make(chan struct{})
	s := NewSession(tg, Config{
		ChatID:           1,
		UserID:           1,
		Timeout:          time.Minute,
		AttestationDelay: 50 * time.Millisecond,
		DoneFn: func(*Session) error {
			close(done)
			return nil
		},
	})
	require.NoError(t, s.Run(context.Background()))

	passWelcome(t, s)
	fillEligibility(t, s, wizard.PlatformStake, "150000", wizard.TriNo, wizard.TriNo)
	click(t, s, "nav:next")
	click(t, s, "att:confirm")

	s.Stop()
	<-done
	time.Sleep(100 * time.Millisecond)

	a, _, _ := s.Snapshot()
	assert.Equal(t, wizard.AttestationVerifying, a.Attestation.Status)
}

func TestSessionTimeout(t *testing.T) {
	t.Parallel()

	s, tg, rec := newTestSession(t, 200*time.Millisecond)
	send(t, s, "ana")
	waitDone(t, rec)

	outcomes := rec.list()
	require.Len(t, outcomes, 1)
	assert.True(t, outcomes[0].Abandoned)
	assert.True(t, tg.sentText(resource.TextApplicationTimeoutMsg))

	require.NoError(t, s.Execute(tgbotapi.Update{Message: &tgbotapi.Message{Text: "late"}}))
	a, _, _ := s.Snapshot()
	assert.Equal(t, "ana", a.Username)
}

func TestSessionRestart(t *testing.T) {
	t.Parallel()

	s, _, _ := newTestSession(t, time.Minute)
	passWelcome(t, s)
	click(t, s, RestartData)

	a, status, step := s.Snapshot()
	assert.Equal(t, wizard.Answers{}, a)
	assert.Equal(t, wizard.StatusInProgress, status)
	assert.Equal(t, wizard.StepWelcome, step)
}
