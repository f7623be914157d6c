// Package questionnaire runs one applicant's VIP transfer questionnaire as a
// Telegram conversation: every step is a single message with an inline
// keyboard, typed replies fill the prompted field and uploads fill the asset
// handles.
package questionnaire

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/junglebet-games/viptransfer/internal/hashutil"
	"github.com/junglebet-games/viptransfer/internal/logging"
	"github.com/junglebet-games/viptransfer/internal/vipbot/resource"
	"github.com/junglebet-games/viptransfer/internal/wizard"
	"github.com/junglebet-games/viptransfer/internal/wizard/form"
	"go.uber.org/zap"
)

var ErrHandlerNotFound = errors.New("callback handler not found")

// Sender is the part of the bot API a session talks to.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	AnswerCallbackQuery(config tgbotapi.CallbackConfig) (tgbotapi.APIResponse, error)
}

type QueryCallbackHandlerFunc func(query *tgbotapi.CallbackQuery, data callbackData) error

// Outcome describes how a questionnaire run ended. Answers are not part of it.
type Outcome struct {
	UserID    int64
	Status    wizard.Status
	Submitted bool
	Abandoned bool
	Platform  wizard.Platform
	Bonus     bool
	Steps     int
	Reference string
}

type Config struct {
	ChatID           int64
	UserID           int64
	Username         string
	Timeout          time.Duration
	AttestationDelay time.Duration
	SupportContact   string
	Ranks            wizard.RankCatalog
	Validator        *form.Validator

	// OutcomeFn is called under the session lock for every terminal status
	// and for the receipt.
	OutcomeFn func(o Outcome) error
	// DoneFn is called once after the session stopped.
	DoneFn func(s *Session) error
	// TransitionFn observes next/back/restart requests.
	TransitionFn func(step wizard.Step, direction string)
}

func NewSession(tg Sender, config Config) *Session {
	if config.AttestationDelay <= 0 {
		config.AttestationDelay = wizard.DefaultAttestationDelay
	}
	if config.Ranks == nil {
		config.Ranks = wizard.DefaultRanks()
	}
	if config.Validator == nil {
		config.Validator = form.NewValidator()
	}

	s := &Session{
		Config:    config,
		tg:        tg,
		wizard:    wizard.New(),
		handlers:  map[string]QueryCallbackHandlerFunc{},
		recorded:  wizard.StatusInProgress,
		logger:    logging.DefaultLogger().Named("questionnaire"),
		CreatedAt: time.Now(),
	}

	s.handleCb(actionNav, s.clickOnNav)
	s.handleCb(actionAsk, s.clickOnAsk)
	s.handleCb(actionToggle, s.clickOnToggle)
	s.handleCb(actionTri, s.clickOnTri)
	s.handleCb(actionPlatform, s.clickOnPlatform)
	s.handleCb(actionRank, s.clickOnRank)
	s.handleCb(actionAttest, s.clickOnAttest)

	return s
}

type Session struct {
	mtx sync.Mutex

	Config
	CreatedAt time.Time

	tg       Sender
	wizard   *wizard.Wizard
	handlers map[string]QueryCallbackHandlerFunc
	logger   *zap.SugaredLogger

	errs      form.Errors
	prompt    wizard.Field
	messageID int
	reference string
	recorded  wizard.Status
	timer     *time.Timer
	stopped   bool

	sema   sync.Once
	cancel func()
}

// Run sends the first step and arms the application timeout. The session
// stops when ctx is done, the timeout elapses, Stop is called or the receipt
// is reached.
func (s *Session) Run(ctx context.Context) error {
	var err error
	s.sema.Do(func() {
		ctx, cancel := context.WithTimeout(ctx, s.Timeout)
		s.cancel = cancel
		s.logger = logging.FromContext(ctx).Named("questionnaire")

		s.mtx.Lock()
		s.prompt = nextEmptyTextField(s.wizard.Current(), s.wizard.Answers())
		err = s.show()
		s.mtx.Unlock()

		go s.loop(ctx)
		s.logger.Infof("questionnaire session has started, user: %s", s.Username)
	})

	return err
}

func (s *Session) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *Session) loop(ctx context.Context) {
	<-ctx.Done()
	s.shutdown(ctx)
}

func (s *Session) shutdown(ctx context.Context) {
	s.mtx.Lock()
	if s.stopped {
		s.mtx.Unlock()
		return
	}

	s.stopped = true
	if s.timer != nil {
		s.timer.Stop()
	}

	finished := s.wizard.Finished()
	switch {
	case finished:
		s.sendText(resource.TextApplicationFinishedMsg, resource.CommonButtons)
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		s.sendText(resource.TextApplicationTimeoutMsg, resource.CommonButtons)
	}

	if !finished && s.recorded == wizard.StatusInProgress {
		if err := s.record(Outcome{Abandoned: true}); err != nil {
			s.logger.Errorf("record outcome: %v", err)
		}
	}
	s.mtx.Unlock()

	if s.DoneFn != nil {
		if err := s.DoneFn(s); err != nil {
			s.logger.Errorf("done function: %v", err)
		}
	}

	s.logger.Infof("questionnaire session is complete, user: %s", s.Username)
}

func (s *Session) sendText(text string, markup interface{}) {
	msg := tgbotapi.NewMessage(s.ChatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = markup
	if _, err := s.tg.Send(msg); err != nil {
		s.logger.Errorf("send msg: %v", err)
	}
}

// Snapshot returns the current answers, status and step.
func (s *Session) Snapshot() (wizard.Answers, wizard.Status, wizard.Step) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.wizard.Answers(), s.wizard.Status(), s.wizard.Current()
}

func (s *Session) Execute(upd tgbotapi.Update) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.stopped {
		return nil
	}

	if upd.CallbackQuery != nil {
		if err := s.executeCbQuery(upd.CallbackQuery); err != nil {
			return fmt.Errorf("execute cb query: %w", err)
		}
	}

	if upd.Message != nil {
		if err := s.executeMessageQuery(upd.Message); err != nil {
			return fmt.Errorf("execute message query: %w", err)
		}
	}

	return nil
}

func (s *Session) handleCb(action string, fn QueryCallbackHandlerFunc) {
	s.handlers[action] = fn
}

func (s *Session) answer(query *tgbotapi.CallbackQuery, text string) error {
	if _, err := s.tg.AnswerCallbackQuery(tgbotapi.NewCallback(query.ID, text)); err != nil {
		return fmt.Errorf("send answer msg: %w", err)
	}
	return nil
}

func (s *Session) executeCbQuery(query *tgbotapi.CallbackQuery) error {
	if query.Message == nil || query.Message.MessageID != s.messageID {
		return s.answer(query, resource.TextStaleKeyboard)
	}

	data := decodeData(query.Data)
	fn, ok := s.handlers[data.action]
	if !ok {
		return fmt.Errorf("%q: %w", query.Data, ErrHandlerNotFound)
	}

	if err := fn(query, data); err != nil {
		return fmt.Errorf("action handle: %w", err)
	}

	return nil
}

func (s *Session) executeMessageQuery(msg *tgbotapi.Message) error {
	if msg.Photo != nil || msg.Video != nil || msg.Document != nil {
		return s.receiveFile(msg)
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return nil
	}

	step := s.wizard.Current()
	field := s.prompt
	if s.wizard.Status().Terminal() || !isTextField(step, field) {
		field = nextEmptyTextField(step, s.wizard.Answers())
	}
	if s.wizard.Status().Terminal() || field == "" {
		s.sendText(resource.TextUnexpectedText, nil)
		return nil
	}

	var value interface{} = text
	if field == wizard.FieldTotalWagered {
		amount, err := wizard.ParseAmount(text)
		if err != nil || amount.Value.IsNegative() {
			s.sendText(resource.TextInvalidAmount, nil)
			return nil
		}
		value = amount
	}

	if err := s.wizard.Update(field, value); err != nil {
		return fmt.Errorf("update %s: %w", field, err)
	}

	delete(s.errs, field)
	s.prompt = nextEmptyTextField(step, s.wizard.Answers())

	return s.show()
}

func (s *Session) receiveFile(msg *tgbotapi.Message) error {
	if s.wizard.Status().Terminal() || s.wizard.Current() != wizard.StepAssetSubmission {
		s.sendText(resource.TextUnexpectedFile, nil)
		return nil
	}

	var fileID string
	var kind assetKind
	switch {
	case msg.Photo != nil && len(*msg.Photo) > 0:
		photos := *msg.Photo
		fileID, kind = photos[len(photos)-1].FileID, kindImage
	case msg.Video != nil:
		fileID, kind = msg.Video.FileID, kindVideo
	case msg.Document != nil:
		fileID, kind = msg.Document.FileID, documentKind(msg.Document.MimeType)
	default:
		return nil
	}

	target, ok := assetTarget(s.prompt, kind, s.wizard.Answers())
	if !ok {
		s.sendText(resource.TextUnexpectedFile, nil)
		return nil
	}

	if err := s.wizard.Update(target.Field, wizard.FileHandle(fileID)); err != nil {
		return fmt.Errorf("update %s: %w", target.Field, err)
	}

	delete(s.errs, target.Field)
	s.prompt = ""
	s.sendText(fmt.Sprintf(resource.TextFileSaved, target.Label), nil)

	return s.show()
}

func documentKind(mime string) assetKind {
	switch {
	case strings.HasPrefix(mime, "image/"):
		return kindImage
	case strings.HasPrefix(mime, "video/"):
		return kindVideo
	default:
		return kindEmail
	}
}

func (s *Session) view() view {
	return view{
		step:      s.wizard.Current(),
		status:    s.wizard.Status(),
		position:  s.wizard.Position(),
		total:     s.wizard.Total(),
		answers:   s.wizard.Answers(),
		errs:      s.errs,
		prompt:    s.prompt,
		ranks:     s.Ranks,
		support:   s.SupportContact,
		reference: s.reference,
	}
}

// show sends the current step as a new message, which becomes the only one
// whose buttons are accepted.
func (s *Session) show() error {
	if !s.wizard.Status().Terminal() && s.wizard.Current() == wizard.StepStakeVerification {
		s.wizard.EnterStakeVerification()
	}

	v := s.view()
	msg := tgbotapi.NewMessage(s.ChatID, v.text())
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	msg.ReplyMarkup = v.keyboard()

	output, err := s.tg.Send(msg)
	if err != nil {
		return fmt.Errorf("send msg: %w", err)
	}

	s.messageID = output.MessageID
	return nil
}

// refresh edits the current step message in place.
func (s *Session) refresh() error {
	v := s.view()
	markup := v.keyboard()
	msg := tgbotapi.NewEditMessageText(s.ChatID, s.messageID, v.text())
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	msg.ReplyMarkup = &markup

	if _, err := s.tg.Send(msg); err != nil {
		return fmt.Errorf("send edit msg: %w", err)
	}

	return nil
}

func (s *Session) transition(step wizard.Step, direction string) {
	if s.TransitionFn != nil {
		s.TransitionFn(step, direction)
	}
}

func (s *Session) record(o Outcome) error {
	if s.OutcomeFn == nil {
		return nil
	}

	a := s.wizard.Answers()
	o.UserID = s.UserID
	o.Platform = a.Platform
	o.Bonus = a.BonusEligible()
	o.Steps = s.wizard.Position()
	if o.Status == wizard.StatusInProgress {
		o.Status = s.wizard.Status()
	}

	return s.OutcomeFn(o)
}

// settle records an outcome when the status turned terminal or the receipt
// was reached since the last call.
func (s *Session) settle() error {
	status := s.wizard.Status()
	if !status.Terminal() {
		s.recorded = wizard.StatusInProgress
	}

	if status.Terminal() && status != s.recorded {
		s.recorded = status
		if err := s.record(Outcome{Status: status}); err != nil {
			return fmt.Errorf("record outcome: %w", err)
		}
	}

	if s.wizard.Finished() && s.reference == "" {
		s.reference = hashutil.Reference(s.UserID, time.Now())
		if err := s.record(Outcome{Submitted: true, Reference: s.reference}); err != nil {
			return fmt.Errorf("record outcome: %w", err)
		}
	}

	return nil
}

func (s *Session) clickOnNav(query *tgbotapi.CallbackQuery, data callbackData) error {
	switch data.arg {
	case navNext:
		return s.clickOnNext(query)
	case navBack:
		return s.clickOnBack(query)
	case navRestart:
		return s.clickOnRestart(query)
	}

	return fmt.Errorf("nav %q: %w", data.arg, ErrHandlerNotFound)
}

func (s *Session) clickOnNext(query *tgbotapi.CallbackQuery) error {
	if s.wizard.Status().Terminal() {
		return s.answer(query, "")
	}

	step := s.wizard.Current()
	a := s.wizard.Answers()
	s.transition(step, navNext)

	if step == wizard.StepPreparationAndIntegrity && a.Available == wizard.TriNo {
		s.wizard.MarkUnavailable()
	} else {
		errs := s.Validator.Step(step, a)
		if !errs.OK() {
			s.errs = errs
			if err := s.answer(query, "Please complete the highlighted fields"); err != nil {
				return err
			}
			return s.refresh()
		}

		s.wizard.Advance()
	}

	s.errs = nil
	s.prompt = nextEmptyTextField(s.wizard.Current(), s.wizard.Answers())
	if err := s.answer(query, resource.InlineNextText); err != nil {
		return err
	}

	if err := s.settle(); err != nil {
		return err
	}

	if err := s.show(); err != nil {
		return err
	}

	if s.wizard.Finished() {
		s.Stop()
	}

	return nil
}

func (s *Session) clickOnBack(query *tgbotapi.CallbackQuery) error {
	if !s.wizard.Status().Terminal() && s.wizard.Position() == 1 {
		return s.answer(query, "")
	}

	s.transition(s.wizard.Current(), navBack)
	s.wizard.Retreat()
	s.errs = nil
	s.prompt = ""
	if err := s.answer(query, resource.InlineBackText); err != nil {
		return err
	}

	if err := s.settle(); err != nil {
		return err
	}

	return s.show()
}

func (s *Session) clickOnRestart(query *tgbotapi.CallbackQuery) error {
	s.transition(s.wizard.Current(), navRestart)
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}

	s.wizard.Restart()
	s.errs = nil
	s.prompt = nextEmptyTextField(s.wizard.Current(), s.wizard.Answers())
	s.reference = ""
	s.recorded = wizard.StatusInProgress
	if err := s.answer(query, resource.TextRestartedMsg); err != nil {
		return err
	}

	return s.show()
}

func (s *Session) clickOnAsk(query *tgbotapi.CallbackQuery, data callbackData) error {
	field := wizard.Field(data.arg)
	if _, isAsset := asset(field); !isAsset && !isTextField(s.wizard.Current(), field) {
		return s.answer(query, "")
	}

	s.prompt = field
	if err := s.answer(query, fmt.Sprintf(resource.TextEnterValue, fieldLabel(field))); err != nil {
		return err
	}

	return s.refresh()
}

func (s *Session) clickOnToggle(query *tgbotapi.CallbackQuery, data callbackData) error {
	a := s.wizard.Answers()
	field := wizard.Field(data.arg)
	if !isChoiceField(s.wizard.Current(), field) {
		return s.answer(query, resource.TextStaleKeyboard)
	}

	var value bool
	switch field {
	case wizard.FieldRulesConfirmed:
		value = !a.RulesConfirmed
	case wizard.FieldProofsPrepared:
		value = !a.ProofsPrepared
	case wizard.FieldIntegrityConfirmed:
		value = !a.IntegrityConfirmed
	default:
		return fmt.Errorf("toggle %q: %w", field, ErrHandlerNotFound)
	}

	if err := s.wizard.Update(field, value); err != nil {
		return fmt.Errorf("update %s: %w", field, err)
	}

	delete(s.errs, field)
	if err := s.answer(query, resource.TextFieldSaved); err != nil {
		return err
	}

	return s.refresh()
}

func (s *Session) clickOnTri(query *tgbotapi.CallbackQuery, data callbackData) error {
	field := wizard.Field(data.arg)
	value := wizard.TriOf(data.value == triYes)
	if !isChoiceField(s.wizard.Current(), field) {
		return s.answer(query, resource.TextStaleKeyboard)
	}

	switch field {
	case wizard.FieldRecentWager, wizard.FieldSelfExcluded, wizard.FieldAvailable:
	default:
		return fmt.Errorf("tri %q: %w", field, ErrHandlerNotFound)
	}

	if err := s.wizard.Update(field, value); err != nil {
		return fmt.Errorf("update %s: %w", field, err)
	}

	if field == wizard.FieldAvailable && value == wizard.TriNo {
		if err := s.clear(wizard.FieldProofsPrepared, wizard.FieldIntegrityConfirmed); err != nil {
			return err
		}
	}

	delete(s.errs, field)
	if err := s.answer(query, resource.TextFieldSaved); err != nil {
		return err
	}

	return s.refresh()
}

func (s *Session) clickOnPlatform(query *tgbotapi.CallbackQuery, data callbackData) error {
	if !isChoiceField(s.wizard.Current(), wizard.FieldPlatform) {
		return s.answer(query, resource.TextStaleKeyboard)
	}

	p, err := wizard.ParsePlatform(data.arg)
	if err != nil {
		return fmt.Errorf("parse platform: %w", err)
	}

	if err := s.wizard.Update(wizard.FieldPlatform, p); err != nil {
		return fmt.Errorf("update platform: %w", err)
	}

	if err := s.clear(wizard.FieldRank); err != nil {
		return err
	}

	if !p.Supported() {
		if err := s.clear(
			wizard.FieldPlatformUsername,
			wizard.FieldTotalWagered,
			wizard.FieldRecentWager,
			wizard.FieldSelfExcluded,
		); err != nil {
			return err
		}
		s.prompt = ""
	}

	delete(s.errs, wizard.FieldPlatform)
	if err := s.answer(query, string(p)); err != nil {
		return err
	}

	return s.refresh()
}

func (s *Session) clickOnRank(query *tgbotapi.CallbackQuery, data callbackData) error {
	if !isChoiceField(s.wizard.Current(), wizard.FieldRank) {
		return s.answer(query, resource.TextStaleKeyboard)
	}

	options := s.Ranks.Options(s.wizard.Answers().Platform)
	idx, err := strconv.Atoi(data.arg)
	if err != nil {
		return fmt.Errorf("strconv: %w", err)
	}

	if idx < 0 || idx >= len(options) {
		return s.answer(query, resource.TextStaleKeyboard)
	}

	if err := s.wizard.Update(wizard.FieldRank, options[idx].Value); err != nil {
		return fmt.Errorf("update rank: %w", err)
	}

	delete(s.errs, wizard.FieldRank)
	if err := s.answer(query, options[idx].Label); err != nil {
		return err
	}

	return s.refresh()
}

// clickOnAttest starts the simulated Stake attestation. The completion runs
// on a timer and is dropped if the session stopped in the meantime.
func (s *Session) clickOnAttest(query *tgbotapi.CallbackQuery, _ callbackData) error {
	if s.wizard.Status().Terminal() || s.wizard.Current() != wizard.StepStakeVerification || !s.wizard.BeginAttestation() {
		return s.answer(query, "")
	}

	s.timer = time.AfterFunc(s.AttestationDelay, s.completeAttestation)
	delete(s.errs, wizard.FieldAttestationStatus)
	if err := s.answer(query, resource.TextVerifyingMsg); err != nil {
		return err
	}

	return s.refresh()
}

func (s *Session) completeAttestation() {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.stopped || !s.wizard.CompleteAttestation() {
		return
	}

	if err := s.refresh(); err != nil {
		s.logger.Errorf("refresh attestation: %v", err)
	}
}

func (s *Session) clear(fields ...wizard.Field) error {
	zero := map[wizard.Field]interface{}{
		wizard.FieldRank:               "",
		wizard.FieldPlatformUsername:   "",
		wizard.FieldTotalWagered:       wizard.Amount{},
		wizard.FieldRecentWager:        wizard.TriUnset,
		wizard.FieldSelfExcluded:       wizard.TriUnset,
		wizard.FieldProofsPrepared:     false,
		wizard.FieldIntegrityConfirmed: false,
	}

	for _, f := range fields {
		if err := s.wizard.Update(f, zero[f]); err != nil {
			return fmt.Errorf("clear %s: %w", f, err)
		}
	}

	return nil
}
