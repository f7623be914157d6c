package vipbot

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/junglebet-games/viptransfer/internal/database"
	outcomeDb "github.com/junglebet-games/viptransfer/internal/database/outcome/database"
	outcomeModel "github.com/junglebet-games/viptransfer/internal/database/outcome/model"
	userDb "github.com/junglebet-games/viptransfer/internal/database/user/database"
	userModel "github.com/junglebet-games/viptransfer/internal/database/user/model"
	"github.com/junglebet-games/viptransfer/internal/logging"
	"github.com/junglebet-games/viptransfer/internal/metrics"
	"github.com/junglebet-games/viptransfer/internal/vipbot/questionnaire"
	"github.com/junglebet-games/viptransfer/internal/vipbot/resource"
	"github.com/junglebet-games/viptransfer/internal/wizard"
	"github.com/junglebet-games/viptransfer/internal/wizard/form"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var ErrCommandNotFound = errors.New("command not found")

// BotAPI is the part of tgbotapi.BotAPI the manager uses.
type BotAPI interface {
	questionnaire.Sender
	GetUpdatesChan(config tgbotapi.UpdateConfig) (tgbotapi.UpdatesChannel, error)
}

func NewManager(
	tg BotAPI,
	config *Config,
	userDB *userDb.DB,
	outcomeDB *outcomeDb.DB,
	metrics *metrics.Metrics,
) *manager {
	ctxSess, cancelSess := context.WithCancel(context.Background())
	return &manager{
		ctxSess:           ctxSess,
		cancelSess:        cancelSess,
		tg:                tg,
		config:            config,
		userSessions:      map[int64]*questionnaire.Session{},
		commandCbHandlers: map[int64]func(string) error{},
		userDB:            userDB,
		outcomeDB:         outcomeDB,
		metrics:           metrics,
		ranks:             wizard.DefaultRanks(),
		validator:         form.NewValidator(),
	}
}

type manager struct {
	mtx sync.RWMutex

	tg     BotAPI
	config *Config
	// key: userID active questionnaire
	userSessions map[int64]*questionnaire.Session
	// command callbacks
	commandCbHandlers map[int64]func(string) error

	userDB    *userDb.DB
	outcomeDB *outcomeDb.DB
	metrics   *metrics.Metrics
	ranks     wizard.RankCatalog
	validator *form.Validator

	ctxSess    context.Context
	cancelSess func()
}

func (m *manager) Run(ctx context.Context) error {
	m.init(ctx)

	upd := tgbotapi.NewUpdate(0)
	upd.Timeout = int(m.config.TgBotPollTimeout.Seconds())
	updates, err := m.tg.GetUpdatesChan(upd)
	if err != nil {
		return fmt.Errorf("tg get updates chan: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < runtime.NumCPU(); i++ {
		g.Go(func() error {
			return m.pool(ctx, updates)
		})
	}

	err = g.Wait()
	m.shutdown(ctx)
	if err != nil {
		return fmt.Errorf("worker pool: %w", err)
	}

	return nil
}

func (m *manager) init(ctx context.Context) {
	logger := logging.FromContext(ctx)
	m.cancelSess()
	m.ctxSess, m.cancelSess = context.WithCancel(logging.WithLogger(context.Background(), logger))
}

// shutdown stops every open questionnaire and waits for their done callbacks.
func (m *manager) shutdown(ctx context.Context) {
	logger := logging.FromContext(ctx).Named("manager.shutdown")
	m.cancelSess()

	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()
	deadline := time.NewTimer(shutdownTimeout)
	defer deadline.Stop()

	for m.sessionsNum() > 0 {
		select {
		case <-ticker.C:
		case <-deadline.C:
			logger.Warnf("sessions still open after %s: %d", shutdownTimeout, m.sessionsNum())
			return
		}
	}
}

func (m *manager) pool(ctx context.Context, updCh tgbotapi.UpdatesChannel) error {
	logger := logging.FromContext(ctx).Named("manager.pool")
	for {
		select {
		case update, ok := <-updCh:
			if !ok {
				return nil
			}

			if err := m.handleUpdate(ctx, update); err != nil {
				logger.Errorf("handle update: %v", err)
			}
		case <-ctx.Done():
			return nil
		}
	}
}

func (m *manager) handleUpdate(ctx context.Context, update tgbotapi.Update) (err error) {
	kind := updateKind(update)
	start := time.Now()
	defer func() {
		m.metrics.ObserveUpdate(kind, start, err)
	}()

	u, err := m.recvUser(update)
	if err != nil {
		if errors.Is(err, ErrCommandNotFound) {
			return nil
		}
		return fmt.Errorf("recv user: %w", err)
	}

	if update.Message != nil {
		chatID := update.Message.Chat.ID
		if update.Message.Chat.IsGroup() || update.Message.Chat.IsSuperGroup() || update.Message.Chat.IsChannel() {
			msg := tgbotapi.NewMessage(chatID, resource.TextChatNotAllowed)
			if _, err := m.tg.Send(msg); err != nil {
				return fmt.Errorf("send msg: %w", err)
			}
			return nil
		}

		ok, err := m.isActive(u, chatID)
		if err != nil || !ok {
			return err
		}

		if err := m.handleCommand(ctx, u, update); err != nil {
			return fmt.Errorf("handle command query: %w", err)
		}
	}

	if update.CallbackQuery != nil {
		if update.CallbackQuery.Message != nil {
			ok, err := m.isActive(u, update.CallbackQuery.Message.Chat.ID)
			if err != nil || !ok {
				return err
			}
		}

		if err := m.handleCallbackQuery(ctx, u, update); err != nil {
			return fmt.Errorf("handle callback query: %w", err)
		}
	}

	return nil
}

func updateKind(update tgbotapi.Update) string {
	switch {
	case update.CallbackQuery != nil:
		return "callback"
	case update.Message != nil && update.Message.IsCommand():
		return "command"
	case update.Message != nil:
		return "message"
	default:
		return "other"
	}
}

func (m *manager) handleCommand(ctx context.Context, u userModel.User, upd tgbotapi.Update) error {
	chatID := upd.Message.Chat.ID
	switch upd.Message.Text {
	case resource.CmdStart:
		if err := m.handleStartCommand(u, chatID); err != nil {
			return fmt.Errorf("handle start cmd: %w", err)
		}
	case resource.CmdRules, resource.RulesButtonText:
		if err := m.handleRulesButton(u, chatID); err != nil {
			return fmt.Errorf("handle rules cmd: %w", err)
		}
	case resource.CmdProfile, resource.ProfileButtonText:
		if err := m.handleProfileButton(u, chatID); err != nil {
			return fmt.Errorf("handle profile cmd: %w", err)
		}
	case resource.CmdFeedback:
		if err := m.handleFeedbackCommand(u, chatID); err != nil {
			return fmt.Errorf("handle feedback cmd: %w", err)
		}
	case resource.CmdBan:
		ok, err := m.isAdmin(u, chatID)
		if err != nil || !ok {
			return err
		}
		if err := m.handleBanCommand(u, chatID); err != nil {
			return fmt.Errorf("handle ban cmd: %w", err)
		}
	case resource.StartApplicationButtonText:
		if err := m.handleStartApplicationButton(ctx, u, chatID); err != nil {
			return fmt.Errorf("handle start application button: %w", err)
		}
	case resource.LeaveButtonText:
		if err := m.handleLeaveButton(u, chatID); err != nil {
			return fmt.Errorf("handle leave button: %w", err)
		}
	default:
		if cb, ok := m.commandCbHandler(u.ID); ok {
			m.removeCommandCbHandler(u.ID)
			if err := cb(upd.Message.Text); err != nil {
				return fmt.Errorf("execute cb: %w", err)
			}

			return nil
		}

		if session, ok := m.userSession(u.ID); ok {
			if err := session.Execute(upd); err != nil {
				return fmt.Errorf("execute questionnaire session: %w", err)
			}

			return nil
		}

		if _, err := m.tg.Send(tgbotapi.NewMessage(chatID, resource.TextNoSessionMsg)); err != nil {
			return fmt.Errorf("send msg: %w", err)
		}
	}

	return nil
}

func (m *manager) handleCallbackQuery(ctx context.Context, u userModel.User, upd tgbotapi.Update) error {
	query := upd.CallbackQuery
	if session, ok := m.userSession(u.ID); ok {
		if err := session.Execute(upd); err != nil {
			return fmt.Errorf("execute questionnaire cb: %w", err)
		}

		return nil
	}

	text := resource.TextStaleKeyboard
	if query.Data == questionnaire.RestartData {
		text = resource.TextRestartedMsg
	}

	if _, err := m.tg.AnswerCallbackQuery(tgbotapi.NewCallback(query.ID, text)); err != nil {
		return fmt.Errorf("send answer msg: %w", err)
	}

	if query.Data == questionnaire.RestartData && query.Message != nil {
		if err := m.handleStartApplicationButton(ctx, u, query.Message.Chat.ID); err != nil {
			return fmt.Errorf("handle restart: %w", err)
		}
	}

	return nil
}

func (m *manager) sessionDoneFn(session *questionnaire.Session) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	if current, ok := m.userSessions[session.UserID]; ok && current == session {
		delete(m.userSessions, session.UserID)
	}
	m.metrics.ActiveSessions.Dec()

	return nil
}

func (m *manager) outcomeFn(o questionnaire.Outcome) error {
	record := outcomeModel.NewOutcome(o.UserID, outcomeStatus(o))
	record.Platform = string(o.Platform)
	record.Bonus = o.Bonus
	record.Reference = o.Reference
	record.Steps = o.Steps

	m.metrics.Outcome(string(record.Status))
	if err := m.outcomeDB.Add(record); err != nil {
		return fmt.Errorf("outcome db add: %w", err)
	}

	return nil
}

func outcomeStatus(o questionnaire.Outcome) outcomeModel.Status {
	switch {
	case o.Submitted:
		return outcomeModel.StatusSubmitted
	case o.Abandoned:
		return outcomeModel.StatusAbandoned
	}

	switch o.Status {
	case wizard.StatusUserUnavailable:
		return outcomeModel.StatusUserUnavailable
	case wizard.StatusDisqualifiedSelfExcluded:
		return outcomeModel.StatusDisqualifiedSelfExcluded
	case wizard.StatusDisqualifiedPlatform:
		return outcomeModel.StatusDisqualifiedPlatform
	case wizard.StatusDisqualifiedWagerLow:
		return outcomeModel.StatusDisqualifiedWagerLow
	}

	return outcomeModel.StatusAbandoned
}

func (m *manager) transitionFn(step wizard.Step, direction string) {
	m.metrics.Transition(string(step), direction)
}

func (m *manager) registerCommandCbHandler(userID int64, fn func(string) error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.commandCbHandlers[userID] = fn
}

func (m *manager) removeCommandCbHandler(userID int64) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	delete(m.commandCbHandlers, userID)
}

func (m *manager) commandCbHandler(userID int64) (func(msg string) error, bool) {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	cb, ok := m.commandCbHandlers[userID]
	return cb, ok
}

// resetUserSessions detaches the user's questionnaire and pending command
// callback, returning the questionnaire so the caller can stop it.
func (m *manager) resetUserSessions(userID int64) (*questionnaire.Session, bool) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	session, ok := m.userSessions[userID]
	delete(m.userSessions, userID)
	delete(m.commandCbHandlers, userID)
	return session, ok
}

func (m *manager) userSession(userID int64) (*questionnaire.Session, bool) {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	session, ok := m.userSessions[userID]
	return session, ok
}

func (m *manager) sessionsNum() int {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	return len(m.userSessions)
}

func (m *manager) recvUser(upd tgbotapi.Update) (userModel.User, error) {
	var tgUser *tgbotapi.User
	var u userModel.User
	switch {
	case upd.CallbackQuery != nil:
		tgUser = upd.CallbackQuery.From
	case upd.Message != nil:
		tgUser = upd.Message.From
	}

	if tgUser == nil {
		return u, ErrCommandNotFound
	}

	username := strings.TrimPrefix(tgUser.UserName, "@")
	isAdmin := m.config.Admin != "" && strings.EqualFold(username, strings.TrimPrefix(m.config.Admin, "@"))

	u, err := m.userDB.Fetch(int64(tgUser.ID))
	if err != nil {
		if !errors.Is(err, database.ErrNotFound) {
			return u, fmt.Errorf("userdb fetch: %w", err)
		}

		u = userModel.User{
			ID:           int64(tgUser.ID),
			FirstName:    tgUser.FirstName,
			LastName:     tgUser.LastName,
			LanguageCode: tgUser.LanguageCode,
			Username:     username,
			Admin:        isAdmin,
			CreatedAt:    time.Now(),
			Status:       userModel.StatusActive,
		}

		if err := m.userDB.Store(u); err != nil {
			return u, fmt.Errorf("userdb store: %w", err)
		}

		return u, nil
	}

	if u.Username != username || u.Admin != isAdmin {
		u.Username = username
		u.Admin = isAdmin
		if err := m.userDB.Store(u); err != nil {
			return u, fmt.Errorf("userdb store: %w", err)
		}
	}

	return u, nil
}
