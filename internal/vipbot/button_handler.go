package vipbot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	userModel "github.com/junglebet-games/viptransfer/internal/database/user/model"
	"github.com/junglebet-games/viptransfer/internal/vipbot/questionnaire"
	"github.com/junglebet-games/viptransfer/internal/vipbot/resource"
)

func (m *manager) handleRulesButton(_ userModel.User, chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, resource.TextRulesMsg)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := m.tg.Send(msg); err != nil {
		return fmt.Errorf("send msg: %w", err)
	}

	return nil
}

func (m *manager) handleProfileButton(u userModel.User, chatID int64) error {
	summary, err := m.outcomeDB.FetchSummary(u.ID)
	if err != nil {
		return fmt.Errorf("fetch summary: %w", err)
	}

	msg := tgbotapi.NewMessage(chatID, renderProfile(u, summary))
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := m.tg.Send(msg); err != nil {
		return fmt.Errorf("send msg: %w", err)
	}

	return nil
}

func (m *manager) handleStartApplicationButton(_ context.Context, u userModel.User, chatID int64) error {
	if _, ok := m.userSession(u.ID); ok {
		msg := tgbotapi.NewMessage(chatID, resource.TextApplicationRunningMsg)
		msg.ReplyMarkup = resource.SessionButtons
		if _, err := m.tg.Send(msg); err != nil {
			return fmt.Errorf("send msg: %w", err)
		}

		return nil
	}

	msg := tgbotapi.NewMessage(chatID, resource.TextApplicationStartedMsg)
	msg.ReplyMarkup = resource.SessionButtons
	if _, err := m.tg.Send(msg); err != nil {
		return fmt.Errorf("send msg: %w", err)
	}

	session := questionnaire.NewSession(m.tg, questionnaire.Config{
		ChatID:           chatID,
		UserID:           u.ID,
		Username:         u.Username,
		Timeout:          m.config.ApplicationTimeout,
		AttestationDelay: m.config.AttestationDelay,
		SupportContact:   m.config.SupportContact,
		Ranks:            m.ranks,
		Validator:        m.validator,
		OutcomeFn:        m.outcomeFn,
		DoneFn:           m.sessionDoneFn,
		TransitionFn:     m.transitionFn,
	})

	m.mtx.Lock()
	if _, ok := m.userSessions[u.ID]; ok {
		m.mtx.Unlock()
		return nil
	}
	delete(m.commandCbHandlers, u.ID)
	m.userSessions[u.ID] = session
	m.mtx.Unlock()

	m.metrics.ActiveSessions.Inc()
	if err := session.Run(m.ctxSess); err != nil {
		return fmt.Errorf("run questionnaire: %w", err)
	}

	return nil
}

func (m *manager) handleLeaveButton(u userModel.User, chatID int64) error {
	if session, ok := m.resetUserSessions(u.ID); ok {
		session.Stop()
	}

	msg := tgbotapi.NewMessage(chatID, resource.TextLeavingSessionMsg)
	msg.ReplyMarkup = resource.CommonButtons
	if _, err := m.tg.Send(msg); err != nil {
		return fmt.Errorf("send msg: %w", err)
	}

	return nil
}
