package vipbot

import (
	"errors"
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/junglebet-games/viptransfer/internal/database"
	userModel "github.com/junglebet-games/viptransfer/internal/database/user/model"
	"github.com/junglebet-games/viptransfer/internal/vipbot/resource"
)

func (m *manager) handleStartCommand(u userModel.User, chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf(resource.TextGreetingMsg, html.EscapeString(u.FirstName)))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = resource.CommonButtons
	if _, ok := m.userSession(u.ID); ok {
		msg.ReplyMarkup = resource.SessionButtons
	}

	if _, err := m.tg.Send(msg); err != nil {
		return fmt.Errorf("send msg: %w", err)
	}

	return nil
}

func (m *manager) handleBanCommand(u userModel.User, chatID int64) error {
	if _, err := m.tg.Send(tgbotapi.NewMessage(chatID, resource.TextBanMsg)); err != nil {
		return fmt.Errorf("send msg: %w", err)
	}

	m.registerCommandCbHandler(u.ID, func(msg string) error {
		username := strings.TrimPrefix(strings.TrimSpace(msg), "@")
		banned, err := m.userDB.FetchByUsername(username)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				if _, err := m.tg.Send(tgbotapi.NewMessage(chatID, fmt.Sprintf(resource.TextBanUserNotFoundMsg, username))); err != nil {
					return fmt.Errorf("send msg: %w", err)
				}

				return nil
			}

			return fmt.Errorf("fetch by username: %w", err)
		}

		if banned.Admin {
			if _, err := m.tg.Send(tgbotapi.NewMessage(chatID, resource.TextBanAdminMsg)); err != nil {
				return fmt.Errorf("send msg: %w", err)
			}

			return nil
		}

		banned.Status = userModel.StatusBanned
		if err := m.userDB.Store(banned); err != nil {
			return fmt.Errorf("userdb store: %w", err)
		}

		if session, ok := m.resetUserSessions(banned.ID); ok {
			session.Stop()
		}

		if _, err := m.tg.Send(tgbotapi.NewMessage(chatID, fmt.Sprintf(resource.TextBanDoneMsg, username))); err != nil {
			return fmt.Errorf("send msg: %w", err)
		}

		return nil
	})

	return nil
}

func (m *manager) handleFeedbackCommand(u userModel.User, chatID int64) error {
	if _, err := m.tg.Send(tgbotapi.NewMessage(chatID, resource.TextFeedbackMsg)); err != nil {
		return fmt.Errorf("send msg: %w", err)
	}

	m.registerCommandCbHandler(u.ID, func(msg string) error {
		if m.config.Admin != "" {
			admin, err := m.userDB.FetchByUsername(m.config.Admin)
			if err != nil && !errors.Is(err, database.ErrNotFound) {
				return fmt.Errorf("fetch by username: %w", err)
			}

			if err == nil {
				if _, err := m.tg.Send(tgbotapi.NewMessage(
					admin.ID,
					fmt.Sprintf(resource.TextFeedbackForwardMsg, u.Username, msg),
				)); err != nil {
					return fmt.Errorf("send msg: %w", err)
				}
			}
		}

		if _, err := m.tg.Send(tgbotapi.NewMessage(chatID, resource.TextFeedbackThanksMsg)); err != nil {
			return fmt.Errorf("send msg: %w", err)
		}

		return nil
	})

	return nil
}
