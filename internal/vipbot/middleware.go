package vipbot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	userModel "github.com/junglebet-games/viptransfer/internal/database/user/model"
	"github.com/junglebet-games/viptransfer/internal/vipbot/resource"
)

func (m *manager) isAdmin(u userModel.User, chatID int64) (bool, error) {
	if !u.Admin {
		if _, err := m.tg.Send(tgbotapi.NewMessage(chatID, resource.TextAdminRequiredMsg)); err != nil {
			return false, fmt.Errorf("send msg: %w", err)
		}

		return false, nil
	}

	return true, nil
}

func (m *manager) isActive(u userModel.User, chatID int64) (bool, error) {
	if !u.Admin && u.Status == userModel.StatusBanned {
		if _, err := m.tg.Send(tgbotapi.NewMessage(chatID, resource.TextBannedMsg)); err != nil {
			return false, fmt.Errorf("send msg: %w", err)
		}

		return false, nil
	}

	return true, nil
}
