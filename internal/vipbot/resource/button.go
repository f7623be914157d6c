package resource

import (
	"github.com/enescakir/emoji"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

var (
	// common menu button text
	StartApplicationButtonText = emoji.Rocket.String() + " Start application"
	LeaveButtonText            = emoji.ChequeredFlag.String() + " Leave"
	RulesButtonText            = emoji.Bookmark.String() + " Rules"
	ProfileButtonText          = emoji.Alien.String() + " Profile"

	// questionnaire inline button text
	InlineNextText    = "Next " + emoji.RightArrow.String()
	InlineBackText    = emoji.LeftArrow.String() + " Back"
	InlineRestartText = "Start a New Application"
)

var (
	StartApplicationButton = tgbotapi.NewKeyboardButton(StartApplicationButtonText)
	LeaveButton            = tgbotapi.NewKeyboardButton(LeaveButtonText)
	RulesButton            = tgbotapi.NewKeyboardButton(RulesButtonText)
	ProfileButton          = tgbotapi.NewKeyboardButton(ProfileButtonText)

	CommonButtons = tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(StartApplicationButton),
		tgbotapi.NewKeyboardButtonRow(RulesButton, ProfileButton),
	)

	SessionButtons = tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(LeaveButton),
		tgbotapi.NewKeyboardButtonRow(RulesButton),
	)
)
