package vipbot

import (
	"time"

	"github.com/junglebet-games/viptransfer/internal/database"
)

type Config struct {
	// Username of the bot admin, without @
	Admin string `envconfig:"VIPBOT_ADMIN_USERNAME"`

	// Logging all requests and responses from telegram
	Debug bool `envconfig:"VIPBOT_DEBUG" default:"false"`

	// Number of items in each cache
	CacheSize int `envconfig:"VIPBOT_CACHE_SIZE" default:"1024"`

	// Port of the health check and metrics endpoints
	Port string `envconfig:"VIPBOT_PORT" default:"1234"`

	// Telegram bot token
	BotToken string `envconfig:"VIPBOT_BOT_TOKEN"`

	// Waiting time before an unfinished questionnaire is discarded
	ApplicationTimeout time.Duration `envconfig:"VIPBOT_APPLICATION_TIMEOUT" default:"2h"`

	// Duration of the simulated Stake attestation
	AttestationDelay time.Duration `envconfig:"VIPBOT_ATTESTATION_DELAY" default:"1500ms"`

	// Shown on the receipt and on disqualification screens
	SupportContact string `envconfig:"VIPBOT_SUPPORT_CONTACT" default:"@junglebet_support"`

	TgBotPollTimeout time.Duration `envconfig:"VIPBOT_TG_BOT_POLL_TIMEOUT" default:"60s"`
	Db               database.Config
}
