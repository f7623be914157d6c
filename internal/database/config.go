package database

type Config struct {
	FilePath string `envconfig:"VIPBOT_DB_FILE_PATH" default:"vipbot.db"`
}
