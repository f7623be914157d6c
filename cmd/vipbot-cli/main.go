package main

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/junglebet-games/viptransfer/internal/buildinfo"
	"github.com/junglebet-games/viptransfer/internal/logging"
	"github.com/junglebet-games/viptransfer/internal/shutdown"
	"github.com/junglebet-games/viptransfer/internal/vipbot"
	"github.com/kelseyhightower/envconfig"
)

func main() {
	_, _ = fmt.Fprint(os.Stdout, buildinfo.Graffiti)
	_, _ = fmt.Fprintf(
		os.Stdout,
		buildinfo.GreetingCLI,
		buildinfo.ProjectName,
		buildinfo.ProjectVersion,
		buildinfo.SiteURL,
	)

	ctx, done := shutdown.New()
	logger := logging.FromContext(ctx)
	defer done()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Fatalf("load .env: %v", err)
	}

	config := vipbot.Config{}
	if err := envconfig.Process("", &config); err != nil {
		logger.Fatalf("processing the config: %v", err)
	}

	if config.BotToken == "" {
		fmt.Println("Enter your bot token:")
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if token := strings.TrimSpace(scanner.Text()); token != "" {
				config.BotToken = token
				break
			}
		}
		if err := scanner.Err(); err != nil {
			logger.Fatalf("read token: %v", err)
		}
	}

	if err := vipbot.Serve(ctx, &config); err != nil {
		logger.Fatalf("serve: %v", err)
	}
}
