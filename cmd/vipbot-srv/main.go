package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

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
	defer done()

	if err := realMain(ctx); err != nil {
		logging.FromContext(ctx).Fatalf("main.realMain: %v", err)
	}
}

func realMain(ctx context.Context) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	config := vipbot.Config{}
	if err := envconfig.Process("", &config); err != nil {
		return fmt.Errorf("processing the config: %w", err)
	}

	logger := logging.NewLogger(config.Debug)
	defer func() { _ = logger.Sync() }()
	ctx = logging.WithLogger(ctx, logger)

	return vipbot.Serve(ctx, &config)
}
