package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/junglebet-games/viptransfer/internal/logging"
	"github.com/junglebet-games/viptransfer/internal/shutdown"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	URL      string        `envconfig:"VIPBOT_HEALTH_URL" default:"http://localhost:1234/health"`
	Username string        `envconfig:"VIPBOT_HEALTH_USERNAME"`
	Password string        `envconfig:"VIPBOT_HEALTH_PASSWORD"`
	Timeout  time.Duration `envconfig:"VIPBOT_HEALTH_TIMEOUT" default:"10s"`
}

type okResponse struct {
	Status string `json:"status"`
}

func main() {
	flag.Parse()
	ctx, cancel := shutdown.New()
	logger := logging.FromContext(ctx)
	defer cancel()

	config := Config{}
	if err := envconfig.Process("", &config); err != nil {
		logger.Fatalf("processing the config: %v", err)
	}

	client := &http.Client{
		Timeout: config.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:          10,
			DisableCompression:    true,
			IdleConnTimeout:       time.Minute,
			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: 10 * time.Second,
		},
	}

	status, err := check(ctx, client, config)
	if err != nil {
		logger.Errorf("health check: %v", err)
		os.Exit(1)
	}

	_, _ = fmt.Fprintln(os.Stdout, status)
}

// check requests the health endpoint and returns the reported status. Any
// answer other than 200 with status "ok" is an error.
func check(ctx context.Context, client *http.Client, config Config) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, config.URL, nil)
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}

	if config.Username != "" {
		req.SetBasicAuth(config.Username, config.Password)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var ok okResponse
	if err := json.NewDecoder(resp.Body).Decode(&ok); err != nil {
		return "", fmt.Errorf("body unmarshal: %w", err)
	}

	if ok.Status != "ok" {
		return ok.Status, fmt.Errorf("unhealthy: %s", ok.Status)
	}

	return ok.Status, nil
}
