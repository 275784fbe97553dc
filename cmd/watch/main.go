// Package main contains the entrypoint of the binary that watches tracked
// shows for new episodes and reports them to Slack.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/mhavel/csfd/internal/csfd"
	"github.com/mhavel/csfd/internal/slack"
	"github.com/mhavel/csfd/internal/watch"
	"github.com/robfig/cron"
	"github.com/sethvargo/go-envconfig"
)

type appConfig struct {
	Csfd      csfd.Config  `env:",prefix=CSFD_"`
	Slack     slack.Config `env:",prefix=SLACK_"`
	Watch     watch.Config `env:",prefix=WATCH_"`
	CronSpecs string       `env:"CRON_SPECS,default=@hourly"`
}

func main() {
	ctx := context.Background()
	if err := run(ctx); err != nil {
		slog.ErrorContext(ctx, "something went wrong", "error", err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context) (err error) {
	var cfg appConfig
	if err = envconfig.Process(ctx, &cfg); err != nil {
		return fmt.Errorf("parse the env: %w", err)
	}

	scraper := csfd.NewScraper(cfg.Csfd)
	slackClient := slack.NewClient(cfg.Slack)
	tracker := watch.New(cfg.Watch, scraper, slackClient)

	slog.InfoContext(ctx, "ČSFD watch: starting", "shows", len(cfg.Watch.Shows))

	crn := cron.New()
	err = crn.AddFunc(cfg.CronSpecs, func() {
		processCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
		defer cancel()
		process(processCtx, tracker)
	})
	if err != nil {
		return fmt.Errorf("setup cron: %w", err)
	}
	crn.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	slog.InfoContext(ctx, "ČSFD watch: stopping")

	crn.Stop()
	return nil
}

func process(ctx context.Context, t *watch.Tracker) {
	if err := t.Run(ctx); err != nil {
		slog.InfoContext(ctx, "An error occurred during a run", "error", err)
	}
}
