package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/NaMinhyeok/order-practice/internal/adapters/cli"
	"github.com/NaMinhyeok/order-practice/internal/adapters/config"
	"github.com/NaMinhyeok/order-practice/internal/adapters/github"
	"github.com/NaMinhyeok/order-practice/internal/adapters/roster"
	"github.com/NaMinhyeok/order-practice/internal/adapters/slack"
	"github.com/NaMinhyeok/order-practice/internal/core/logger"
	"github.com/NaMinhyeok/order-practice/internal/core/service"
)

func buildAssigner(cfg config.ReviewerConfig) (cli.Assigner, error) {
	reviewers, err := roster.New(cfg.RosterPath)
	if err != nil {
		return nil, err
	}
	pullRequests, err := github.NewClient(cfg.GithubToken, cfg.GithubAPIURL)
	if err != nil {
		return nil, err
	}
	chat, err := slack.NewNotifier(cfg)
	if err != nil {
		return nil, err
	}
	return service.NewReviewerService(reviewers, pullRequests, chat), nil
}

func main() {
	cfg := config.NewConfig()
	if err := logger.Initialize(logger.Options{
		ServiceName: "order-practice-reviewer",
		Level:       logger.ParseLevel(cfg.Logger.Level),
	}); err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger: "+err.Error())
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := cli.Execute(ctx, *config.NewReviewerConfig(), buildAssigner)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = logger.Shutdown(shutdownCtx)

	if err != nil {
		fmt.Fprintln(os.Stderr, "error: "+err.Error())
		os.Exit(1)
	}
}
