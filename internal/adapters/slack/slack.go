package slack

import (
	"context"
	"errors"
	"fmt"
	"strings"

	goslack "github.com/slack-go/slack"

	"github.com/NaMinhyeok/order-practice/internal/adapters/config"
	"github.com/NaMinhyeok/order-practice/internal/core/domain"
	"github.com/NaMinhyeok/order-practice/internal/core/port"
)

var ErrNotConfigured = errors.New("slack: either a bot token or a webhook url is required")

// NewNotifier prefers direct messages through the bot token and falls back to
// the incoming webhook.
func NewNotifier(cfg config.ReviewerConfig) (port.ChatPort, error) {
	switch {
	case cfg.SlackToken != "":
		return NewBotNotifier(cfg.SlackToken, cfg.SlackAPIURL), nil
	case cfg.SlackWebhookURL != "":
		return NewWebhookNotifier(cfg.SlackWebhookURL), nil
	default:
		return nil, ErrNotConfigured
	}
}

// BotNotifier sends a direct message to each reviewer's Slack member id.
type BotNotifier struct {
	client *goslack.Client
}

func NewBotNotifier(token, apiURL string) *BotNotifier {
	var options []goslack.Option
	if apiURL != "" {
		if !strings.HasSuffix(apiURL, "/") {
			apiURL += "/"
		}
		options = append(options, goslack.OptionAPIURL(apiURL))
	}
	return &BotNotifier{client: goslack.New(token, options...)}
}

func (n *BotNotifier) Notify(ctx context.Context, reviewer domain.Reviewer, pr *domain.PullRequest, reviewers []domain.Reviewer) error {
	_, _, err := n.client.PostMessageContext(ctx, reviewer.SlackUserID,
		goslack.MsgOptionText(ReviewRequestMessage(pr, reviewers), false),
	)
	if err != nil {
		return fmt.Errorf("slack: post message to %s: %w", reviewer.SlackUserID, err)
	}
	return nil
}

// WebhookNotifier posts to a channel webhook and mentions the reviewer.
type WebhookNotifier struct {
	url string
}

func NewWebhookNotifier(url string) *WebhookNotifier {
	return &WebhookNotifier{url: url}
}

func (n *WebhookNotifier) Notify(ctx context.Context, reviewer domain.Reviewer, pr *domain.PullRequest, reviewers []domain.Reviewer) error {
	text := fmt.Sprintf("<@%s>\n%s", reviewer.SlackUserID, ReviewRequestMessage(pr, reviewers))
	if err := goslack.PostWebhookContext(ctx, n.url, &goslack.WebhookMessage{Text: text}); err != nil {
		return fmt.Errorf("slack: post webhook: %w", err)
	}
	return nil
}

func ReviewRequestMessage(pr *domain.PullRequest, reviewers []domain.Reviewer) string {
	var b strings.Builder
	b.WriteString("New pull request waiting for your review!\n")
	fmt.Fprintf(&b, "- Title: %s\n", pr.Title)
	fmt.Fprintf(&b, "- Author: %s\n", pr.Author)
	fmt.Fprintf(&b, "- Reviewers: %s\n", strings.Join(domain.GithubNames(reviewers), ", "))
	fmt.Fprintf(&b, "- Link: %s", pr.URL)
	return b.String()
}
