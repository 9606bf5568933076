package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/NaMinhyeok/order-practice/internal/adapters/config"
	"github.com/NaMinhyeok/order-practice/internal/core/domain"
)

func newAssignCmd(defaults config.ReviewerConfig, build AssignerFactory) *cobra.Command {
	cfg := defaults

	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Request reviews from the roster on a pull request",
		Long: "Requests a review from every roster member except the pull request author, " +
			"then sends each of them a Slack message with the pull request link.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validate(cfg); err != nil {
				return err
			}

			assigner, err := build(cfg)
			if err != nil {
				return fmt.Errorf("setting up clients: %w", err)
			}

			reviewers, err := assigner.Assign(cmd.Context(), cfg.Repository, cfg.PRNumber, cfg.PRCreator)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(reviewers) == 0 {
				fmt.Fprintf(out, "No reviewers to request on %s#%d\n", cfg.Repository, cfg.PRNumber)
				return nil
			}
			fmt.Fprintf(out, "Requested %d reviewer(s) on %s#%d: %s\n",
				len(reviewers), cfg.Repository, cfg.PRNumber, strings.Join(domain.GithubNames(reviewers), ", "))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.GithubToken, "token", defaults.GithubToken, "GitHub token (GITHUB_TOKEN)")
	flags.StringVar(&cfg.GithubAPIURL, "github-api-url", defaults.GithubAPIURL, "GitHub API base URL (GITHUB_API_URL)")
	flags.StringVar(&cfg.Repository, "repository", defaults.Repository, "Repository as owner/name (GITHUB_REPOSITORY)")
	flags.IntVar(&cfg.PRNumber, "pr", defaults.PRNumber, "Pull request number (PR_NUMBER)")
	flags.StringVar(&cfg.PRCreator, "author", defaults.PRCreator, "Pull request author, never requested (PR_CREATOR)")
	flags.StringVar(&cfg.SlackToken, "slack-token", defaults.SlackToken, "Slack bot token for direct messages (SLACK_TOKEN)")
	flags.StringVar(&cfg.SlackWebhookURL, "slack-webhook", defaults.SlackWebhookURL, "Slack incoming webhook URL (SLACK_WEBHOOK_URL)")
	flags.StringVar(&cfg.RosterPath, "roster", defaults.RosterPath, "Reviewer roster YAML, defaults to the built-in list (REVIEWER_ROSTER)")

	return cmd
}

func validate(cfg config.ReviewerConfig) error {
	var errs []error
	if cfg.GithubToken == "" {
		errs = append(errs, errors.New("--token is required"))
	}
	if owner, name, ok := strings.Cut(cfg.Repository, "/"); !ok || owner == "" || name == "" {
		errs = append(errs, errors.New("--repository must be owner/name"))
	}
	if cfg.PRNumber <= 0 {
		errs = append(errs, errors.New("--pr must be a positive number"))
	}
	if cfg.PRCreator == "" {
		errs = append(errs, errors.New("--author is required"))
	}
	if cfg.SlackToken == "" && cfg.SlackWebhookURL == "" {
		errs = append(errs, errors.New("--slack-token or --slack-webhook is required"))
	}
	return errors.Join(errs...)
}
