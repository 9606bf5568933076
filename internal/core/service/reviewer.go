package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/NaMinhyeok/order-practice/internal/core/domain"
	"github.com/NaMinhyeok/order-practice/internal/core/logger"
	"github.com/NaMinhyeok/order-practice/internal/core/port"
)

type ReviewerService struct {
	roster       port.RosterPort
	pullRequests port.PullRequestPort
	chat         port.ChatPort
}

func NewReviewerService(roster port.RosterPort, pullRequests port.PullRequestPort, chat port.ChatPort) *ReviewerService {
	return &ReviewerService{roster: roster, pullRequests: pullRequests, chat: chat}
}

// Assign requests every roster member except the author as reviewer on the
// pull request, then messages each of them. A failed review request aborts;
// failed notifications are only logged.
func (s *ReviewerService) Assign(ctx context.Context, repository string, number int, author string) ([]domain.Reviewer, error) {
	roster, err := s.roster.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load reviewer roster: %w", err)
	}

	reviewers := domain.ReviewCandidates(roster, author)
	attrs := map[string]any{
		"repository": repository,
		"pr_number":  number,
		"author":     author,
	}
	if len(reviewers) == 0 {
		logger.Warn(ctx, "reviewer: no candidates after excluding author", attrs)
		return reviewers, nil
	}

	pr, err := s.pullRequests.GetPullRequest(ctx, repository, number)
	if err != nil {
		return nil, fmt.Errorf("get pull request: %w", err)
	}

	names := domain.GithubNames(reviewers)
	if err := s.pullRequests.RequestReviewers(ctx, repository, number, names); err != nil {
		return nil, fmt.Errorf("request reviewers: %w", err)
	}
	logger.Info(ctx, "reviewer: reviewers requested", map[string]any{
		"repository": repository,
		"pr_number":  number,
		"reviewers":  names,
	})

	s.notifyAll(ctx, pr, reviewers)
	return reviewers, nil
}

func (s *ReviewerService) notifyAll(ctx context.Context, pr *domain.PullRequest, reviewers []domain.Reviewer) {
	var g errgroup.Group
	for _, reviewer := range reviewers {
		g.Go(func() error {
			if err := s.chat.Notify(ctx, reviewer, pr, reviewers); err != nil {
				logger.Error(ctx, "reviewer: notification failed", err, map[string]any{
					"reviewer":      reviewer.GithubName,
					"slack_user_id": reviewer.SlackUserID,
				})
			}
			return nil
		})
	}
	_ = g.Wait()
}
