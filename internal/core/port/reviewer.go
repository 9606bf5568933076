package port

import (
	"context"

	"github.com/NaMinhyeok/order-practice/internal/core/domain"
)

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

type PullRequestPort interface {
	GetPullRequest(ctx context.Context, repository string, number int) (*domain.PullRequest, error)
	RequestReviewers(ctx context.Context, repository string, number int, reviewers []string) error
}

type ChatPort interface {
	Notify(ctx context.Context, reviewer domain.Reviewer, pr *domain.PullRequest, reviewers []domain.Reviewer) error
}

type RosterPort interface {
	Load(ctx context.Context) ([]domain.Reviewer, error)
}
