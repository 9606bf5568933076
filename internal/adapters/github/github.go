package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	gogithub "github.com/google/go-github/v66/github"

	"github.com/NaMinhyeok/order-practice/internal/core/domain"
	"github.com/NaMinhyeok/order-practice/internal/core/port"
	"github.com/NaMinhyeok/order-practice/internal/core/serviceerrors"
)

type Client struct {
	client *gogithub.Client
}

// NewClient authenticates with token. A non-empty apiURL replaces the public
// API endpoint, which is how GitHub Enterprise and tests are reached.
func NewClient(token, apiURL string) (port.PullRequestPort, error) {
	client := gogithub.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	if apiURL != "" {
		if !strings.HasSuffix(apiURL, "/") {
			apiURL += "/"
		}
		baseURL, err := url.Parse(apiURL)
		if err != nil {
			return nil, fmt.Errorf("parse github api url: %w", err)
		}
		client.BaseURL = baseURL
	}
	return &Client{client: client}, nil
}

func splitRepository(repository string) (string, string, error) {
	owner, name, ok := strings.Cut(repository, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", serviceerrors.NewInvalidRequestError("repository %q must be owner/name", repository)
	}
	return owner, name, nil
}

func (c *Client) GetPullRequest(ctx context.Context, repository string, number int) (*domain.PullRequest, error) {
	owner, name, err := splitRepository(repository)
	if err != nil {
		return nil, err
	}

	pr, _, err := c.client.PullRequests.Get(ctx, owner, name, number)
	if err != nil {
		return nil, parseError(err, repository, number)
	}

	return &domain.PullRequest{
		Repository: repository,
		Number:     pr.GetNumber(),
		Title:      pr.GetTitle(),
		Author:     pr.GetUser().GetLogin(),
		URL:        pr.GetHTMLURL(),
	}, nil
}

// RequestReviewers asks for every login in a single API call.
func (c *Client) RequestReviewers(ctx context.Context, repository string, number int, reviewers []string) error {
	owner, name, err := splitRepository(repository)
	if err != nil {
		return err
	}

	_, _, err = c.client.PullRequests.RequestReviewers(ctx, owner, name, number, gogithub.ReviewersRequest{
		Reviewers: reviewers,
	})
	if err != nil {
		return parseError(err, repository, number)
	}
	return nil
}

func parseError(err error, repository string, number int) error {
	var apiErr *gogithub.ErrorResponse
	if errors.As(err, &apiErr) && apiErr.Response != nil {
		switch apiErr.Response.StatusCode {
		case http.StatusNotFound:
			return serviceerrors.NewNotFoundError("pull request %s#%d not found", repository, number)
		case http.StatusUnprocessableEntity:
			return serviceerrors.NewUnprocessableEntityError("github rejected the request: %s", apiErr.Message)
		}
	}
	return fmt.Errorf("github api: %w", err)
}
