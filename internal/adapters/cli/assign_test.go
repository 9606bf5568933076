package cli_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/NaMinhyeok/order-practice/internal/adapters/cli"
	"github.com/NaMinhyeok/order-practice/internal/adapters/config"
	"github.com/NaMinhyeok/order-practice/internal/core/domain"
)

type mockAssigner struct {
	mock.Mock
}

func (m *mockAssigner) Assign(ctx context.Context, repository string, number int, author string) ([]domain.Reviewer, error) {
	args := m.Called(ctx, repository, number, author)
	reviewers, _ := args.Get(0).([]domain.Reviewer)
	return reviewers, args.Error(1)
}

func envDefaults() config.ReviewerConfig {
	return config.ReviewerConfig{
		GithubToken: "env-token",
		Repository:  "acme/cafe",
		PRNumber:    42,
		PRCreator:   "octocat",
		SlackToken:  "xoxb-env",
	}
}

func run(t *testing.T, defaults config.ReviewerConfig, build cli.AssignerFactory, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := cli.NewRootCmdForTest(defaults, build)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestAssignCmd_UsesEnvironmentDefaults(t *testing.T) {
	assigner := &mockAssigner{}
	assigner.On("Assign", mock.Anything, "acme/cafe", 42, "octocat").
		Return([]domain.Reviewer{{GithubName: "alice"}, {GithubName: "bob"}}, nil).Once()

	var built config.ReviewerConfig
	out, err := run(t, envDefaults(), func(cfg config.ReviewerConfig) (cli.Assigner, error) {
		built = cfg
		return assigner, nil
	}, "assign")

	require.NoError(t, err)
	assert.Equal(t, "Requested 2 reviewer(s) on acme/cafe#42: alice, bob\n", out)
	assert.Equal(t, "env-token", built.GithubToken)
	assigner.AssertExpectations(t)
}

func TestAssignCmd_FlagsOverrideEnvironment(t *testing.T) {
	assigner := &mockAssigner{}
	assigner.On("Assign", mock.Anything, "other/repo", 7, "alice").
		Return([]domain.Reviewer{{GithubName: "bob"}}, nil).Once()

	var built config.ReviewerConfig
	_, err := run(t, envDefaults(), func(cfg config.ReviewerConfig) (cli.Assigner, error) {
		built = cfg
		return assigner, nil
	}, "assign", "--repository", "other/repo", "--pr", "7", "--author", "alice", "--token", "flag-token", "--roster", "team.yml")

	require.NoError(t, err)
	assert.Equal(t, "flag-token", built.GithubToken)
	assert.Equal(t, "team.yml", built.RosterPath)
	assigner.AssertExpectations(t)
}

func TestAssignCmd_NoCandidates(t *testing.T) {
	assigner := &mockAssigner{}
	assigner.On("Assign", mock.Anything, "acme/cafe", 42, "octocat").Return([]domain.Reviewer{}, nil).Once()

	out, err := run(t, envDefaults(), func(config.ReviewerConfig) (cli.Assigner, error) {
		return assigner, nil
	}, "assign")

	require.NoError(t, err)
	assert.Equal(t, "No reviewers to request on acme/cafe#42\n", out)
}

func TestAssignCmd_MissingInputs(t *testing.T) {
	built := false
	_, err := run(t, config.ReviewerConfig{Repository: "cafe"}, func(config.ReviewerConfig) (cli.Assigner, error) {
		built = true
		return nil, nil
	}, "assign")

	require.Error(t, err)
	assert.False(t, built)
	for _, want := range []string{"--token", "--repository", "--pr", "--author", "--slack-token"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestAssignCmd_WebhookIsEnough(t *testing.T) {
	defaults := envDefaults()
	defaults.SlackToken = ""

	assigner := &mockAssigner{}
	assigner.On("Assign", mock.Anything, "acme/cafe", 42, "octocat").Return([]domain.Reviewer{{GithubName: "bob"}}, nil).Once()

	_, err := run(t, defaults, func(config.ReviewerConfig) (cli.Assigner, error) {
		return assigner, nil
	}, "assign", "--slack-webhook", "https://hooks.slack.test/x")

	require.NoError(t, err)
}

func TestAssignCmd_Errors(t *testing.T) {
	t.Run("factory", func(t *testing.T) {
		_, err := run(t, envDefaults(), func(config.ReviewerConfig) (cli.Assigner, error) {
			return nil, errors.New("bad api url")
		}, "assign")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "setting up clients: bad api url")
	})

	t.Run("assign", func(t *testing.T) {
		assigner := &mockAssigner{}
		assigner.On("Assign", mock.Anything, "acme/cafe", 42, "octocat").
			Return(nil, errors.New("request reviewers: forbidden")).Once()

		_, err := run(t, envDefaults(), func(config.ReviewerConfig) (cli.Assigner, error) {
			return assigner, nil
		}, "assign")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "forbidden")
	})
}

func TestAssignCmd_RejectsArguments(t *testing.T) {
	_, err := run(t, envDefaults(), func(config.ReviewerConfig) (cli.Assigner, error) {
		return &mockAssigner{}, nil
	}, "assign", "extra")
	assert.Error(t, err)
}
