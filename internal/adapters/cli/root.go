package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/NaMinhyeok/order-practice/internal/adapters/config"
	"github.com/NaMinhyeok/order-practice/internal/core/domain"
)

type Assigner interface {
	Assign(ctx context.Context, repository string, number int, author string) ([]domain.Reviewer, error)
}

// AssignerFactory builds the assigner once flags are resolved, so credentials
// given on the command line take effect.
type AssignerFactory func(cfg config.ReviewerConfig) (Assigner, error)

func newRootCmd(defaults config.ReviewerConfig, build AssignerFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "reviewer",
		Short:         "Assign pull request reviewers and notify them on Slack",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newAssignCmd(defaults, build))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest(defaults config.ReviewerConfig, build AssignerFactory) *cobra.Command {
	return newRootCmd(defaults, build)
}

func Execute(ctx context.Context, defaults config.ReviewerConfig, build AssignerFactory) error {
	return newRootCmd(defaults, build).ExecuteContext(ctx)
}
