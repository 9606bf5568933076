package roster

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/NaMinhyeok/order-practice/internal/core/domain"
	"github.com/NaMinhyeok/order-practice/internal/core/port"
)

//go:embed reviewers.yml
var embedded []byte

type file struct {
	Reviewers []domain.Reviewer `yaml:"reviewers"`
}

// Roster serves the reviewer list from YAML held in memory.
type Roster struct {
	data   []byte
	source string
}

// New returns the roster compiled into the binary, or the one at path when
// path is set.
func New(path string) (port.RosterPort, error) {
	if path == "" {
		return &Roster{data: embedded, source: "embedded reviewers.yml"}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}
	return &Roster{data: data, source: path}, nil
}

func FromBytes(data []byte) port.RosterPort {
	return &Roster{data: data, source: "inline"}
}

func (r *Roster) Load(_ context.Context) ([]domain.Reviewer, error) {
	var f file
	if err := yaml.Unmarshal(r.data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", r.source, err)
	}

	reviewers := make([]domain.Reviewer, 0, len(f.Reviewers))
	for i, reviewer := range f.Reviewers {
		reviewer.GithubName = strings.TrimSpace(reviewer.GithubName)
		reviewer.SlackUserID = strings.TrimSpace(reviewer.SlackUserID)
		if reviewer.GithubName == "" || reviewer.SlackUserID == "" {
			return nil, fmt.Errorf("%s: reviewer %d needs githubName and slackUserId", r.source, i+1)
		}
		reviewers = append(reviewers, reviewer)
	}
	if len(reviewers) == 0 {
		return nil, fmt.Errorf("%s: no reviewers listed", r.source)
	}
	return reviewers, nil
}
