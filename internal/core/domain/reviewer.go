package domain

import "strings"

// Reviewer maps a GitHub login to the Slack member that should be pinged.
type Reviewer struct {
	GithubName  string `yaml:"githubName"`
	SlackUserID string `yaml:"slackUserId"`
}

type PullRequest struct {
	Repository string
	Number     int
	Title      string
	Author     string
	URL        string
}

// ReviewCandidates drops the author from the roster, comparing logins
// case-insensitively since GitHub does.
func ReviewCandidates(roster []Reviewer, author string) []Reviewer {
	candidates := make([]Reviewer, 0, len(roster))
	for _, r := range roster {
		if strings.EqualFold(r.GithubName, author) {
			continue
		}
		candidates = append(candidates, r)
	}
	return candidates
}

func GithubNames(reviewers []Reviewer) []string {
	names := make([]string, len(reviewers))
	for i, r := range reviewers {
		names[i] = r.GithubName
	}
	return names
}
