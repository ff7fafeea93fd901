package github

import (
	"errors"
	"regexp"
	"strconv"
)

// ErrMalformedPullURL indicates a string does not name a GitHub pull request.
var ErrMalformedPullURL = errors.New("malformed pull request url")

var pullURLPattern = regexp.MustCompile(`github\.com/([A-Za-z0-9_.-]+)/([A-Za-z0-9_.-]+)/pull/([0-9]+)`)

// PullRequestRef identifies a pull request by owner, repository and number.
type PullRequestRef struct {
	Owner  string
	Repo   string
	Number int
}

// ParsePullRequestURL extracts a pull request reference from a raw URL.
// Matching is case-sensitive on path segments and requires the
// /<owner>/<repo>/pull/<number> shape.
func ParsePullRequestURL(raw string) (PullRequestRef, error) {
	match := pullURLPattern.FindStringSubmatch(raw)
	if match == nil {
		return PullRequestRef{}, ErrMalformedPullURL
	}

	number, err := strconv.Atoi(match[3])
	if err != nil {
		return PullRequestRef{}, ErrMalformedPullURL
	}

	return PullRequestRef{Owner: match[1], Repo: match[2], Number: number}, nil
}
