package contract

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/huangsam/repograde/schema"
)

// Failure classes for acquiring repository data. Callers classify with errors.Is.
var (
	ErrInvalidReference   = errors.New("invalid GitHub repository reference")
	ErrRepositoryNotFound = errors.New("repository not found")
	ErrRateLimited        = errors.New("GitHub API rate limit exceeded")
	ErrTransport          = errors.New("GitHub API request failed")
)

// githubHost is the only host accepted in repository references.
const githubHost = "github.com"

// ParseRepoReference resolves a URL like https://github.com/owner/repo into owner and name.
// Extra path segments (e.g. /tree/main) are ignored and a trailing .git is stripped.
func ParseRepoReference(ref string) (schema.RepoRef, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return schema.RepoRef{}, fmt.Errorf("%w: empty reference", ErrInvalidReference)
	}

	u, err := url.Parse(ref)
	if err != nil {
		return schema.RepoRef{}, fmt.Errorf("%w: %q: %v", ErrInvalidReference, ref, err)
	}
	if u.Hostname() != githubHost {
		return schema.RepoRef{}, fmt.Errorf("%w: host must be %s, got %q", ErrInvalidReference, githubHost, u.Hostname())
	}

	parts := strings.FieldsFunc(u.Path, func(r rune) bool { return r == '/' })
	if len(parts) < 2 {
		return schema.RepoRef{}, fmt.Errorf("%w: %q must include owner and repository", ErrInvalidReference, ref)
	}

	name := strings.TrimSuffix(parts[1], ".git")
	if name == "" {
		return schema.RepoRef{}, fmt.Errorf("%w: %q has an empty repository name", ErrInvalidReference, ref)
	}
	return schema.RepoRef{Owner: parts[0], Name: name}, nil
}
