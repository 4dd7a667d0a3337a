package github

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/repograde/schema"
)

// repoResponse is the subset of GET /repos/{owner}/{repo} we read.
type repoResponse struct {
	Name  string `json:"name"`
	Owner struct {
		Login string `json:"login"`
	} `json:"owner"`
	Description     string `json:"description"`
	DefaultBranch   string `json:"default_branch"`
	Size            int    `json:"size"`
	StargazersCount int    `json:"stargazers_count"`
	ForksCount      int    `json:"forks_count"`
	OpenIssuesCount int    `json:"open_issues_count"`
}

func (r repoResponse) toMetadata() schema.RepoMetadata {
	return schema.RepoMetadata{
		Name:          r.Name,
		Owner:         r.Owner.Login,
		Description:   r.Description,
		DefaultBranch: r.DefaultBranch,
		Size:          r.Size,
		Stars:         r.StargazersCount,
		Forks:         r.ForksCount,
		OpenIssues:    r.OpenIssuesCount,
	}
}

// commitResponse is one element of GET /repos/{owner}/{repo}/commits.
type commitResponse struct {
	SHA    string `json:"sha"`
	Commit struct {
		Author struct {
			Date time.Time `json:"date"`
		} `json:"author"`
	} `json:"commit"`
}

func toCommits(in []commitResponse) []schema.Commit {
	commits := make([]schema.Commit, len(in))
	for i, c := range in {
		commits[i] = schema.Commit{SHA: c.SHA, AuthorDate: c.Commit.Author.Date}
	}
	return commits
}

// treeResponse is GET /repos/{owner}/{repo}/git/trees/{sha}?recursive=1.
type treeResponse struct {
	SHA       string     `json:"sha"`
	Tree      []treeNode `json:"tree"`
	Truncated bool       `json:"truncated"`
}

type treeNode struct {
	Path string `json:"path"`
	Type string `json:"type"`
}

// toEntries keeps blobs and trees. Submodules (type "commit") are dropped.
func toEntries(nodes []treeNode) []schema.TreeEntry {
	entries := make([]schema.TreeEntry, 0, len(nodes))
	for _, node := range nodes {
		switch node.Type {
		case "blob":
			entries = append(entries, schema.TreeEntry{Path: node.Path, Kind: schema.FileEntry})
		case "tree":
			entries = append(entries, schema.TreeEntry{Path: node.Path, Kind: schema.DirectoryEntry})
		}
	}
	return entries
}

// readmeResponse is GET /repos/{owner}/{repo}/readme.
type readmeResponse struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

// decode returns the README text. GitHub wraps base64 content at 60 columns.
func (r readmeResponse) decode() (string, error) {
	if r.Encoding != "" && r.Encoding != "base64" {
		return "", fmt.Errorf("unsupported README encoding %q", r.Encoding)
	}
	data, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(r.Content, "\n", ""))
	if err != nil {
		return "", fmt.Errorf("decoding README: %w", err)
	}
	return string(data), nil
}
