// Package schema has configs, models and global variables for all parts of repograde.
package schema

import "time"

// RepoRef identifies a repository on the hosting service.
type RepoRef struct {
	Owner string `json:"owner" yaml:"owner"`
	Name  string `json:"name" yaml:"name"`
}

// String returns the canonical owner/name form.
func (r RepoRef) String() string {
	return r.Owner + "/" + r.Name
}

// RepoMetadata is the subset of repository metadata reported by the hosting API.
type RepoMetadata struct {
	Name          string `json:"name" yaml:"name"`
	Owner         string `json:"owner" yaml:"owner"`
	Description   string `json:"description" yaml:"description"`
	DefaultBranch string `json:"defaultBranch" yaml:"defaultBranch"`
	Size          int    `json:"size" yaml:"size"` // in KB
	Stars         int    `json:"stars" yaml:"stars"`
	Forks         int    `json:"forks" yaml:"forks"`
	OpenIssues    int    `json:"openIssues" yaml:"openIssues"`
}

// Commit is a single fetched commit. Only the author timestamp matters for analysis.
type Commit struct {
	SHA        string    `json:"sha,omitempty" yaml:"sha,omitempty"`
	AuthorDate time.Time `json:"authorDate" yaml:"authorDate"`
}

// TreeEntry is one node of the recursive file tree.
type TreeEntry struct {
	Path string    `json:"path" yaml:"path"`
	Kind EntryKind `json:"kind" yaml:"kind"`
}

// RawRepositoryData is everything fetched about one repository.
// Commits are ordered newest first. Readme is empty when the repository has none.
type RawRepositoryData struct {
	Metadata  RepoMetadata     `json:"metadata" yaml:"metadata"`
	Languages map[string]int64 `json:"languages" yaml:"languages"`
	Commits   []Commit         `json:"commits" yaml:"commits"`
	FileTree  []TreeEntry      `json:"fileTree" yaml:"fileTree"`
	Readme    string           `json:"readme" yaml:"readme"`
}
