package schema

// RepoInfo is the passthrough subset of repository metadata.
type RepoInfo struct {
	Name        string `json:"name" yaml:"name"`
	Owner       string `json:"owner" yaml:"owner"`
	Description string `json:"description" yaml:"description"`
	Size        int    `json:"size" yaml:"size"`
	Stars       int    `json:"stars" yaml:"stars"`
	Forks       int    `json:"forks" yaml:"forks"`
	OpenIssues  int    `json:"openIssues" yaml:"openIssues"`
}

// CountMetrics holds the number of files and folders in the tree.
type CountMetrics struct {
	Files   int `json:"files" yaml:"files"`
	Folders int `json:"folders" yaml:"folders"`
}

// CommitMetrics describes commit activity over the fetched window.
type CommitMetrics struct {
	TotalFetched     int     `json:"totalFetched" yaml:"totalFetched"`
	FrequencyPerWeek float64 `json:"frequencyPerWeek" yaml:"frequencyPerWeek"`
}

// ReadmeMetrics describes README presence and structure.
type ReadmeMetrics struct {
	Exists   bool `json:"exists" yaml:"exists"`
	Length   int  `json:"length" yaml:"length"`
	Sections int  `json:"sections" yaml:"sections"`
	HasSetup bool `json:"hasSetup" yaml:"hasSetup"`
	HasUsage bool `json:"hasUsage" yaml:"hasUsage"`
}

// TestMetrics describes detected test files.
type TestMetrics struct {
	Exists bool `json:"exists" yaml:"exists"`
	Count  int  `json:"count" yaml:"count"`
}

// StructureMetrics describes the shape of the file tree.
type StructureMetrics struct {
	Depth int `json:"depth" yaml:"depth"`
}

// MetricsRecord is the normalized view of raw repository facts.
type MetricsRecord struct {
	RepoInfo  RepoInfo           `json:"repoInfo" yaml:"repoInfo"`
	Counts    CountMetrics       `json:"counts" yaml:"counts"`
	Languages map[string]float64 `json:"languages" yaml:"languages"` // percentage of total bytes per language
	Commits   CommitMetrics      `json:"commits" yaml:"commits"`
	Readme    ReadmeMetrics      `json:"readme" yaml:"readme"`
	Tests     TestMetrics        `json:"tests" yaml:"tests"`
	Structure StructureMetrics   `json:"structure" yaml:"structure"`
}
