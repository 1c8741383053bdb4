package models

// Blueprint is the structured implementation plan derived from a FolderInsight.
type Blueprint struct {
	Title        string   `json:"title" yaml:"title"`
	Summary      string   `json:"summary" yaml:"summary"`
	Capabilities []string `json:"capabilities" yaml:"capabilities"`
	Architecture []string `json:"architecture" yaml:"architecture"`
	Tests        []string `json:"tests" yaml:"tests"`
	// Backlog holds prioritized backlog lines, most important first.
	Backlog []string `json:"backlog" yaml:"backlog"`
}

// Proposal is a rendered change proposal. The title is never embedded in the body.
type Proposal struct {
	Title string `json:"title" yaml:"title"`
	Body  string `json:"body" yaml:"body"`
}
