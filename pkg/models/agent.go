package models

// AgentRole identifies one of the fixed worker slots in the agent registry.
type AgentRole string

const (
	// RoleScanner inspects a folder and produces a FolderInsight.
	RoleScanner AgentRole = "scanner"
	// RolePlanner turns a FolderInsight into a Blueprint.
	RolePlanner AgentRole = "planner"
	// RolePRManager renders a Blueprint as a change proposal.
	RolePRManager AgentRole = "pr_manager"
)

// AllRoles lists every known role in roster and execution order.
var AllRoles = []AgentRole{RoleScanner, RolePlanner, RolePRManager}

// Valid returns true if the role is a known value.
func (r AgentRole) Valid() bool {
	switch r {
	case RoleScanner, RolePlanner, RolePRManager:
		return true
	default:
		return false
	}
}

// Description returns the static human-readable description of the role.
func (r AgentRole) Description() string {
	switch r {
	case RoleScanner:
		return "Ingestion agent: scans files, classifies technologies, and builds context."
	case RolePlanner:
		return "Planning agent: proposes tool architecture, milestones, and backlog."
	case RolePRManager:
		return "PR agent: drafts pull-request titles and descriptions."
	default:
		return ""
	}
}

// AgentStatus is one row of the agent registry roster.
type AgentStatus struct {
	// Name is the role occupying the slot.
	Name AgentRole `json:"name" yaml:"name"`
	// Active is true once the slot holds a constructed worker.
	Active bool `json:"active" yaml:"active"`
	// Description is the static description of the role.
	Description string `json:"description" yaml:"description"`
}

// State returns "active" or "idle".
func (s AgentStatus) State() string {
	if s.Active {
		return "active"
	}
	return "idle"
}
