package orchestrator

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ShayCichocki/agentbuilder/internal/planner"
	"github.com/ShayCichocki/agentbuilder/internal/proposal"
	"github.com/ShayCichocki/agentbuilder/internal/scanner"
	"github.com/ShayCichocki/agentbuilder/pkg/models"
)

// Scanner produces a FolderInsight for a root path.
type Scanner interface {
	Scan(root string) (*models.FolderInsight, error)
}

// Planner turns an insight and the current backlog into a Blueprint.
type Planner interface {
	Build(insight *models.FolderInsight, backlog []models.BacklogItem) *models.Blueprint
}

// Drafter renders a Blueprint as a change proposal.
type Drafter interface {
	Draft(bp *models.Blueprint) *models.Proposal
}

// Factories binds every role to its constructor.
// A nil field falls back to the default worker for that role.
type Factories struct {
	Scanner   func() (Scanner, error)
	Planner   func() (Planner, error)
	PRManager func() (Drafter, error)
}

// DefaultFactories returns constructors for the built-in workers.
func DefaultFactories(skipDirs []string, amendmentSlice int) Factories {
	return Factories{
		Scanner:   func() (Scanner, error) { return scanner.New(skipDirs...), nil },
		Planner:   func() (Planner, error) { return planner.New(), nil },
		PRManager: func() (Drafter, error) { return proposal.New(amendmentSlice), nil },
	}
}

// merge fills nil fields of f from defaults.
func (f Factories) merge(defaults Factories) Factories {
	if f.Scanner == nil {
		f.Scanner = defaults.Scanner
	}
	if f.Planner == nil {
		f.Planner = defaults.Planner
	}
	if f.PRManager == nil {
		f.PRManager = defaults.PRManager
	}
	return f
}

// AgentEvent reports how a registry lookup was satisfied.
type AgentEvent struct {
	Role    models.AgentRole
	Created bool
	Message string
}

// slot holds one constructed worker.
type slot[T any] struct {
	agent  T
	filled bool
}

// AgentRegistry holds one worker per role. Slots are filled on first use
// and are never replaced or cleared.
type AgentRegistry struct {
	factories Factories

	// mu protects the slots.
	mu        sync.Mutex
	scanner   slot[Scanner]
	planner   slot[Planner]
	prManager slot[Drafter]
}

// NewAgentRegistry creates an empty registry bound to the given factories.
func NewAgentRegistry(f Factories) *AgentRegistry {
	return &AgentRegistry{
		factories: f.merge(DefaultFactories(nil, 0)),
	}
}

// Scanner resolves the scanner slot, constructing it on first use.
func (r *AgentRegistry) Scanner() (Scanner, AgentEvent, error) {
	return getOrCreate(r, &r.scanner, models.RoleScanner, r.factories.Scanner)
}

// Planner resolves the planner slot, constructing it on first use.
func (r *AgentRegistry) Planner() (Planner, AgentEvent, error) {
	return getOrCreate(r, &r.planner, models.RolePlanner, r.factories.Planner)
}

// PRManager resolves the pr_manager slot, constructing it on first use.
func (r *AgentRegistry) PRManager() (Drafter, AgentEvent, error) {
	return getOrCreate(r, &r.prManager, models.RolePRManager, r.factories.PRManager)
}

// getOrCreate fills s from factory when it is empty.
// Constructor errors are returned unmodified and leave the slot empty.
func getOrCreate[T any](r *AgentRegistry, s *slot[T], role models.AgentRole, factory func() (T, error)) (T, AgentEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.filled {
		return s.agent, reusedEvent(role), nil
	}

	agent, err := factory()
	if err != nil {
		var zero T
		return zero, AgentEvent{}, err
	}
	s.agent, s.filled = agent, true
	debugLog("[registry] created %s agent", role)

	return agent, createdEvent(role), nil
}

// occupied reports slot occupancy per role. Callers must hold mu.
func (r *AgentRegistry) occupied() map[models.AgentRole]bool {
	return map[models.AgentRole]bool{
		models.RoleScanner:   r.scanner.filled,
		models.RolePlanner:   r.planner.filled,
		models.RolePRManager: r.prManager.filled,
	}
}

// Describe returns the roster for every known role, in roster order.
func (r *AgentRegistry) Describe() []models.AgentStatus {
	r.mu.Lock()
	defer r.mu.Unlock()

	occupied := r.occupied()
	out := make([]models.AgentStatus, 0, len(models.AllRoles))
	for _, role := range models.AllRoles {
		out = append(out, models.AgentStatus{
			Name:        role,
			Active:      occupied[role],
			Description: role.Description(),
		})
	}
	return out
}

// Active returns the occupied roles, sorted by name.
func (r *AgentRegistry) Active() []models.AgentRole {
	r.mu.Lock()
	defer r.mu.Unlock()

	var roles []models.AgentRole
	for role, filled := range r.occupied() {
		if filled {
			roles = append(roles, role)
		}
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })
	return roles
}

func createdEvent(role models.AgentRole) AgentEvent {
	return AgentEvent{
		Role:    role,
		Created: true,
		Message: fmt.Sprintf("`%s` agent was missing. Creating it now (auto-created, no confirmation required).", role),
	}
}

func reusedEvent(role models.AgentRole) AgentEvent {
	return AgentEvent{
		Role:    role,
		Message: fmt.Sprintf("Reusing existing `%s` agent.", role),
	}
}
