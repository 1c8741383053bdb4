package models

import "testing"

func TestAgentRole_Valid(t *testing.T) {
	tests := []struct {
		name string
		role AgentRole
		want bool
	}{
		{"scanner is valid", RoleScanner, true},
		{"planner is valid", RolePlanner, true},
		{"pr_manager is valid", RolePRManager, true},
		{"evolver is not a registry role", AgentRole("evolver"), false},
		{"empty string is invalid", AgentRole(""), false},
		{"unknown role is invalid", AgentRole("reviewer"), false},
		{"uppercase is invalid", AgentRole("SCANNER"), false},
		{"dash variant is invalid", AgentRole("pr-manager"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.role.Valid(); got != tt.want {
				t.Errorf("AgentRole(%q).Valid() = %v, want %v", tt.role, got, tt.want)
			}
		})
	}
}

func TestAgentRole_Description(t *testing.T) {
	for _, role := range AllRoles {
		if role.Description() == "" {
			t.Errorf("AgentRole(%q).Description() is empty", role)
		}
	}
	if got := AgentRole("unknown").Description(); got != "" {
		t.Errorf("unknown role description = %q, want empty", got)
	}
}

func TestAllRoles_Order(t *testing.T) {
	want := []AgentRole{RoleScanner, RolePlanner, RolePRManager}
	if len(AllRoles) != len(want) {
		t.Fatalf("len(AllRoles) = %d, want %d", len(AllRoles), len(want))
	}
	for i, r := range want {
		if AllRoles[i] != r {
			t.Errorf("AllRoles[%d] = %q, want %q", i, AllRoles[i], r)
		}
	}
}

func TestAgentStatus_State(t *testing.T) {
	if got := (AgentStatus{Active: true}).State(); got != "active" {
		t.Errorf("active State() = %q, want %q", got, "active")
	}
	if got := (AgentStatus{}).State(); got != "idle" {
		t.Errorf("idle State() = %q, want %q", got, "idle")
	}
}
