package models

import "fmt"

// RoleSkillCount is the number of key skills every generated role must carry.
const RoleSkillCount = 3

// Role is a generated persona assigned to a task. It frames the execution
// agent's behavior and is immutable once assigned.
type Role struct {
	// Name is the unique, human-readable persona name.
	Name string `json:"name"`
	// Description explains the persona and why it fits its task.
	Description string `json:"description"`
	// KeySkills lists exactly RoleSkillCount skills, in priority order.
	KeySkills []string `json:"key_skills"`
}

// Validate checks that the role satisfies the generation contract.
func (r *Role) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("role name is empty")
	}
	if r.Description == "" {
		return fmt.Errorf("role %q has no description", r.Name)
	}
	if len(r.KeySkills) != RoleSkillCount {
		return fmt.Errorf("role %q has %d key skills, want %d", r.Name, len(r.KeySkills), RoleSkillCount)
	}
	for i, s := range r.KeySkills {
		if s == "" {
			return fmt.Errorf("role %q has empty key skill at index %d", r.Name, i)
		}
	}
	return nil
}

// Task represents one decomposed unit of work derived from the user's query.
type Task struct {
	// ID is the unique identifier for this task.
	ID string `json:"id"`
	// Description is the natural-language statement of the work.
	Description string `json:"description"`
	// Role is the persona assigned to this task. Nil until role assignment.
	Role *Role `json:"role,omitempty"`
}
