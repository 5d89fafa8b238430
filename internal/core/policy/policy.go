// Package policy holds every authorization rule of the API.
// Rules are pure predicates over the actor and the target resource.
package policy

import (
	"kpi-dashboard/internal/core/domain"
)

const deniedMessage = "You don't have permission to access this resource"

// Authorize permits the actor if its role is in allowed.
// An empty allowed set permits any authenticated actor.
func Authorize(actor *domain.Actor, allowed ...domain.Role) error {
	if actor == nil {
		return domain.Unauthorized("Unauthorized")
	}
	if len(allowed) == 0 || actor.Role.In(allowed...) {
		return nil
	}
	return domain.Forbidden(deniedMessage)
}

// OwnerOrAdmin permits admin-tier actors or the owner of the resource
func OwnerOrAdmin(actor *domain.Actor, ownerID string) error {
	if actor == nil {
		return domain.Unauthorized("Unauthorized")
	}
	if actor.IsAdmin() || ownerID == actor.ID {
		return nil
	}
	return domain.Forbidden(deniedMessage)
}

// TeamLeaderOrAdmin permits admin-tier actors and team leaders
func TeamLeaderOrAdmin(actor *domain.Actor) error {
	if actor == nil {
		return domain.Unauthorized("Unauthorized")
	}
	if actor.IsAdmin() || actor.Role.In(domain.LeaderRoles...) {
		return nil
	}
	return domain.Forbidden(deniedMessage)
}

// SuperAdminOp names the mutation guarded by GuardLastSuperAdmin
type SuperAdminOp string

const (
	OpChangeRole SuperAdminOp = "change the role of"
	OpDeactivate SuperAdminOp = "deactivate"
	OpDelete     SuperAdminOp = "delete"
)

// GuardLastSuperAdmin rejects mutating a SUPER_ADMIN when at most one
// active super admin exists. The actor's own role does not matter.
func GuardLastSuperAdmin(currentRole domain.Role, activeSuperAdmins int64, op SuperAdminOp) error {
	if currentRole != domain.RoleSuperAdmin {
		return nil
	}
	if activeSuperAdmins <= 1 {
		return domain.BadRequest("Cannot " + string(op) + " the last Super Admin")
	}
	return nil
}

// GoalRef is the part of a goal the rules look at
type GoalRef struct {
	EmployeeID string
	TeamID     *string
}

// CanViewGoal: admin, the goal's employee, or any member of the goal's team
func CanViewGoal(actor *domain.Actor, goal GoalRef) bool {
	if actor == nil {
		return false
	}
	if actor.IsAdmin() || actor.ID == goal.EmployeeID {
		return true
	}
	return actor.InTeam(goal.TeamID)
}

// CanDeleteGoal: admin, the goal's employee, or the LEADER of the goal's team.
// Goal edits use the same rule.
func CanDeleteGoal(actor *domain.Actor, goal GoalRef) bool {
	if actor == nil {
		return false
	}
	if actor.IsAdmin() || actor.ID == goal.EmployeeID {
		return true
	}
	return actor.InTeam(goal.TeamID) && actor.Role == domain.RoleLeader
}

// CanManageEmployeeGoals reports whether the actor may create goals for
// the given employee.
func CanManageEmployeeGoals(actor *domain.Actor, employeeID string, employeeTeamID *string) bool {
	if actor == nil {
		return false
	}
	if actor.IsAdmin() || actor.ID == employeeID {
		return true
	}
	return actor.Role.In(domain.LeaderRoles...) && actor.InTeam(employeeTeamID)
}
