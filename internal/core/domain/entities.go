package domain

// Role represents user role in the system
type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleLeader     Role = "LEADER"
	RoleSubLeader  Role = "SUB_LEADER"
	RoleMember     Role = "MEMBER"
)

// Roles lists every role accepted by the API
var Roles = []Role{RoleSuperAdmin, RoleAdmin, RoleLeader, RoleSubLeader, RoleMember}

// AdminRoles are the admin-tier roles
var AdminRoles = []Role{RoleAdmin, RoleSuperAdmin}

// LeaderRoles are the roles that lead a team
var LeaderRoles = []Role{RoleLeader, RoleSubLeader}

// IsValid reports whether r is one of the known roles
func (r Role) IsValid() bool {
	return r.In(Roles...)
}

// In reports set membership. Roles are never compared by rank.
func (r Role) In(roles ...Role) bool {
	for _, role := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// Rating is a performance review outcome
type Rating string

const (
	RatingExceedsExpectations Rating = "EXCEEDS_EXPECTATIONS"
	RatingMeetsExpectations   Rating = "MEETS_EXPECTATIONS"
	RatingNeedsImprovement    Rating = "NEEDS_IMPROVEMENT"
	RatingUnsatisfactory      Rating = "UNSATISFACTORY"
)

// GoalStatus is the free-form lifecycle status of a goal
type GoalStatus string

const (
	GoalNotStarted GoalStatus = "NOT_STARTED"
	GoalInProgress GoalStatus = "IN_PROGRESS"
	GoalCompleted  GoalStatus = "COMPLETED"
	GoalCancelled  GoalStatus = "CANCELLED"
)

// GoalStatuses lists every goal status
var GoalStatuses = []GoalStatus{GoalNotStarted, GoalInProgress, GoalCompleted, GoalCancelled}

// ReviewStatus is the status of a performance review
type ReviewStatus string

const (
	ReviewDraft     ReviewStatus = "DRAFT"
	ReviewSubmitted ReviewStatus = "SUBMITTED"
	ReviewCompleted ReviewStatus = "COMPLETED"
)

// Actor is the authenticated caller of a request.
// It is built by the auth middleware and passed explicitly to services.
type Actor struct {
	ID     string
	Email  string
	Role   Role
	TeamID *string
}

// IsAdmin reports whether the actor holds an admin-tier role
func (a *Actor) IsAdmin() bool {
	return a != nil && a.Role.In(AdminRoles...)
}

// HasTeam reports whether the actor belongs to a team
func (a *Actor) HasTeam() bool {
	return a != nil && a.TeamID != nil && *a.TeamID != ""
}

// InTeam reports whether the actor belongs to the given team
func (a *Actor) InTeam(teamID *string) bool {
	return a.HasTeam() && teamID != nil && *a.TeamID == *teamID
}
