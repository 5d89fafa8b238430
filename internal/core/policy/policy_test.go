package policy

import (
	"errors"
	"testing"

	"kpi-dashboard/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func actor(id string, role domain.Role, teamID *string) *domain.Actor {
	return &domain.Actor{ID: id, Role: role, TeamID: teamID}
}

func TestAuthorize_EmptyAllowsEveryRole(t *testing.T) {
	for _, role := range domain.Roles {
		assert.NoError(t, Authorize(actor("u1", role, nil)), "role %s", role)
	}
}

func TestAuthorize(t *testing.T) {
	err := Authorize(nil, domain.RoleAdmin)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))

	err = Authorize(actor("u1", domain.RoleMember, nil), domain.RoleAdmin, domain.RoleSuperAdmin)
	assert.True(t, errors.Is(err, domain.ErrForbidden))

	assert.NoError(t, Authorize(actor("u1", domain.RoleSuperAdmin, nil), domain.RoleAdmin, domain.RoleSuperAdmin))
}

func TestOwnerOrAdmin(t *testing.T) {
	for _, role := range domain.AdminRoles {
		assert.NoError(t, OwnerOrAdmin(actor("a1", role, nil), "someone-else"))
	}

	for _, role := range []domain.Role{domain.RoleLeader, domain.RoleSubLeader, domain.RoleMember} {
		a := actor("u1", role, nil)
		assert.NoError(t, OwnerOrAdmin(a, "u1"))

		err := OwnerOrAdmin(a, "u2")
		assert.True(t, errors.Is(err, domain.ErrForbidden), "role %s", role)
	}

	assert.True(t, errors.Is(OwnerOrAdmin(nil, "u1"), domain.ErrUnauthorized))
}

func TestTeamLeaderOrAdmin(t *testing.T) {
	allowed := []domain.Role{domain.RoleSuperAdmin, domain.RoleAdmin, domain.RoleLeader, domain.RoleSubLeader}
	for _, role := range allowed {
		assert.NoError(t, TeamLeaderOrAdmin(actor("u1", role, nil)))
	}
	assert.True(t, errors.Is(TeamLeaderOrAdmin(actor("u1", domain.RoleMember, nil)), domain.ErrForbidden))
}

func TestGuardLastSuperAdmin(t *testing.T) {
	err := GuardLastSuperAdmin(domain.RoleSuperAdmin, 1, OpChangeRole)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
	assert.Contains(t, err.Error(), "last Super Admin")

	err = GuardLastSuperAdmin(domain.RoleSuperAdmin, 0, OpDelete)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))

	assert.NoError(t, GuardLastSuperAdmin(domain.RoleSuperAdmin, 2, OpDelete))
	assert.NoError(t, GuardLastSuperAdmin(domain.RoleAdmin, 1, OpDelete))
}

func TestGoalRules(t *testing.T) {
	teamA := strPtr("team-a")
	teamB := strPtr("team-b")
	goal := GoalRef{EmployeeID: "emp", TeamID: teamA}

	tests := []struct {
		name       string
		actor      *domain.Actor
		wantView   bool
		wantDelete bool
	}{
		{"admin", actor("x", domain.RoleAdmin, nil), true, true},
		{"super admin", actor("x", domain.RoleSuperAdmin, nil), true, true},
		{"employee", actor("emp", domain.RoleMember, nil), true, true},
		{"leader same team", actor("x", domain.RoleLeader, teamA), true, true},
		{"sub leader same team", actor("x", domain.RoleSubLeader, teamA), true, false},
		{"member same team", actor("x", domain.RoleMember, teamA), true, false},
		{"leader other team", actor("x", domain.RoleLeader, teamB), false, false},
		{"member no team", actor("x", domain.RoleMember, nil), false, false},
		{"nil actor", nil, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantView, CanViewGoal(tt.actor, goal))
			assert.Equal(t, tt.wantDelete, CanDeleteGoal(tt.actor, goal))
		})
	}
}

func TestGoalRules_TeamlessGoal(t *testing.T) {
	goal := GoalRef{EmployeeID: "emp"}
	assert.False(t, CanViewGoal(actor("x", domain.RoleLeader, strPtr("team-a")), goal))
	assert.False(t, CanDeleteGoal(actor("x", domain.RoleLeader, strPtr("team-a")), goal))
}

func TestCanManageEmployeeGoals(t *testing.T) {
	teamA := strPtr("team-a")
	assert.True(t, CanManageEmployeeGoals(actor("emp", domain.RoleMember, nil), "emp", nil))
	assert.True(t, CanManageEmployeeGoals(actor("x", domain.RoleSubLeader, teamA), "emp", teamA))
	assert.False(t, CanManageEmployeeGoals(actor("x", domain.RoleMember, teamA), "emp", teamA))
	assert.False(t, CanManageEmployeeGoals(actor("x", domain.RoleLeader, teamA), "emp", nil))
}

func TestCanReview(t *testing.T) {
	subject := ReviewSubject{
		RevieweeID:           "reviewee",
		ReviewerID:           strPtr("reviewer"),
		RevieweeTeamLeaderID: strPtr("leader"),
	}

	reviewer := actor("reviewer", domain.RoleLeader, nil)
	reviewee := actor("reviewee", domain.RoleMember, nil)
	leader := actor("leader", domain.RoleLeader, nil)
	stranger := actor("stranger", domain.RoleLeader, nil)
	admin := actor("admin", domain.RoleAdmin, nil)

	// create is admin only, even for the assigned reviewer
	assert.True(t, CanReview(admin, ReviewCreate, subject))
	assert.False(t, CanReview(reviewer, ReviewCreate, subject))

	assert.True(t, CanReview(reviewer, ReviewUpdate, subject))
	assert.True(t, CanReview(reviewer, ReviewFinalize, subject))
	assert.False(t, CanReview(reviewee, ReviewUpdate, subject))
	assert.False(t, CanReview(leader, ReviewFinalize, subject))

	assert.True(t, CanReview(reviewee, ReviewView, subject))
	assert.True(t, CanReview(leader, ReviewView, subject))
	assert.False(t, CanReview(stranger, ReviewView, subject))
	assert.False(t, CanReview(reviewer, ReviewView, subject))

	assert.False(t, CanReview(reviewer, ReviewDelete, subject))
	assert.True(t, CanReview(admin, ReviewDelete, subject))
	assert.False(t, CanReview(nil, ReviewView, subject))
}

func TestCanReview_RevieweeWithoutTeam(t *testing.T) {
	subject := ReviewSubject{RevieweeID: "reviewee"}

	assert.False(t, CanReview(actor("leader", domain.RoleLeader, nil), ReviewView, subject))
	assert.True(t, CanReview(actor("a", domain.RoleSuperAdmin, nil), ReviewView, subject))
	assert.True(t, CanReview(actor("reviewee", domain.RoleMember, nil), ReviewView, subject))
}
