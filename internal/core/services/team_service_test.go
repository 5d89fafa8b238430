package services

import (
	"context"
	"testing"

	"kpi-dashboard/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTeam_LeaderAttachmentIsBestEffort(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	missing := "no-such-user"
	team, err := f.teamSvc.Create(ctx, &CreateTeamInput{Name: "Sales", LeaderID: &missing})
	require.NoError(t, err)

	got, err := f.teams.GetByID(ctx, team.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sales", got.Name)

	_, err = f.teamSvc.Create(ctx, &CreateTeamInput{Name: "Sales"})
	assert.ErrorIs(t, err, ErrTeamNameExists)
}

func TestCreateTeam_AttachesLeader(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	lead := f.user(t, "lead@example.com", domain.RoleMember, nil)
	team, err := f.teamSvc.Create(ctx, &CreateTeamInput{Name: "Ops", LeaderID: &lead.ID})
	require.NoError(t, err)

	got, err := f.users.GetByID(ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleLeader, got.Role)
	require.NotNil(t, got.TeamID)
	assert.Equal(t, team.ID, *got.TeamID)
}

func TestSetLeader(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	team := f.team(t, "Sales", nil)
	user := f.user(t, "u@example.com", domain.RoleMember, nil)

	detail, err := f.teamSvc.SetLeader(ctx, team.ID, user.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.LeaderID)
	assert.Equal(t, user.ID, *detail.LeaderID)
	require.Len(t, detail.Members, 1)
	assert.Equal(t, domain.RoleLeader, detail.Members[0].Role)

	_, err = f.teamSvc.SetLeader(ctx, team.ID, "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestTeamMembers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	team := f.team(t, "Sales", nil)
	user := f.user(t, "u@example.com", domain.RoleMember, nil)

	detail, err := f.teamSvc.AddMember(ctx, team.ID, user.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Members, 1)

	require.NoError(t, f.teamSvc.RemoveMember(ctx, team.ID, user.ID))
	assert.ErrorIs(t, f.teamSvc.RemoveMember(ctx, team.ID, user.ID), ErrNotTeamMember)

	got, err := f.users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, got.TeamID)
}

func TestBranchDetailIncludesTeams(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	branch, err := f.branchSvc.Create(ctx, &BranchInput{Name: "HQ", City: "Bangkok"})
	require.NoError(t, err)

	_, err = f.branchSvc.Create(ctx, &BranchInput{Name: "HQ"})
	assert.ErrorIs(t, err, ErrBranchNameExists)

	_, err = f.teamSvc.Create(ctx, &CreateTeamInput{Name: "Sales", BranchID: &branch.ID})
	require.NoError(t, err)

	detail, err := f.branchSvc.Get(ctx, branch.ID)
	require.NoError(t, err)
	require.Len(t, detail.Teams, 1)
	assert.Equal(t, "Sales", detail.Teams[0].Name)

	require.NoError(t, f.branchSvc.Delete(ctx, branch.ID))
	_, err = f.branchSvc.Get(ctx, branch.ID)
	assert.ErrorIs(t, err, ErrBranchNotFound)
}

func TestSetLeader_KeepsLastSuperAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	team := f.team(t, "Sales", nil)
	root := f.user(t, "root@example.com", domain.RoleSuperAdmin, nil)

	_, err := f.teamSvc.SetLeader(ctx, team.ID, root.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBadRequest)
	assert.Contains(t, err.Error(), "last Super Admin")

	got, err := f.users.GetByID(ctx, root.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleSuperAdmin, got.Role)
	assert.Nil(t, got.TeamID)

	stored, err := f.teams.GetByID(ctx, team.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.LeaderID)

	count, err := f.users.CountActiveByRole(ctx, domain.RoleSuperAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSetLeader_SuperAdminWithAnotherActive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	team := f.team(t, "Sales", nil)
	root := f.user(t, "root@example.com", domain.RoleSuperAdmin, nil)
	f.user(t, "root2@example.com", domain.RoleSuperAdmin, nil)

	detail, err := f.teamSvc.SetLeader(ctx, team.ID, root.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.LeaderID)
	assert.Equal(t, root.ID, *detail.LeaderID)

	got, err := f.users.GetByID(ctx, root.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleLeader, got.Role)
}

func TestCreateTeam_LastSuperAdminIsNotAttachedAsLeader(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	root := f.user(t, "root@example.com", domain.RoleSuperAdmin, nil)

	team, err := f.teamSvc.Create(ctx, &CreateTeamInput{Name: "Ops", LeaderID: &root.ID})
	require.NoError(t, err)

	_, err = f.teams.GetByID(ctx, team.ID)
	require.NoError(t, err)

	got, err := f.users.GetByID(ctx, root.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleSuperAdmin, got.Role)
	assert.Nil(t, got.TeamID)

	count, err := f.users.CountActiveByRole(ctx, domain.RoleSuperAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
