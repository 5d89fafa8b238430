package services

import (
	"context"
	"testing"

	"kpi-dashboard/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateUserRole_LastSuperAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	root := f.user(t, "root@example.com", domain.RoleSuperAdmin, nil)
	admin := f.user(t, "admin@example.com", domain.RoleAdmin, nil)

	_, err := f.userSvc.UpdateUserRole(ctx, admin.Actor(), root.ID, domain.RoleMember)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBadRequest)
	assert.Contains(t, err.Error(), "last Super Admin")

	got, err := f.users.GetByID(ctx, root.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleSuperAdmin, got.Role)
}

func TestUpdateUserRole_WithSecondSuperAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	root := f.user(t, "root@example.com", domain.RoleSuperAdmin, nil)
	other := f.user(t, "root2@example.com", domain.RoleSuperAdmin, nil)

	updated, err := f.userSvc.UpdateUserRole(ctx, root.Actor(), other.ID, domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, updated.Role)
}

func TestUpdateUserRole_Rules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	admin := f.user(t, "admin@example.com", domain.RoleAdmin, nil)
	member := f.user(t, "member@example.com", domain.RoleMember, nil)

	_, err := f.userSvc.UpdateUserRole(ctx, admin.Actor(), admin.ID, domain.RoleMember)
	assert.ErrorIs(t, err, ErrCannotChangeOwnRole)

	_, err = f.userSvc.UpdateUserRole(ctx, admin.Actor(), member.ID, domain.RoleSuperAdmin)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.userSvc.UpdateUserRole(ctx, admin.Actor(), member.ID, domain.Role("OWNER"))
	assert.ErrorIs(t, err, ErrInvalidRole)

	updated, err := f.userSvc.UpdateUserRole(ctx, admin.Actor(), member.ID, domain.RoleSubLeader)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleSubLeader, updated.Role)
}

func TestDeleteUser_LastSuperAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	root := f.user(t, "root@example.com", domain.RoleSuperAdmin, nil)
	admin := f.user(t, "admin@example.com", domain.RoleAdmin, nil)

	err := f.userSvc.DeleteUser(ctx, admin.Actor(), root.ID)
	assert.ErrorIs(t, err, domain.ErrBadRequest)

	err = f.userSvc.DeleteUser(ctx, admin.Actor(), admin.ID)
	assert.ErrorIs(t, err, ErrCannotDeleteSelf)

	f.user(t, "root2@example.com", domain.RoleSuperAdmin, nil)
	require.NoError(t, f.userSvc.DeleteUser(ctx, admin.Actor(), root.ID))

	_, err = f.users.GetByID(ctx, root.ID)
	assert.Error(t, err)
}

func TestUpdateUser_DeactivateLastSuperAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	root := f.user(t, "root@example.com", domain.RoleSuperAdmin, nil)
	inactive := false

	_, err := f.userSvc.UpdateUser(ctx, root.Actor(), root.ID, &UpdateUserInput{IsActive: &inactive})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "last Super Admin")
}

func TestUpdateUser_MemberLimitedToProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	member := f.user(t, "member@example.com", domain.RoleMember, nil)
	other := f.user(t, "other@example.com", domain.RoleMember, nil)

	name := "Renamed"
	updated, err := f.userSvc.UpdateUser(ctx, member.Actor(), member.ID, &UpdateUserInput{FirstName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.FirstName)

	active := true
	_, err = f.userSvc.UpdateUser(ctx, member.Actor(), member.ID, &UpdateUserInput{IsActive: &active})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.userSvc.UpdateUser(ctx, member.Actor(), other.ID, &UpdateUserInput{FirstName: &name})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	taken := "other@example.com"
	_, err = f.userSvc.UpdateUser(ctx, member.Actor(), member.ID, &UpdateUserInput{Email: &taken})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCreateUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	admin := f.user(t, "admin@example.com", domain.RoleAdmin, nil)

	created, err := f.userSvc.CreateUser(ctx, admin.Actor(), &CreateUserInput{
		Email:     "New@Example.com",
		Password:  "password123",
		FirstName: "New",
		LastName:  "Hire",
	})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", created.Email)
	assert.Equal(t, domain.RoleMember, created.Role)

	_, err = f.userSvc.CreateUser(ctx, admin.Actor(), &CreateUserInput{
		Email: "new@example.com", Password: "password123", FirstName: "A", LastName: "B",
	})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)

	_, err = f.userSvc.CreateUser(ctx, admin.Actor(), &CreateUserInput{
		Email: "boss@example.com", Password: "password123", FirstName: "A", LastName: "B", Role: domain.RoleSuperAdmin,
	})
	assert.ErrorIs(t, err, ErrSuperAdminOnly)

	missing := "no-such-team"
	_, err = f.userSvc.CreateUser(ctx, admin.Actor(), &CreateUserInput{
		Email: "x@example.com", Password: "password123", FirstName: "A", LastName: "B", TeamID: &missing,
	})
	assert.ErrorIs(t, err, ErrTeamNotFound)
}
