package repositories

import (
	"context"
	"testing"
	"time"

	"kpi-dashboard/internal/adapters/persistence/models"
	"kpi-dashboard/internal/adapters/persistence/testdb"
	"kpi-dashboard/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUser(t *testing.T, repo UserRepository, email string, role domain.Role, teamID *string) *models.User {
	t.Helper()
	u := &models.User{
		Email:     email,
		Password:  "hash",
		FirstName: "Test",
		LastName:  email,
		Role:      role,
		TeamID:    teamID,
		IsActive:  true,
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestUserRepository_ListFilters(t *testing.T) {
	db := testdb.New(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	teamID := "team-1"
	newUser(t, repo, "alice@example.com", domain.RoleMember, &teamID)
	newUser(t, repo, "bob@example.com", domain.RoleLeader, &teamID)
	newUser(t, repo, "carol@example.com", domain.RoleMember, nil)

	users, total, err := repo.List(ctx, UserFilter{TeamID: teamID}, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, users, 2)

	users, total, err = repo.List(ctx, UserFilter{Role: domain.RoleMember, Search: "CAROL"}, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, users, 1)
	assert.Equal(t, "carol@example.com", users[0].Email)

	_, total, err = repo.List(ctx, UserFilter{}, 0, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
}

func TestUserRepository_SoftDeleteKeepsEmailTaken(t *testing.T) {
	db := testdb.New(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := newUser(t, repo, "gone@example.com", domain.RoleMember, nil)
	require.NoError(t, repo.Delete(ctx, u.ID))

	_, err := repo.GetByID(ctx, u.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	exists, err := repo.ExistsByEmail(ctx, "GONE@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUserRepository_CountActiveByRole(t *testing.T) {
	db := testdb.New(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	newUser(t, repo, "sa1@example.com", domain.RoleSuperAdmin, nil)
	inactive := newUser(t, repo, "sa2@example.com", domain.RoleSuperAdmin, nil)
	inactive.IsActive = false
	require.NoError(t, repo.Update(ctx, inactive))

	count, err := repo.CountActiveByRole(ctx, domain.RoleSuperAdmin)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	byRole, err := repo.CountByRole(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, byRole[domain.RoleSuperAdmin])
	assert.EqualValues(t, 0, byRole[domain.RoleMember])
}

func TestTeamRepository_AssignLeader(t *testing.T) {
	db := testdb.New(t)
	users := NewUserRepository(db)
	teams := NewTeamRepository(db)
	ctx := context.Background()

	team := &models.Team{Name: "Sales", IsActive: true}
	require.NoError(t, teams.Create(ctx, team))
	u := newUser(t, users, "lead@example.com", domain.RoleMember, nil)

	require.NoError(t, teams.AssignLeader(ctx, team.ID, u.ID))

	got, err := teams.GetByID(ctx, team.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LeaderID)
	assert.Equal(t, u.ID, *got.LeaderID)

	leader, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleLeader, leader.Role)
	require.NotNil(t, leader.TeamID)
	assert.Equal(t, team.ID, *leader.TeamID)
}

func TestTeamRepository_AssignLeaderRollsBack(t *testing.T) {
	db := testdb.New(t)
	teams := NewTeamRepository(db)
	ctx := context.Background()

	team := &models.Team{Name: "Ops", IsActive: true}
	require.NoError(t, teams.Create(ctx, team))

	err := teams.AssignLeader(ctx, team.ID, "missing-user")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	got, err := teams.GetByID(ctx, team.ID)
	require.NoError(t, err)
	assert.Nil(t, got.LeaderID)
}

func TestTeamRepository_ExistsByName(t *testing.T) {
	db := testdb.New(t)
	teams := NewTeamRepository(db)
	ctx := context.Background()

	team := &models.Team{Name: "Support", IsActive: true}
	require.NoError(t, teams.Create(ctx, team))

	exists, err := teams.ExistsByName(ctx, "Support", "")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = teams.ExistsByName(ctx, "Support", team.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGoalRepository_Visibility(t *testing.T) {
	db := testdb.New(t)
	goals := NewGoalRepository(db)
	ctx := context.Background()

	team := "team-a"
	other := "team-b"
	require.NoError(t, goals.Create(ctx, &models.Goal{Title: "own", EmployeeID: "lead", Status: domain.GoalNotStarted}))
	require.NoError(t, goals.Create(ctx, &models.Goal{Title: "team", EmployeeID: "m1", TeamID: &team, Status: domain.GoalInProgress}))
	require.NoError(t, goals.Create(ctx, &models.Goal{Title: "other", EmployeeID: "m2", TeamID: &other, Status: domain.GoalInProgress}))

	list, total, err := goals.List(ctx, GoalFilter{Visibility: &GoalVisibility{OwnerID: "lead", TeamID: team}}, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, list, 2)

	_, total, err = goals.List(ctx, GoalFilter{
		Status:     domain.GoalInProgress,
		Visibility: &GoalVisibility{OwnerID: "lead", TeamID: team},
	}, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	counts, err := goals.CountByStatus(ctx, "")
	require.NoError(t, err)
	assert.EqualValues(t, 2, counts[domain.GoalInProgress])
	assert.EqualValues(t, 0, counts[domain.GoalCompleted])
}

func TestReviewRepository_RatingsByReviewee(t *testing.T) {
	db := testdb.New(t)
	reviews := NewReviewRepository(db)
	ctx := context.Background()

	exceeds := domain.RatingExceedsExpectations
	meets := domain.RatingMeetsExpectations
	require.NoError(t, reviews.Create(ctx, &models.PerformanceReview{RevieweeID: "a", OverallRating: &exceeds, Status: domain.ReviewDraft}))
	require.NoError(t, reviews.Create(ctx, &models.PerformanceReview{RevieweeID: "a", OverallRating: &meets, Status: domain.ReviewDraft}))
	require.NoError(t, reviews.Create(ctx, &models.PerformanceReview{RevieweeID: "b", Status: domain.ReviewDraft}))

	ratings, err := reviews.RatingsByReviewee(ctx, "a")
	require.NoError(t, err)
	require.Len(t, ratings["a"], 2)
	assert.Empty(t, ratings["b"])

	all, err := reviews.RatingsByReviewee(ctx)
	require.NoError(t, err)
	require.Len(t, all["b"], 1)
	assert.Nil(t, all["b"][0])
}

func TestReviewRepository_ParticipantFilter(t *testing.T) {
	db := testdb.New(t)
	reviews := NewReviewRepository(db)
	ctx := context.Background()

	reviewer := "r1"
	require.NoError(t, reviews.Create(ctx, &models.PerformanceReview{RevieweeID: "u1", Status: domain.ReviewDraft}))
	require.NoError(t, reviews.Create(ctx, &models.PerformanceReview{RevieweeID: "u2", ReviewerID: &reviewer, Status: domain.ReviewDraft}))
	require.NoError(t, reviews.Create(ctx, &models.PerformanceReview{RevieweeID: "u3", Status: domain.ReviewDraft}))

	_, total, err := reviews.List(ctx, ReviewFilter{ParticipantID: "r1"}, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	_, total, err = reviews.List(ctx, ReviewFilter{ParticipantID: "u1"}, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestRefreshTokenRepository_DeleteExpired(t *testing.T) {
	db := testdb.New(t)
	tokens := NewRefreshTokenRepository(db)
	ctx := context.Background()

	require.NoError(t, tokens.Create(ctx, &models.RefreshToken{UserID: "u", TokenHash: "live", ExpiresAt: time.Now().Add(time.Hour)}))
	require.NoError(t, tokens.Create(ctx, &models.RefreshToken{UserID: "u", TokenHash: "old", ExpiresAt: time.Now().Add(-time.Hour)}))
	require.NoError(t, tokens.Create(ctx, &models.RefreshToken{UserID: "u", TokenHash: "revoked", ExpiresAt: time.Now().Add(time.Hour)}))
	require.NoError(t, tokens.RevokeByTokenHash(ctx, "revoked"))

	deleted, err := tokens.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)

	live, err := tokens.GetByTokenHash(ctx, "live")
	require.NoError(t, err)
	assert.Equal(t, "u", live.UserID)

	_, err = tokens.GetByTokenHash(ctx, "old")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
