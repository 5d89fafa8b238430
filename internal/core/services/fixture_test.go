package services

import (
	"context"
	"testing"

	"kpi-dashboard/internal/adapters/persistence/models"
	"kpi-dashboard/internal/adapters/persistence/repositories"
	"kpi-dashboard/internal/adapters/persistence/testdb"
	"kpi-dashboard/internal/config"
	"kpi-dashboard/internal/core/domain"
	"kpi-dashboard/internal/pkg/logger"
	"kpi-dashboard/internal/pkg/password"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fixture struct {
	db        *gorm.DB
	users     repositories.UserRepository
	teams     repositories.TeamRepository
	branches  repositories.BranchRepository
	goals     repositories.GoalRepository
	reviews   repositories.ReviewRepository
	tokens    repositories.RefreshTokenRepository
	auth      *AuthService
	userSvc   *UserService
	teamSvc   *TeamService
	branchSvc *BranchService
	goalSvc   *GoalService
	reviewSvc *ReviewService
	perfSvc   *PerformanceService
	dashSvc   *DashboardService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	password.Cost = bcrypt.MinCost

	db := testdb.New(t)
	log := logger.Discard()
	f := &fixture{
		db:       db,
		users:    repositories.NewUserRepository(db),
		teams:    repositories.NewTeamRepository(db),
		branches: repositories.NewBranchRepository(db),
		goals:    repositories.NewGoalRepository(db),
		reviews:  repositories.NewReviewRepository(db),
		tokens:   repositories.NewRefreshTokenRepository(db),
	}

	jwtCfg := config.JWTConfig{
		Secret:           "test-secret",
		RefreshSecret:    "test-refresh-secret",
		AccessTokenMins:  15,
		RefreshTokenDays: 7,
	}
	f.auth = NewAuthService(f.users, f.tokens, jwtCfg, log)
	f.userSvc = NewUserService(f.users, f.teams, f.branches, f.tokens, log)
	f.teamSvc = NewTeamService(f.teams, f.users, f.branches, log)
	f.branchSvc = NewBranchService(f.branches, f.teams, log)
	f.goalSvc = NewGoalService(f.goals, f.users, log)
	f.reviewSvc = NewReviewService(f.reviews, f.users, f.teams, log)
	f.perfSvc = NewPerformanceService(f.reviews, f.users, f.teams)
	f.dashSvc = NewDashboardService(f.users, f.teams, f.branches, f.goals, f.reviews)
	return f
}

func (f *fixture) user(t *testing.T, email string, role domain.Role, teamID *string) *models.User {
	t.Helper()
	hashed, err := password.Hash("password123")
	require.NoError(t, err)

	u := &models.User{
		Email:     email,
		Password:  hashed,
		FirstName: "User",
		LastName:  email,
		Role:      role,
		TeamID:    teamID,
		IsActive:  true,
	}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *fixture) team(t *testing.T, name string, leaderID *string) *models.Team {
	t.Helper()
	team := &models.Team{Name: name, LeaderID: leaderID, IsActive: true}
	require.NoError(t, f.teams.Create(context.Background(), team))
	return team
}
