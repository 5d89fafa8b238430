package services

import (
	"context"
	"testing"

	"kpi-dashboard/internal/adapters/persistence/models"
	"kpi-dashboard/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) review(t *testing.T, revieweeID string, r domain.Rating) {
	t.Helper()
	require.NoError(t, f.reviews.Create(context.Background(), &models.PerformanceReview{
		RevieweeID:    revieweeID,
		OverallRating: rating(r),
		Status:        domain.ReviewDraft,
	}))
}

func TestTeamScore_MembersWithoutReviewsCountAsZero(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	team := f.team(t, "Sales", nil)
	a := f.user(t, "a@example.com", domain.RoleMember, &team.ID)
	b := f.user(t, "b@example.com", domain.RoleMember, &team.ID)

	// (90 + 75 + 75) / 3 = 80
	f.review(t, a.ID, domain.RatingExceedsExpectations)
	f.review(t, a.ID, domain.RatingMeetsExpectations)
	f.review(t, a.ID, domain.RatingMeetsExpectations)

	score, err := f.perfSvc.TeamScore(ctx, team.ID)
	require.NoError(t, err)
	assert.Equal(t, 40.0, score.TeamAverage)
	assert.Equal(t, "Sales", score.TeamName)
	require.Len(t, score.Members, 2)
	assert.Equal(t, a.ID, score.Members[0].UserID)
	assert.Equal(t, 80.0, score.Members[0].AverageScore)
	assert.Equal(t, 3, score.Members[0].ReviewCount)
	assert.Equal(t, b.ID, score.Members[1].UserID)
	assert.Equal(t, 0.0, score.Members[1].AverageScore)
}

func TestTeamScore_EmptyTeam(t *testing.T) {
	f := newFixture(t)
	team := f.team(t, "Empty", nil)

	score, err := f.perfSvc.TeamScore(context.Background(), team.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, score.TeamAverage)
	assert.Empty(t, score.Members)

	_, err = f.perfSvc.TeamScore(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestEmployeeScore_Visibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	member := f.user(t, "member@example.com", domain.RoleMember, nil)
	peer := f.user(t, "peer@example.com", domain.RoleMember, nil)
	leader := f.user(t, "leader@example.com", domain.RoleSubLeader, nil)
	f.review(t, member.ID, domain.RatingNeedsImprovement)

	score, err := f.perfSvc.EmployeeScore(ctx, member.Actor(), member.ID)
	require.NoError(t, err)
	assert.Equal(t, 60.0, score.AverageScore)
	assert.Equal(t, 1, score.ReviewCount)

	_, err = f.perfSvc.EmployeeScore(ctx, leader.Actor(), member.ID)
	assert.NoError(t, err)

	_, err = f.perfSvc.EmployeeScore(ctx, peer.Actor(), member.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	empty, err := f.perfSvc.EmployeeScore(ctx, peer.Actor(), peer.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, empty.AverageScore)
	assert.Equal(t, 0, empty.ReviewCount)
}

func TestOverview_SortedByAverage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	low := f.team(t, "Low", nil)
	high := f.team(t, "High", nil)
	l := f.user(t, "l@example.com", domain.RoleMember, &low.ID)
	h := f.user(t, "h@example.com", domain.RoleMember, &high.ID)
	f.review(t, l.ID, domain.RatingUnsatisfactory)
	f.review(t, h.ID, domain.RatingExceedsExpectations)

	overview, err := f.perfSvc.Overview(ctx)
	require.NoError(t, err)
	require.Len(t, overview, 2)
	assert.Equal(t, "High", overview[0].TeamName)
	assert.Equal(t, 90.0, overview[0].TeamAverage)
	assert.Equal(t, 40.0, overview[1].TeamAverage)
}
