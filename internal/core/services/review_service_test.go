package services

import (
	"context"
	"testing"

	"kpi-dashboard/internal/core/domain"
	"kpi-dashboard/internal/pkg/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rating(r domain.Rating) *domain.Rating {
	return &r
}

func TestReview_CreateIsAdminOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	admin := f.user(t, "admin@example.com", domain.RoleAdmin, nil)
	leader := f.user(t, "leader@example.com", domain.RoleLeader, nil)
	member := f.user(t, "member@example.com", domain.RoleMember, nil)

	_, err := f.reviewSvc.Create(ctx, leader.Actor(), &CreateReviewInput{RevieweeID: member.ID})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.reviewSvc.Create(ctx, admin.Actor(), &CreateReviewInput{RevieweeID: "missing"})
	assert.ErrorIs(t, err, ErrEmployeeNotFound)

	review, err := f.reviewSvc.Create(ctx, admin.Actor(), &CreateReviewInput{RevieweeID: member.ID, ReviewerID: &leader.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.ReviewDraft, review.Status)
	require.NotNil(t, review.ReviewerID)
	assert.Equal(t, leader.ID, *review.ReviewerID)
}

func TestReview_ReviewerMayUpdateAndFinalize(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	admin := f.user(t, "admin@example.com", domain.RoleAdmin, nil)
	reviewer := f.user(t, "reviewer@example.com", domain.RoleLeader, nil)
	member := f.user(t, "member@example.com", domain.RoleMember, nil)

	review, err := f.reviewSvc.Create(ctx, admin.Actor(), &CreateReviewInput{RevieweeID: member.ID, ReviewerID: &reviewer.ID})
	require.NoError(t, err)

	_, err = f.reviewSvc.Finalize(ctx, reviewer.Actor(), review.ID)
	assert.ErrorIs(t, err, ErrRatingRequired)

	feedback := "Solid quarter"
	_, err = f.reviewSvc.Update(ctx, member.Actor(), review.ID, &UpdateReviewInput{Feedback: &feedback})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	updated, err := f.reviewSvc.Update(ctx, reviewer.Actor(), review.ID, &UpdateReviewInput{
		Feedback:      &feedback,
		OverallRating: rating(domain.RatingMeetsExpectations),
	})
	require.NoError(t, err)
	assert.Equal(t, feedback, updated.Feedback)

	finalized, err := f.reviewSvc.Finalize(ctx, reviewer.Actor(), review.ID)
	require.NoError(t, err)
	assert.True(t, finalized.IsFinalized)
	assert.NotNil(t, finalized.FinalizedAt)
	assert.Equal(t, domain.ReviewCompleted, finalized.Status)

	_, err = f.reviewSvc.Finalize(ctx, reviewer.Actor(), review.ID)
	assert.ErrorIs(t, err, ErrAlreadyFinalized)

	_, err = f.reviewSvc.Update(ctx, reviewer.Actor(), review.ID, &UpdateReviewInput{Feedback: &feedback})
	assert.ErrorIs(t, err, ErrReviewFinalized)

	changed := "Admin correction"
	updated, err = f.reviewSvc.Update(ctx, admin.Actor(), review.ID, &UpdateReviewInput{Feedback: &changed})
	require.NoError(t, err)
	assert.Equal(t, changed, updated.Feedback)
}

func TestReview_ViewPolicy(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	admin := f.user(t, "admin@example.com", domain.RoleAdmin, nil)
	leader := f.user(t, "leader@example.com", domain.RoleLeader, nil)
	team := f.team(t, "Sales", &leader.ID)
	member := f.user(t, "member@example.com", domain.RoleMember, &team.ID)
	loner := f.user(t, "loner@example.com", domain.RoleMember, nil)
	stranger := f.user(t, "stranger@example.com", domain.RoleLeader, nil)

	review, err := f.reviewSvc.Create(ctx, admin.Actor(), &CreateReviewInput{RevieweeID: member.ID})
	require.NoError(t, err)
	lonerReview, err := f.reviewSvc.Create(ctx, admin.Actor(), &CreateReviewInput{RevieweeID: loner.ID})
	require.NoError(t, err)

	_, err = f.reviewSvc.Get(ctx, member.Actor(), review.ID)
	assert.NoError(t, err)
	_, err = f.reviewSvc.Get(ctx, leader.Actor(), review.ID)
	assert.NoError(t, err)
	_, err = f.reviewSvc.Get(ctx, stranger.Actor(), review.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// a reviewee without a team still sees their own review
	_, err = f.reviewSvc.Get(ctx, loner.Actor(), lonerReview.ID)
	assert.NoError(t, err)
	_, err = f.reviewSvc.Get(ctx, leader.Actor(), lonerReview.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, total, err := f.reviewSvc.ListByEmployee(ctx, leader.Actor(), member.ID, pagination.New(1, 10))
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	_, _, err = f.reviewSvc.ListByEmployee(ctx, stranger.Actor(), member.ID, pagination.New(1, 10))
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestReview_DeleteIsAdminOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	admin := f.user(t, "admin@example.com", domain.RoleAdmin, nil)
	reviewer := f.user(t, "reviewer@example.com", domain.RoleLeader, nil)
	member := f.user(t, "member@example.com", domain.RoleMember, nil)

	review, err := f.reviewSvc.Create(ctx, admin.Actor(), &CreateReviewInput{RevieweeID: member.ID, ReviewerID: &reviewer.ID})
	require.NoError(t, err)

	assert.ErrorIs(t, f.reviewSvc.Delete(ctx, reviewer.Actor(), review.ID), domain.ErrForbidden)
	assert.NoError(t, f.reviewSvc.Delete(ctx, admin.Actor(), review.ID))

	_, err = f.reviewSvc.Get(ctx, admin.Actor(), review.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
