package models

import (
	"testing"
	"time"

	"kpi-dashboard/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoalSetStatus_StampsCompletedAtOnce(t *testing.T) {
	g := &Goal{Status: domain.GoalInProgress}

	first := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	g.SetStatus(domain.GoalCompleted, first)
	require.NotNil(t, g.CompletedAt)
	assert.Equal(t, first, *g.CompletedAt)

	// already completed: the stamp is kept
	g.SetStatus(domain.GoalCompleted, first.Add(time.Hour))
	assert.Equal(t, first, *g.CompletedAt)

	g.SetStatus(domain.GoalInProgress, first.Add(2*time.Hour))
	assert.Equal(t, domain.GoalInProgress, g.Status)
	assert.Equal(t, first, *g.CompletedAt)
}

func TestUser_FullNameAndActor(t *testing.T) {
	team := "team-1"
	u := &User{Base: Base{ID: "u1"}, Email: "a@b.co", FirstName: "Ada", LastName: "Lovelace", Role: domain.RoleLeader, TeamID: &team}

	assert.Equal(t, "Ada Lovelace", u.FullName())

	a := u.Actor()
	assert.Equal(t, "u1", a.ID)
	assert.Equal(t, domain.RoleLeader, a.Role)
	assert.Equal(t, &team, a.TeamID)
}
