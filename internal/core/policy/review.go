package policy

import "kpi-dashboard/internal/core/domain"

// ReviewAction is an operation on a performance review
type ReviewAction string

const (
	ReviewCreate   ReviewAction = "create"
	ReviewView     ReviewAction = "view"
	ReviewUpdate   ReviewAction = "update"
	ReviewFinalize ReviewAction = "finalize"
	ReviewDelete   ReviewAction = "delete"
)

// ReviewRule lists who besides admins may perform an action
type ReviewRule struct {
	Reviewer   bool
	Reviewee   bool
	TeamLeader bool
}

// ReviewPolicy is the audit table for review permissions. Admin-tier
// actors are always allowed. Creation is admin-only while the assigned
// reviewer may update and finalize.
var ReviewPolicy = map[ReviewAction]ReviewRule{
	ReviewCreate:   {},
	ReviewView:     {Reviewee: true, TeamLeader: true},
	ReviewUpdate:   {Reviewer: true},
	ReviewFinalize: {Reviewer: true},
	ReviewDelete:   {},
}

// ReviewSubject holds the identities a review rule checks against.
// RevieweeTeamLeaderID is the leaderId of the reviewee's team, nil when
// the reviewee has no team or the team has no leader.
type ReviewSubject struct {
	RevieweeID           string
	ReviewerID           *string
	RevieweeTeamLeaderID *string
}

// CanReview evaluates ReviewPolicy for the actor
func CanReview(actor *domain.Actor, action ReviewAction, subject ReviewSubject) bool {
	if actor == nil {
		return false
	}
	if actor.IsAdmin() {
		return true
	}

	rule, ok := ReviewPolicy[action]
	if !ok {
		return false
	}

	if rule.Reviewee && actor.ID == subject.RevieweeID {
		return true
	}
	if rule.Reviewer && subject.ReviewerID != nil && *subject.ReviewerID == actor.ID {
		return true
	}
	if rule.TeamLeader && subject.RevieweeTeamLeaderID != nil && *subject.RevieweeTeamLeaderID == actor.ID {
		return true
	}
	return false
}
