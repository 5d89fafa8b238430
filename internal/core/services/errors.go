package services

import (
	"errors"

	"kpi-dashboard/internal/core/domain"

	"gorm.io/gorm"
)

// Service errors. Each wraps a domain error kind so handlers can map it.
var (
	ErrUserNotFound        = domain.NotFound("User not found")
	ErrTeamNotFound        = domain.NotFound("Team not found")
	ErrBranchNotFound      = domain.NotFound("Branch not found")
	ErrGoalNotFound        = domain.NotFound("Goal not found")
	ErrReviewNotFound      = domain.NotFound("Performance review not found")
	ErrEmployeeNotFound    = domain.NotFound("Employee not found")
	ErrInvalidCredentials  = domain.Unauthorized("Invalid email or password")
	ErrInvalidToken        = domain.Unauthorized("Invalid refresh token")
	ErrTokenExpired        = domain.Unauthorized("Refresh token expired")
	ErrTokenRevoked        = domain.Unauthorized("Refresh token revoked")
	ErrUserInactive        = domain.Forbidden("User account is inactive")
	ErrEmailAlreadyExists  = domain.Conflict("Email already exists")
	ErrTeamNameExists      = domain.Conflict("Team name already exists")
	ErrBranchNameExists    = domain.Conflict("Branch name already exists")
	ErrOldPasswordWrong    = domain.BadRequest("Old password is incorrect")
	ErrWeakPassword        = domain.Validation("Password must be at least 8 characters")
	ErrCannotDeleteSelf    = domain.BadRequest("Cannot delete your own account")
	ErrCannotChangeOwnRole = domain.BadRequest("Cannot change your own role")
	ErrInvalidRole         = domain.Validation("Invalid role")
	ErrInvalidRating       = domain.Validation("Invalid rating")
	ErrInvalidGoalStatus   = domain.Validation("Invalid goal status")
	ErrReviewFinalized     = domain.BadRequest("Cannot modify a finalized review")
	ErrAlreadyFinalized    = domain.BadRequest("Review is already finalized")
	ErrRatingRequired      = domain.BadRequest("Overall rating is required to finalize a review")
	ErrNotTeamMember       = domain.BadRequest("User is not a member of this team")
	ErrAdminFieldsOnly     = domain.Forbidden("Only administrators can change these fields")
	ErrSuperAdminOnly      = domain.Forbidden("Only a Super Admin can grant the Super Admin role")
	ErrForbidden           = domain.Forbidden("You don't have permission to access this resource")
)

// notFound maps gorm.ErrRecordNotFound to the given service error
func notFound(err error, mapped error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return mapped
	}
	return err
}

// isNotFound reports a missing row
func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func strPtr(s string) *string {
	return &s
}

// emptyToNil turns an empty string into a cleared reference
func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
