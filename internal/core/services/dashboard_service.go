package services

import (
	"context"
	"sort"

	"kpi-dashboard/internal/adapters/persistence/repositories"
	"kpi-dashboard/internal/core/domain"
	"kpi-dashboard/internal/core/scoring"
)

// topPerformersLimit caps the leaderboard on the admin dashboard
const topPerformersLimit = 5

// DashboardService handles dashboard operations
type DashboardService struct {
	userRepo   repositories.UserRepository
	teamRepo   repositories.TeamRepository
	branchRepo repositories.BranchRepository
	goalRepo   repositories.GoalRepository
	reviewRepo repositories.ReviewRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	userRepo repositories.UserRepository,
	teamRepo repositories.TeamRepository,
	branchRepo repositories.BranchRepository,
	goalRepo repositories.GoalRepository,
	reviewRepo repositories.ReviewRepository,
) *DashboardService {
	return &DashboardService{
		userRepo:   userRepo,
		teamRepo:   teamRepo,
		branchRepo: branchRepo,
		goalRepo:   goalRepo,
		reviewRepo: reviewRepo,
	}
}

// ============================================================
// Admin Dashboard
// ============================================================

// StatsData represents organisation-wide statistics
type StatsData struct {
	// User Statistics
	TotalUsers  int64                 `json:"totalUsers"`
	UsersByRole map[domain.Role]int64 `json:"usersByRole"`

	// Structure
	TotalTeams    int64 `json:"totalTeams"`
	TotalBranches int64 `json:"totalBranches"`

	// Goal Statistics
	TotalGoals    int64                       `json:"totalGoals"`
	GoalsByStatus map[domain.GoalStatus]int64 `json:"goalsByStatus"`

	// Review Statistics
	FinalizedReviews int64   `json:"finalizedReviews"`
	PendingReviews   int64   `json:"pendingReviews"`
	AverageScore     float64 `json:"averageScore"`

	// Top Performers
	TopPerformers []scoring.MemberScore `json:"topPerformers"`
}

// GetStats returns organisation-wide statistics
func (s *DashboardService) GetStats(ctx context.Context) (*StatsData, error) {
	data := &StatsData{}
	var err error

	if data.UsersByRole, err = s.userRepo.CountByRole(ctx); err != nil {
		return nil, err
	}
	for _, n := range data.UsersByRole {
		data.TotalUsers += n
	}

	if data.TotalTeams, err = s.teamRepo.Count(ctx); err != nil {
		return nil, err
	}
	if data.TotalBranches, err = s.branchRepo.Count(ctx); err != nil {
		return nil, err
	}

	if data.GoalsByStatus, err = s.goalRepo.CountByStatus(ctx, ""); err != nil {
		return nil, err
	}
	for _, n := range data.GoalsByStatus {
		data.TotalGoals += n
	}

	if data.FinalizedReviews, data.PendingReviews, err = s.reviewRepo.CountByFinalized(ctx); err != nil {
		return nil, err
	}

	ratings, err := s.reviewRepo.RatingsByReviewee(ctx)
	if err != nil {
		return nil, err
	}

	scores := make([]scoring.MemberScore, 0, len(ratings))
	for userID, r := range ratings {
		scores = append(scores, scoring.MemberScore{
			UserID:       userID,
			AverageScore: scoring.EmployeeAverage(r),
			ReviewCount:  len(r),
		})
	}
	data.AverageScore = scoring.TeamAverage(scoring.Averages(scores))

	// map iteration order is random; fix it before the stable ranking
	sort.Slice(scores, func(i, j int) bool { return scores[i].UserID < scores[j].UserID })
	scoring.SortMembers(scores)

	data.TopPerformers = make([]scoring.MemberScore, 0, topPerformersLimit)
	for _, score := range scores {
		if len(data.TopPerformers) == topPerformersLimit {
			break
		}
		user, err := s.userRepo.GetByID(ctx, score.UserID)
		if err != nil {
			if isNotFound(err) {
				continue
			}
			return nil, err
		}
		score.Name = user.FullName()
		data.TopPerformers = append(data.TopPerformers, score)
	}

	return data, nil
}

// ============================================================
// My Dashboard
// ============================================================

// MyDashboardData represents the actor's own statistics
type MyDashboardData struct {
	TotalGoals    int64                       `json:"totalGoals"`
	GoalsByStatus map[domain.GoalStatus]int64 `json:"goalsByStatus"`
	AverageScore  float64                     `json:"averageScore"`
	ReviewCount   int                         `json:"reviewCount"`
}

// GetMyDashboard returns the actor's goal counts and average score
func (s *DashboardService) GetMyDashboard(ctx context.Context, actor *domain.Actor) (*MyDashboardData, error) {
	data := &MyDashboardData{}
	var err error

	if data.GoalsByStatus, err = s.goalRepo.CountByStatus(ctx, actor.ID); err != nil {
		return nil, err
	}
	for _, n := range data.GoalsByStatus {
		data.TotalGoals += n
	}

	ratings, err := s.reviewRepo.RatingsByReviewee(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	data.AverageScore = scoring.EmployeeAverage(ratings[actor.ID])
	data.ReviewCount = len(ratings[actor.ID])

	return data, nil
}
