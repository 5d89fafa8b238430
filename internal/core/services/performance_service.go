package services

import (
	"context"
	"sort"

	"kpi-dashboard/internal/adapters/persistence/models"
	"kpi-dashboard/internal/adapters/persistence/repositories"
	"kpi-dashboard/internal/core/domain"
	"kpi-dashboard/internal/core/policy"
	"kpi-dashboard/internal/core/scoring"
)

// PerformanceService aggregates review ratings into scores
type PerformanceService struct {
	reviewRepo repositories.ReviewRepository
	userRepo   repositories.UserRepository
	teamRepo   repositories.TeamRepository
}

// NewPerformanceService creates a new performance service
func NewPerformanceService(
	reviewRepo repositories.ReviewRepository,
	userRepo repositories.UserRepository,
	teamRepo repositories.TeamRepository,
) *PerformanceService {
	return &PerformanceService{
		reviewRepo: reviewRepo,
		userRepo:   userRepo,
		teamRepo:   teamRepo,
	}
}

// EmployeeScore is an employee's average review score
type EmployeeScore struct {
	EmployeeID   string  `json:"employeeId"`
	AverageScore float64 `json:"averageScore"`
	ReviewCount  int     `json:"reviewCount"`
}

// TeamScore is a team's average with its ranked members
type TeamScore struct {
	TeamID      string                `json:"teamId"`
	TeamName    string                `json:"teamName"`
	TeamAverage float64               `json:"teamAverage"`
	Members     []scoring.MemberScore `json:"members"`
}

// TeamSummary is one row of the organisation overview
type TeamSummary struct {
	TeamID      string  `json:"teamId"`
	TeamName    string  `json:"teamName"`
	TeamAverage float64 `json:"teamAverage"`
	MemberCount int     `json:"memberCount"`
}

// EmployeeScore returns the employee's average. Visible to the employee,
// admins and team leaders.
func (s *PerformanceService) EmployeeScore(ctx context.Context, actor *domain.Actor, employeeID string) (*EmployeeScore, error) {
	if actor == nil || actor.ID != employeeID {
		if err := policy.TeamLeaderOrAdmin(actor); err != nil {
			return nil, err
		}
	}

	if _, err := s.userRepo.GetByID(ctx, employeeID); err != nil {
		return nil, notFound(err, ErrEmployeeNotFound)
	}

	ratings, err := s.reviewRepo.RatingsByReviewee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	return &EmployeeScore{
		EmployeeID:   employeeID,
		AverageScore: scoring.EmployeeAverage(ratings[employeeID]),
		ReviewCount:  len(ratings[employeeID]),
	}, nil
}

// TeamScore returns the team average and its members ranked by score
func (s *PerformanceService) TeamScore(ctx context.Context, teamID string) (*TeamScore, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, notFound(err, ErrTeamNotFound)
	}

	members, err := s.userRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	ratings := map[string][]*domain.Rating{}
	if len(members) > 0 {
		ids := make([]string, len(members))
		for i, m := range members {
			ids[i] = m.ID
		}
		if ratings, err = s.reviewRepo.RatingsByReviewee(ctx, ids...); err != nil {
			return nil, err
		}
	}

	return buildTeamScore(team, members, ratings), nil
}

// Overview ranks every team by its average, highest first
func (s *PerformanceService) Overview(ctx context.Context) ([]TeamSummary, error) {
	teams, err := s.teamRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	ratings, err := s.reviewRepo.RatingsByReviewee(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]TeamSummary, 0, len(teams))
	for _, team := range teams {
		members, err := s.userRepo.ListByTeam(ctx, team.ID)
		if err != nil {
			return nil, err
		}
		score := buildTeamScore(team, members, ratings)
		summaries = append(summaries, TeamSummary{
			TeamID:      score.TeamID,
			TeamName:    score.TeamName,
			TeamAverage: score.TeamAverage,
			MemberCount: len(score.Members),
		})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].TeamAverage > summaries[j].TeamAverage
	})
	return summaries, nil
}

func buildTeamScore(team *models.Team, members []*models.User, ratings map[string][]*domain.Rating) *TeamScore {
	scores := make([]scoring.MemberScore, len(members))
	for i, m := range members {
		scores[i] = scoring.MemberScore{
			UserID:       m.ID,
			Name:         m.FullName(),
			AverageScore: scoring.EmployeeAverage(ratings[m.ID]),
			ReviewCount:  len(ratings[m.ID]),
		}
	}
	scoring.SortMembers(scores)

	return &TeamScore{
		TeamID:      team.ID,
		TeamName:    team.Name,
		TeamAverage: scoring.TeamAverage(scoring.Averages(scores)),
		Members:     scores,
	}
}
