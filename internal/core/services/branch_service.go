package services

import (
	"context"
	"strings"

	"kpi-dashboard/internal/adapters/persistence/models"
	"kpi-dashboard/internal/adapters/persistence/repositories"
	"kpi-dashboard/internal/pkg/pagination"

	"github.com/sirupsen/logrus"
)

// BranchService handles branch management
type BranchService struct {
	branchRepo repositories.BranchRepository
	teamRepo   repositories.TeamRepository
	log        logrus.FieldLogger
}

// NewBranchService creates a new branch service
func NewBranchService(branchRepo repositories.BranchRepository, teamRepo repositories.TeamRepository, log logrus.FieldLogger) *BranchService {
	return &BranchService{branchRepo: branchRepo, teamRepo: teamRepo, log: log}
}

// BranchInput represents create branch input
type BranchInput struct {
	Name    string `json:"name" validate:"required,max=150"`
	Address string `json:"address" validate:"max=255"`
	City    string `json:"city" validate:"max=100"`
}

// UpdateBranchInput represents update branch input
type UpdateBranchInput struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=150"`
	Address  *string `json:"address" validate:"omitempty,max=255"`
	City     *string `json:"city" validate:"omitempty,max=100"`
	IsActive *bool   `json:"isActive"`
}

// BranchDetail is a branch with its teams
type BranchDetail struct {
	*models.Branch
	Teams []*models.Team `json:"teams"`
}

// List lists branches with pagination
func (s *BranchService) List(ctx context.Context, page *pagination.Params) ([]*models.Branch, int64, error) {
	return s.branchRepo.List(ctx, page.Offset, page.Limit)
}

// Get returns a branch with its teams
func (s *BranchService) Get(ctx context.Context, id string) (*BranchDetail, error) {
	branch, err := s.branchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrBranchNotFound)
	}

	teams, err := s.teamRepo.ListByBranch(ctx, id)
	if err != nil {
		return nil, err
	}

	return &BranchDetail{Branch: branch, Teams: teams}, nil
}

// Create creates a branch
func (s *BranchService) Create(ctx context.Context, input *BranchInput) (*models.Branch, error) {
	name := strings.TrimSpace(input.Name)
	exists, err := s.branchRepo.ExistsByName(ctx, name, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrBranchNameExists
	}

	branch := &models.Branch{
		Name:     name,
		Address:  strings.TrimSpace(input.Address),
		City:     strings.TrimSpace(input.City),
		IsActive: true,
	}
	if err := s.branchRepo.Create(ctx, branch); err != nil {
		return nil, err
	}

	s.log.WithField("branch_id", branch.ID).Info("Branch created")
	return branch, nil
}

// Update updates a branch
func (s *BranchService) Update(ctx context.Context, id string, input *UpdateBranchInput) (*models.Branch, error) {
	branch, err := s.branchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrBranchNotFound)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name != branch.Name {
			exists, err := s.branchRepo.ExistsByName(ctx, name, id)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, ErrBranchNameExists
			}
			branch.Name = name
		}
	}
	if input.Address != nil {
		branch.Address = strings.TrimSpace(*input.Address)
	}
	if input.City != nil {
		branch.City = strings.TrimSpace(*input.City)
	}
	if input.IsActive != nil {
		branch.IsActive = *input.IsActive
	}

	if err := s.branchRepo.Update(ctx, branch); err != nil {
		return nil, err
	}
	return branch, nil
}

// Delete soft deletes a branch
func (s *BranchService) Delete(ctx context.Context, id string) error {
	if _, err := s.branchRepo.GetByID(ctx, id); err != nil {
		return notFound(err, ErrBranchNotFound)
	}
	if err := s.branchRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.WithField("branch_id", id).Info("Branch deleted")
	return nil
}
