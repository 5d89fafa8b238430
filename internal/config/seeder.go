package config

import (
	"context"
	"errors"
	"strings"

	"kpi-dashboard/internal/adapters/persistence/models"
	"kpi-dashboard/internal/core/domain"
	"kpi-dashboard/internal/pkg/password"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db  *gorm.DB
	cfg SeedConfig
	log logrus.FieldLogger
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, cfg SeedConfig, log logrus.FieldLogger) *Seeder {
	return &Seeder{db: db, cfg: cfg, log: log}
}

// Run executes all seeders
func (s *Seeder) Run(ctx context.Context) error {
	created, err := s.SeedSuperAdmin(ctx)
	if err != nil {
		return err
	}
	if created {
		s.log.WithField("email", s.cfg.SuperAdminEmail).Info("Super admin account created")
	}
	return nil
}

// SeedSuperAdmin creates the first SUPER_ADMIN when none exists.
// Without configured credentials it does nothing.
func (s *Seeder) SeedSuperAdmin(ctx context.Context) (bool, error) {
	if s.cfg.SuperAdminEmail == "" || s.cfg.SuperAdminPassword == "" {
		s.log.Debug("Super admin seed skipped: SEED_SUPER_ADMIN_EMAIL/PASSWORD not set")
		return false, nil
	}
	if !password.ValidatePassword(s.cfg.SuperAdminPassword) {
		return false, errors.New("SEED_SUPER_ADMIN_PASSWORD must be at least 8 characters")
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("role = ?", domain.RoleSuperAdmin).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	hashed, err := password.Hash(s.cfg.SuperAdminPassword)
	if err != nil {
		return false, err
	}

	admin := &models.User{
		Email:     strings.ToLower(s.cfg.SuperAdminEmail),
		Password:  hashed,
		FirstName: "Super",
		LastName:  "Admin",
		Role:      domain.RoleSuperAdmin,
		IsActive:  true,
	}
	if err := s.db.WithContext(ctx).Create(admin).Error; err != nil {
		return false, err
	}
	return true, nil
}
