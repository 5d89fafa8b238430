package models

import (
	"time"

	"kpi-dashboard/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base holds the UUID primary key shared by every table
type Base struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`
}

// BeforeCreate assigns a UUID when none was set
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// User represents users table
type User struct {
	Base
	Email     string         `gorm:"uniqueIndex;size:191;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	FirstName string         `gorm:"size:100;not null" json:"firstName"`
	LastName  string         `gorm:"size:100;not null" json:"lastName"`
	Position  string         `gorm:"size:100" json:"position"`
	Role      domain.Role    `gorm:"size:20;not null;default:MEMBER;index" json:"role"`
	TeamID    *string        `gorm:"size:36;index" json:"teamId"`
	BranchID  *string        `gorm:"size:36;index" json:"branchId"`
	IsActive  bool           `gorm:"not null;default:true" json:"isActive"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// FullName joins first and last name
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Actor builds the request identity for this user
func (u *User) Actor() *domain.Actor {
	return &domain.Actor{
		ID:     u.ID,
		Email:  u.Email,
		Role:   u.Role,
		TeamID: u.TeamID,
	}
}

// Team represents teams table
type Team struct {
	Base
	Name        string         `gorm:"uniqueIndex;size:150;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	LeaderID    *string        `gorm:"size:36;index" json:"leaderId"`
	BranchID    *string        `gorm:"size:36;index" json:"branchId"`
	IsActive    bool           `gorm:"not null;default:true" json:"isActive"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Team) TableName() string {
	return "teams"
}

// Branch represents branches table
type Branch struct {
	Base
	Name      string         `gorm:"uniqueIndex;size:150;not null" json:"name"`
	Address   string         `gorm:"size:255" json:"address"`
	City      string         `gorm:"size:100" json:"city"`
	IsActive  bool           `gorm:"not null;default:true" json:"isActive"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Branch) TableName() string {
	return "branches"
}

// Goal represents goals table
type Goal struct {
	Base
	Title        string            `gorm:"size:200;not null" json:"title"`
	Description  string            `gorm:"type:text" json:"description"`
	EmployeeID   string            `gorm:"size:36;not null;index" json:"employeeId"`
	TeamID       *string           `gorm:"size:36;index" json:"teamId"`
	CreatedByID  string            `gorm:"size:36" json:"createdById"`
	Status       domain.GoalStatus `gorm:"size:20;not null;default:NOT_STARTED;index" json:"status"`
	TargetValue  float64           `gorm:"not null;default:0" json:"targetValue"`
	CurrentValue float64           `gorm:"not null;default:0" json:"currentValue"`
	Unit         string            `gorm:"size:50" json:"unit"`
	StartDate    *time.Time        `json:"startDate"`
	DueDate      *time.Time        `json:"dueDate"`
	CompletedAt  *time.Time        `json:"completedAt"`
	CreatedAt    time.Time         `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time         `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Goal) TableName() string {
	return "goals"
}

// SetStatus writes a status. Moving into COMPLETED stamps CompletedAt.
func (g *Goal) SetStatus(status domain.GoalStatus, now time.Time) {
	if status == domain.GoalCompleted && g.Status != domain.GoalCompleted {
		g.CompletedAt = &now
	}
	g.Status = status
}

// PerformanceReview represents performance_reviews table
type PerformanceReview struct {
	Base
	RevieweeID    string              `gorm:"size:36;not null;index" json:"revieweeId"`
	ReviewerID    *string             `gorm:"size:36;index" json:"reviewerId"`
	PeriodStart   *time.Time          `json:"periodStart"`
	PeriodEnd     *time.Time          `json:"periodEnd"`
	OverallRating *domain.Rating      `gorm:"size:30" json:"overallRating"`
	Strengths     string              `gorm:"type:text" json:"strengths"`
	Improvements  string              `gorm:"type:text" json:"improvements"`
	Feedback      string              `gorm:"type:text" json:"feedback"`
	Status        domain.ReviewStatus `gorm:"size:20;not null;default:DRAFT;index" json:"status"`
	IsFinalized   bool                `gorm:"not null;default:false" json:"isFinalized"`
	FinalizedAt   *time.Time          `json:"finalizedAt"`
	CreatedAt     time.Time           `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time           `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (PerformanceReview) TableName() string {
	return "performance_reviews"
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	Base
	UserID    string     `gorm:"size:36;index;not null" json:"userId"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expiresAt"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	RevokedAt *time.Time `gorm:"index" json:"revokedAt"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// AutoMigrate creates or updates every table
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Branch{},
		&Team{},
		&Goal{},
		&PerformanceReview{},
		&RefreshToken{},
	)
}
