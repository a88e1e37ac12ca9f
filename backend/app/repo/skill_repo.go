package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"riseabove/backend/app/apperr"
	"riseabove/backend/app/models"
)

// SkillStore is the persistence surface the skill ledger needs.
type SkillStore interface {
	ListByUser(ctx context.Context, userID uint) ([]models.Skill, error)
	FindByName(ctx context.Context, userID uint, skillname string) (*models.Skill, error)
	Create(ctx context.Context, s *models.Skill) error
	UpdateXP(ctx context.Context, id uint, xp int) error
	Delete(ctx context.Context, id uint) error
	Transaction(ctx context.Context, fn func(tx SkillStore) error) error
}

type SkillRepository struct{ db *gorm.DB }

func NewSkillRepository(db *gorm.DB) *SkillRepository { return &SkillRepository{db: db} }

// Transaction runs fn against a repository bound to one database transaction.
// fn's error (or a panic) rolls back everything fn wrote.
func (r *SkillRepository) Transaction(ctx context.Context, fn func(tx SkillStore) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&SkillRepository{db: tx})
	})
}

// ListByUser returns the user's skills in insertion order.
func (r *SkillRepository) ListByUser(ctx context.Context, userID uint) ([]models.Skill, error) {
	var skills []models.Skill
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&skills).Error
	return skills, err
}

func (r *SkillRepository) FindByName(ctx context.Context, userID uint, skillname string) (*models.Skill, error) {
	var s models.Skill
	err := r.db.WithContext(ctx).Where("user_id = ? AND skillname = ?", userID, skillname).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("skill %q: %w", skillname, apperr.ErrNotFound)
		}
		return nil, err
	}
	return &s, nil
}

func (r *SkillRepository) Create(ctx context.Context, s *models.Skill) error {
	err := r.db.WithContext(ctx).Create(s).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("create skill %q: %w", s.Skillname, apperr.ErrConflict)
	}
	return err
}

func (r *SkillRepository) UpdateXP(ctx context.Context, id uint, xp int) error {
	return r.db.WithContext(ctx).Model(&models.Skill{}).Where("id = ?", id).Update("xp", xp).Error
}

func (r *SkillRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Skill{}, id).Error
}
