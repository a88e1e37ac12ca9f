package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"riseabove/backend/app/apperr"
	"riseabove/backend/app/models"
	"riseabove/backend/app/repo"
)

var (
	ErrSkillNameRequired = fmt.Errorf("skill name is required: %w", apperr.ErrConflict)
	ErrSkillExists       = fmt.Errorf("skill already exists: %w", apperr.ErrConflict)
	ErrSkillNotFound     = fmt.Errorf("skill not found: %w", apperr.ErrNotFound)
	ErrSkillNameTooLong  = fmt.Errorf("skill name is longer than %d characters: %w", models.MaxSkillnameLen, apperr.ErrValidation)
)

// XPUpdate sets one skill's xp, creating the skill when it is missing.
type XPUpdate struct {
	Skillname string
	XP        int
}

// SkillService is the skill ledger. Callers pass an already authenticated
// user id; every query is scoped to it.
type SkillService struct{ skills repo.SkillStore }

func NewSkillService(skills repo.SkillStore) *SkillService { return &SkillService{skills: skills} }

func (s *SkillService) ListSkills(ctx context.Context, userID uint) ([]models.Skill, error) {
	skills, err := s.skills.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	return skills, nil
}

func (s *SkillService) AddSkill(ctx context.Context, userID uint, skillname string) (*models.Skill, error) {
	skillname = strings.TrimSpace(skillname)
	if skillname == "" {
		return nil, ErrSkillNameRequired
	}
	if utf8.RuneCountInString(skillname) > models.MaxSkillnameLen {
		return nil, ErrSkillNameTooLong
	}

	if _, err := s.skills.FindByName(ctx, userID, skillname); err == nil {
		return nil, ErrSkillExists
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return nil, fmt.Errorf("find skill: %w", err)
	}

	skill := &models.Skill{UserID: userID, Skillname: skillname, XP: 0}
	if err := s.skills.Create(ctx, skill); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return nil, ErrSkillExists
		}
		return nil, fmt.Errorf("create skill: %w", err)
	}
	return skill, nil
}

// SaveXP applies the whole batch in one transaction: either every update is
// stored or none is. xp values are taken as given, negatives included.
func (s *SkillService) SaveXP(ctx context.Context, userID uint, updates []XPUpdate) error {
	batch := make([]XPUpdate, 0, len(updates))
	verr := &apperr.ValidationError{}
	for i, u := range updates {
		u.Skillname = strings.TrimSpace(u.Skillname)
		switch {
		case u.Skillname == "":
			verr.Add(fmt.Sprintf("Skill name is required (entry %d).", i+1))
		case utf8.RuneCountInString(u.Skillname) > models.MaxSkillnameLen:
			verr.Add(fmt.Sprintf("Skill name must be at most %d characters (entry %d).", models.MaxSkillnameLen, i+1))
		}
		batch = append(batch, u)
	}
	if !verr.Empty() {
		return verr
	}
	if len(batch) == 0 {
		return nil
	}

	err := s.saveBatch(ctx, userID, batch)
	if errors.Is(err, apperr.ErrConflict) {
		// another request created one of the skills first; it now exists,
		// so the second pass updates it
		err = s.saveBatch(ctx, userID, batch)
	}
	if errors.Is(err, apperr.ErrConflict) {
		return fmt.Errorf("save xp: concurrent writes did not settle: %v", err)
	}
	return err
}

func (s *SkillService) saveBatch(ctx context.Context, userID uint, batch []XPUpdate) error {
	return s.skills.Transaction(ctx, func(tx repo.SkillStore) error {
		for _, u := range batch {
			existing, err := tx.FindByName(ctx, userID, u.Skillname)
			switch {
			case err == nil:
				if err := tx.UpdateXP(ctx, existing.ID, u.XP); err != nil {
					return fmt.Errorf("update skill %q: %w", u.Skillname, err)
				}
			case errors.Is(err, apperr.ErrNotFound):
				if err := tx.Create(ctx, &models.Skill{UserID: userID, Skillname: u.Skillname, XP: u.XP}); err != nil {
					return fmt.Errorf("create skill %q: %w", u.Skillname, err)
				}
			default:
				return fmt.Errorf("find skill %q: %w", u.Skillname, err)
			}
		}
		return nil
	})
}

func (s *SkillService) DeleteSkill(ctx context.Context, userID uint, skillname string) error {
	skill, err := s.skills.FindByName(ctx, userID, strings.TrimSpace(skillname))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return ErrSkillNotFound
		}
		return fmt.Errorf("find skill: %w", err)
	}
	if err := s.skills.Delete(ctx, skill.ID); err != nil {
		return fmt.Errorf("delete skill: %w", err)
	}
	return nil
}
