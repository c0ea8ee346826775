// Package access implements the content-access progression engine: which
// episodes and articles a user may open, how completing one unit unlocks the
// next, and the administrative bulk operations that reconcile grants against
// the catalog and the completion ledger.
package access

import (
	"errors"
	"fmt"
	"keciapp/models"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Engine owns all reads and writes of AccessGrant rows. The store is injected;
// the engine keeps no other state.
type Engine struct {
	db *gorm.DB
}

func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

// CreateGrant inserts a grant for one (user, target) pair.
// The sequence starts at initialSequence (>= 1). A pair may hold at most one
// grant: a second create returns ErrConflict.
func (e *Engine) CreateGrant(userID uint, target Target, initialSequence int) (*models.AccessGrant, error) {
	if err := target.validate(); err != nil {
		return nil, fmt.Errorf("%w: bad grant target", err)
	}
	if initialSequence < 1 {
		return nil, fmt.Errorf("%w: sequence must be at least 1", ErrValidation)
	}

	var user models.User
	if err := e.db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
	}
	if err := e.targetExists(target); err != nil {
		return nil, err
	}

	var existing models.AccessGrant
	if err := target.scope(e.db, userID).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("%w: user %d already has a %s grant for %d", ErrConflict, userID, target.Kind, target.ID)
	}

	grant := models.AccessGrant{
		UserID:          userID,
		CurrentSequence: initialSequence,
		UpdatedAt:       time.Now(),
	}
	if target.Kind == TargetSeries {
		grant.SeriesID = &target.ID
	} else {
		grant.ArticleID = &target.ID
	}

	if err := e.db.Create(&grant).Error; err != nil {
		// The partial unique index is the last line of defense when two
		// creates race; only the loser of that race reports a conflict.
		if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: user %d target %d", ErrConflict, userID, target.ID)
		}
		return nil, err
	}
	return &grant, nil
}

// UpdateGrant overwrites a grant's sequence unconditionally. This is the
// administrative override: decreasing the sequence is allowed here and only
// here.
func (e *Engine) UpdateGrant(grantID uint, newSequence int) (*models.AccessGrant, error) {
	if newSequence < 1 {
		return nil, fmt.Errorf("%w: sequence must be at least 1", ErrValidation)
	}

	var grant models.AccessGrant
	if err := e.db.First(&grant, grantID).Error; err != nil {
		return nil, fmt.Errorf("%w: grant %d", ErrNotFound, grantID)
	}

	grant.CurrentSequence = newSequence
	grant.UpdatedAt = time.Now()
	if err := e.db.Save(&grant).Error; err != nil {
		return nil, err
	}
	return &grant, nil
}

// RevokeGrant deletes the grant for (user, target). Revoking a pair that holds
// no grant is a no-op, not an error.
func (e *Engine) RevokeGrant(userID uint, target Target) error {
	if err := target.validate(); err != nil {
		return fmt.Errorf("%w: bad grant target", err)
	}
	return target.scope(e.db, userID).Delete(&models.AccessGrant{}).Error
}

// ListGrantsForUser returns every grant a user holds. Ordering is up to the
// caller.
func (e *Engine) ListGrantsForUser(userID uint) ([]models.AccessGrant, error) {
	var grants []models.AccessGrant
	if err := e.db.Where("user_id = ?", userID).Find(&grants).Error; err != nil {
		return nil, err
	}
	return grants, nil
}

// ListGrantsForTarget returns every user's grant on one series or article.
func (e *Engine) ListGrantsForTarget(target Target) ([]models.AccessGrant, error) {
	if err := target.validate(); err != nil {
		return nil, fmt.Errorf("%w: bad grant target", err)
	}
	var grants []models.AccessGrant
	q := e.db
	if target.Kind == TargetSeries {
		q = q.Where("series_id = ?", target.ID)
	} else {
		q = q.Where("article_id = ?", target.ID)
	}
	if err := q.Find(&grants).Error; err != nil {
		return nil, err
	}
	return grants, nil
}

// GetGrant looks up the grant for one (user, target) pair.
func (e *Engine) GetGrant(userID uint, target Target) (*models.AccessGrant, error) {
	if err := target.validate(); err != nil {
		return nil, fmt.Errorf("%w: bad grant target", err)
	}
	var grant models.AccessGrant
	if err := target.scope(e.db, userID).First(&grant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no %s grant for user %d", ErrNotFound, target.Kind, userID)
		}
		return nil, err
	}
	return &grant, nil
}

// IsUnlocked reports whether the unit at rank is open for the user. Articles
// are flat, so any article grant (sequence >= 1) unlocks the article and rank
// is checked as 1. A missing grant unlocks nothing.
func (e *Engine) IsUnlocked(userID uint, target Target, rank int) (bool, error) {
	grant, err := e.GetGrant(userID, target)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return rank >= 1 && rank <= grant.CurrentSequence, nil
}

// isUniqueViolation recognizes duplicate-key failures from the drivers in use
// (postgres reports SQLSTATE 23505, sqlite a UNIQUE constraint message) when
// the store does not translate them to gorm.ErrDuplicatedKey.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLSTATE 23505") || strings.Contains(msg, "UNIQUE constraint failed")
}

// targetExists verifies the grant target against the catalog.
func (e *Engine) targetExists(target Target) error {
	var err error
	if target.Kind == TargetSeries {
		err = e.db.Where("id = ? AND is_deleted = ?", target.ID, false).First(&models.Series{}).Error
	} else {
		err = e.db.Where("id = ? AND is_deleted = ?", target.ID, false).First(&models.Article{}).Error
	}
	if err != nil {
		return fmt.Errorf("%w: %s %d", ErrNotFound, target.Kind, target.ID)
	}
	return nil
}

// isCompleted consults the completion ledger for one (user, episode) pair.
func (e *Engine) isCompleted(userID, episodeID uint) (bool, error) {
	var record models.CompletionRecord
	err := e.db.Where("user_id = ? AND episode_id = ?", userID, episodeID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return record.IsCompleted, nil
}

// activeEpisodes returns a series' active episodes in unlock order. Rank N is
// position N in this slice; raw sequence numbers may have gaps.
func (e *Engine) activeEpisodes(seriesID uint) ([]models.Episode, error) {
	var episodes []models.Episode
	err := e.db.Where("series_id = ? AND is_active = ? AND is_deleted = ?", seriesID, true, false).
		Order("sequence_number asc").Find(&episodes).Error
	if err != nil {
		return nil, err
	}
	return episodes, nil
}
