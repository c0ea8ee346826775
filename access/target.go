package access

import (
	"errors"

	"gorm.io/gorm"
)

// Error kinds surfaced by the engine. Controllers map them to HTTP statuses
// with errors.Is.
var (
	ErrValidation = errors.New("invalid input")
	ErrConflict   = errors.New("grant already exists")
	ErrNotFound   = errors.New("not found")
)

type TargetKind string

const (
	TargetSeries  TargetKind = "series"
	TargetArticle TargetKind = "article"
)

// Target identifies what a grant unlocks: one series or one article. Keeping
// the pair in a single value means a grant can never reference both or
// neither, which the two nullable columns on the table cannot express alone.
type Target struct {
	Kind TargetKind `json:"kind"`
	ID   uint       `json:"id"`
}

func SeriesTarget(id uint) Target  { return Target{Kind: TargetSeries, ID: id} }
func ArticleTarget(id uint) Target { return Target{Kind: TargetArticle, ID: id} }

func (t Target) validate() error {
	if t.ID == 0 {
		return ErrValidation
	}
	switch t.Kind {
	case TargetSeries, TargetArticle:
		return nil
	default:
		return ErrValidation
	}
}

// scope narrows a grant query to one (user, target) pair.
func (t Target) scope(db *gorm.DB, userID uint) *gorm.DB {
	if t.Kind == TargetSeries {
		return db.Where("user_id = ? AND series_id = ?", userID, t.ID)
	}
	return db.Where("user_id = ? AND article_id = ?", userID, t.ID)
}
