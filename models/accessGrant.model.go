package models

import "time"

// AccessGrant records how far into a piece of content a user may go. Exactly
// one of SeriesID/ArticleID is set. For a series, CurrentSequence is the rank
// of the furthest unlocked episode; for an article it is 1 (flat content, the
// row itself is the unlock).
//
// No soft delete here: revoking a grant removes the row so the partial unique
// indexes free the (user, target) slot for a later re-grant.
type AccessGrant struct {
	ID              uint      `json:"id" gorm:"primarykey"`
	UserID          uint      `json:"user_id" gorm:"not null;index:idx_grants_user_series,unique,where:series_id IS NOT NULL;index:idx_grants_user_article,unique,where:article_id IS NOT NULL"`
	SeriesID        *uint     `json:"series_id" gorm:"index:idx_grants_user_series,unique,where:series_id IS NOT NULL"`
	ArticleID       *uint     `json:"article_id" gorm:"index:idx_grants_user_article,unique,where:article_id IS NOT NULL"`
	CurrentSequence int       `json:"current_sequence" gorm:"not null;default:1"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	User            User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Series          *Series   `json:"-" gorm:"foreignKey:SeriesID;constraint:OnDelete:CASCADE"`
	Article         *Article  `json:"-" gorm:"foreignKey:ArticleID;constraint:OnDelete:CASCADE"`
}
