package models

import "time"

// Favorite is a hard row like AccessGrant: unfavoriting deletes it so the
// unique (user, content) slot can be reused.
type Favorite struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	UserID    uint      `json:"user_id" gorm:"not null;index:idx_favorites_user_episode,unique,where:episode_id IS NOT NULL;index:idx_favorites_user_article,unique,where:article_id IS NOT NULL"`
	EpisodeID *uint     `json:"episode_id" gorm:"index:idx_favorites_user_episode,unique,where:episode_id IS NOT NULL"`
	ArticleID *uint     `json:"article_id" gorm:"index:idx_favorites_user_article,unique,where:article_id IS NOT NULL"`
	CreatedAt time.Time `json:"created_at"`
	User      User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
