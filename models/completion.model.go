package models

import "time"

// CompletionRecord marks one content unit finished by one user. Exactly one of
// the four reference columns is set; the partial unique indexes keep one row
// per (user, unit).
type CompletionRecord struct {
	ID              uint       `json:"id" gorm:"primarykey"`
	UserID          uint       `json:"user_id" gorm:"not null;index:idx_completions_user_episode,unique,where:episode_id IS NOT NULL;index:idx_completions_user_article,unique,where:article_id IS NOT NULL;index:idx_completions_user_weekly,unique,where:weekly_content_id IS NOT NULL;index:idx_completions_user_daily,unique,where:daily_content_id IS NOT NULL"`
	EpisodeID       *uint      `json:"episode_id" gorm:"index:idx_completions_user_episode,unique,where:episode_id IS NOT NULL"`
	ArticleID       *uint      `json:"article_id" gorm:"index:idx_completions_user_article,unique,where:article_id IS NOT NULL"`
	WeeklyContentID *uint      `json:"weekly_content_id" gorm:"index:idx_completions_user_weekly,unique,where:weekly_content_id IS NOT NULL"`
	DailyContentID  *uint      `json:"daily_content_id" gorm:"index:idx_completions_user_daily,unique,where:daily_content_id IS NOT NULL"`
	IsCompleted     bool       `json:"is_completed" gorm:"default:false"`
	CompletedAt     *time.Time `json:"completed_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	User            User       `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
