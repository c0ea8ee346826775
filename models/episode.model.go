package models

import "gorm.io/gorm"

// Episode belongs to exactly one series. SequenceNumber orders episodes within
// the series; numbers may have gaps, unlocking works on relative position.
type Episode struct {
	gorm.Model
	SeriesID        uint   `json:"series_id" gorm:"index;not null"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	AudioURL        string `json:"audio_url"`
	DurationSeconds int    `json:"duration_seconds"`
	SequenceNumber  int    `json:"sequence_number" gorm:"index;not null"`
	IsActive        bool   `json:"is_active" gorm:"default:true"`
	IsDeleted       bool   `gorm:"default:false"`
	Series          Series `json:"-" gorm:"foreignKey:SeriesID;constraint:OnDelete:CASCADE"`
}
