package models

import (
	"time"

	"gorm.io/gorm"
)

type Question struct {
	gorm.Model
	UserID        uint       `json:"user_id" gorm:"index;not null"`
	ReferenceCode string     `json:"reference_code" gorm:"uniqueIndex;not null"`
	Subject       string     `json:"subject"`
	Body          string     `json:"body"`
	Status        string     `json:"status" gorm:"default:'OPEN'"` // OPEN, ANSWERED, CLOSED
	Answer        string     `json:"answer"`
	AnsweredBy    *uint      `json:"answered_by"`
	AnsweredAt    *time.Time `json:"answered_at"`
	IsDeleted     bool       `gorm:"default:false"`
	User          User       `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
