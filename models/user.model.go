package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	ProfileImage          string     `gorm:"default:''"`
	Name                  string     `gorm:"default:''"`
	Email                 string     `gorm:"unique;not null"`
	Role                  string     `gorm:"default:'USER'"` // USER, ADMIN
	Password              string     `gorm:"not null" json:"-"`
	DeviceToken           string     `gorm:"default:''" json:"-"` // Push notification token from the mobile app
	IsSubscribed          bool       `gorm:"default:false" json:"is_subscribed"`
	SubscriptionExpiresAt *time.Time `json:"subscription_expires_at"`
	ReminderSent          bool       `gorm:"default:false" json:"-"`
	LastLogin             time.Time  `gorm:"default:NULL" json:"last_login"`
	IsDeleted             bool       `gorm:"default:false"`
}
