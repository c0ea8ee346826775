package utils

import (
	"keciapp/database"
	"keciapp/models"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// InitializeSubscriptionScheduler sets up the subscription expiry scheduler
func InitializeSubscriptionScheduler() {
	log.Println("[SUBSCRIPTION-SCHEDULER] Initializing subscription scheduler...")

	c := cron.New()

	// Run daily at 9 AM to check expiring subscriptions
	c.AddFunc("0 9 * * *", func() {
		log.Println("[SUBSCRIPTION-SCHEDULER] Running daily subscription check...")
		ProcessExpiringSubscriptions()
		ExpireSubscriptions()
	})

	c.Start()
	log.Println("[SUBSCRIPTION-SCHEDULER] Subscription scheduler started - runs daily at 9 AM")
}

// ProcessExpiringSubscriptions sends reminder emails for subscriptions expiring in 2 days
func ProcessExpiringSubscriptions() {
	db := database.Database.Db
	current := time.Now()
	twoDaysFromNow := current.AddDate(0, 0, 2)

	var expiringUsers []models.User
	if err := db.
		Where("is_subscribed = ? AND reminder_sent = false AND is_deleted = ? AND subscription_expires_at IS NOT NULL", true, false).
		Where("subscription_expires_at BETWEEN ? AND ?", current, twoDaysFromNow).
		Find(&expiringUsers).Error; err != nil {
		log.Printf("[SUBSCRIPTION-SCHEDULER] Error fetching expiring subscriptions: %v", err)
		return
	}

	log.Printf("[SUBSCRIPTION-SCHEDULER] Found %d subscriptions expiring soon", len(expiringUsers))

	for _, user := range expiringUsers {
		SendSubscriptionExpiryReminder(user.Email, user.Name, user.SubscriptionExpiresAt)

		// Mark reminder as sent
		db.Model(&user).Update("reminder_sent", true)
		log.Printf("[SUBSCRIPTION-SCHEDULER] Sent expiry reminder to %s", user.Email)
	}
}

// ExpireSubscriptions clears the subscribed flag once the expiry date passes
func ExpireSubscriptions() {
	db := database.Database.Db
	current := time.Now()

	var expiredUsers []models.User
	if err := db.
		Where("is_subscribed = ? AND is_deleted = ? AND subscription_expires_at IS NOT NULL AND subscription_expires_at < ?", true, false, current).
		Find(&expiredUsers).Error; err != nil {
		log.Printf("[SUBSCRIPTION-SCHEDULER] Error fetching expired subscriptions: %v", err)
		return
	}
	if len(expiredUsers) == 0 {
		return
	}

	for _, user := range expiredUsers {
		err := db.Model(&user).Updates(map[string]interface{}{
			"is_subscribed": false,
			"reminder_sent": false,
		}).Error
		if err != nil {
			log.Printf("[SUBSCRIPTION-SCHEDULER] Error expiring subscription for %s: %v", user.Email, err)
			continue
		}
		SendSubscriptionExpiredEmail(user.Email, user.Name)
	}

	log.Printf("[SUBSCRIPTION-SCHEDULER] Expired %d subscriptions", len(expiredUsers))
}
