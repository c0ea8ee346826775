package utils

import (
	"encoding/json"
	"fmt"
	"keciapp/database"
	"keciapp/models"
	"log"
	"time"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
	"gorm.io/datatypes"
)

// fallbackAffirmations feed the daily generator when the editors have not
// prepared content for a day.
var fallbackAffirmations = []map[string]string{
	{"title": "Begin Again", "text": "Every morning is a chance to begin again.", "author": "KeciApp"},
	{"title": "Small Steps", "text": "Small steps taken daily outlast grand plans taken never.", "author": "KeciApp"},
	{"title": "Stillness", "text": "You do not have to earn rest.", "author": "KeciApp"},
	{"title": "Enough", "text": "What you did today was enough.", "author": "KeciApp"},
	{"title": "Breathe", "text": "One slow breath changes the next five minutes.", "author": "KeciApp"},
	{"title": "Kindness", "text": "Speak to yourself the way you would to a friend.", "author": "KeciApp"},
	{"title": "Presence", "text": "Where your feet are is where your life is.", "author": "KeciApp"},
}

// InitializeDailyContentScheduler sets up the daily and weekly content jobs
func InitializeDailyContentScheduler() {
	log.Println("[CONTENT-SCHEDULER] Initializing content scheduler...")

	c := cron.New()

	// Run daily at 6 AM: make sure today's content exists, then notify users
	c.AddFunc("0 6 * * *", func() {
		log.Println("[CONTENT-SCHEDULER] Running daily content job...")
		EnsureDailyContent(now.BeginningOfDay())
		NotifyDailyContent()
	})

	// Run Mondays at 7 AM: make sure the week's bundle exists
	c.AddFunc("0 7 * * 1", func() {
		log.Println("[CONTENT-SCHEDULER] Running weekly content job...")
		EnsureWeeklyContent(now.BeginningOfWeek())
	})

	c.Start()
	log.Println("[CONTENT-SCHEDULER] Content scheduler started - daily at 6 AM, weekly on Mondays at 7 AM")
}

// EnsureDailyContent publishes the day's affirmation, generating one from the
// fallback pool when the editors prepared nothing. Idempotent per day.
func EnsureDailyContent(day time.Time) {
	db := database.Database.Db

	var existing models.DailyContent
	if err := db.Where("date = ? AND is_deleted = ?", day, false).First(&existing).Error; err == nil {
		if !existing.IsPublished {
			if err := db.Model(&existing).Update("is_published", true).Error; err != nil {
				log.Printf("[CONTENT-SCHEDULER] Error publishing daily content %d: %v", existing.ID, err)
				return
			}
			log.Printf("[CONTENT-SCHEDULER] Published prepared daily content for %s", day.Format("2006-01-02"))
		}
		return
	}

	pick := fallbackAffirmations[day.YearDay()%len(fallbackAffirmations)]
	body, err := json.Marshal(pick)
	if err != nil {
		log.Printf("[CONTENT-SCHEDULER] Error building daily content body: %v", err)
		return
	}

	daily := models.DailyContent{
		Date:        day,
		Body:        datatypes.JSON(body),
		IsPublished: true,
	}
	if err := db.Create(&daily).Error; err != nil {
		log.Printf("[CONTENT-SCHEDULER] Error generating daily content for %s: %v", day.Format("2006-01-02"), err)
		return
	}
	log.Printf("[CONTENT-SCHEDULER] Generated daily content for %s", day.Format("2006-01-02"))
}

// EnsureWeeklyContent builds the week's bundle from the newest active catalog
// entries when the editors prepared nothing. Idempotent per week.
func EnsureWeeklyContent(weekStart time.Time) {
	db := database.Database.Db

	var existing models.WeeklyContent
	if err := db.Where("week_start = ? AND is_deleted = ?", weekStart, false).First(&existing).Error; err == nil {
		if !existing.IsPublished {
			if err := db.Model(&existing).Update("is_published", true).Error; err != nil {
				log.Printf("[CONTENT-SCHEDULER] Error publishing weekly content %d: %v", existing.ID, err)
			}
		}
		return
	}

	var episodeIDs []uint
	db.Model(&models.Episode{}).
		Joins("JOIN series ON series.id = episodes.series_id AND series.is_active = ? AND series.is_deleted = ?", true, false).
		Where("episodes.is_active = ? AND episodes.is_deleted = ?", true, false).
		Order("episodes.created_at desc").Limit(5).Pluck("episodes.id", &episodeIDs)

	var articleIDs []uint
	db.Model(&models.Article{}).
		Where("is_active = ? AND is_deleted = ?", true, false).
		Order("created_at desc").Limit(3).Pluck("id", &articleIDs)

	if len(episodeIDs) == 0 && len(articleIDs) == 0 {
		log.Println("[CONTENT-SCHEDULER] No active catalog entries, skipping weekly bundle")
		return
	}

	episodeJSON, _ := json.Marshal(episodeIDs)
	articleJSON, _ := json.Marshal(articleIDs)

	weekly := models.WeeklyContent{
		WeekStart:   weekStart,
		Title:       fmt.Sprintf("Your week of %s", weekStart.Format("January 2")),
		Description: "Fresh picks from the KeciApp library for this week.",
		EpisodeIDs:  datatypes.JSON(episodeJSON),
		ArticleIDs:  datatypes.JSON(articleJSON),
		IsPublished: true,
	}
	if err := db.Create(&weekly).Error; err != nil {
		log.Printf("[CONTENT-SCHEDULER] Error generating weekly content for %s: %v", weekStart.Format("2006-01-02"), err)
		return
	}
	log.Printf("[CONTENT-SCHEDULER] Generated weekly content for %s", weekStart.Format("2006-01-02"))
}

// NotifyDailyContent pushes the day's affirmation to subscribed users with a
// registered device.
func NotifyDailyContent() {
	db := database.Database.Db

	var daily models.DailyContent
	if err := db.Where("date = ? AND is_published = ? AND is_deleted = ?", now.BeginningOfDay(), true, false).First(&daily).Error; err != nil {
		log.Println("[CONTENT-SCHEDULER] No published content for today, skipping notifications")
		return
	}

	var body struct {
		Title string `json:"title"`
		Text  string `json:"text"`
	}
	if err := json.Unmarshal(daily.Body, &body); err != nil {
		log.Printf("[CONTENT-SCHEDULER] Error decoding daily content body: %v", err)
		return
	}

	var users []models.User
	if err := db.Where("is_subscribed = ? AND is_deleted = ? AND device_token <> ''", true, false).Find(&users).Error; err != nil {
		log.Printf("[CONTENT-SCHEDULER] Error fetching users for push: %v", err)
		return
	}

	sent := 0
	for _, user := range users {
		if err := SendPush(user.DeviceToken, body.Title, body.Text); err != nil {
			continue
		}
		sent++
	}
	log.Printf("[CONTENT-SCHEDULER] Sent %d/%d daily content notifications", sent, len(users))
}
