package access

import (
	"keciapp/models"
	"log"
	"time"
)

// BatchResult tallies one bulk run. Failed rows belong to neither of the other
// buckets; they are logged and the loop moves on, so one bad row never blocks
// the rest of the population.
type BatchResult struct {
	Granted int `json:"granted"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

type seedPair struct {
	userID   uint
	seriesID uint
}

// BulkSeedGrants gives every user a sequence-1 grant on every active series
// they do not already have one for. Existing grants are never touched, so
// running it twice changes nothing the second time.
func (e *Engine) BulkSeedGrants() (BatchResult, error) {
	var result BatchResult

	var userIDs []uint
	if err := e.db.Model(&models.User{}).Where("is_deleted = ?", false).Pluck("id", &userIDs).Error; err != nil {
		return result, err
	}

	var seriesIDs []uint
	if err := e.db.Model(&models.Series{}).Where("is_active = ? AND is_deleted = ?", true, false).Pluck("id", &seriesIDs).Error; err != nil {
		return result, err
	}

	// Existing pairs computed fresh each run; the effect set is exactly the
	// missing ones.
	var existing []models.AccessGrant
	if err := e.db.Where("series_id IS NOT NULL").Find(&existing).Error; err != nil {
		return result, err
	}
	seeded := make(map[seedPair]bool, len(existing))
	for _, g := range existing {
		seeded[seedPair{userID: g.UserID, seriesID: *g.SeriesID}] = true
	}

	for _, userID := range userIDs {
		for _, seriesID := range seriesIDs {
			if seeded[seedPair{userID: userID, seriesID: seriesID}] {
				result.Skipped++
				continue
			}

			sid := seriesID
			grant := models.AccessGrant{
				UserID:          userID,
				SeriesID:        &sid,
				CurrentSequence: 1,
				UpdatedAt:       time.Now(),
			}
			if err := e.db.Create(&grant).Error; err != nil {
				log.Printf("[ACCESS-SEED] failed to seed user %d series %d: %v", userID, seriesID, err)
				result.Failed++
				continue
			}
			result.Granted++
		}
	}

	return result, nil
}

// ReconcileSequences walks every series grant and advances it by one rank when
// the episode at the current rank is completed and a next one exists. One rank
// per run: a user who finished several episodes since the last run catches up
// over successive runs, never in one jump.
func (e *Engine) ReconcileSequences() (BatchResult, error) {
	var result BatchResult

	var grants []models.AccessGrant
	if err := e.db.Where("series_id IS NOT NULL").Find(&grants).Error; err != nil {
		return result, err
	}

	for _, grant := range grants {
		episodes, err := e.activeEpisodes(*grant.SeriesID)
		if err != nil {
			log.Printf("[ACCESS-RECONCILE] failed to load episodes for series %d: %v", *grant.SeriesID, err)
			result.Failed++
			continue
		}

		// Grant points past the end of the catalog: fully unlocked already,
		// or the catalog shrank. Either way nothing to advance.
		rank := grant.CurrentSequence
		if rank < 1 || rank > len(episodes) {
			result.Skipped++
			continue
		}

		done, err := e.isCompleted(grant.UserID, episodes[rank-1].ID)
		if err != nil {
			log.Printf("[ACCESS-RECONCILE] failed to read ledger for user %d episode %d: %v", grant.UserID, episodes[rank-1].ID, err)
			result.Failed++
			continue
		}
		if !done || rank == len(episodes) {
			result.Skipped++
			continue
		}

		err = e.db.Model(&models.AccessGrant{}).Where("id = ?", grant.ID).
			Updates(map[string]interface{}{"current_sequence": rank + 1, "updated_at": time.Now()}).Error
		if err != nil {
			log.Printf("[ACCESS-RECONCILE] failed to advance grant %d: %v", grant.ID, err)
			result.Failed++
			continue
		}
		result.Granted++
	}

	return result, nil
}
