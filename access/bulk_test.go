package access

import (
	"keciapp/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func completeEpisode(t *testing.T, db *gorm.DB, userID, episodeID uint) {
	t.Helper()
	now := time.Now()
	record := models.CompletionRecord{
		UserID:      userID,
		EpisodeID:   &episodeID,
		IsCompleted: true,
		CompletedAt: &now,
	}
	require.NoError(t, db.Create(&record).Error)
}

func grantSequence(t *testing.T, db *gorm.DB, userID, seriesID uint) int {
	t.Helper()
	var grant models.AccessGrant
	require.NoError(t, db.Where("user_id = ? AND series_id = ?", userID, seriesID).First(&grant).Error)
	return grant.CurrentSequence
}

func TestBulkSeedGrants(t *testing.T) {
	db := setupTestDB(t)
	engine := NewEngine(db)
	alice := createUser(t, db, "alice@keciapp.com")
	bob := createUser(t, db, "bob@keciapp.com")
	series, _ := createSeries(t, db, "Calm Mornings", 10)

	result, err := engine.BulkSeedGrants()
	require.NoError(t, err)
	assert.Equal(t, BatchResult{Granted: 2, Skipped: 0}, result)

	assert.Equal(t, 1, grantSequence(t, db, alice.ID, series.ID))
	assert.Equal(t, 1, grantSequence(t, db, bob.ID, series.ID))

	// Second run finds nothing missing: same row count, zero granted.
	result, err = engine.BulkSeedGrants()
	require.NoError(t, err)
	assert.Equal(t, BatchResult{Granted: 0, Skipped: 2}, result)

	var count int64
	db.Model(&models.AccessGrant{}).Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestBulkSeedGrantsLeavesExistingGrantsAlone(t *testing.T) {
	db := setupTestDB(t)
	engine := NewEngine(db)
	alice := createUser(t, db, "alice@keciapp.com")
	bob := createUser(t, db, "bob@keciapp.com")
	series, _ := createSeries(t, db, "Calm Mornings", 10, 20, 30)

	// Alice is already three episodes in; seeding must not reset her.
	_, err := engine.CreateGrant(alice.ID, SeriesTarget(series.ID), 3)
	require.NoError(t, err)

	result, err := engine.BulkSeedGrants()
	require.NoError(t, err)
	assert.Equal(t, BatchResult{Granted: 1, Skipped: 1}, result)

	assert.Equal(t, 3, grantSequence(t, db, alice.ID, series.ID))
	assert.Equal(t, 1, grantSequence(t, db, bob.ID, series.ID))
}

func TestBulkSeedGrantsIgnoresInactiveSeriesAndDeletedUsers(t *testing.T) {
	db := setupTestDB(t)
	engine := NewEngine(db)
	createUser(t, db, "alice@keciapp.com")

	gone := models.User{Email: "gone@keciapp.com", Password: "x", IsDeleted: true}
	require.NoError(t, db.Create(&gone).Error)

	createSeries(t, db, "Calm Mornings", 10)
	draft := models.Series{Title: "Unreleased", IsActive: false}
	require.NoError(t, db.Create(&draft).Error)

	result, err := engine.BulkSeedGrants()
	require.NoError(t, err)
	assert.Equal(t, BatchResult{Granted: 1, Skipped: 0}, result)
}

func TestReconcileAdvancesOneRank(t *testing.T) {
	db := setupTestDB(t)
	engine := NewEngine(db)
	user := createUser(t, db, "a@keciapp.com")
	series, episodes := createSeries(t, db, "Calm Mornings", 10, 20, 30)

	_, err := engine.CreateGrant(user.ID, SeriesTarget(series.ID), 1)
	require.NoError(t, err)
	completeEpisode(t, db, user.ID, episodes[0].ID)

	result, err := engine.ReconcileSequences()
	require.NoError(t, err)
	assert.Equal(t, BatchResult{Granted: 1, Skipped: 0}, result)
	assert.Equal(t, 2, grantSequence(t, db, user.ID, series.ID))
}

func TestReconcileNeverSkipsRanks(t *testing.T) {
	db := setupTestDB(t)
	engine := NewEngine(db)
	user := createUser(t, db, "a@keciapp.com")
	series, episodes := createSeries(t, db, "Calm Mornings", 10, 20, 30)

	_, err := engine.CreateGrant(user.ID, SeriesTarget(series.ID), 1)
	require.NoError(t, err)

	// Ranks 1 and 2 both completed: one run still advances only to 2.
	completeEpisode(t, db, user.ID, episodes[0].ID)
	completeEpisode(t, db, user.ID, episodes[1].ID)

	result, err := engine.ReconcileSequences()
	require.NoError(t, err)
	assert.Equal(t, BatchResult{Granted: 1, Skipped: 0}, result)
	assert.Equal(t, 2, grantSequence(t, db, user.ID, series.ID))

	// The next run picks up rank 2 and finishes the catch-up.
	result, err = engine.ReconcileSequences()
	require.NoError(t, err)
	assert.Equal(t, BatchResult{Granted: 1, Skipped: 0}, result)
	assert.Equal(t, 3, grantSequence(t, db, user.ID, series.ID))
}

func TestReconcileSkipsIncompleteAndLastRank(t *testing.T) {
	db := setupTestDB(t)
	engine := NewEngine(db)
	user := createUser(t, db, "a@keciapp.com")
	series, episodes := createSeries(t, db, "Calm Mornings", 10, 20)

	_, err := engine.CreateGrant(user.ID, SeriesTarget(series.ID), 1)
	require.NoError(t, err)

	// Nothing completed yet.
	result, err := engine.ReconcileSequences()
	require.NoError(t, err)
	assert.Equal(t, BatchResult{Granted: 0, Skipped: 1}, result)
	assert.Equal(t, 1, grantSequence(t, db, user.ID, series.ID))

	// Finish both episodes and walk to the end of the catalog.
	completeEpisode(t, db, user.ID, episodes[0].ID)
	completeEpisode(t, db, user.ID, episodes[1].ID)

	result, err = engine.ReconcileSequences()
	require.NoError(t, err)
	assert.Equal(t, BatchResult{Granted: 1, Skipped: 0}, result)

	// At the last active rank the grant is stable no matter how often the
	// batch runs.
	for i := 0; i < 2; i++ {
		result, err = engine.ReconcileSequences()
		require.NoError(t, err)
		assert.Equal(t, BatchResult{Granted: 0, Skipped: 1}, result)
	}
	assert.Equal(t, 2, grantSequence(t, db, user.ID, series.ID))
}

func TestReconcileSkipsGrantPastCatalogEnd(t *testing.T) {
	db := setupTestDB(t)
	engine := NewEngine(db)
	user := createUser(t, db, "a@keciapp.com")
	series, _ := createSeries(t, db, "Calm Mornings", 10, 20)

	// Catalog shrank after the grant was issued.
	_, err := engine.CreateGrant(user.ID, SeriesTarget(series.ID), 5)
	require.NoError(t, err)

	result, err := engine.ReconcileSequences()
	require.NoError(t, err)
	assert.Equal(t, BatchResult{Granted: 0, Skipped: 1}, result)
	assert.Equal(t, 5, grantSequence(t, db, user.ID, series.ID))
}

func TestReconcileRanksByActiveOrderingNotRawNumbers(t *testing.T) {
	db := setupTestDB(t)
	engine := NewEngine(db)
	user := createUser(t, db, "a@keciapp.com")
	series, episodes := createSeries(t, db, "Calm Mornings", 10, 20, 30)

	// Deactivate the middle episode: active ordering is [ep10, ep30], so rank
	// 2 is the episode numbered 30.
	require.NoError(t, db.Model(&episodes[1]).Update("is_active", false).Error)

	_, err := engine.CreateGrant(user.ID, SeriesTarget(series.ID), 1)
	require.NoError(t, err)
	completeEpisode(t, db, user.ID, episodes[0].ID)

	result, err := engine.ReconcileSequences()
	require.NoError(t, err)
	assert.Equal(t, BatchResult{Granted: 1, Skipped: 0}, result)
	assert.Equal(t, 2, grantSequence(t, db, user.ID, series.ID))

	// Rank 2 now means the last active episode, so the grant holds there.
	completeEpisode(t, db, user.ID, episodes[2].ID)
	result, err = engine.ReconcileSequences()
	require.NoError(t, err)
	assert.Equal(t, BatchResult{Granted: 0, Skipped: 1}, result)
}

func TestReconcileCountsOtherGrantsAsSkipped(t *testing.T) {
	db := setupTestDB(t)
	engine := NewEngine(db)
	alice := createUser(t, db, "alice@keciapp.com")
	bob := createUser(t, db, "bob@keciapp.com")
	series, episodes := createSeries(t, db, "Calm Mornings", 10, 20, 30)

	_, err := engine.CreateGrant(alice.ID, SeriesTarget(series.ID), 1)
	require.NoError(t, err)
	_, err = engine.CreateGrant(bob.ID, SeriesTarget(series.ID), 1)
	require.NoError(t, err)

	completeEpisode(t, db, alice.ID, episodes[0].ID)

	result, err := engine.ReconcileSequences()
	require.NoError(t, err)
	assert.Equal(t, BatchResult{Granted: 1, Skipped: 1}, result)
	assert.Equal(t, 2, grantSequence(t, db, alice.ID, series.ID))
	assert.Equal(t, 1, grantSequence(t, db, bob.ID, series.ID))
}

func TestReconcileContinuesPastStoreErrors(t *testing.T) {
	db := setupTestDB(t)
	engine := NewEngine(db)
	alice := createUser(t, db, "alice@keciapp.com")
	bob := createUser(t, db, "bob@keciapp.com")
	series, _ := createSeries(t, db, "Calm Mornings", 10, 20)

	_, err := engine.CreateGrant(alice.ID, SeriesTarget(series.ID), 1)
	require.NoError(t, err)
	_, err = engine.CreateGrant(bob.ID, SeriesTarget(series.ID), 1)
	require.NoError(t, err)

	// Break the episode lookup under both grants. The run must still visit
	// every grant, tally the failures, and finish without an error.
	require.NoError(t, db.Migrator().DropTable(&models.Episode{}))

	result, err := engine.ReconcileSequences()
	require.NoError(t, err)
	assert.Equal(t, BatchResult{Granted: 0, Skipped: 0, Failed: 2}, result)

	assert.Equal(t, 1, grantSequence(t, db, alice.ID, series.ID))
	assert.Equal(t, 1, grantSequence(t, db, bob.ID, series.ID))
}

func TestReconcileIgnoresArticleGrants(t *testing.T) {
	db := setupTestDB(t)
	engine := NewEngine(db)
	user := createUser(t, db, "a@keciapp.com")
	article := models.Article{Title: "On Stillness", IsActive: true}
	require.NoError(t, db.Create(&article).Error)

	_, err := engine.CreateGrant(user.ID, ArticleTarget(article.ID), 1)
	require.NoError(t, err)

	result, err := engine.ReconcileSequences()
	require.NoError(t, err)
	assert.Equal(t, BatchResult{}, result)
}
