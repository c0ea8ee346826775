package access

import (
	"errors"
	"fmt"
	"keciapp/models"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// One shared in-memory database per test, named after the test so state
	// never leaks between them.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Series{},
		&models.Episode{},
		&models.Article{},
		&models.AccessGrant{},
		&models.CompletionRecord{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{Email: email, Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

// createSeries inserts an active series with one active episode per sequence
// number given.
func createSeries(t *testing.T, db *gorm.DB, title string, sequenceNumbers ...int) (models.Series, []models.Episode) {
	t.Helper()
	series := models.Series{Title: title, IsActive: true}
	require.NoError(t, db.Create(&series).Error)

	episodes := make([]models.Episode, 0, len(sequenceNumbers))
	for i, n := range sequenceNumbers {
		ep := models.Episode{
			SeriesID:       series.ID,
			Title:          fmt.Sprintf("%s ep %d", title, i+1),
			SequenceNumber: n,
			IsActive:       true,
		}
		require.NoError(t, db.Create(&ep).Error)
		episodes = append(episodes, ep)
	}
	return series, episodes
}

func TestCreateGrant(t *testing.T) {
	db := setupTestDB(t)
	engine := NewEngine(db)
	user := createUser(t, db, "a@keciapp.com")
	series, _ := createSeries(t, db, "Calm Mornings", 10, 20)

	grant, err := engine.CreateGrant(user.ID, SeriesTarget(series.ID), 1)
	require.NoError(t, err)
	assert.Equal(t, user.ID, grant.UserID)
	require.NotNil(t, grant.SeriesID)
	assert.Equal(t, series.ID, *grant.SeriesID)
	assert.Nil(t, grant.ArticleID)
	assert.Equal(t, 1, grant.CurrentSequence)
}

func TestCreateGrantConflict(t *testing.T) {
	db := setupTestDB(t)
	engine := NewEngine(db)
	user := createUser(t, db, "a@keciapp.com")
	series, _ := createSeries(t, db, "Calm Mornings", 10)

	_, err := engine.CreateGrant(user.ID, SeriesTarget(series.ID), 1)
	require.NoError(t, err)

	_, err = engine.CreateGrant(user.ID, SeriesTarget(series.ID), 2)
	assert.ErrorIs(t, err, ErrConflict)

	var count int64
	db.Model(&models.AccessGrant{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestCreateGrantStoreErrorIsNotConflict(t *testing.T) {
	db := setupTestDB(t)
	engine := NewEngine(db)
	user := createUser(t, db, "a@keciapp.com")
	series, _ := createSeries(t, db, "Calm Mornings", 10)

	// A broken store must surface as a plain error, not as a conflict the
	// caller would report as a duplicate grant.
	require.NoError(t, db.Migrator().DropTable(&models.AccessGrant{}))

	_, err := engine.CreateGrant(user.ID, SeriesTarget(series.ID), 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrConflict)
	assert.NotErrorIs(t, err, ErrValidation)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestCreateGrantValidation(t *testing.T) {
	db := setupTestDB(t)
	engine := NewEngine(db)
	user := createUser(t, db, "a@keciapp.com")
	series, _ := createSeries(t, db, "Calm Mornings", 10)

	_, err := engine.CreateGrant(user.ID, SeriesTarget(series.ID), 0)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = engine.CreateGrant(user.ID, Target{}, 1)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = engine.CreateGrant(user.ID, Target{Kind: "bundle", ID: 1}, 1)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateGrantMissingReferences(t *testing.T) {
	db := setupTestDB(t)
	engine := NewEngine(db)
	user := createUser(t, db, "a@keciapp.com")

	_, err := engine.CreateGrant(user.ID, SeriesTarget(999), 1)
	assert.ErrorIs(t, err, ErrNotFound)

	series, _ := createSeries(t, db, "Calm Mornings", 10)
	_, err = engine.CreateGrant(999, SeriesTarget(series.ID), 1)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = engine.CreateGrant(user.ID, ArticleTarget(999), 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateGrant(t *testing.T) {
	db := setupTestDB(t)
	engine := NewEngine(db)
	user := createUser(t, db, "a@keciapp.com")
	series, _ := createSeries(t, db, "Calm Mornings", 10, 20, 30)

	grant, err := engine.CreateGrant(user.ID, SeriesTarget(series.ID), 3)
	require.NoError(t, err)

	// Admin override may decrease the sequence.
	updated, err := engine.UpdateGrant(grant.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.CurrentSequence)

	_, err = engine.UpdateGrant(grant.ID, 0)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = engine.UpdateGrant(999, 2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRevokeGrant(t *testing.T) {
	db := setupTestDB(t)
	engine := NewEngine(db)
	user := createUser(t, db, "a@keciapp.com")
	series, _ := createSeries(t, db, "Calm Mornings", 10)

	// Revoking an absent grant is a no-op, not an error.
	require.NoError(t, engine.RevokeGrant(user.ID, SeriesTarget(series.ID)))

	_, err := engine.CreateGrant(user.ID, SeriesTarget(series.ID), 1)
	require.NoError(t, err)
	require.NoError(t, engine.RevokeGrant(user.ID, SeriesTarget(series.ID)))

	var count int64
	db.Model(&models.AccessGrant{}).Count(&count)
	assert.EqualValues(t, 0, count)

	// The (user, target) slot is free again after a revoke.
	_, err = engine.CreateGrant(user.ID, SeriesTarget(series.ID), 1)
	assert.NoError(t, err)
}

func TestListGrants(t *testing.T) {
	db := setupTestDB(t)
	engine := NewEngine(db)
	alice := createUser(t, db, "alice@keciapp.com")
	bob := createUser(t, db, "bob@keciapp.com")
	series, _ := createSeries(t, db, "Calm Mornings", 10)
	article := models.Article{Title: "On Stillness", IsActive: true}
	require.NoError(t, db.Create(&article).Error)

	_, err := engine.CreateGrant(alice.ID, SeriesTarget(series.ID), 1)
	require.NoError(t, err)
	_, err = engine.CreateGrant(alice.ID, ArticleTarget(article.ID), 1)
	require.NoError(t, err)
	_, err = engine.CreateGrant(bob.ID, SeriesTarget(series.ID), 1)
	require.NoError(t, err)

	forAlice, err := engine.ListGrantsForUser(alice.ID)
	require.NoError(t, err)
	assert.Len(t, forAlice, 2)

	forSeries, err := engine.ListGrantsForTarget(SeriesTarget(series.ID))
	require.NoError(t, err)
	assert.Len(t, forSeries, 2)

	forArticle, err := engine.ListGrantsForTarget(ArticleTarget(article.ID))
	require.NoError(t, err)
	assert.Len(t, forArticle, 1)
}

func TestSeriesAndArticleGrantsCoexist(t *testing.T) {
	db := setupTestDB(t)
	engine := NewEngine(db)
	user := createUser(t, db, "a@keciapp.com")
	series, _ := createSeries(t, db, "Calm Mornings", 10)
	article := models.Article{Title: "On Stillness", IsActive: true}
	require.NoError(t, db.Create(&article).Error)

	// A series grant and an article grant for the same numeric id must not
	// collide with each other.
	_, err := engine.CreateGrant(user.ID, SeriesTarget(series.ID), 1)
	require.NoError(t, err)
	_, err = engine.CreateGrant(user.ID, ArticleTarget(article.ID), 1)
	require.NoError(t, err)

	_, err = engine.CreateGrant(user.ID, ArticleTarget(article.ID), 1)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestIsUnlocked(t *testing.T) {
	db := setupTestDB(t)
	engine := NewEngine(db)
	user := createUser(t, db, "a@keciapp.com")
	series, _ := createSeries(t, db, "Calm Mornings", 10, 20, 30)
	article := models.Article{Title: "On Stillness", IsActive: true}
	require.NoError(t, db.Create(&article).Error)

	// No grant, nothing unlocked.
	open, err := engine.IsUnlocked(user.ID, SeriesTarget(series.ID), 1)
	require.NoError(t, err)
	assert.False(t, open)

	_, err = engine.CreateGrant(user.ID, SeriesTarget(series.ID), 2)
	require.NoError(t, err)

	for rank, want := range map[int]bool{1: true, 2: true, 3: false, 0: false} {
		open, err = engine.IsUnlocked(user.ID, SeriesTarget(series.ID), rank)
		require.NoError(t, err)
		assert.Equal(t, want, open, "rank %d", rank)
	}

	// Article unlock is binary: any grant opens it.
	_, err = engine.CreateGrant(user.ID, ArticleTarget(article.ID), 1)
	require.NoError(t, err)
	open, err = engine.IsUnlocked(user.ID, ArticleTarget(article.ID), 1)
	require.NoError(t, err)
	assert.True(t, open)
}

func TestGetGrant(t *testing.T) {
	db := setupTestDB(t)
	engine := NewEngine(db)
	user := createUser(t, db, "a@keciapp.com")
	series, _ := createSeries(t, db, "Calm Mornings", 10)

	_, err := engine.GetGrant(user.ID, SeriesTarget(series.ID))
	assert.True(t, errors.Is(err, ErrNotFound))

	created, err := engine.CreateGrant(user.ID, SeriesTarget(series.ID), 1)
	require.NoError(t, err)

	got, err := engine.GetGrant(user.ID, SeriesTarget(series.ID))
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}
