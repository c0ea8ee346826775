package accessController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"keciapp/config"
	"keciapp/database"
	"keciapp/middleware"
	"keciapp/models"
	accessRoutes "keciapp/routers/accessRoutes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	config.AppConfig = &config.Config{JWTKey: "test-secret", SaltRound: 4}

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
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	accessRoutes.SetupAccessRoutes(app)
	return app, db
}

func adminToken(t *testing.T, db *gorm.DB) string {
	t.Helper()
	admin := models.User{Email: "admin@keciapp.com", Password: "x", Role: "ADMIN"}
	require.NoError(t, db.Create(&admin).Error)
	token, err := middleware.GenerateJWT(admin.ID, admin.Name, admin.Role, admin.Email)
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func TestGrantEndpointConflict(t *testing.T) {
	app, db := setupApp(t)
	token := adminToken(t, db)

	user := models.User{Email: "user@keciapp.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	series := models.Series{Title: "Calm Mornings", IsActive: true}
	require.NoError(t, db.Create(&series).Error)

	payload := fiber.Map{"user_id": user.ID, "series_id": series.ID, "sequence": 1}

	resp, env := doJSON(t, app, fiber.MethodPost, "/admin/access/grant", token, payload)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.True(t, env.Status)

	resp, env = doJSON(t, app, fiber.MethodPost, "/admin/access/grant", token, payload)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.False(t, env.Status)
}

func TestGrantEndpointValidation(t *testing.T) {
	app, db := setupApp(t)
	token := adminToken(t, db)

	user := models.User{Email: "user@keciapp.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	series := models.Series{Title: "Calm Mornings", IsActive: true}
	require.NoError(t, db.Create(&series).Error)
	article := models.Article{Title: "On Stillness", IsActive: true}
	require.NoError(t, db.Create(&article).Error)

	// Neither target
	resp, _ := doJSON(t, app, fiber.MethodPost, "/admin/access/grant", token, fiber.Map{"user_id": user.ID})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	// Both targets
	resp, _ = doJSON(t, app, fiber.MethodPost, "/admin/access/grant", token, fiber.Map{
		"user_id": user.ID, "series_id": series.ID, "article_id": article.ID,
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	// Unknown series
	resp, _ = doJSON(t, app, fiber.MethodPost, "/admin/access/grant", token, fiber.Map{
		"user_id": user.ID, "series_id": 999,
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGrantEndpointRequiresAdmin(t *testing.T) {
	app, db := setupApp(t)

	user := models.User{Email: "user@keciapp.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)

	resp, _ := doJSON(t, app, fiber.MethodPost, "/admin/access/seed", token, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	req := httptest.NewRequest(fiber.MethodPost, "/admin/access/seed", nil)
	noAuth, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, noAuth.StatusCode)
}

func TestSeedAndReconcileEndpoints(t *testing.T) {
	app, db := setupApp(t)
	token := adminToken(t, db)

	alice := models.User{Email: "alice@keciapp.com", Password: "x"}
	require.NoError(t, db.Create(&alice).Error)
	series := models.Series{Title: "Calm Mornings", IsActive: true}
	require.NoError(t, db.Create(&series).Error)
	for i, n := range []int{10, 20, 30} {
		ep := models.Episode{SeriesID: series.ID, Title: fmt.Sprintf("ep %d", i+1), SequenceNumber: n, IsActive: true}
		require.NoError(t, db.Create(&ep).Error)
	}

	var counts struct {
		Granted int `json:"granted"`
		Skipped int `json:"skipped"`
		Failed  int `json:"failed"`
	}

	// Seed grants everyone (admin included) a sequence-1 grant.
	resp, env := doJSON(t, app, fiber.MethodPost, "/admin/access/seed", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(env.Data, &counts))
	assert.Equal(t, 2, counts.Granted)
	assert.Equal(t, 0, counts.Skipped)

	// Second seed run changes nothing.
	resp, env = doJSON(t, app, fiber.MethodPost, "/admin/access/seed", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(env.Data, &counts))
	assert.Equal(t, 0, counts.Granted)
	assert.Equal(t, 2, counts.Skipped)

	// Alice finishes episode rank 1; reconcile advances her grant only.
	var firstEpisode models.Episode
	require.NoError(t, db.Where("series_id = ? AND sequence_number = ?", series.ID, 10).First(&firstEpisode).Error)
	epID := firstEpisode.ID
	require.NoError(t, db.Create(&models.CompletionRecord{UserID: alice.ID, EpisodeID: &epID, IsCompleted: true}).Error)

	resp, env = doJSON(t, app, fiber.MethodPost, "/admin/access/reconcile", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(env.Data, &counts))
	assert.Equal(t, 1, counts.Granted)
	assert.Equal(t, 1, counts.Skipped)

	var grant models.AccessGrant
	require.NoError(t, db.Where("user_id = ? AND series_id = ?", alice.ID, series.ID).First(&grant).Error)
	assert.Equal(t, 2, grant.CurrentSequence)
}

func TestRevokeEndpointIdempotent(t *testing.T) {
	app, db := setupApp(t)
	token := adminToken(t, db)

	user := models.User{Email: "user@keciapp.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	series := models.Series{Title: "Calm Mornings", IsActive: true}
	require.NoError(t, db.Create(&series).Error)

	payload := fiber.Map{"user_id": user.ID, "series_id": series.ID}

	// Revoking a grant that never existed still succeeds.
	resp, _ := doJSON(t, app, fiber.MethodDelete, "/admin/access/grant", token, payload)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var count int64
	db.Model(&models.AccessGrant{}).Count(&count)
	assert.EqualValues(t, 0, count)
}
