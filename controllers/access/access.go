package accessController

import (
	"errors"
	"keciapp/access"
	"keciapp/database"
	"keciapp/middleware"
	"log"

	"github.com/gofiber/fiber/v2"
)

func engine() *access.Engine {
	return access.NewEngine(database.Database.Db)
}

// respondEngineError maps engine error kinds onto the response envelope.
func respondEngineError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, access.ErrValidation):
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, err.Error(), nil)
	case errors.Is(err, access.ErrConflict):
		return middleware.JsonResponse(c, fiber.StatusConflict, false, err.Error(), nil)
	case errors.Is(err, access.ErrNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, err.Error(), nil)
	default:
		log.Printf("[ACCESS] unexpected engine error: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong!", nil)
	}
}

// targetFrom builds the engine target from a validated pair of optional ids.
// The validator guarantees exactly one is set.
func targetFrom(seriesID, articleID *uint) access.Target {
	if seriesID != nil {
		return access.SeriesTarget(*seriesID)
	}
	return access.ArticleTarget(*articleID)
}

// GrantAccess creates a single grant for a (user, series|article) pair.
func GrantAccess(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedGrant").(*struct {
		UserID    uint  `json:"user_id"`
		SeriesID  *uint `json:"series_id"`
		ArticleID *uint `json:"article_id"`
		Sequence  int   `json:"sequence"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	grant, err := engine().CreateGrant(reqData.UserID, targetFrom(reqData.SeriesID, reqData.ArticleID), reqData.Sequence)
	if err != nil {
		return respondEngineError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Access granted!", grant)
}

// UpdateAccess overwrites a grant's sequence (administrative override).
func UpdateAccess(c *fiber.Ctx) error {
	grantID := c.Locals("grantID").(int)
	reqData, ok := c.Locals("validatedSequence").(*struct {
		Sequence int `json:"sequence"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	grant, err := engine().UpdateGrant(uint(grantID), reqData.Sequence)
	if err != nil {
		return respondEngineError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Access updated!", grant)
}

// RevokeAccess removes a grant. Revoking a pair with no grant succeeds.
func RevokeAccess(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedRevoke").(*struct {
		UserID    uint  `json:"user_id"`
		SeriesID  *uint `json:"series_id"`
		ArticleID *uint `json:"article_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if err := engine().RevokeGrant(reqData.UserID, targetFrom(reqData.SeriesID, reqData.ArticleID)); err != nil {
		return respondEngineError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Access revoked!", nil)
}

// GetUserGrants lists every grant one user holds (admin view).
func GetUserGrants(c *fiber.Ctx) error {
	targetUserID := c.Locals("targetUserID").(int)

	grants, err := engine().ListGrantsForUser(uint(targetUserID))
	if err != nil {
		return respondEngineError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Grants fetched successfully!", grants)
}

// GetTargetGrants lists every user's grant on one series or article.
func GetTargetGrants(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedTarget").(*struct {
		SeriesID  *uint `json:"series_id" query:"series_id"`
		ArticleID *uint `json:"article_id" query:"article_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	grants, err := engine().ListGrantsForTarget(targetFrom(reqData.SeriesID, reqData.ArticleID))
	if err != nil {
		return respondEngineError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Grants fetched successfully!", grants)
}

// GetMyGrants lists the caller's own grants.
func GetMyGrants(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	grants, err := engine().ListGrantsForUser(userID)
	if err != nil {
		return respondEngineError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Grants fetched successfully!", grants)
}

// BulkSeedGrants gives every user a starting grant on every active series.
func BulkSeedGrants(c *fiber.Ctx) error {
	result, err := engine().BulkSeedGrants()
	if err != nil {
		return respondEngineError(c, err)
	}

	log.Printf("[ACCESS-SEED] granted=%d skipped=%d failed=%d", result.Granted, result.Skipped, result.Failed)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Bulk seed completed!", result)
}

// ReconcileSequences advances grants whose current episode is completed.
func ReconcileSequences(c *fiber.Ctx) error {
	result, err := engine().ReconcileSequences()
	if err != nil {
		return respondEngineError(c, err)
	}

	log.Printf("[ACCESS-RECONCILE] granted=%d skipped=%d failed=%d", result.Granted, result.Skipped, result.Failed)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reconciliation completed!", result)
}
