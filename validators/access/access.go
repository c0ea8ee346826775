package accessValidator

import (
	"keciapp/middleware"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// GrantAccess validates the create-grant payload. Exactly one of series_id and
// article_id must be present; the engine re-checks, but rejecting here gives
// the admin panel a field-level message.
func GrantAccess() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			UserID    uint  `json:"user_id"`
			SeriesID  *uint `json:"series_id"`
			ArticleID *uint `json:"article_id"`
			Sequence  int   `json:"sequence"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.UserID == 0 {
			errors["user_id"] = "User ID is required!"
		}
		if reqData.SeriesID == nil && reqData.ArticleID == nil {
			errors["target"] = "One of series_id or article_id is required!"
		}
		if reqData.SeriesID != nil && reqData.ArticleID != nil {
			errors["target"] = "Only one of series_id and article_id may be set!"
		}
		if reqData.Sequence == 0 {
			reqData.Sequence = 1 // default starting position
		}
		if reqData.Sequence < 1 {
			errors["sequence"] = "Sequence must be at least 1!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedGrant", reqData)
		return c.Next()
	}
}

// UpdateAccess validates the grant id param and the new sequence body.
func UpdateAccess() fiber.Handler {
	return func(c *fiber.Ctx) error {
		grantIDStr := strings.TrimSpace(c.Params("id"))
		grantID, err := strconv.Atoi(grantIDStr)
		if err != nil || grantID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid grant ID!", nil)
		}

		reqData := new(struct {
			Sequence int `json:"sequence"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Sequence < 1 {
			return middleware.ValidationErrorResponse(c, map[string]string{"sequence": "Sequence must be at least 1!"})
		}

		c.Locals("grantID", grantID)
		c.Locals("validatedSequence", reqData)
		return c.Next()
	}
}

// RevokeAccess validates the revoke payload (user + exactly one target).
func RevokeAccess() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			UserID    uint  `json:"user_id"`
			SeriesID  *uint `json:"series_id"`
			ArticleID *uint `json:"article_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if reqData.UserID == 0 {
			errors["user_id"] = "User ID is required!"
		}
		if (reqData.SeriesID == nil) == (reqData.ArticleID == nil) {
			errors["target"] = "Exactly one of series_id and article_id is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedRevoke", reqData)
		return c.Next()
	}
}

// UserIDParam validates the :user_id path param for admin grant listings.
func UserIDParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userIDStr := strings.TrimSpace(c.Params("user_id"))
		userID, err := strconv.Atoi(userIDStr)
		if err != nil || userID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user ID!", nil)
		}

		c.Locals("targetUserID", userID)
		return c.Next()
	}
}

// TargetQuery validates ?series_id= / ?article_id= for target-wide listings.
func TargetQuery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			SeriesID  *uint `json:"series_id" query:"series_id"`
			ArticleID *uint `json:"article_id" query:"article_id"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		if (reqData.SeriesID == nil) == (reqData.ArticleID == nil) {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"target": "Exactly one of series_id and article_id is required!",
			})
		}

		c.Locals("validatedTarget", reqData)
		return c.Next()
	}
}
