package serverutils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestApp(handler fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/protected", NewJwtMiddleware(testSecret), handler)
	app.Get("/fail/:kind", func(ctx *fiber.Ctx) error {
		switch ctx.Params("kind") {
		case "notfound":
			return NewNotFound("Content not found")
		case "badrequest":
			return fmt.Errorf("wrapped: %w", NewBadRequest("Invalid body", errors.New("unexpected EOF")))
		case "validation":
			return ValidateRequest(struct {
				Title string `validate:"required"`
			}{})
		case "fiber":
			return fiber.NewError(fiber.StatusConflict, "conflict")
		}
		return errors.New("database exploded")
	})
	return app
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestErrorHandlerMiddleware(t *testing.T) {
	tests := []struct {
		kind     string
		wantCode int
		wantMsg  string
	}{
		{kind: "notfound", wantCode: 404, wantMsg: "Content not found"},
		{kind: "badrequest", wantCode: 400, wantMsg: "Invalid body: unexpected EOF"},
		{kind: "validation", wantCode: 400, wantMsg: "Title must satisfy required"},
		{kind: "fiber", wantCode: 409, wantMsg: "conflict"},
		{kind: "other", wantCode: 500, wantMsg: "Internal server error"},
	}

	app := newTestApp(nil)
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", "/fail/"+tt.kind, nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, resp.StatusCode)

			var body BaseResponse[any]
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.wantMsg, body.Message)
		})
	}
}

func TestJwtMiddleware(t *testing.T) {
	app := newTestApp(func(ctx *fiber.Ctx) error {
		return ctx.JSON(SuccessResponse("ok", ctx.Locals("user_id")))
	})

	valid := signToken(t, testSecret, jwt.MapClaims{"user_id": "u-1", "exp": time.Now().Add(time.Hour).Unix()})
	expired := signToken(t, testSecret, jwt.MapClaims{"user_id": "u-1", "exp": time.Now().Add(-time.Hour).Unix()})
	foreign := signToken(t, "other-secret", jwt.MapClaims{"user_id": "u-1"})

	tests := []struct {
		name     string
		header   string
		wantCode int
	}{
		{name: "valid token", header: "Bearer " + valid, wantCode: 200},
		{name: "missing header", header: "", wantCode: 401},
		{name: "wrong scheme", header: "Basic abc", wantCode: 401},
		{name: "expired token", header: "Bearer " + expired, wantCode: 401},
		{name: "wrong secret", header: "Bearer " + foreign, wantCode: 401},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, resp.StatusCode)

			if tt.wantCode == 200 {
				var body BaseResponse[string]
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.Equal(t, "u-1", body.Data)
			}
		})
	}
}

func TestSlugValidation(t *testing.T) {
	type req struct {
		Slug string `validate:"slug"`
	}

	for _, ok := range []string{"hello-world", "a", "post-2"} {
		assert.NoError(t, ValidateRequest(req{Slug: ok}), ok)
	}
	for _, bad := range []string{"Hello", "-lead", "trail-", "white space", ""} {
		assert.Error(t, ValidateRequest(req{Slug: bad}), bad)
	}
}
