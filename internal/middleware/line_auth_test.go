package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLineAuthApp(secret string) *fiber.App {
	app := fiber.New()
	app.Post("/webhook/line", ValidateLineSignature(secret), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func lineSign(secret, body string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(body))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestValidateLineSignature(t *testing.T) {
	app := newLineAuthApp("channel-secret")
	body := `{"events":[]}`

	req := httptest.NewRequest("POST", "/webhook/line", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Line-Signature", lineSign("channel-secret", body))

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestValidateLineSignatureInvalid(t *testing.T) {
	app := newLineAuthApp("channel-secret")
	body := `{"events":[]}`

	req := httptest.NewRequest("POST", "/webhook/line", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Line-Signature", lineSign("wrong-secret", body))

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestValidateLineSignatureMissing(t *testing.T) {
	app := newLineAuthApp("channel-secret")

	req := httptest.NewRequest("POST", "/webhook/line", strings.NewReader(`{"events":[]}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestValidateLineSignatureNoSecretPassesThrough(t *testing.T) {
	app := newLineAuthApp("")

	req := httptest.NewRequest("POST", "/webhook/line", strings.NewReader(`{"events":[]}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}
