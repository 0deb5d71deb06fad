package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ValidateLineSignature verifies that a webhook delivery was signed by
// LINE: X-Line-Signature carries the base64 HMAC-SHA256 of the raw body
// keyed with the channel secret. An empty configured secret passes
// requests through so a partially configured server still comes up.
func ValidateLineSignature(channelSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if channelSecret == "" {
			log.Warn().Msg("line channel secret not set, skipping signature validation")
			return c.Next()
		}

		signature := c.Get("X-Line-Signature")
		if signature == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing LINE signature",
			})
		}

		mac := hmac.New(sha256.New, []byte(channelSecret))
		mac.Write(c.Body())
		expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

		if !hmac.Equal([]byte(signature), []byte(expected)) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid signature",
			})
		}

		return c.Next()
	}
}
