package middleware

import (
	"net/http/httptest"
	"strings"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

func TestCodeRateLimitPerPhone(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	defer mr.Close()

	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer cache.Close()

	app := fiber.New()
	app.Post("/signup/code", CodeRateLimit(cache, 2), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true})
	})

	send := func(phone string) int {
		req := httptest.NewRequest(fiber.MethodPost, "/signup/code", strings.NewReader(`{"phone":"`+phone+`"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		resp.Body.Close()
		return resp.StatusCode
	}

	for i := 0; i < 2; i++ {
		if status := send("+15551234567"); status != fiber.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, status)
		}
	}
	if status := send("+15551234567"); status != fiber.StatusTooManyRequests {
		t.Fatalf("expected 429 after limit, got %d", status)
	}

	// A different phone keeps its own budget.
	if status := send("+15559999999"); status != fiber.StatusOK {
		t.Fatalf("expected 200 for other phone, got %d", status)
	}
}

func TestCodeRateLimitWithoutRedisIsNoop(t *testing.T) {
	app := fiber.New()
	app.Post("/signup/code", CodeRateLimit(nil, 1), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true})
	})

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(fiber.MethodPost, "/signup/code", strings.NewReader(`{"phone":"+15551234567"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("expected pass-through without redis, got %d", resp.StatusCode)
		}
	}
}
