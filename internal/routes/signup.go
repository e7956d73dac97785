package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dialpass/dialpass/internal/signup"
)

// RegisterSignupRoutes wires the four signup-flow endpoints. Only code
// issuance is rate limited; the other steps stay cheap and idempotent.
func RegisterSignupRoutes(r fiber.Router, h *signup.Handler, rateLimiter fiber.Handler) {
	grp := r.Group("/signup")
	grp.Post("/phone", h.RegisterPhone)
	grp.Post("/code", rateLimiter, h.IssueCode)
	grp.Post("/verify", h.VerifyCode)
	grp.Post("/complete", h.CompleteRegistration)
}
