package signup

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/dialpass/dialpass/internal/identity"
)

// Handler exposes the signup flow endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a signup HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type registerRequest struct {
	Phone       string `json:"phone"`
	CountryCode string `json:"country_code"`
	PhoneNumber string `json:"phone_number"`
}

type phoneRequest struct {
	Phone string `json:"phone"`
}

type verifyRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

type completeRequest struct {
	Phone    string `json:"phone"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

type successResponse struct {
	Success bool `json:"success"`
}

type codeResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code,omitempty"`
}

type verifyResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// RegisterPhone handles the first signup step.
func (h *Handler) RegisterPhone(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	err := h.service.RegisterPhone(c.UserContext(), RegisterInput{
		FullPhone:   req.Phone,
		CountryCode: req.CountryCode,
		PhoneNumber: req.PhoneNumber,
		Origin:      c.IP(),
	})
	if err != nil {
		if errors.Is(err, identity.ErrPhoneRequired) {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		return c.Status(http.StatusInternalServerError).JSON(successResponse{Success: false})
	}

	return c.JSON(successResponse{Success: true})
}

// IssueCode generates a verification code. The code rides back on the
// response for dev visibility; there is no out-of-band delivery.
func (h *Handler) IssueCode(c *fiber.Ctx) error {
	var req phoneRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	code, err := h.service.IssueCode(c.UserContext(), req.Phone, c.IP())
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(codeResponse{Success: false})
	}

	return c.JSON(codeResponse{Success: true, Code: code})
}

// VerifyCode checks a submitted code. A wrong, expired, or already-used
// code is a business rejection carried in the body, not an HTTP error.
func (h *Handler) VerifyCode(c *fiber.Ctx) error {
	var req verifyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	matched, err := h.service.VerifyCode(c.UserContext(), req.Phone, req.Code, c.IP())
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(verifyResponse{Success: false})
	}
	if !matched {
		return c.JSON(verifyResponse{Success: false, Message: "Code incorrect"})
	}

	return c.JSON(verifyResponse{Success: true})
}

// CompleteRegistration stores the profile and password hash.
func (h *Handler) CompleteRegistration(c *fiber.Ctx) error {
	var req completeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.CompleteRegistration(c.UserContext(), req.Phone, req.FullName, req.Password, c.IP()); err != nil {
		return c.Status(http.StatusInternalServerError).JSON(successResponse{Success: false})
	}

	return c.JSON(successResponse{Success: true})
}
