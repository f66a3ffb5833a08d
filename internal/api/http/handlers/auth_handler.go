package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campus-kit/registrar-service/internal/api/dto"
	"github.com/campus-kit/registrar-service/internal/service"
	util "github.com/campus-kit/registrar-service/pkg/util"
)

// AuthHandler manages the admin login endpoint.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{service: authService}
}

// Login POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("Invalid JSON body")
	}
	if err := requireFields(
		fieldPair{"username", req.Username},
		fieldPair{"password", req.Password},
	); err != nil {
		return err
	}

	result, err := h.service.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(dto.LoginResponse{
		OK:    true,
		Token: result.Token,
		User: dto.LoginUser{
			Username: result.User.Username,
			Role:     result.User.Role,
		},
	})
}
