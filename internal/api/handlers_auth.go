package api

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tuifinancial/finserv/internal/models"
	"github.com/tuifinancial/finserv/internal/services"
	"gorm.io/gorm"
)

func (handler *Handler) Register(c *fiber.Ctx) error {
	input := registerInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	email := normalizeEmail(input.Email)
	name := strings.TrimSpace(input.Name)
	if email == "" || !strings.Contains(email, "@") {
		return apiError(c, fiber.StatusBadRequest, "invalid email")
	}
	if name == "" {
		return apiError(c, fiber.StatusBadRequest, "name is required")
	}
	if input.Password == "" {
		return apiError(c, fiber.StatusBadRequest, "password is required")
	}

	role, err := models.ParseRole(input.Role)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid role")
	}

	exists, err := handler.repositories.Users.ExistsByNormalizedEmail(email)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create account")
	}
	if exists {
		return apiError(c, fiber.StatusBadRequest, "email already registered")
	}

	passwordHash, err := services.HashPassword(input.Password)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to secure password")
	}

	user := models.User{
		Email:        email,
		FullName:     name,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now(),
	}
	if err := handler.repositories.Users.Create(&user); err != nil {
		return apiError(c, fiber.StatusBadRequest, "email already registered")
	}

	token, err := handler.tokens.Issue(user.Email, user.Role)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
	})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	input := loginInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	// Unknown email and wrong password collapse into one response.
	user, err := handler.repositories.Users.FindByNormalizedEmail(normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to sign in")
	}
	if !services.VerifyPassword(input.Password, user.PasswordHash) {
		return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
	}

	token, err := handler.tokens.Issue(user.Email, user.Role)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}

	return c.JSON(fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
	})
}

func (handler *Handler) Me(c *fiber.Ctx) error {
	claims := currentClaims(c)
	if claims == nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(fiber.Map{
		"email": claims.Subject,
		"role":  claims.Role,
	})
}
