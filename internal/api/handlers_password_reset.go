package api

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/tuifinancial/finserv/internal/services"
	"gorm.io/gorm"
)

// The forgot-password response is identical whether or not the email is
// registered, so the endpoint cannot be used to enumerate accounts.
const forgotPasswordResponse = "if the email exists, a reset token has been sent"

func (handler *Handler) ForgotPassword(c *fiber.Ctx) error {
	input := forgotPasswordInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	user, err := handler.repositories.Users.FindByNormalizedEmail(normalizeEmail(input.Email))
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("forgot-password lookup failed: %v", err)
		}
		return c.JSON(fiber.Map{"message": forgotPasswordResponse})
	}

	token, err := handler.resetTokens.Issue(user.Email)
	if err != nil {
		log.Printf("reset token issue failed for %s: %v", user.Email, err)
		return c.JSON(fiber.Map{"message": forgotPasswordResponse})
	}

	subject, body := services.PasswordResetMail(token)
	if err := handler.mailer.Send(user.Email, subject, body); err != nil {
		log.Printf("reset mail delivery failed for %s: %v", user.Email, err)
	}

	return c.JSON(fiber.Map{"message": forgotPasswordResponse})
}

func (handler *Handler) ResetPassword(c *fiber.Ctx) error {
	input := resetPasswordInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if input.NewPassword == "" {
		return apiError(c, fiber.StatusBadRequest, "new password is required")
	}

	// Unknown and expired tokens share one message; expiry details stay
	// internal.
	email, err := handler.resetTokens.Consume(input.Token)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid or expired reset token")
	}

	user, err := handler.repositories.Users.FindByNormalizedEmail(normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError(c, fiber.StatusNotFound, "user not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to reset password")
	}

	passwordHash, err := services.HashPassword(input.NewPassword)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to secure password")
	}
	if err := handler.repositories.Users.UpdatePassword(user.ID, passwordHash); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to reset password")
	}

	return c.JSON(fiber.Map{"message": "password reset successful"})
}
