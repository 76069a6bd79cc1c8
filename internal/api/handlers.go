package api

import (
	"github.com/tuifinancial/finserv/internal/db"
	"github.com/tuifinancial/finserv/internal/services"
	"gorm.io/gorm"
)

type Handler struct {
	repositories *db.Repositories
	tokens       *services.TokenIssuer
	resetTokens  *services.ResetTokenStore
	ingestion    *services.IngestionService
	mailer       services.Notifier
}

func NewHandler(database *gorm.DB, secretKey []byte, mailer services.Notifier) *Handler {
	repositories := db.NewRepositories(database)
	return &Handler{
		repositories: repositories,
		tokens:       services.NewTokenIssuer(secretKey),
		resetTokens:  services.NewResetTokenStore(),
		ingestion:    services.NewIngestionService(repositories.Periods, repositories.Uploads),
		mailer:       mailer,
	}
}

type registerInput struct {
	Email    string `json:"email" form:"email"`
	Name     string `json:"name" form:"name"`
	Password string `json:"password" form:"password"`
	Role     string `json:"role" form:"role"`
}

type loginInput struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type forgotPasswordInput struct {
	Email string `json:"email" form:"email"`
}

type resetPasswordInput struct {
	Token       string `json:"token" form:"token"`
	NewPassword string `json:"new_password" form:"new_password"`
}
