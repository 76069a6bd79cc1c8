package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/forgot-password", handler.ForgotPassword)
	auth.Post("/reset-password", handler.ResetPassword)
	auth.Get("/me", handler.AuthRequired, handler.Me)

	financial := api.Group("/financial", handler.AuthRequired)
	financial.Post("/upload", handler.Upload)
	financial.Get("/periods", handler.ListPeriods)
	financial.Get("/periods/:id", handler.GetPeriodData)
	financial.Delete("/periods/:id", handler.DeletePeriod)
	financial.Get("/history", handler.ListUploadHistory)
	financial.Get("/template", handler.DownloadTemplate)
}
