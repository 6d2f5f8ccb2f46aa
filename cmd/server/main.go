package main

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"logisched-backend/internal/admin"
	"logisched-backend/internal/audit"
	"logisched-backend/internal/auth"
	"logisched-backend/internal/company"
	"logisched-backend/internal/config"
	"logisched-backend/internal/dashboard"
	"logisched-backend/internal/database"
	"logisched-backend/internal/export"
	"logisched-backend/internal/scheduling"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Erro inesperado:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Erro inesperado no servidor",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Públicas
	api.Post("/auth/login", auth.LoginHandler(cfg))
	api.Get("/companies", company.ListCompaniesHandler())
	api.Get("/categories", admin.ListCategoriesHandler())
	api.Get("/profiles", admin.ListProfilesHandler())
	api.Get("/ufs", admin.ListUfsHandler())
	api.Get("/schedules", scheduling.ListSchedulesHandler())
	api.Get("/schedules/export", export.SchedulesHandler())
	api.Get("/dashboard/metrics", dashboard.MetricsHandler())

	// Autenticadas (admin ou colaborador)
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	collab := protected.Group("")
	collab.Use(auth.RequireRole(auth.RoleAdmin, auth.RoleCollab))
	collab.Post("/schedules", scheduling.CreateScheduleHandler())
	collab.Put("/schedules/:id", scheduling.UpdateScheduleHandler())
	collab.Delete("/schedules/:id", scheduling.DeleteScheduleHandler())

	// Somente admin
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(auth.RoleAdmin))

	adminRoutes.Get("/ufs", admin.ListUfsHandler())
	adminRoutes.Post("/ufs", admin.CreateUfHandler())
	adminRoutes.Delete("/ufs/:id", admin.DeleteUfHandler())

	adminRoutes.Get("/categories", admin.ListCategoriesHandler())
	adminRoutes.Post("/categories", admin.CreateCategoryHandler())
	adminRoutes.Delete("/categories/:id", admin.DeleteCategoryHandler())

	adminRoutes.Get("/profiles", admin.ListProfilesHandler())
	adminRoutes.Post("/profiles", admin.CreateProfileHandler())
	adminRoutes.Put("/profiles/:id", admin.UpdateProfileHandler())
	adminRoutes.Delete("/profiles/:id", admin.DeleteProfileHandler())

	adminRoutes.Post("/companies", admin.CreateCompanyHandler())
	adminRoutes.Put("/companies/:id", admin.UpdateCompanyHandler())
	adminRoutes.Delete("/companies/:id", admin.DeleteCompanyHandler())

	adminRoutes.Get("/audit-logs", audit.ListAuditLogsHandler())

	// Frontend (build do Vite): assets + catch-all da SPA
	indexPath := filepath.Join(cfg.StaticDir, "index.html")
	if _, err := os.Stat(indexPath); err == nil {
		app.Static("/assets", filepath.Join(cfg.StaticDir, "assets"))
		app.Get("/*", func(c *fiber.Ctx) error {
			if strings.HasPrefix(c.Path(), "/api/") {
				return fiber.NewError(fiber.StatusNotFound, "Rota não encontrada")
			}
			return c.SendFile(indexPath)
		})
	} else {
		log.Println("Build do frontend não encontrado em", cfg.StaticDir, "- servindo apenas a API")
	}

	log.Println("Servidor rodando na porta:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
