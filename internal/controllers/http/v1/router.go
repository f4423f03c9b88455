package http

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"clothing-advisor/config"
	"clothing-advisor/internal/services/advisor"
	"clothing-advisor/pkg/observe"
)

type routes struct {
	advisor  *advisor.Advisor
	cfg      config.AdvisorConfig
	validate *validator.Validate
	l        *observe.Logger
}

func NewRouter(
	app *fiber.App,
	advisorService *advisor.Advisor,
	cfg config.AdvisorConfig,
	l *observe.Logger,
) {
	r := &routes{
		advisor:  advisorService,
		cfg:      cfg,
		validate: validator.New(),
		l:        l,
	}

	// Swagger documentation
	app.Get("/swagger/doc.json", func(c *fiber.Ctx) error {
		swaggerData, err := os.ReadFile("docs/swagger.json")
		if err != nil {
			return c.Status(fiber.ErrInternalServerError.Code).JSON(fiber.Map{"error": "Failed to read Swagger documentation"})
		}

		c.Set("Content-Type", "application/json")
		return c.Send(swaggerData)
	})

	app.Get("/swagger/*", swagger.New(swagger.Config{
		URL:         "/swagger/doc.json",
		DeepLinking: true,
	}))

	// API routes
	v1 := app.Group("/api/v1")
	v1.Post("/chat", r.handleChat)
	v1.Get("/recommendation", r.handleRecommendation)
	v1.Post("/recommendations", r.handleRecommendationBatch)
}
