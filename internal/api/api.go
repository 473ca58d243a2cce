package api

import (
	"encoding/json"
	"errors"
	"github.com/Aquilabot/KreaPC-BuildAdvisor/internal/config"
	"github.com/Aquilabot/KreaPC-BuildAdvisor/internal/models"
	"github.com/Aquilabot/KreaPC-BuildAdvisor/pkg/catalog"
	"github.com/Aquilabot/KreaPC-BuildAdvisor/pkg/matcher"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

const (
	errorInvalidPayload  = "Invalid request payload"
	errorSuggesting      = "Error computing suggestions"
	errorUnknownCategory = "Unknown component category"
	logInvalidBudget     = "Rejected budget: %v"
	logSuggestionFailure = "Suggestion failed: %v"
	logFormat            = "${pid} | ${locals:requestid} | ${time} | ${latency} | [${ip}]:${port} | ${status} - ${method} ${path}\n"
)

type SuggestRequest struct {
	Budget json.RawMessage `json:"budget"`
}

type SuggestResponse struct {
	Suggestions []models.BuildRecord `json:"suggestions"`
}

type BuildsResponse struct {
	Builds []models.BuildRecord `json:"builds"`
}

type CategoryResponse struct {
	Category string   `json:"category"`
	Values   []string `json:"values"`
}

type handler struct {
	catalog *catalog.Catalog
}

// New builds the Fiber app serving queries against cat.
func New(cat *catalog.Catalog, cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "KreaPC Build Advisor",
		BodyLimit:             cfg.Server.BodyLimit,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.Server.CORSOrigins}))
	app.Use(logger.New(logger.Config{
		Format: logFormat,
	}))

	h := &handler{catalog: cat}

	// Budget query
	app.Post("/suggest", h.suggest)

	// Dropdown values
	app.Get("/components", h.components)
	app.Get("/components/:category", h.componentValues)

	app.Get("/builds", h.builds)

	return app
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	}

	return c.Status(code).JSON(fiber.Map{"error": message})
}

func (h *handler) suggest(c *fiber.Ctx) error {
	budget, err := budgetValue(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": errorInvalidPayload})
	}

	suggestions, err := matcher.Query(budget, h.catalog)
	if err != nil {
		var invalid *matcher.InvalidInputError
		if errors.As(err, &invalid) {
			log.Debugf(logInvalidBudget, err)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": invalid.Error()})
		}
		log.Errorf(logSuggestionFailure, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": errorSuggesting})
	}

	return c.JSON(SuggestResponse{Suggestions: suggestions})
}

// budgetValue reads the budget from a JSON body, where it may be a string or
// a number, or from form fields otherwise.
func budgetValue(c *fiber.Ctx) (string, error) {
	if !c.Is("json") {
		return c.FormValue("budget"), nil
	}

	var req SuggestRequest
	if err := c.BodyParser(&req); err != nil {
		return "", err
	}

	if len(req.Budget) == 0 || string(req.Budget) == "null" {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(req.Budget, &s); err == nil {
		return s, nil
	}
	return string(req.Budget), nil
}

func (h *handler) components(c *fiber.Ctx) error {
	return c.JSON(h.catalog.Components())
}

func (h *handler) componentValues(c *fiber.Ctx) error {
	category, ok := catalog.ParseCategory(c.Params("category"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": errorUnknownCategory})
	}

	return c.JSON(CategoryResponse{
		Category: string(category),
		Values:   h.catalog.UniqueValues(category),
	})
}

func (h *handler) builds(c *fiber.Ctx) error {
	builds := h.catalog.All()
	for i := range builds {
		builds[i] = builds[i].Rounded()
	}
	return c.JSON(BuildsResponse{Builds: builds})
}
