package http

import (
	"errors"

	pkg "github.com/impulsehq/impulse/pkg/internal"
	"github.com/impulsehq/impulse/pkg/internal/http/api"
	"github.com/impulsehq/impulse/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type App struct {
	app *fiber.App
}

func NewServer() *App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		EnableIPValidation:    true,
		ServerHeader:          "Impulse",
		AppName:               "Impulse v" + pkg.AppVersion,
		JSONEncoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Marshal,
		JSONDecoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal,
		BodyLimit:             1 << 20,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			switch {
			case errors.As(err, &fe):
				code = fe.Code
			case errors.Is(err, services.ErrNotFound):
				code = fiber.StatusNotFound
			case errors.Is(err, services.ErrValidation):
				code = fiber.StatusBadRequest
			default:
				log.Error().Err(err).Str("path", c.Path()).Msg("An error occurred when processing request...")
			}
			return c.Status(code).JSON(fiber.Map{"message": err.Error()})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: viper.GetString("security.cors_origin"),
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"name":    "Impulse",
			"version": pkg.AppVersion,
		})
	})

	api.MapAPIs(app, "/api")

	return &App{app: app}
}

func (v *App) Listen() {
	if err := v.app.Listen(viper.GetString("bind")); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when starting http server.")
	}
}
