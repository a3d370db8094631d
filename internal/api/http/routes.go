package httpapi

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/i474232898/trip-weather/internal/trip"
	"github.com/i474232898/trip-weather/internal/validation"
	"github.com/i474232898/trip-weather/internal/weather"
)

// TripService is what the HTTP surface needs from the trip service.
type TripService interface {
	Submit(ctx context.Context, req trip.SubmitRequest) (*trip.Result, error)
	Forecast(ctx context.Context, city, state string) (*trip.Result, error)
	Trips() []trip.TripRecord
	Trip(id string) (trip.TripRecord, error)
}

// NewApp builds the Fiber app with middleware, health check and API routes.
func NewApp(service TripService, accessLog bool) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "trip-weather",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	if accessLog {
		app.Use(logger.New())
	}
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "trip-weather",
		})
	})

	RegisterRoutes(app, service)
	return app
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service TripService) {
	v1 := app.Group("/api/v1")

	v1.Post("/trips", func(c *fiber.Ctx) error {
		var req trip.SubmitRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   true,
				"message": "invalid request body",
				"reason":  "bad_request",
			})
		}

		res, err := service.Submit(c.UserContext(), req)
		if err != nil {
			return errorResponse(c, err)
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"trip":  res.Trip,
			"lines": res.Forecast.Lines(),
			"text":  res.Text(),
		})
	})

	v1.Get("/trips", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"trips": service.Trips(),
		})
	})

	v1.Get("/trips/:id", func(c *fiber.Ctx) error {
		t, err := service.Trip(c.Params("id"))
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(t)
	})

	v1.Get("/forecast", func(c *fiber.Ctx) error {
		res, err := service.Forecast(c.UserContext(), c.Query("city"), c.Query("state"))
		if err != nil {
			return errorResponse(c, err)
		}

		return c.JSON(fiber.Map{
			"destination": res.Destination,
			"forecast":    res.Forecast,
			"lines":       res.Forecast.Lines(),
			"text":        res.Text(),
		})
	})
}

func errorResponse(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	reason := "internal"

	var verr *validation.Error
	var ferr *weather.FetchError
	switch {
	case errors.As(err, &verr):
		code = fiber.StatusBadRequest
		reason = verr.Reason.String()
	case errors.As(err, &ferr):
		code = fiber.StatusBadGateway
		reason = ferr.Kind.String()
	case errors.Is(err, trip.ErrTripNotFound):
		code = fiber.StatusNotFound
		reason = "not_found"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": trip.Message(err),
		"reason":  reason,
	})
}
