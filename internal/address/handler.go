package address

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/DrawDrewpf/FullMart-sub000/internal/auth"
	"github.com/DrawDrewpf/FullMart-sub000/internal/response"
	"github.com/DrawDrewpf/FullMart-sub000/internal/validation"
)

// Handler delegates address operations to the address service.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App, authMW fiber.Handler) {
	app.Get("/api/addresses", authMW, h.list)
	app.Post("/api/addresses", authMW, h.create)
	app.Put("/api/addresses/:id<int>", authMW, h.update)
	app.Delete("/api/addresses/:id<int>", authMW, h.remove)
}

type addressRequest struct {
	Street    string `json:"street" validate:"required,min=3"`
	City      string `json:"city" validate:"required,min=2"`
	State     string `json:"state" validate:"required"`
	Zip       string `json:"zip" validate:"required,min=3"`
	Country   string `json:"country"`
	IsDefault bool   `json:"isDefault"`
}

func (h *Handler) list(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return response.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}

	addrs, err := h.service.ListByUser(userID)
	if err != nil {
		return response.Fail(c, fiber.StatusInternalServerError, "could not load addresses")
	}
	return response.OK(c, addrs)
}

func (h *Handler) create(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return response.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := new(addressRequest)
	if err := c.BodyParser(payload); err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if errs := validation.Struct(payload); errs != nil {
		return response.FailWith(c, fiber.StatusBadRequest, "validation failed", errs)
	}

	created, err := h.service.Create(Address{
		UserID:    userID,
		Street:    payload.Street,
		City:      payload.City,
		State:     payload.State,
		Zip:       payload.Zip,
		Country:   payload.Country,
		IsDefault: payload.IsDefault,
	})
	if err != nil {
		return response.Fail(c, fiber.StatusInternalServerError, "could not create address")
	}
	return response.Created(c, created)
}

func (h *Handler) update(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return response.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}

	addressID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "invalid address id")
	}

	payload := new(addressRequest)
	if err := c.BodyParser(payload); err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if errs := validation.Struct(payload); errs != nil {
		return response.FailWith(c, fiber.StatusBadRequest, "validation failed", errs)
	}

	updated, err := h.service.Update(userID, addressID, Address{
		Street:    payload.Street,
		City:      payload.City,
		State:     payload.State,
		Zip:       payload.Zip,
		Country:   payload.Country,
		IsDefault: payload.IsDefault,
	})
	if err != nil {
		if err == ErrNotFound {
			return response.Fail(c, fiber.StatusNotFound, "address not found")
		}
		return response.Fail(c, fiber.StatusInternalServerError, "could not update address")
	}
	return response.OK(c, updated)
}

func (h *Handler) remove(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return response.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}

	addressID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "invalid address id")
	}

	if err := h.service.Delete(userID, addressID); err != nil {
		if err == ErrNotFound {
			return response.Fail(c, fiber.StatusNotFound, "address not found")
		}
		return response.Fail(c, fiber.StatusInternalServerError, "could not delete address")
	}
	return response.Message(c, "address deleted")
}
