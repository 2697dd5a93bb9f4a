package order

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/DrawDrewpf/FullMart-sub000/internal/auth"
	"github.com/DrawDrewpf/FullMart-sub000/internal/response"
	"github.com/DrawDrewpf/FullMart-sub000/internal/validation"
)

// Handler delegates order operations to the order service.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App, authMW fiber.Handler) {
	app.Post("/api/orders", authMW, h.checkout)
	app.Get("/api/orders", authMW, h.listOwn)
	app.Get("/api/orders/:id<int>", authMW, h.getOwn)
}

func (h *Handler) RegisterAdminRoutes(app *fiber.App, authMW, adminMW fiber.Handler) {
	app.Get("/api/admin/orders", authMW, adminMW, h.adminList)
	app.Put("/api/admin/orders/:id<int>/status", authMW, adminMW, h.adminUpdateStatus)
}

type checkoutRequest struct {
	ShippingName       string `json:"shippingName" validate:"required,min=2"`
	ShippingEmail      string `json:"shippingEmail" validate:"required,email"`
	ShippingPhone      string `json:"shippingPhone"`
	ShippingAddress    string `json:"shippingAddress" validate:"required,min=5"`
	ShippingCity       string `json:"shippingCity" validate:"required,min=2"`
	ShippingState      string `json:"shippingState" validate:"required"`
	ShippingPostalCode string `json:"shippingPostalCode" validate:"required,min=3"`
	ShippingCountry    string `json:"shippingCountry"`
	PaymentMethod      string `json:"paymentMethod" validate:"omitempty,oneof=credit_card debit_card paypal bank_transfer"`
}

func (h *Handler) checkout(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return response.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := new(checkoutRequest)
	if err := c.BodyParser(payload); err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if errs := validation.Struct(payload); errs != nil {
		return response.FailWith(c, fiber.StatusBadRequest, "validation failed", errs)
	}

	ship := ShippingInfo{
		Name:       payload.ShippingName,
		Email:      payload.ShippingEmail,
		Phone:      payload.ShippingPhone,
		Address:    payload.ShippingAddress,
		City:       payload.ShippingCity,
		State:      payload.ShippingState,
		PostalCode: payload.ShippingPostalCode,
		Country:    payload.ShippingCountry,
	}

	created, err := h.service.Checkout(userID, ship, payload.PaymentMethod)
	if err != nil {
		switch err {
		case ErrEmptyCart:
			return response.Fail(c, fiber.StatusBadRequest, "cart is empty")
		case ErrInvalidPayment:
			return response.Fail(c, fiber.StatusBadRequest, "invalid payment method")
		default:
			// details stay server-side
			log.Printf("checkout failed for user %d: %v", userID, err)
			return response.Fail(c, fiber.StatusInternalServerError, "could not create order")
		}
	}
	return response.Created(c, created)
}

func (h *Handler) listOwn(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return response.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}

	orders, err := h.service.ListForUser(userID)
	if err != nil {
		return response.Fail(c, fiber.StatusInternalServerError, "could not load orders")
	}
	return response.OK(c, orders)
}

func (h *Handler) getOwn(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return response.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}

	orderID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "invalid order id")
	}

	ord, err := h.service.GetForUser(userID, orderID)
	if err != nil {
		if err == ErrNotFound {
			return response.Fail(c, fiber.StatusNotFound, "order not found")
		}
		return response.Fail(c, fiber.StatusInternalServerError, "could not load order")
	}
	return response.OK(c, ord)
}

func (h *Handler) adminList(c *fiber.Ctx) error {
	status := c.Query("status")
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)

	orders, total, err := h.service.List(status, page, limit)
	if err != nil {
		if err == ErrInvalidStatus {
			return response.Fail(c, fiber.StatusBadRequest, "invalid order status")
		}
		return response.Fail(c, fiber.StatusInternalServerError, "could not load orders")
	}
	return response.OK(c, fiber.Map{"orders": orders, "total": total, "page": page})
}

type statusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *Handler) adminUpdateStatus(c *fiber.Ctx) error {
	orderID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "invalid order id")
	}

	payload := new(statusUpdateRequest)
	if err := c.BodyParser(payload); err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if errs := validation.Struct(payload); errs != nil {
		return response.FailWith(c, fiber.StatusBadRequest, "validation failed", errs)
	}

	updated, err := h.service.UpdateStatus(orderID, payload.Status)
	if err != nil {
		switch err {
		case ErrInvalidStatus:
			return response.Fail(c, fiber.StatusBadRequest, "invalid order status")
		case ErrNotFound:
			return response.Fail(c, fiber.StatusNotFound, "order not found")
		default:
			return response.Fail(c, fiber.StatusInternalServerError, "could not update order")
		}
	}
	return response.OK(c, updated)
}
