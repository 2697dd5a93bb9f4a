package cart

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/DrawDrewpf/FullMart-sub000/internal/auth"
	"github.com/DrawDrewpf/FullMart-sub000/internal/response"
	"github.com/DrawDrewpf/FullMart-sub000/internal/validation"
)

// Handler delegates cart operations to the cart service.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App, authMW fiber.Handler) {
	app.Get("/api/cart", authMW, h.getCart)
	app.Post("/api/cart/add", authMW, h.addItem)
	app.Put("/api/cart/update", authMW, h.updateItem)
	app.Delete("/api/cart/remove/:productId<int>", authMW, h.removeItem)
	app.Delete("/api/cart/clear", authMW, h.clearCart)
}

type cartMutationRequest struct {
	ProductID int `json:"productId" validate:"required,gt=0"`
	Quantity  int `json:"quantity" validate:"required,gt=0"`
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return response.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}

	items, err := h.service.Get(userID)
	if err != nil {
		return response.Fail(c, fiber.StatusInternalServerError, "could not load cart")
	}
	return response.OK(c, items)
}

func (h *Handler) addItem(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return response.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := new(cartMutationRequest)
	if err := c.BodyParser(payload); err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if errs := validation.Struct(payload); errs != nil {
		return response.FailWith(c, fiber.StatusBadRequest, "validation failed", errs)
	}

	items, err := h.service.Add(userID, payload.ProductID, payload.Quantity)
	if err != nil {
		return cartError(c, err)
	}
	return response.OK(c, items)
}

func (h *Handler) updateItem(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return response.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := new(cartMutationRequest)
	if err := c.BodyParser(payload); err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if errs := validation.Struct(payload); errs != nil {
		return response.FailWith(c, fiber.StatusBadRequest, "validation failed", errs)
	}

	items, err := h.service.SetQuantity(userID, payload.ProductID, payload.Quantity)
	if err != nil {
		return cartError(c, err)
	}
	return response.OK(c, items)
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return response.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}

	productID, err := strconv.Atoi(c.Params("productId"))
	if err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "invalid product id")
	}

	if err := h.service.Remove(userID, productID); err != nil {
		return cartError(c, err)
	}
	return response.Message(c, "item removed")
}

func (h *Handler) clearCart(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return response.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}

	if err := h.service.Clear(userID); err != nil {
		return response.Fail(c, fiber.StatusInternalServerError, "could not clear cart")
	}
	return response.Message(c, "cart cleared")
}

func cartError(c *fiber.Ctx, err error) error {
	switch err {
	case ErrProductNotFound:
		return response.Fail(c, fiber.StatusNotFound, "product not found")
	case ErrItemNotFound:
		return response.Fail(c, fiber.StatusNotFound, "cart item not found")
	case ErrInsufficientStock:
		return response.Fail(c, fiber.StatusBadRequest, "insufficient stock")
	case ErrInvalidQuantity:
		return response.Fail(c, fiber.StatusBadRequest, "quantity must be at least 1")
	default:
		return response.Fail(c, fiber.StatusInternalServerError, "cart operation failed")
	}
}
