package product

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/tealeg/xlsx"

	"github.com/DrawDrewpf/FullMart-sub000/internal/cache"
	"github.com/DrawDrewpf/FullMart-sub000/internal/response"
	"github.com/DrawDrewpf/FullMart-sub000/internal/validation"
)

// Handler exposes the public catalog and the admin back-office for products.
type Handler struct {
	service *Service
	store   *cache.Store
}

// NewHandler wires the handler. store may be nil; it is only used to drop
// cached catalog listings after an admin mutation.
func NewHandler(service *Service, store *cache.Store) *Handler {
	return &Handler{service: service, store: store}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App, cached fiber.Handler) {
	if cached != nil {
		app.Get("/api/products", cached, h.list)
	} else {
		app.Get("/api/products", h.list)
	}
	app.Get("/api/products/:id<int>", h.get)
}

func (h *Handler) RegisterAdminRoutes(app *fiber.App, authMW, adminMW fiber.Handler) {
	app.Get("/api/admin/products", authMW, adminMW, h.adminList)
	app.Get("/api/admin/products/export", authMW, adminMW, h.exportExcel)
	app.Post("/api/admin/products", authMW, adminMW, h.create)
	app.Put("/api/admin/products/:id<int>", authMW, adminMW, h.update)
	app.Delete("/api/admin/products/:id<int>", authMW, adminMW, h.remove)
}

func (h *Handler) list(c *fiber.Ctx) error {
	filter := ListFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("limit", 12),
	}

	products, total, err := h.service.List(filter)
	if err != nil {
		return response.Fail(c, fiber.StatusInternalServerError, "could not load products")
	}
	return response.OK(c, fiber.Map{
		"products": products,
		"total":    total,
		"page":     filter.Page,
	})
}

func (h *Handler) get(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "invalid product id")
	}

	p, err := h.service.GetByID(id)
	if err != nil {
		if err == ErrNotFound {
			return response.Fail(c, fiber.StatusNotFound, "product not found")
		}
		return response.Fail(c, fiber.StatusInternalServerError, "could not load product")
	}
	return response.OK(c, p)
}

func (h *Handler) adminList(c *fiber.Ctx) error {
	products, err := h.service.ListAll()
	if err != nil {
		return response.Fail(c, fiber.StatusInternalServerError, "could not load products")
	}
	return response.OK(c, products)
}

type createProductRequest struct {
	Name        string  `json:"name" validate:"required,min=2"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Category    string  `json:"category" validate:"required"`
	Stock       int     `json:"stock" validate:"gte=0"`
	ImageURL    string  `json:"imageUrl"`
}

type updateProductRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=2"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	Category    *string  `json:"category"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	ImageURL    *string  `json:"imageUrl"`
	IsActive    *bool    `json:"isActive"`
}

func (h *Handler) create(c *fiber.Ctx) error {
	payload := new(createProductRequest)
	if err := c.BodyParser(payload); err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if errs := validation.Struct(payload); errs != nil {
		return response.FailWith(c, fiber.StatusBadRequest, "validation failed", errs)
	}

	created, err := h.service.Create(Product{
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		Category:    payload.Category,
		Stock:       payload.Stock,
		ImageURL:    payload.ImageURL,
	})
	if err != nil {
		return response.Fail(c, fiber.StatusInternalServerError, "could not create product")
	}
	h.invalidateListings()
	return response.Created(c, created)
}

func (h *Handler) update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "invalid product id")
	}

	payload := new(updateProductRequest)
	if err := c.BodyParser(payload); err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if errs := validation.Struct(payload); errs != nil {
		return response.FailWith(c, fiber.StatusBadRequest, "validation failed", errs)
	}

	updated, err := h.service.Update(id, UpdateInput{
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		Category:    payload.Category,
		Stock:       payload.Stock,
		ImageURL:    payload.ImageURL,
		IsActive:    payload.IsActive,
	})
	if err != nil {
		if err == ErrNotFound {
			return response.Fail(c, fiber.StatusNotFound, "product not found")
		}
		return response.Fail(c, fiber.StatusInternalServerError, "could not update product")
	}
	h.invalidateListings()
	return response.OK(c, updated)
}

func (h *Handler) remove(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "invalid product id")
	}

	if err := h.service.SoftDelete(id); err != nil {
		if err == ErrNotFound {
			return response.Fail(c, fiber.StatusNotFound, "product not found")
		}
		return response.Fail(c, fiber.StatusInternalServerError, "could not delete product")
	}
	h.invalidateListings()
	return response.Message(c, "product deleted")
}

// exportExcel streams the full catalog, soft-deleted rows included, as an
// .xlsx sheet for back-office reporting.
func (h *Handler) exportExcel(c *fiber.Ctx) error {
	products, err := h.service.ListAll()
	if err != nil {
		return response.Fail(c, fiber.StatusInternalServerError, "could not load products")
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return response.Fail(c, fiber.StatusInternalServerError, "could not create sheet")
	}

	headers := []string{"ID", "Name", "Description", "Price", "Category", "Stock", "ImageURL", "Active", "CreatedAt", "UpdatedAt"}
	headerRow := sheet.AddRow()
	for _, head := range headers {
		headerRow.AddCell().SetValue(head)
	}

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetValue(p.ID)
		row.AddCell().SetValue(p.Name)
		row.AddCell().SetValue(p.Description)
		row.AddCell().SetValue(p.Price)
		row.AddCell().SetValue(p.Category)
		row.AddCell().SetValue(p.Stock)
		row.AddCell().SetValue(p.ImageURL)
		row.AddCell().SetValue(p.IsActive)
		row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
		row.AddCell().SetValue(p.UpdatedAt.Format("2006-01-02 15:04:05"))
	}

	c.Set(fiber.HeaderContentDisposition, `attachment; filename=products.xlsx`)
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return file.Write(c.Response().BodyWriter())
}

func (h *Handler) invalidateListings() {
	if h.store != nil {
		h.store.DeletePrefix("/api/products")
	}
}
