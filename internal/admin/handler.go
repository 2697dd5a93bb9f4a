package admin

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/DrawDrewpf/FullMart-sub000/internal/response"
)

// Handler exposes the admin dashboard aggregations. All routes sit behind the
// auth and admin middlewares wired in main.
type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterAdminRoutes(app *fiber.App, authMW, adminMW fiber.Handler) {
	app.Get("/api/admin/dashboard", authMW, adminMW, h.dashboard)
	app.Get("/api/admin/dashboard/top-products", authMW, adminMW, h.topProducts)
	app.Get("/api/admin/dashboard/revenue", authMW, adminMW, h.monthlyRevenue)
}

func (h *Handler) dashboard(c *fiber.Ctx) error {
	stats, err := h.repo.DashboardStats()
	if err != nil {
		log.Printf("admin: dashboard stats: %v", err)
		return response.Fail(c, fiber.StatusInternalServerError, "could not load dashboard stats")
	}
	return response.OK(c, stats)
}

func (h *Handler) topProducts(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "5"))
	products, err := h.repo.TopProducts(limit)
	if err != nil {
		log.Printf("admin: top products: %v", err)
		return response.Fail(c, fiber.StatusInternalServerError, "could not load top products")
	}
	return response.OK(c, products)
}

func (h *Handler) monthlyRevenue(c *fiber.Ctx) error {
	months, _ := strconv.Atoi(c.Query("months", "12"))
	series, err := h.repo.MonthlyRevenue(months)
	if err != nil {
		log.Printf("admin: monthly revenue: %v", err)
		return response.Fail(c, fiber.StatusInternalServerError, "could not load revenue series")
	}
	return response.OK(c, series)
}
