package product

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/DrawDrewpf/FullMart-sub000/internal/cache"
)

func seedCatalog() []Product {
	return []Product{
		{ID: 1, Name: "Desk Lamp", Description: "Warm light", Price: 30.00, Category: "home", Stock: 5, IsActive: true},
		{ID: 2, Name: "Office Chair", Description: "Ergonomic", Price: 60.00, Category: "furniture", Stock: 2, IsActive: true},
		{ID: 3, Name: "Retired Monitor", Price: 99.00, Category: "electronics", Stock: 10, IsActive: false},
	}
}

func passThrough(c *fiber.Ctx) error { return c.Next() }

func newProductApp(repo Repository, store *cache.Store) *fiber.App {
	app := fiber.New()
	h := NewHandler(NewService(repo), store)
	var cached fiber.Handler
	if store != nil {
		cached = cache.CachedJSON(store, time.Minute)
	}
	h.RegisterPublicRoutes(app, cached)
	h.RegisterAdminRoutes(app, passThrough, passThrough)
	return app
}

type listEnvelope struct {
	Success bool `json:"success"`
	Data    struct {
		Products []Product `json:"products"`
		Total    int       `json:"total"`
		Page     int       `json:"page"`
	} `json:"data"`
}

func getList(t *testing.T, app *fiber.App, target string) listEnvelope {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	if err != nil {
		t.Fatalf("request %s: %v", target, err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status: got %d, want 200", resp.StatusCode)
	}
	var envelope listEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return envelope
}

func TestListExcludesSoftDeleted(t *testing.T) {
	app := newProductApp(NewInMemoryRepository(seedCatalog()), nil)

	envelope := getList(t, app, "/api/products")
	if envelope.Data.Total != 2 {
		t.Fatalf("total: got %d, want 2", envelope.Data.Total)
	}
	for _, p := range envelope.Data.Products {
		if !p.IsActive {
			t.Errorf("inactive product %d in public listing", p.ID)
		}
	}
}

func TestListFiltersByCategoryAndSearch(t *testing.T) {
	app := newProductApp(NewInMemoryRepository(seedCatalog()), nil)

	envelope := getList(t, app, "/api/products?category=home")
	if envelope.Data.Total != 1 || envelope.Data.Products[0].ID != 1 {
		t.Errorf("category filter: got %+v", envelope.Data)
	}

	envelope = getList(t, app, "/api/products?search=ergonomic")
	if envelope.Data.Total != 1 || envelope.Data.Products[0].ID != 2 {
		t.Errorf("search filter: got %+v", envelope.Data)
	}
}

func TestGetSoftDeletedProductIs404(t *testing.T) {
	app := newProductApp(NewInMemoryRepository(seedCatalog()), nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/products/3", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("status: got %d, want 404", resp.StatusCode)
	}
}

func TestAdminCreateAndPartialUpdate(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	app := newProductApp(repo, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/products",
		strings.NewReader(`{"name":"Desk Lamp","price":30.00,"category":"home","stock":5}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("create status: got %d, want 201", resp.StatusCode)
	}

	// setting stock to zero must stick, and untouched fields must survive
	req = httptest.NewRequest(http.MethodPut, "/api/admin/products/1",
		strings.NewReader(`{"stock":0}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("update status: got %d, want 200", resp.StatusCode)
	}

	p, err := repo.GetByID(1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.Stock != 0 {
		t.Errorf("stock: got %d, want 0", p.Stock)
	}
	if p.Name != "Desk Lamp" || p.Price != 30.00 {
		t.Errorf("untouched fields changed: %+v", p)
	}
}

func TestAdminDeleteIsSoft(t *testing.T) {
	repo := NewInMemoryRepository(seedCatalog())
	app := newProductApp(repo, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/admin/products/1", nil))
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("delete status: got %d, want 200", resp.StatusCode)
	}

	if _, err := repo.GetByID(1); err != ErrNotFound {
		t.Error("product still visible publicly after delete")
	}
	if _, err := repo.GetAnyByID(1); err != nil {
		t.Error("product row gone entirely, expected soft delete")
	}
}

func TestMutationInvalidatesCachedListing(t *testing.T) {
	store := cache.NewStore()
	repo := NewInMemoryRepository(seedCatalog())
	app := newProductApp(repo, store)

	first := getList(t, app, "/api/products")
	if first.Data.Total != 2 {
		t.Fatalf("total: got %d, want 2", first.Data.Total)
	}

	// cached now; a delete must drop the entry so the next read is fresh
	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/admin/products/1", nil))
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("delete status: got %d", resp.StatusCode)
	}

	second := getList(t, app, "/api/products")
	if second.Data.Total != 1 {
		t.Errorf("stale listing served after mutation: total %d, want 1", second.Data.Total)
	}
}

func TestExportExcelHeaders(t *testing.T) {
	app := newProductApp(NewInMemoryRepository(seedCatalog()), nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/admin/products/export", nil))
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status: got %d, want 200", resp.StatusCode)
	}
	if got := resp.Header.Get(fiber.HeaderContentDisposition); !strings.Contains(got, "products.xlsx") {
		t.Errorf("content disposition: got %q", got)
	}
}
