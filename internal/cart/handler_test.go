package cart

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/DrawDrewpf/FullMart-sub000/internal/product"
)

func fakeAuth(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Get("X-User-ID"))
	if err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	c.Locals("user", &jwt.Token{Claims: jwt.MapClaims{"user_id": float64(id), "role": "user"}})
	return c.Next()
}

func seedProducts() []product.Product {
	return []product.Product{
		{ID: 1, Name: "Desk Lamp", Price: 30.00, Stock: 5, IsActive: true},
		{ID: 2, Name: "Office Chair", Price: 60.00, Stock: 2, IsActive: true},
		{ID: 3, Name: "Retired Monitor", Price: 99.00, Stock: 10, IsActive: false},
	}
}

func newCartApp(repo Repository) *fiber.App {
	app := fiber.New()
	NewHandler(NewService(repo)).RegisterProtectedRoutes(app, fakeAuth)
	return app
}

func cartRequest(t *testing.T, app *fiber.App, method, target, body string) *http.Response {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set("X-User-ID", "7")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request %s %s: %v", method, target, err)
	}
	return resp
}

func decodeItems(t *testing.T, resp *http.Response) []Item {
	t.Helper()
	var envelope struct {
		Success bool   `json:"success"`
		Data    []Item `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return envelope.Data
}

func TestAddItemReturnsCartView(t *testing.T) {
	app := newCartApp(NewInMemoryRepository(seedProducts()))

	resp := cartRequest(t, app, http.MethodPost, "/api/cart/add", `{"productId":1,"quantity":2}`)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status: got %d, want 200", resp.StatusCode)
	}

	items := decodeItems(t, resp)
	if len(items) != 1 {
		t.Fatalf("items: got %d, want 1", len(items))
	}
	if items[0].Quantity != 2 || items[0].LineTotal != 60.00 {
		t.Errorf("line: got qty=%d total=%.2f, want qty=2 total=60.00", items[0].Quantity, items[0].LineTotal)
	}
}

func TestAddItemInsufficientStockLeavesCartUnchanged(t *testing.T) {
	repo := NewInMemoryRepository(seedProducts())
	app := newCartApp(repo)

	resp := cartRequest(t, app, http.MethodPost, "/api/cart/add", `{"productId":2,"quantity":1}`)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("first add: got %d, want 200", resp.StatusCode)
	}

	// stock is 2, cart already holds 1, adding 2 more must fail
	resp = cartRequest(t, app, http.MethodPost, "/api/cart/add", `{"productId":2,"quantity":2}`)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("over-stock add: got %d, want 400", resp.StatusCode)
	}

	items, _ := repo.Get(7)
	if len(items) != 1 || items[0].Quantity != 1 {
		t.Errorf("cart changed after rejected add: %+v", items)
	}
}

func TestAddItemInactiveProduct(t *testing.T) {
	app := newCartApp(NewInMemoryRepository(seedProducts()))

	resp := cartRequest(t, app, http.MethodPost, "/api/cart/add", `{"productId":3,"quantity":1}`)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("status: got %d, want 404", resp.StatusCode)
	}
}

func TestUpdateItemQuantityZeroRejected(t *testing.T) {
	app := newCartApp(NewInMemoryRepository(seedProducts()))

	cartRequest(t, app, http.MethodPost, "/api/cart/add", `{"productId":1,"quantity":1}`)
	resp := cartRequest(t, app, http.MethodPut, "/api/cart/update", `{"productId":1,"quantity":0}`)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", resp.StatusCode)
	}
}

func TestUpdateItemMissingLine(t *testing.T) {
	app := newCartApp(NewInMemoryRepository(seedProducts()))

	resp := cartRequest(t, app, http.MethodPut, "/api/cart/update", `{"productId":1,"quantity":1}`)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("status: got %d, want 404", resp.StatusCode)
	}
}

func TestRemoveAndClear(t *testing.T) {
	repo := NewInMemoryRepository(seedProducts())
	app := newCartApp(repo)

	cartRequest(t, app, http.MethodPost, "/api/cart/add", `{"productId":1,"quantity":1}`)
	cartRequest(t, app, http.MethodPost, "/api/cart/add", `{"productId":2,"quantity":1}`)

	resp := cartRequest(t, app, http.MethodDelete, "/api/cart/remove/1", "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("remove: got %d, want 200", resp.StatusCode)
	}

	resp = cartRequest(t, app, http.MethodDelete, "/api/cart/remove/1", "")
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("remove missing: got %d, want 404", resp.StatusCode)
	}

	resp = cartRequest(t, app, http.MethodDelete, "/api/cart/clear", "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("clear: got %d, want 200", resp.StatusCode)
	}

	items, _ := repo.Get(7)
	if len(items) != 0 {
		t.Errorf("cart not empty after clear: %+v", items)
	}
}

func TestGetCartEmpty(t *testing.T) {
	app := newCartApp(NewInMemoryRepository(seedProducts()))

	resp := cartRequest(t, app, http.MethodGet, "/api/cart", "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status: got %d, want 200", resp.StatusCode)
	}
	if items := decodeItems(t, resp); len(items) != 0 {
		t.Errorf("expected empty cart, got %+v", items)
	}
}
