package address

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

func fakeAuth(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Get("X-User-ID"))
	if err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	c.Locals("user", &jwt.Token{Claims: jwt.MapClaims{"user_id": float64(id), "role": "user"}})
	return c.Next()
}

func newAddressApp(repo Repository) *fiber.App {
	app := fiber.New()
	NewHandler(NewService(repo)).RegisterProtectedRoutes(app, fakeAuth)
	return app
}

func addressDo(t *testing.T, app *fiber.App, method, target, body string, userID int) *http.Response {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set("X-User-ID", strconv.Itoa(userID))
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request %s %s: %v", method, target, err)
	}
	return resp
}

func TestCreateDefaultsCountry(t *testing.T) {
	app := newAddressApp(NewInMemoryRepository(nil))

	resp := addressDo(t, app, http.MethodPost, "/api/addresses",
		`{"street":"Calle Mayor 1","city":"Madrid","state":"Madrid","zip":"28001"}`, 7)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status: got %d, want 201", resp.StatusCode)
	}

	var envelope struct {
		Data Address `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Data.Country != "España" {
		t.Errorf("country: got %q, want España", envelope.Data.Country)
	}
}

func TestNewDefaultClearsPreviousDefault(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	app := newAddressApp(repo)

	addressDo(t, app, http.MethodPost, "/api/addresses",
		`{"street":"Calle Mayor 1","city":"Madrid","state":"Madrid","zip":"28001","isDefault":true}`, 7)
	addressDo(t, app, http.MethodPost, "/api/addresses",
		`{"street":"Gran Vía 2","city":"Madrid","state":"Madrid","zip":"28013","isDefault":true}`, 7)

	addrs, _ := repo.ListByUser(7)
	defaults := 0
	for _, a := range addrs {
		if a.IsDefault {
			defaults++
			if a.Street != "Gran Vía 2" {
				t.Errorf("wrong default: %+v", a)
			}
		}
	}
	if defaults != 1 {
		t.Fatalf("defaults: got %d, want 1", defaults)
	}
}

func TestDefaultIsPerUser(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	app := newAddressApp(repo)

	addressDo(t, app, http.MethodPost, "/api/addresses",
		`{"street":"Calle Mayor 1","city":"Madrid","state":"Madrid","zip":"28001","isDefault":true}`, 7)
	addressDo(t, app, http.MethodPost, "/api/addresses",
		`{"street":"Rambla 9","city":"Barcelona","state":"Barcelona","zip":"08002","isDefault":true}`, 8)

	addrs, _ := repo.ListByUser(7)
	if len(addrs) != 1 || !addrs[0].IsDefault {
		t.Errorf("user 7's default was disturbed: %+v", addrs)
	}
}

func TestUpdateOtherUsersAddressIs404(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	app := newAddressApp(repo)

	addressDo(t, app, http.MethodPost, "/api/addresses",
		`{"street":"Calle Mayor 1","city":"Madrid","state":"Madrid","zip":"28001"}`, 7)

	resp := addressDo(t, app, http.MethodPut, "/api/addresses/1",
		`{"street":"Hacked 1","city":"Madrid","state":"Madrid","zip":"28001"}`, 8)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("status: got %d, want 404", resp.StatusCode)
	}
}

func TestDeleteAddress(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	app := newAddressApp(repo)

	addressDo(t, app, http.MethodPost, "/api/addresses",
		`{"street":"Calle Mayor 1","city":"Madrid","state":"Madrid","zip":"28001"}`, 7)

	resp := addressDo(t, app, http.MethodDelete, "/api/addresses/1", "", 7)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("delete: got %d, want 200", resp.StatusCode)
	}

	resp = addressDo(t, app, http.MethodDelete, "/api/addresses/1", "", 7)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("delete missing: got %d, want 404", resp.StatusCode)
	}
}
