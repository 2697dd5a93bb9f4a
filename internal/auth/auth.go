package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/DrawDrewpf/FullMart-sub000/internal/response"
)

// Identity is the decoded token payload downstream handlers work with.
type Identity struct {
	ID    int
	Email string
	Role  string
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// New returns the bearer-token middleware. A missing token and an expired
// token both yield 401 (with distinguishable messages); anything else wrong
// with the token yields 403.
func New(secret string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: []byte(secret),
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if err.Error() == "Missing or malformed JWT" {
				return response.Fail(c, fiber.StatusUnauthorized, "missing token")
			}
			var verr *jwt.ValidationError
			if errors.As(err, &verr) && verr.Errors&jwt.ValidationErrorExpired != 0 {
				return response.Fail(c, fiber.StatusUnauthorized, "token expired")
			}
			return response.Fail(c, fiber.StatusForbidden, "invalid token")
		},
	})
}

// RequireRole gates a route to the given roles. It expects New to have run
// first so the token is already in the request context.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *fiber.Ctx) error {
		ident, err := IdentityFromCtx(c)
		if err != nil {
			return response.Fail(c, fiber.StatusUnauthorized, "unauthorized")
		}
		if !allowed[ident.Role] {
			return response.Fail(c, fiber.StatusForbidden, "insufficient permissions")
		}
		return c.Next()
	}
}

// RequireAdmin is RequireRole parameterized to admins only.
func RequireAdmin() fiber.Handler {
	return RequireRole(RoleAdmin)
}

// Sign issues an HS256 token carrying the identity claims.
func Sign(secret string, ttl time.Duration, ident Identity) (string, error) {
	claims := jwt.MapClaims{
		"user_id": ident.ID,
		"email":   ident.Email,
		"role":    ident.Role,
		"exp":     time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// IdentityFromCtx reads the decoded claims the middleware stored on the
// request context.
func IdentityFromCtx(c *fiber.Ctx) (Identity, error) {
	u := c.Locals("user")
	if u == nil {
		return Identity{}, fiber.ErrUnauthorized
	}
	tok, ok := u.(*jwt.Token)
	if !ok {
		return Identity{}, fiber.ErrUnauthorized
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, fiber.ErrUnauthorized
	}

	var ident Identity
	id, err := intClaim(claims["user_id"])
	if err != nil {
		return Identity{}, fiber.ErrUnauthorized
	}
	ident.ID = id
	if v, ok := claims["email"].(string); ok {
		ident.Email = v
	}
	if v, ok := claims["role"].(string); ok {
		ident.Role = v
	}
	return ident, nil
}

// UserIDFromCtx is a shortcut for handlers that only need the caller's id.
func UserIDFromCtx(c *fiber.Ctx) (int, error) {
	ident, err := IdentityFromCtx(c)
	if err != nil {
		return 0, err
	}
	return ident.ID, nil
}

func intClaim(raw interface{}) (int, error) {
	switch v := raw.(type) {
	case float64:
		return int(v), nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case string:
		return strconv.Atoi(v)
	default:
		return 0, fiber.ErrUnauthorized
	}
}
