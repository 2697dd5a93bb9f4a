package response

import "github.com/gofiber/fiber/v2"

// Envelope is the JSON shape every endpoint replies with.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

func OK(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{Success: true, Data: data})
}

func Created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Envelope{Success: true, Data: data})
}

// Message replies with a success envelope that carries no data payload.
func Message(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{Success: true, Message: msg})
}

func Fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(Envelope{Success: false, Message: msg})
}

// FailWith attaches structured error detail, e.g. a field -> message map from
// request validation.
func FailWith(c *fiber.Ctx, status int, msg string, detail interface{}) error {
	return c.Status(status).JSON(Envelope{Success: false, Message: msg, Error: detail})
}
