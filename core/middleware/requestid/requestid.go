package requestid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderName is the response header carrying the request ID.
const HeaderName = "X-Request-Id"

// New returns middleware that assigns every request a unique ID, stored in
// locals under "request_id" and echoed in the response headers. An ID
// supplied by the caller is kept so upstream traces carry through.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(HeaderName)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals("request_id", rid)
		c.Set(HeaderName, rid)
		return c.Next()
	}
}
