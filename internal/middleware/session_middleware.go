package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hivaasboutique/hivaas-catalogue/internal/services"
)

// SessionHeader carries the visitor's session ID. The server echoes it on
// every response; a missing or unknown ID mints a fresh session.
const SessionHeader = "X-Session-ID"

const sessionLocal = "session"

// SessionRequired is a Fiber middleware that attaches the visitor's
// session to the request context, creating one when needed. Each session
// is fully isolated in-memory state; there is nothing to authenticate.
func SessionRequired(sessionService *services.SessionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(SessionHeader)

		session, ok := sessionService.Get(id)
		if !ok {
			session = sessionService.Create()
		}

		c.Locals(sessionLocal, session)
		c.Set(SessionHeader, session.ID)

		return c.Next()
	}
}

// SessionFromCtx returns the session attached by SessionRequired.
func SessionFromCtx(c *fiber.Ctx) *services.Session {
	session, _ := c.Locals(sessionLocal).(*services.Session)
	return session
}
