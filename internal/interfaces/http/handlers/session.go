// internal/interfaces/http/handlers/session.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/your-org/storefront-backend/internal/config"
)

const sessionCookie = "session_id"

// getOrCreateSessionID gets the cart session ID from the cookie or
// creates a new one. The cart is scoped to this id; a browser profile
// keeps the same cart for as long as the cookie lives.
func getOrCreateSessionID(c *gin.Context, cfg *config.Config) string {
	sessionID, err := c.Cookie(sessionCookie)
	if err != nil || sessionID == "" {
		sessionID = uuid.New().String()
		c.SetCookie(sessionCookie, sessionID, int(cfg.Cart.SessionTTL.Seconds()), "/", "", false, true)
	}

	return sessionID
}
