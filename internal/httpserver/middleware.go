package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	visitorCookieName = "visitor_id"
	visitorCookieAge  = 180 * 24 * 60 * 60
	visitorKey        = "visitorID"
)

// visitorCookie assigns every browser a stable visitor id. The id keys the
// two persisted state slots; it carries no identity and is not an auth
// credential.
func visitorCookie() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(visitorCookieName)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(visitorCookieName, id, visitorCookieAge, "/", "", false, true)
		}
		c.Set(visitorKey, id)
		c.Next()
	}
}

func visitorID(c *gin.Context) string {
	return c.GetString(visitorKey)
}
