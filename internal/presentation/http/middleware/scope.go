package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// ShopIDHeader identifies the calling shop for rate limiting and idempotency
const ShopIDHeader = "X-Shop-ID"

// ClientScope returns the shop named in the X-Shop-ID header, or the client
// address when the header is absent.
func ClientScope(c *gin.Context) string {
	if shopID := strings.TrimSpace(c.GetHeader(ShopIDHeader)); shopID != "" {
		return "shop:" + shopID
	}
	return "ip:" + c.ClientIP()
}
