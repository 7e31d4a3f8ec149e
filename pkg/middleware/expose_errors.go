package middleware

import (
	"github.com/gin-gonic/gin"
	"schoolpay/pkg/utils"
)

// ExposeErrors lets error responses carry the underlying failure text. It is only
// installed outside production.
func ExposeErrors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(utils.ExposeErrorsKey, true)
		c.Next()
	}
}
