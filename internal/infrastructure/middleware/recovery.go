package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/imgpipe/internal/pkg/httputil"
)

func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("panic recovered",
					zap.Any("panic", rec),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.String("request_id", c.GetString(RequestIDKey)),
					zap.ByteString("stack", debug.Stack()),
				)

				httputil.InternalError(c)
				c.Abort()
			}
		}()
		c.Next()
	}
}
