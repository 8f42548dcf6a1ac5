package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/logger"
)

// Recovery turns a handler panic into a 500 carrying the request id.
func Recovery(log logger.Logger) ginext.HandlerFunc {
	return func(c *ginext.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			// клиент ушёл, писать ответ некуда
			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rec)
			}

			id := c.GetString(requestIDKey)
			log.LogAttrs(c.Request.Context(), logger.ErrorLevel, "handler panicked",
				logger.String("request_id", id),
				logger.String("route", c.FullPath()),
				logger.String("method", c.Request.Method),
				logger.String("panic", fmt.Sprint(rec)),
				logger.String("stack", string(debug.Stack())),
			)

			body := ginext.H{"error": "internal server error"}
			if id != "" {
				body["request_id"] = id
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, body)
		}()

		c.Next()
	}
}
