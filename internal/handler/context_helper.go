package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/suvrat007/tutora-sub001/internal/middleware"
)

func sessionFromContext(c *gin.Context) string {
	return middleware.SessionID(c)
}
