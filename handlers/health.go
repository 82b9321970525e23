package handlers

import (
	"net/http"

	"cleanslate/utils"

	"github.com/gin-gonic/gin"
)

func Health(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.Healthy() {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{"status": status, "message": "Hi, I'm Clean Slate"})
}
