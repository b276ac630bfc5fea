package utils

import (
	"github.com/gin-gonic/gin"
)

// JSONResponse sends a structured JSON response
func JSONResponse(c *gin.Context, status int, data any, message string) {
	c.JSON(status, gin.H{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

// JSONPage sends one page of a listing along with its paging parameters
func JSONPage(c *gin.Context, status int, data any, page, pageSize int, message string) {
	c.JSON(status, gin.H{
		"status":    status,
		"message":   message,
		"data":      data,
		"page":      page,
		"page_size": pageSize,
	})
}

// JSONError sends a structured error response
func JSONError(c *gin.Context, status int, err error, message string) {
	body := gin.H{
		"status":  status,
		"message": message,
	}
	if err != nil {
		body["error"] = err.Error()
	}
	c.JSON(status, body)
}
