package apierror

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Abort renvoie l'erreur au client avec son code HTTP
func Abort(c *gin.Context, err error) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
