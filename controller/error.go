package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-splendor/entities"
)

// statusFor 领域错误映射到 HTTP 状态码
func statusFor(kind entities.ErrorKind) int {
	switch kind {
	case entities.KindNotFound:
		return http.StatusNotFound
	case entities.KindNotCurrentTurn:
		return http.StatusForbidden
	case entities.KindGameInProgress:
		return http.StatusConflict
	default:
		return http.StatusUnprocessableEntity
	}
}

func writeError(c *gin.Context, err error) {
	var ge *entities.GameError
	if errors.As(err, &ge) {
		c.JSON(statusFor(ge.Kind), gin.H{
			"status_code": statusFor(ge.Kind),
			"code":        ge.Kind,
			"message":     ge.Error(),
		})
		return
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"status_code": http.StatusInternalServerError,
		"message":     "服务器内部错误",
	})
}

func writeData(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"message":     msg,
		"data":        data,
	})
}
