package v1

import (
	"strconv"

	"job-portal-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// pathID reads a positive integer path parameter.
func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.BadRequest("Invalid " + name)
	}
	return id, nil
}

// bindJSON decodes the body and reports malformed JSON as a bad request.
// Field rules are checked by the usecase validator.
func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return apperror.Validation("Invalid request body", err)
	}
	return nil
}

// with returns mw followed by h without sharing mw's backing array.
func with(mw []gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	chain := make([]gin.HandlerFunc, 0, len(mw)+1)
	return append(append(chain, mw...), h)
}
