package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/wardrobe-backend/internal/http/response"
	"github.com/yungbote/wardrobe-backend/internal/platform/apierr"
	"github.com/yungbote/wardrobe-backend/internal/platform/validation"
)

// respondServiceError writes err using the status and code it carries. Errors
// without one are reported as 500 and their text is not exposed.
func respondServiceError(c *gin.Context, err error, code string) {
	status, code := apierr.From(err, http.StatusInternalServerError, code)
	_ = c.Error(err)
	if status >= http.StatusInternalServerError {
		response.RespondError(c, status, code, errInternal)
		return
	}
	response.RespondError(c, status, code, err)
}

// bindJSON decodes and validates the request body. It writes the error
// response itself and reports whether the handler should continue.
func bindJSON(c *gin.Context, req interface{}, code string) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return false
	}
	if err := validation.Struct(req); err != nil {
		response.RespondError(c, http.StatusBadRequest, code, err)
		return false
	}
	return true
}

var errInternal = errors.New("internal error")

func errUnknownCategory(raw string) error {
	return fmt.Errorf("unknown category %q", raw)
}
