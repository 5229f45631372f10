package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/wardrobe-backend/internal/platform/ctxutil"
	"github.com/yungbote/wardrobe-backend/internal/platform/validation"
)

// ErrorCodeKey holds the code of the last error response on the gin context.
const ErrorCodeKey = "error_code"

type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

type APIError struct {
	Message   string       `json:"message"`
	Code      string       `json:"code,omitempty"`
	RequestID string       `json:"request_id,omitempty"`
	Fields    []FieldError `json:"fields,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// RespondError writes the error envelope. Validation failures list each
// offending field.
func RespondError(c *gin.Context, status int, code string, err error) {
	body := APIError{Message: "unknown error", Code: code}
	if err != nil {
		body.Message = err.Error()
	}
	var verr *validation.Error
	if errors.As(err, &verr) {
		for _, f := range verr.Fields {
			body.Fields = append(body.Fields, FieldError{Field: f.Field, Rule: f.Tag, Message: f.Message})
		}
	}
	if td := ctxutil.GetTraceData(c.Request.Context()); td != nil {
		body.RequestID = td.RequestID
	}
	if code != "" {
		c.Set(ErrorCodeKey, code)
	}
	c.JSON(status, ErrorEnvelope{Error: body})
}

// ErrorCode returns the code written by RespondError, or "".
func ErrorCode(c *gin.Context) string {
	return c.GetString(ErrorCodeKey)
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
