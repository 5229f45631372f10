package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/wardrobe-backend/internal/platform/ctxutil"
	"github.com/yungbote/wardrobe-backend/internal/platform/validation"
)

func serve(t *testing.T, h gin.HandlerFunc) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request = req.WithContext(ctxutil.WithTraceData(req.Context(), &ctxutil.TraceData{RequestID: "req-42"}))
	h(c)
	return rec, c
}

func TestRespondErrorCarriesRequestIDAndCode(t *testing.T) {
	rec, c := serve(t, func(c *gin.Context) {
		RespondError(c, http.StatusConflict, "already_rated", errors.New("outfit already rated"))
	})
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "already_rated", ErrorCode(c))

	var env ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.Equal(t, "outfit already rated", env.Error.Message)
	require.Equal(t, "req-42", env.Error.RequestID)
	require.Empty(t, env.Error.Fields)
}

func TestRespondErrorListsValidationFields(t *testing.T) {
	type req struct {
		Name   string `json:"name" validate:"required"`
		Rating int    `json:"rating" validate:"min=1,max=5"`
	}
	verr := validation.Struct(req{Rating: 9})
	require.Error(t, verr)

	rec, _ := serve(t, func(c *gin.Context) {
		RespondError(c, http.StatusBadRequest, "invalid_item", verr)
	})
	var env ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.Len(t, env.Error.Fields, 2)
	require.Equal(t, "name", env.Error.Fields[0].Field)
	require.Equal(t, "required", env.Error.Fields[0].Rule)
	require.Equal(t, "rating", env.Error.Fields[1].Field)
	require.Equal(t, "max", env.Error.Fields[1].Rule)
}

func TestRespondCreated(t *testing.T) {
	rec, c := serve(t, func(c *gin.Context) { RespondCreated(c, gin.H{"ok": true}) })
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Empty(t, ErrorCode(c))
	require.JSONEq(t, `{"ok":true}`, rec.Body.String())
}
