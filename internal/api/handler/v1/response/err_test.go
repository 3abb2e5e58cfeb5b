package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderErr(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        *Err
		wantStatus int
		wantError  string
	}{
		{
			name:       "Bad request keeps the message",
			err:        ErrBadRequest(errors.New("event is full")),
			wantStatus: http.StatusBadRequest,
			wantError:  "event is full",
		},
		{
			name:       "Not found names the resource",
			err:        ErrNotFound("event", "ID", "abc"),
			wantStatus: http.StatusNotFound,
			wantError:  "event with ID 'abc' does not exist",
		},
		{
			name:       "Declined payment",
			err:        ErrPaymentDeclined(errors.New("declined")),
			wantStatus: http.StatusPaymentRequired,
			wantError:  "declined",
		},
		{
			name:       "Internal error hides the cause",
			err:        ErrInternalServerError(errors.New("pq: connection refused")),
			wantStatus: http.StatusInternalServerError,
			wantError:  "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(rec)
			ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			RenderErr(ctx, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.True(t, ctx.IsAborted())

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantError, body["error"])
			assert.NotEmpty(t, body["status"])
		})
	}
}
