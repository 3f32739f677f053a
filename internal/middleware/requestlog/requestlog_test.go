package requestlog

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"CardioCheck/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newEngine(seen *string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/healthz", func(c *gin.Context) {
		*seen = RequestID(c)
		c.Status(http.StatusOK)
	})
	return r
}

func TestMiddleware_GeneratesRequestID(t *testing.T) {
	var seen string
	r := newEngine(&seen)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	id := rec.Header().Get(HeaderRequestID)
	assert.True(t, util.ValidRequestID(id))
	assert.Equal(t, id, seen)
}

func TestMiddleware_PropagatesValidRequestID(t *testing.T) {
	var seen string
	r := newEngine(&seen)
	incoming := util.GenerateUUID()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(HeaderRequestID, incoming)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, incoming, rec.Header().Get(HeaderRequestID))
	assert.Equal(t, incoming, seen)
}

func TestMiddleware_ReplacesGarbageRequestID(t *testing.T) {
	var seen string
	r := newEngine(&seen)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(HeaderRequestID, "<script>")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	id := rec.Header().Get(HeaderRequestID)
	assert.NotEqual(t, "<script>", id)
	assert.True(t, util.ValidRequestID(id))
}
