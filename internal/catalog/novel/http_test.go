package novel

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/novaria/api/internal/platform/ctxutil"
	"github.com/novaria/api/internal/platform/ratelimit"
	"github.com/novaria/api/internal/platform/sec"
)

func newTestRouter() (chi.Router, *mockRepository) {
	service, repo := newTestService()

	limiter := ratelimit.NewMemory(time.Minute, 100)
	handler := NewHandler(service, WriteLimits{
		Create: limiter,
		Modify: limiter,
		Search: limiter,
	})

	router := chi.NewRouter()
	router.Route("/novels", handler.RegisterRoutes)
	return router, repo
}

// Any authenticated account may delete catalogue entries; deletion is not
// reserved for elevated roles.
func TestDeleteNovelAllowsRegularMembers(t *testing.T) {
	router, _ := newTestRouter()

	request := httptest.NewRequest(http.MethodDelete, "/novels/0195f5c8-0000-7000-8000-00000000000a", nil)
	request = request.WithContext(ctxutil.WithAuthUser(request.Context(), &sec.AuthClaims{
		UserID:   "0195f5c8-0000-7000-8000-00000000000b",
		Username: "bookworm",
		Role:     string(sec.RoleMember),
	}))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
}

func TestDeleteNovelRequiresAuthentication(t *testing.T) {
	router, _ := newTestRouter()

	request := httptest.NewRequest(http.MethodDelete, "/novels/0195f5c8-0000-7000-8000-00000000000a", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
