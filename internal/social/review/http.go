package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/novaria/api/internal/platform/middleware"
	"github.com/novaria/api/internal/platform/ratelimit"
	requestutil "github.com/novaria/api/internal/platform/request"
	"github.com/novaria/api/internal/platform/respond"
	"github.com/novaria/api/internal/platform/sec"
	"github.com/novaria/api/pkg/pagination"
)

// WriteLimits carries the per-route throttles for review mutations.
type WriteLimits struct {
	Create ratelimit.Limiter
	Modify ratelimit.Limiter
}

type Handler struct {
	service *Service
	limits  WriteLimits
}

func NewHandler(service *Service, limits WriteLimits) *Handler {
	return &Handler{service: service, limits: limits}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listReviews)
	router.Get("/count", handler.countReviews)
	router.Get("/{id}", handler.getReview)

	// Authenticated, throttled per route
	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)

		protected.With(middleware.Throttle(handler.limits.Create)).Post("/", handler.createReview)
		protected.With(middleware.Throttle(handler.limits.Modify)).Put("/{id}", handler.updateReview)
		protected.With(middleware.Throttle(handler.limits.Modify)).Delete("/{id}", handler.deleteReview)
	})
}

// RegisterNovelRoutes mounts the nested per-novel review listing, where the
// "id" path parameter is the novel's.
func (handler *Handler) RegisterNovelRoutes(router chi.Router) {
	router.Get("/", handler.listNovelReviews)
}

func (handler *Handler) listReviews(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		NovelID: request.URL.Query().Get("novel_id"),
		UserID:  request.URL.Query().Get("user_id"),
	}

	reviews, total, err := handler.service.ListReviews(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reviews, pagination.NewMeta(paginationParams, total))
}

func (handler *Handler) listNovelReviews(writer http.ResponseWriter, request *http.Request) {
	novelID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	reviews, total, err := handler.service.ListReviews(request.Context(), Filter{NovelID: novelID}, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reviews, pagination.NewMeta(paginationParams, total))
}

func (handler *Handler) countReviews(writer http.ResponseWriter, request *http.Request) {
	total, err := handler.service.CountReviews(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]int64{"count": total})
}

func (handler *Handler) getReview(writer http.ResponseWriter, request *http.Request) {
	reviewID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	foundReview, err := handler.service.GetReview(request.Context(), reviewID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, foundReview)
}

func (handler *Handler) createReview(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.CreateReview(request.Context(), claims.UserID, &input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, created)
}

func (handler *Handler) updateReview(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	reviewID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.UpdateReview(request.Context(), reviewID, claims.UserID, sec.UserRole(claims.Role), &input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

func (handler *Handler) deleteReview(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	reviewID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteReview(request.Context(), reviewID, claims.UserID, sec.UserRole(claims.Role)); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
