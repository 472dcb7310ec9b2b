package novel

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/novaria/api/internal/platform/middleware"
	"github.com/novaria/api/internal/platform/ratelimit"
	requestutil "github.com/novaria/api/internal/platform/request"
	"github.com/novaria/api/internal/platform/respond"
	"github.com/novaria/api/pkg/pagination"
)

// WriteLimits carries the per-route throttles applied to mutating endpoints.
// Search is included because it is the most expensive read path.
type WriteLimits struct {
	Create ratelimit.Limiter
	Modify ratelimit.Limiter
	Search ratelimit.Limiter
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
	router.Get("/", handler.listNovels)
	router.Get("/count", handler.countNovels)
	router.Get("/{id}", handler.getNovel)

	// Authenticated catalogue maintenance, throttled per route
	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)

		protected.With(middleware.Throttle(handler.limits.Create)).Post("/", handler.createNovel)
		protected.With(middleware.Throttle(handler.limits.Modify)).Put("/{id}", handler.updateNovel)
		protected.With(middleware.Throttle(handler.limits.Modify)).Delete("/{id}", handler.deleteNovel)
	})
}

// RegisterSearchRoutes mounts the catalogue search endpoint.
func (handler *Handler) RegisterSearchRoutes(router chi.Router) {
	router.With(middleware.Throttle(handler.limits.Search)).Get("/", handler.searchNovels)
}

func (handler *Handler) listNovels(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Status:  request.URL.Query().Get("status"),
		GenreID: request.URL.Query().Get("genre_id"),
	}

	novels, total, err := handler.service.ListNovels(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, novels, pagination.NewMeta(paginationParams, total))
}

func (handler *Handler) countNovels(writer http.ResponseWriter, request *http.Request) {
	total, err := handler.service.CountNovels(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]int64{"count": total})
}

func (handler *Handler) getNovel(writer http.ResponseWriter, request *http.Request) {
	novelID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	foundNovel, err := handler.service.GetNovel(request.Context(), novelID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, foundNovel)
}

func (handler *Handler) createNovel(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.CreateNovel(request.Context(), &input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, created)
}

func (handler *Handler) updateNovel(writer http.ResponseWriter, request *http.Request) {
	novelID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.UpdateNovel(request.Context(), novelID, &input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

func (handler *Handler) deleteNovel(writer http.ResponseWriter, request *http.Request) {
	novelID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteNovel(request.Context(), novelID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) searchNovels(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	novels, total, err := handler.service.SearchNovels(request.Context(), request.URL.Query().Get("q"), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, novels, pagination.NewMeta(paginationParams, total))
}
