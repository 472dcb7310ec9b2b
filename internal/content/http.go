package content

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/novaria/api/internal/platform/apperr"
	"github.com/novaria/api/internal/platform/respond"
)

// Handler serves the editorial endpoints. Reads come straight from the
// in-memory repository; there is no service layer because articles carry no
// business rules.
type Handler struct {
	repository Repository
}

func NewHandler(repository Repository) *Handler {
	return &Handler{repository: repository}
}

// RegisterBlogRoutes mounts the blog section on the given router.
func (handler *Handler) RegisterBlogRoutes(router chi.Router) {
	router.Get("/", handler.list(KindBlog))
	router.Get("/{slug}", handler.get(KindBlog))
}

// RegisterNewsRoutes mounts the news section on the given router.
func (handler *Handler) RegisterNewsRoutes(router chi.Router) {
	router.Get("/", handler.list(KindNews))
	router.Get("/{slug}", handler.get(KindNews))
}

func (handler *Handler) list(kind Kind) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		articles := handler.repository.List(kind)

		// Listings omit the body to keep payloads small.
		summaries := make([]*Article, 0, len(articles))
		for _, article := range articles {
			summary := *article
			summary.Body = ""
			summaries = append(summaries, &summary)
		}

		respond.OK(writer, summaries)
	}
}

func (handler *Handler) get(kind Kind) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		slug := chi.URLParam(request, "slug")

		article, ok := handler.repository.Get(kind, slug)
		if !ok {
			respond.Error(writer, request, apperr.NotFound("Article"))
			return
		}

		respond.OK(writer, article)
	}
}
