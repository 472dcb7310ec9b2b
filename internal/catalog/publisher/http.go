package publisher

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/novaria/api/internal/platform/middleware"
	requestutil "github.com/novaria/api/internal/platform/request"
	"github.com/novaria/api/internal/platform/respond"
	"github.com/novaria/api/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listPublishers)
	router.Get("/{id}", handler.getPublisher)

	// Authenticated catalogue maintenance
	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)

		protected.Post("/", handler.createPublisher)
		protected.Put("/{id}", handler.updatePublisher)

		protected.Delete("/{id}", handler.deletePublisher)
	})
}

func (handler *Handler) listPublishers(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Query: request.URL.Query().Get("q"),
	}

	publishers, total, err := handler.service.ListPublishers(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, publishers, pagination.NewMeta(paginationParams, total))
}

func (handler *Handler) getPublisher(writer http.ResponseWriter, request *http.Request) {
	publisherID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	publisher, err := handler.service.GetPublisher(request.Context(), publisherID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, publisher)
}

func (handler *Handler) createPublisher(writer http.ResponseWriter, request *http.Request) {
	var input Publisher
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreatePublisher(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updatePublisher(writer http.ResponseWriter, request *http.Request) {
	publisherID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Publisher
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdatePublisher(request.Context(), publisherID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deletePublisher(writer http.ResponseWriter, request *http.Request) {
	publisherID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeletePublisher(request.Context(), publisherID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
