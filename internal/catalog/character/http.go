package character

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
	router.Get("/", handler.listCharacters)
	router.Get("/{id}", handler.getCharacter)

	// Authenticated catalogue maintenance
	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)

		protected.Post("/", handler.createCharacter)
		protected.Put("/{id}", handler.updateCharacter)

		protected.Delete("/{id}", handler.deleteCharacter)
	})
}

func (handler *Handler) listCharacters(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		NovelID: request.URL.Query().Get("novel_id"),
	}

	characters, total, err := handler.service.ListCharacters(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, characters, pagination.NewMeta(paginationParams, total))
}

func (handler *Handler) getCharacter(writer http.ResponseWriter, request *http.Request) {
	characterID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	character, err := handler.service.GetCharacter(request.Context(), characterID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, character)
}

func (handler *Handler) createCharacter(writer http.ResponseWriter, request *http.Request) {
	var input Character
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateCharacter(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateCharacter(writer http.ResponseWriter, request *http.Request) {
	characterID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Character
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateCharacter(request.Context(), characterID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteCharacter(writer http.ResponseWriter, request *http.Request) {
	characterID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteCharacter(request.Context(), characterID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
