package library

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

// Every library route is scoped to the authenticated user.

func (handler *Handler) RegisterFavoriteRoutes(router chi.Router) {
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.listFavorites)
	router.Post("/", handler.addFavorite)
	router.Delete("/{id}", handler.removeFavorite)
}

func (handler *Handler) RegisterFollowRoutes(router chi.Router) {
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.listFollows)
	router.Post("/", handler.addFollow)
	router.Delete("/{id}", handler.removeFollow)
}

func (handler *Handler) RegisterMyListRoutes(router chi.Router) {
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.listMyList)
	router.Post("/", handler.addMyListEntry)
	router.Put("/{id}", handler.moveMyListEntry)
	router.Delete("/{id}", handler.removeMyListEntry)
}

// # Favorites

func (handler *Handler) listFavorites(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	favorites, total, err := handler.service.ListFavorites(request.Context(), userID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, favorites, pagination.NewMeta(paginationParams, total))
}

func (handler *Handler) addFavorite(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		NovelID string `json:"novel_id"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	favorite, err := handler.service.AddFavorite(request.Context(), userID, input.NovelID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, favorite)
}

func (handler *Handler) removeFavorite(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	favoriteID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.RemoveFavorite(request.Context(), userID, favoriteID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Follows

func (handler *Handler) listFollows(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	follows, total, err := handler.service.ListFollows(request.Context(), userID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, follows, pagination.NewMeta(paginationParams, total))
}

func (handler *Handler) addFollow(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		AuthorID *string `json:"author_id"`
		NovelID  *string `json:"novel_id"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	follow, err := handler.service.AddFollow(request.Context(), userID, input.AuthorID, input.NovelID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, follow)
}

func (handler *Handler) removeFollow(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	followID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.RemoveFollow(request.Context(), userID, followID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # MyList

func (handler *Handler) listMyList(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)
	collection := request.URL.Query().Get("collection")

	entries, total, err := handler.service.ListMyList(request.Context(), userID, collection, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, entries, pagination.NewMeta(paginationParams, total))
}

func (handler *Handler) addMyListEntry(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		NovelID        string `json:"novel_id"`
		CollectionName string `json:"collection_name"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.service.AddMyListEntry(request.Context(), userID, input.NovelID, input.CollectionName)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, entry)
}

func (handler *Handler) moveMyListEntry(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entryID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		CollectionName string `json:"collection_name"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.service.MoveMyListEntry(request.Context(), userID, entryID, input.CollectionName)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entry)
}

func (handler *Handler) removeMyListEntry(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entryID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.RemoveMyListEntry(request.Context(), userID, entryID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
