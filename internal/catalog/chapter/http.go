package chapter

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

// RegisterVolumeRoutes mounts the volume endpoints.
func (handler *Handler) RegisterVolumeRoutes(router chi.Router) {
	router.Get("/", handler.listVolumes)
	router.Get("/{id}", handler.getVolume)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)

		protected.Post("/", handler.createVolume)
		protected.Put("/{id}", handler.updateVolume)

		protected.Delete("/{id}", handler.deleteVolume)
	})
}

// RegisterChapterRoutes mounts the chapter endpoints.
func (handler *Handler) RegisterChapterRoutes(router chi.Router) {
	router.Get("/", handler.listChapters)
	router.Get("/{id}", handler.getChapter)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)

		protected.Post("/", handler.createChapter)
		protected.Put("/{id}", handler.updateChapter)

		protected.Delete("/{id}", handler.deleteChapter)
	})
}

// # Volume Handlers

func (handler *Handler) listVolumes(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := VolumeFilter{
		NovelID: request.URL.Query().Get("novel_id"),
	}

	volumes, total, err := handler.service.ListVolumes(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, volumes, pagination.NewMeta(paginationParams, total))
}

func (handler *Handler) getVolume(writer http.ResponseWriter, request *http.Request) {
	volumeID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	volume, err := handler.service.GetVolume(request.Context(), volumeID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, volume)
}

func (handler *Handler) createVolume(writer http.ResponseWriter, request *http.Request) {
	var input Volume
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateVolume(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateVolume(writer http.ResponseWriter, request *http.Request) {
	volumeID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Volume
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateVolume(request.Context(), volumeID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteVolume(writer http.ResponseWriter, request *http.Request) {
	volumeID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteVolume(request.Context(), volumeID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Chapter Handlers

func (handler *Handler) listChapters(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := ChapterFilter{
		VolumeID: request.URL.Query().Get("volume_id"),
	}

	chapters, total, err := handler.service.ListChapters(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, chapters, pagination.NewMeta(paginationParams, total))
}

func (handler *Handler) getChapter(writer http.ResponseWriter, request *http.Request) {
	chapterID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapter, err := handler.service.GetChapter(request.Context(), chapterID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, chapter)
}

func (handler *Handler) createChapter(writer http.ResponseWriter, request *http.Request) {
	var input Chapter
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateChapter(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateChapter(writer http.ResponseWriter, request *http.Request) {
	chapterID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Chapter
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateChapter(request.Context(), chapterID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteChapter(writer http.ResponseWriter, request *http.Request) {
	chapterID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteChapter(request.Context(), chapterID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
