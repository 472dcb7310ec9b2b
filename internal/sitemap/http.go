package sitemap

import (
	"encoding/xml"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/novaria/api/internal/platform/ctxutil"
	"github.com/novaria/api/internal/platform/respond"
)

// Handler serves the crawler-facing endpoints: the sitemap index, its
// partitions, and robots.txt.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the crawler endpoints at the site root.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/sitemap.xml", handler.index)
	router.Get("/sitemaps/{partition}.xml", handler.partition)
	router.Get("/robots.txt", handler.robots)
}

func (handler *Handler) index(writer http.ResponseWriter, request *http.Request) {
	index, err := handler.service.Index(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	writeXML(writer, request, index)
}

func (handler *Handler) partition(writer http.ResponseWriter, request *http.Request) {
	name := chi.URLParam(request, "partition")

	urlSet, err := handler.service.Partition(request.Context(), name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	writeXML(writer, request, urlSet)
}

func (handler *Handler) robots(writer http.ResponseWriter, request *http.Request) {
	writer.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(writer, "User-agent: *\nAllow: /\n\nSitemap: %s/sitemap.xml\n", handler.service.baseURL)
}

func writeXML(writer http.ResponseWriter, request *http.Request, document any) {
	writer.Header().Set("Content-Type", "application/xml; charset=utf-8")

	if _, err := writer.Write([]byte(xml.Header)); err != nil {
		return
	}
	if err := xml.NewEncoder(writer).Encode(document); err != nil {
		ctxutil.GetLogger(request.Context()).Error("sitemap_encode_failed", "error", err)
	}
}
