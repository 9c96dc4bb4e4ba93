package jacket

import (
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/libris/libris/internal/platform/apperr"
	requestutil "github.com/libris/libris/internal/platform/request"
	"github.com/libris/libris/internal/platform/respond"
)

// uploadField is the multipart form field carrying the image file.
const uploadField = "jacket"

// routeParamBookID matches the book router's parameter name; the jacket
// router is mounted under /books/{id}/jacket and chi propagates the parent
// parameter into this subtree.
const routeParamBookID = "id"

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.uploadJacket)
	router.Get("/", handler.getJacket)
	router.Get("/{size}", handler.getJacketSize)
	router.Delete("/", handler.deleteJacket)

	return router
}

func (handler *Handler) uploadJacket(writer http.ResponseWriter, request *http.Request) {
	bookID := requestutil.ID(request, routeParamBookID)

	data, contentType, size, err := requestutil.FormFile(writer, request, uploadField, MaxUploadBytes)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Upload(request.Context(), bookID, UploadedFile{
		Data:        data,
		ContentType: contentType,
		Size:        size,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, http.StatusCreated, "Jacket uploaded successfully", result)
}

func (handler *Handler) getJacket(writer http.ResponseWriter, request *http.Request) {
	handler.serveVariant(writer, request, DefaultVariant)
}

func (handler *Handler) getJacketSize(writer http.ResponseWriter, request *http.Request) {
	handler.serveVariant(writer, request, requestutil.Param(request, "size"))
}

// serveVariant streams the resolved variant file. Responses are marked
// no-cache: a replace swaps the bytes behind an unchanged URL.
func (handler *Handler) serveVariant(writer http.ResponseWriter, request *http.Request, size string) {
	bookID := requestutil.ID(request, routeParamBookID)

	path, contentType, err := handler.service.Retrieve(request.Context(), bookID, size)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			respond.Error(writer, request, apperr.NotFoundMsg("Jacket file not found"))
			return
		}
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	writer.Header().Set("Content-Type", contentType)
	writer.Header().Set("Content-Length", strconv.Itoa(len(data)))
	writer.Header().Set("Cache-Control", "no-cache")
	writer.WriteHeader(http.StatusOK)
	_, _ = writer.Write(data)
}

func (handler *Handler) deleteJacket(writer http.ResponseWriter, request *http.Request) {
	bookID := requestutil.ID(request, routeParamBookID)

	if err := handler.service.Delete(request.Context(), bookID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, http.StatusOK, "Jacket deleted successfully", nil)
}
