package kube

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/libris/libris/internal/platform/apperr"
	"github.com/libris/libris/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.createKube)
	router.Get("/", handler.getKube)
	router.Put("/", handler.updateKube)
	router.Delete("/", handler.deleteKube)

	return router
}

func (handler *Handler) createKube(writer http.ResponseWriter, request *http.Request) {
	content, err := readBody(writer, request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Create(content); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, http.StatusCreated, "Kube file created successfully", nil)
}

func (handler *Handler) getKube(writer http.ResponseWriter, request *http.Request) {
	content, err := handler.service.Get()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	writer.Header().Set("Content-Type", "image/svg+xml")
	writer.Header().Set("Content-Length", strconv.Itoa(len(content)))
	writer.WriteHeader(http.StatusOK)
	_, _ = writer.Write(content)
}

func (handler *Handler) updateKube(writer http.ResponseWriter, request *http.Request) {
	content, err := readBody(writer, request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Update(content); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, http.StatusOK, "Kube file updated successfully", nil)
}

func (handler *Handler) deleteKube(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, http.StatusOK, "Kube file deleted successfully", nil)
}

// readBody buffers the raw SVG payload with the size cap enforced at the
// transport level.
func readBody(writer http.ResponseWriter, request *http.Request) ([]byte, error) {
	content, err := io.ReadAll(http.MaxBytesReader(writer, request.Body, MaxBytes))
	if err != nil {
		return nil, apperr.ValidationError("File too large. Maximum size: 1MB.")
	}
	return content, nil
}
