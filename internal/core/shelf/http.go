package shelf

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/libris/libris/internal/platform/request"
	"github.com/libris/libris/internal/platform/respond"
	"github.com/libris/libris/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listShelves)
	router.Post("/", handler.createShelf)
	router.Get("/{id}", handler.getShelf)
	router.Put("/{id}", handler.updateShelf)
	router.Delete("/{id}", handler.deleteShelf)

	return router
}

func (handler *Handler) listShelves(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	shelves, total, err := handler.service.ListShelves(request.Context(), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, shelves, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getShelf(writer http.ResponseWriter, request *http.Request) {
	shelfID := requestutil.ID(request, "id")

	shelf, err := handler.service.GetShelf(request.Context(), shelfID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, shelf)
}

func (handler *Handler) createShelf(writer http.ResponseWriter, request *http.Request) {
	var input Shelf
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateShelf(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateShelf(writer http.ResponseWriter, request *http.Request) {
	shelfID := requestutil.ID(request, "id")

	var input Shelf
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateShelf(request.Context(), shelfID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteShelf(writer http.ResponseWriter, request *http.Request) {
	shelfID := requestutil.ID(request, "id")

	if err := handler.service.DeleteShelf(request.Context(), shelfID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
