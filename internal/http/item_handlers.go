package http

import (
	"fmt"
	"net/http"
	"strconv"

	"devops-api/internal/items"

	"github.com/go-chi/chi/v5"
)

const paramItemID = "id"

type deleteItemResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

type listItemsHandler struct {
	itemService items.ItemService
}

func NewListItemsHandler(itemService items.ItemService) AppHttpHandler {
	return &listItemsHandler{itemService: itemService}
}

// Handle processes GET /api/items.
func (h *listItemsHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	writeJSON(w, http.StatusOK, h.itemService.ListItems(r.Context()))
	return nil
}

type createItemHandler struct {
	itemService items.ItemService
}

func NewCreateItemHandler(itemService items.ItemService) AppHttpHandler {
	return &createItemHandler{itemService: itemService}
}

// Handle processes POST /api/items.
func (h *createItemHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	item, err := h.itemService.CreateItem(r.Context(), r.Body)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, item)
	return nil
}

type getItemHandler struct {
	itemService items.ItemService
}

func NewGetItemHandler(itemService items.ItemService) AppHttpHandler {
	return &getItemHandler{itemService: itemService}
}

// Handle processes GET /api/items/{id}.
func (h *getItemHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	id, err := itemID(r)
	if err != nil {
		return err
	}
	item, err := h.itemService.GetItem(r.Context(), id)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, item)
	return nil
}

type updateItemHandler struct {
	itemService items.ItemService
}

func NewUpdateItemHandler(itemService items.ItemService) AppHttpHandler {
	return &updateItemHandler{itemService: itemService}
}

// Handle processes PUT /api/items/{id}.
func (h *updateItemHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	id, err := itemID(r)
	if err != nil {
		return err
	}
	item, err := h.itemService.UpdateItem(r.Context(), id, r.Body)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, item)
	return nil
}

type deleteItemHandler struct {
	itemService items.ItemService
}

func NewDeleteItemHandler(itemService items.ItemService) AppHttpHandler {
	return &deleteItemHandler{itemService: itemService}
}

// Handle processes DELETE /api/items/{id}.
func (h *deleteItemHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	id, err := itemID(r)
	if err != nil {
		return err
	}
	if err := h.itemService.DeleteItem(r.Context(), id); err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, deleteItemResponse{Message: "Item deleted", ID: id})
	return nil
}

// itemID parses the {id} path parameter. Only plain decimal digits naming a positive
// int64 are accepted; anything else is answered like an unmatched route.
func itemID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, paramItemID)
	if raw == "" {
		return 0, errRouteNotFound(fmt.Errorf("empty item id"))
	}
	for _, c := range raw {
		if c < '0' || c > '9' {
			return 0, errRouteNotFound(fmt.Errorf("item id %q is not a number", raw))
		}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errRouteNotFound(err)
	}
	if id <= 0 {
		return 0, errRouteNotFound(fmt.Errorf("item id %d is not positive", id))
	}
	return id, nil
}
