package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"devops-api/internal/items"
	itemmocks "devops-api/internal/items/mocks"
	"devops-api/internal/models"
	"devops-api/internal/shared/svcerrors"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// withItemID attaches a chi route context carrying the {id} parameter.
func withItemID(req *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(paramItemID, id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestItemID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{raw: "1", want: 1},
		{raw: "42", want: 42},
		{raw: "007", want: 7},
		{raw: "0", wantErr: true},
		{raw: "-1", wantErr: true},
		{raw: "+1", wantErr: true},
		{raw: "abc", wantErr: true},
		{raw: "1.5", wantErr: true},
		{raw: "99999999999999999999", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			id, err := itemID(withItemID(httptest.NewRequest(http.MethodGet, "/", nil), tt.raw))
			if tt.wantErr {
				svcErr, ok := svcerrors.AsServiceError(err)
				require.True(t, ok)
				assert.Equal(t, http.StatusNotFound, svcErr.HttpStatusCode)
				assert.Equal(t, MessageNotFound, svcErr.Message)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestListItemsHandler_Handle(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockItemService := itemmocks.NewMockItemService(ctrl)
	handler := NewListItemsHandler(mockItemService)

	mockItemService.EXPECT().
		ListItems(gomock.Any()).
		Return(&items.ItemList{Items: []models.Item{}, Count: 0})

	rr := httptest.NewRecorder()
	err := handler.Handle(rr, httptest.NewRequest(http.MethodGet, "/api/items", nil))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"items":[],"count":0}`, rr.Body.String())
}

func TestCreateItemHandler_Handle_Success(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockItemService := itemmocks.NewMockItemService(ctrl)
	handler := NewCreateItemHandler(mockItemService)

	createdAt := time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)
	mockItemService.EXPECT().
		CreateItem(gomock.Any(), gomock.Any()).
		Return(&models.Item{ID: 1, Name: "Test Item", Description: "A test", CreatedAt: createdAt}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/items", strings.NewReader(`{"name":"Test Item","description":"A test"}`))
	rr := httptest.NewRecorder()
	err := handler.Handle(rr, req)

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rr.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, float64(1), body["id"])
	assert.Equal(t, "Test Item", body["name"])
	assert.Equal(t, "A test", body["description"])
	assert.Equal(t, "2026-10-16T08:00:00Z", body["created_at"])
	assert.NotContains(t, body, "updated_at")
}

func TestCreateItemHandler_Handle_Error(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockItemService := itemmocks.NewMockItemService(ctrl)
	handler := NewCreateItemHandler(mockItemService)

	expectedErr := svcerrors.NewInvalidArgumentError("ITEM_1000", items.MessageNameRequired, nil)
	mockItemService.EXPECT().
		CreateItem(gomock.Any(), gomock.Any()).
		Return(nil, expectedErr)

	rr := httptest.NewRecorder()
	err := handler.Handle(rr, httptest.NewRequest(http.MethodPost, "/api/items", strings.NewReader(`{}`)))

	require.Error(t, err)
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "ITEM_1000", svcErr.Code)
	// Status should not be set when error occurs
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Body.String())
}

func TestGetItemHandler_Handle(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockItemService := itemmocks.NewMockItemService(ctrl)
	handler := NewGetItemHandler(mockItemService)

	mockItemService.EXPECT().
		GetItem(gomock.Any(), int64(7)).
		Return(&models.Item{ID: 7, Name: "seven"}, nil)

	rr := httptest.NewRecorder()
	err := handler.Handle(rr, withItemID(httptest.NewRequest(http.MethodGet, "/api/items/7", nil), "7"))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"name":"seven"`)
}

func TestGetItemHandler_Handle_InvalidIDSkipsService(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockItemService := itemmocks.NewMockItemService(ctrl)
	handler := NewGetItemHandler(mockItemService)

	err := handler.Handle(httptest.NewRecorder(), withItemID(httptest.NewRequest(http.MethodGet, "/api/items/abc", nil), "abc"))

	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, codeRouteNotFound, svcErr.Code)
}

func TestUpdateItemHandler_Handle(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockItemService := itemmocks.NewMockItemService(ctrl)
	handler := NewUpdateItemHandler(mockItemService)

	updatedAt := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	mockItemService.EXPECT().
		UpdateItem(gomock.Any(), int64(3), gomock.Any()).
		Return(&models.Item{ID: 3, Name: "Updated", UpdatedAt: &updatedAt}, nil)

	req := withItemID(httptest.NewRequest(http.MethodPut, "/api/items/3", strings.NewReader(`{"name":"Updated"}`)), "3")
	rr := httptest.NewRecorder()
	err := handler.Handle(rr, req)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"updated_at":"2026-10-16T09:00:00Z"`)
}

func TestDeleteItemHandler_Handle(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockItemService := itemmocks.NewMockItemService(ctrl)
	handler := NewDeleteItemHandler(mockItemService)

	mockItemService.EXPECT().DeleteItem(gomock.Any(), int64(4)).Return(nil)

	rr := httptest.NewRecorder()
	err := handler.Handle(rr, withItemID(httptest.NewRequest(http.MethodDelete, "/api/items/4", nil), "4"))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Item deleted","id":4}`, rr.Body.String())
}

func TestDeleteItemHandler_Handle_NotFound(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockItemService := itemmocks.NewMockItemService(ctrl)
	handler := NewDeleteItemHandler(mockItemService)

	mockItemService.EXPECT().
		DeleteItem(gomock.Any(), int64(999)).
		Return(svcerrors.NewNotFoundError("ITEM_1004", items.MessageItemNotFound, nil))

	err := handler.Handle(httptest.NewRecorder(), withItemID(httptest.NewRequest(http.MethodDelete, "/api/items/999", nil), "999"))

	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, svcErr.HttpStatusCode)
}

func TestHealthHandler_Handle(t *testing.T) {
	t.Parallel()

	handler := &healthHandler{
		now: func() time.Time { return time.Date(2026, 10, 16, 10, 0, 0, 0, time.FixedZone("CEST", 2*60*60)) },
	}

	rr := httptest.NewRecorder()
	require.NoError(t, handler.Handle(rr, httptest.NewRequest(http.MethodGet, "/health", nil)))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"healthy","timestamp":"2026-10-16T08:00:00Z","service":"devops-api"}`, rr.Body.String())
}
