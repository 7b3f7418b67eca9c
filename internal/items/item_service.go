package items

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"devops-api/internal/events"
	"devops-api/internal/models"
	"devops-api/internal/shared/loggers"
	"devops-api/internal/shared/tracing"
	"devops-api/internal/shared/ulid"
	"devops-api/internal/shared/validators"
	"devops-api/internal/stores"
	"devops-api/internal/streams"
)

const (
	maxItemBodyBytes = 1 << 20
)

// ItemList is the body of GET /api/items.
type ItemList struct {
	Items []models.Item `json:"items"`
	Count int           `json:"count"`
}

type createItemRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type updateItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

//go:generate mockgen -source=item_service.go -destination=./mocks/item_service_mock.go -package=mocks
type ItemService interface {
	ListItems(ctx context.Context) *ItemList
	// CreateItem parses a JSON payload from r and stores a new item.
	CreateItem(ctx context.Context, r io.Reader) (*models.Item, error)
	GetItem(ctx context.Context, id int64) (*models.Item, error)
	// UpdateItem applies the non-empty name/description of the JSON payload in r.
	UpdateItem(ctx context.Context, id int64, r io.Reader) (*models.Item, error)
	DeleteItem(ctx context.Context, id int64) error
}

type itemService struct {
	itemStore         stores.ItemStore
	itemEventProducer streams.ItemEventProducer
	validate          *validators.Validate
}

func NewItemService(itemStore stores.ItemStore, itemEventProducer streams.ItemEventProducer) ItemService {
	return &itemService{
		itemStore:         itemStore,
		itemEventProducer: itemEventProducer,
		validate:          validators.New(),
	}
}

func (s *itemService) ListItems(ctx context.Context) *ItemList {
	items := s.itemStore.List(ctx)
	return &ItemList{Items: items, Count: len(items)}
}

func (s *itemService) CreateItem(ctx context.Context, r io.Reader) (*models.Item, error) {
	req, err := s.parseCreateRequest(r)
	if err != nil {
		return nil, err
	}

	item, err := s.itemStore.Create(ctx, req.Name, req.Description)
	if err != nil {
		return nil, errInternalStoreFailed(err)
	}

	loggers.Ctx(ctx).Info().
		Int64(loggers.FieldItemID, item.ID).
		Msg("Item created")
	s.publish(ctx, events.ItemCreated, item.ID)

	return &item, nil
}

func (s *itemService) GetItem(ctx context.Context, id int64) (*models.Item, error) {
	item, err := s.itemStore.Get(ctx, id)
	if err != nil {
		return nil, s.mapStoreError(id, err)
	}
	return &item, nil
}

func (s *itemService) UpdateItem(ctx context.Context, id int64, r io.Reader) (*models.Item, error) {
	// A missing item wins over a malformed body.
	if _, err := s.itemStore.Get(ctx, id); err != nil {
		return nil, s.mapStoreError(id, err)
	}

	req, err := s.parseUpdateRequest(r)
	if err != nil {
		return nil, err
	}

	// TODO(items): an empty description is indistinguishable from "not provided", so
	// {"description": ""} cannot clear a description. Decide whether PUT should accept
	// explicit empty strings before changing ItemPatch.
	item, err := s.itemStore.Update(ctx, id, models.ItemPatch{Name: req.Name, Description: req.Description})
	if err != nil {
		return nil, s.mapStoreError(id, err)
	}

	loggers.Ctx(ctx).Info().
		Int64(loggers.FieldItemID, item.ID).
		Msg("Item updated")
	s.publish(ctx, events.ItemUpdated, item.ID)

	return &item, nil
}

func (s *itemService) DeleteItem(ctx context.Context, id int64) error {
	if err := s.itemStore.Delete(ctx, id); err != nil {
		return s.mapStoreError(id, err)
	}

	loggers.Ctx(ctx).Info().
		Int64(loggers.FieldItemID, id).
		Msg("Item deleted")
	s.publish(ctx, events.ItemDeleted, id)

	return nil
}

func (s *itemService) mapStoreError(id int64, err error) error {
	if errors.Is(err, stores.ErrItemNotFound) {
		return errItemNotFound(id, err)
	}
	return errInternalStoreFailed(err)
}

// publish hands the event to the activity stream. The mutation has already happened, so
// a failed publish is logged and otherwise ignored.
func (s *itemService) publish(ctx context.Context, eventType events.ItemEventType, itemID int64) {
	occurredAt := time.Now().UTC()
	event := &events.ItemEvent{
		EventID:    ulid.NewULIDAt(occurredAt),
		Type:       eventType,
		ItemID:     itemID,
		TraceID:    tracing.TraceID(ctx),
		OccurredAt: occurredAt,
	}
	if err := s.itemEventProducer.Produce(ctx, event); err != nil {
		loggers.Ctx(ctx).Warn().
			Err(err).
			Str(loggers.FieldEventID, event.EventID).
			Str(loggers.FieldEventType, string(eventType)).
			Int64(loggers.FieldItemID, itemID).
			Msg("failed to publish item event")
	}
}

// parseCreateRequest accepts a JSON object with a non-empty string "name". Anything else,
// including a non-JSON body, is reported as a missing name.
func (s *itemService) parseCreateRequest(r io.Reader) (*createItemRequest, error) {
	buf, err := s.readWithLimit(r, maxItemBodyBytes)
	if err != nil {
		return nil, err
	}

	fields, err := decodeFields(buf)
	if err != nil {
		return nil, errNameRequired(err)
	}

	var req createItemRequest
	if req.Name, err = stringField(fields, "name"); err != nil {
		return nil, errNameRequired(err)
	}
	if req.Description, err = stringField(fields, "description"); err != nil {
		return nil, errInvalidBody(err)
	}

	if err := s.validate.Struct(&req); err != nil {
		return nil, errNameRequired(err)
	}
	return &req, nil
}

func (s *itemService) parseUpdateRequest(r io.Reader) (*updateItemRequest, error) {
	buf, err := s.readWithLimit(r, maxItemBodyBytes)
	if err != nil {
		return nil, err
	}

	fields, err := decodeFields(buf)
	if err != nil {
		return nil, errInvalidBody(err)
	}

	var req updateItemRequest
	if req.Name, err = stringField(fields, "name"); err != nil {
		return nil, errInvalidBody(err)
	}
	if req.Description, err = stringField(fields, "description"); err != nil {
		return nil, errInvalidBody(err)
	}
	return &req, nil
}

// decodeFields unmarshals a JSON object into its members. Struct decoding in encoding/json
// matches keys case-insensitively, so payload keys are looked up in this map by exact name.
func decodeFields(buf []byte) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(buf, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, errors.New("body is not a JSON object")
	}
	return fields, nil
}

// stringField decodes the member key as a string. A missing key or JSON null yields "".
func stringField(fields map[string]json.RawMessage, key string) (string, error) {
	raw, ok := fields[key]
	if !ok {
		return "", nil
	}
	var value *string
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", fmt.Errorf("field %q: %w", key, err)
	}
	if value == nil {
		return "", nil
	}
	return *value, nil
}

// readWithLimit reads all of r, failing once more than max bytes arrive.
func (s *itemService) readWithLimit(r io.Reader, max int) ([]byte, error) {
	if r == nil {
		return nil, nil
	}
	buf, err := io.ReadAll(io.LimitReader(r, int64(max+1)))
	if err != nil {
		return nil, errInvalidBody(fmt.Errorf("failed to read body: %w", err))
	}
	if len(buf) > max {
		return nil, errBodyTooLarge()
	}
	return buf, nil
}
