package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/bucketlist/internal/models"
	"github.com/mmynk/bucketlist/internal/storage"
)

// ItemService manages items inside the caller's bucket lists.
type ItemService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewItemService creates a new ItemService with the given storage backend.
func NewItemService(store storage.Store, logger *slog.Logger) *ItemService {
	return &ItemService{store: store, logger: logger}
}

// CreateItem adds an item to one of the caller's bucket lists.
func (s *ItemService) CreateItem(ctx context.Context, req *connect.Request[CreateItemRequest]) (*connect.Response[CreateItemResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("CreateItem request received", "bucketlist_id", req.Msg.BucketlistID, "name", req.Msg.Name)

	item, err := models.NewItem(req.Msg.Name, req.Msg.BucketlistID, req.Msg.Description)
	if err != nil {
		return nil, toConnectError(err)
	}

	if _, err := ownedBucketlist(ctx, s.store, userID, req.Msg.BucketlistID); err != nil {
		return nil, toConnectError(err)
	}

	if err := s.store.CreateItem(ctx, item); err != nil {
		s.logger.Error("CreateItem failed", "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Item created", "item_id", item.ID, "bucketlist_id", item.BucketlistID)
	return connect.NewResponse(&CreateItemResponse{Item: toItem(item)}), nil
}

// GetItem returns one item of one of the caller's bucket lists.
func (s *ItemService) GetItem(ctx context.Context, req *connect.Request[GetItemRequest]) (*connect.Response[GetItemResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	item, err := s.ownedItem(ctx, userID, req.Msg.BucketlistID, req.Msg.ID)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&GetItemResponse{Item: toItem(item)}), nil
}

// ListItems returns the items of one of the caller's bucket lists.
func (s *ItemService) ListItems(ctx context.Context, req *connect.Request[ListItemsRequest]) (*connect.Response[ListItemsResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("ListItems request received", "bucketlist_id", req.Msg.BucketlistID)

	if _, err := ownedBucketlist(ctx, s.store, userID, req.Msg.BucketlistID); err != nil {
		return nil, toConnectError(err)
	}

	items, err := s.store.ListItems(ctx, storage.ItemFilter{
		BucketlistID: req.Msg.BucketlistID,
		Done:         req.Msg.Done,
	})
	if err != nil {
		s.logger.Error("ListItems failed", "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*Item, len(items))
	for i, item := range items {
		out[i] = toItem(item)
	}
	return connect.NewResponse(&ListItemsResponse{Items: out}), nil
}

// UpdateItem changes the name, description or done flag of an item.
func (s *ItemService) UpdateItem(ctx context.Context, req *connect.Request[UpdateItemRequest]) (*connect.Response[UpdateItemResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("UpdateItem request received", "bucketlist_id", req.Msg.BucketlistID, "item_id", req.Msg.ID)

	item, err := s.ownedItem(ctx, userID, req.Msg.BucketlistID, req.Msg.ID)
	if err != nil {
		return nil, toConnectError(err)
	}

	if req.Msg.Name != nil {
		item.Name = models.NormalizeName(*req.Msg.Name)
	}
	if req.Msg.Description != nil {
		item.Description = *req.Msg.Description
	}
	if req.Msg.Done != nil {
		item.Done = *req.Msg.Done
	}

	updated, err := s.store.UpdateItem(ctx, item)
	if err != nil {
		s.logger.Error("UpdateItem failed", "error", err)
		return nil, toConnectError(err)
	}
	if !updated {
		return nil, toConnectError(errItemNotFound)
	}

	s.logger.Info("Item updated", "item_id", item.ID, "done", item.Done)
	return connect.NewResponse(&UpdateItemResponse{Item: toItem(item)}), nil
}

// DeleteItem removes an item from one of the caller's bucket lists.
func (s *ItemService) DeleteItem(ctx context.Context, req *connect.Request[DeleteItemRequest]) (*connect.Response[DeleteItemResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("DeleteItem request received", "bucketlist_id", req.Msg.BucketlistID, "item_id", req.Msg.ID)

	if _, err := s.ownedItem(ctx, userID, req.Msg.BucketlistID, req.Msg.ID); err != nil {
		return nil, toConnectError(err)
	}

	deleted, err := s.store.DeleteItem(ctx, req.Msg.ID)
	if err != nil {
		s.logger.Error("DeleteItem failed", "error", err)
		return nil, toConnectError(err)
	}
	if !deleted {
		return nil, toConnectError(errItemNotFound)
	}

	s.logger.Info("Item deleted", "item_id", req.Msg.ID)
	return connect.NewResponse(&DeleteItemResponse{}), nil
}

// ownedItem loads an item and checks that it sits in a bucket list owned by userID.
func (s *ItemService) ownedItem(ctx context.Context, userID, bucketlistID, itemID int64) (*models.Item, error) {
	if _, err := ownedBucketlist(ctx, s.store, userID, bucketlistID); err != nil {
		return nil, err
	}

	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.BucketlistID != bucketlistID {
		return nil, errItemNotFound
	}
	return item, nil
}
