package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/bucketlist/internal/auth"
	"github.com/mmynk/bucketlist/internal/middleware"
	"github.com/mmynk/bucketlist/internal/models"
	"github.com/mmynk/bucketlist/internal/storage"
)

// BucketlistService manages the caller's bucket lists. Every method requires
// an authenticated caller; lists owned by someone else look missing.
type BucketlistService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewBucketlistService creates a new BucketlistService with the given storage backend.
func NewBucketlistService(store storage.Store, logger *slog.Logger) *BucketlistService {
	return &BucketlistService{store: store, logger: logger}
}

// CreateBucketlist creates a bucket list owned by the caller.
func (s *BucketlistService) CreateBucketlist(ctx context.Context, req *connect.Request[CreateBucketlistRequest]) (*connect.Response[CreateBucketlistResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("CreateBucketlist request received", "user_id", userID, "name", req.Msg.Name)

	bucketlist, err := models.NewBucketlist(req.Msg.Name, &userID)
	if err != nil {
		return nil, toConnectError(err)
	}

	// Save to storage (assigns ID and timestamps)
	if err := s.store.CreateBucketlist(ctx, bucketlist); err != nil {
		s.logger.Error("CreateBucketlist failed", "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Bucketlist created", "bucketlist_id", bucketlist.ID)
	return connect.NewResponse(&CreateBucketlistResponse{
		Bucketlist: toBucketlist(bucketlist, nil),
	}), nil
}

// GetBucketlist returns one of the caller's bucket lists with its items.
func (s *BucketlistService) GetBucketlist(ctx context.Context, req *connect.Request[GetBucketlistRequest]) (*connect.Response[GetBucketlistResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("GetBucketlist request received", "bucketlist_id", req.Msg.ID)

	bucketlist, err := ownedBucketlist(ctx, s.store, userID, req.Msg.ID)
	if err != nil {
		return nil, toConnectError(err)
	}

	items, err := s.store.ListItems(ctx, storage.ItemFilter{BucketlistID: bucketlist.ID})
	if err != nil {
		s.logger.Error("GetBucketlist failed - could not list items", "bucketlist_id", bucketlist.ID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&GetBucketlistResponse{
		Bucketlist: toBucketlist(bucketlist, items),
	}), nil
}

// ListBucketlists returns the caller's bucket lists, optionally filtered by name.
func (s *BucketlistService) ListBucketlists(ctx context.Context, req *connect.Request[ListBucketlistsRequest]) (*connect.Response[ListBucketlistsResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("ListBucketlists request received", "user_id", userID)

	bucketlists, err := s.store.ListBucketlists(ctx, storage.BucketlistFilter{
		Name:      req.Msg.Name,
		CreatedBy: &userID,
	})
	if err != nil {
		s.logger.Error("ListBucketlists failed", "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*Bucketlist, len(bucketlists))
	for i, bucketlist := range bucketlists {
		out[i] = toBucketlist(bucketlist, nil)
	}

	s.logger.Info("ListBucketlists successful", "count", len(out))
	return connect.NewResponse(&ListBucketlistsResponse{Bucketlists: out}), nil
}

// UpdateBucketlist renames one of the caller's bucket lists.
func (s *BucketlistService) UpdateBucketlist(ctx context.Context, req *connect.Request[UpdateBucketlistRequest]) (*connect.Response[UpdateBucketlistResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("UpdateBucketlist request received", "bucketlist_id", req.Msg.ID, "name", req.Msg.Name)

	bucketlist, err := ownedBucketlist(ctx, s.store, userID, req.Msg.ID)
	if err != nil {
		return nil, toConnectError(err)
	}

	bucketlist.Name = models.NormalizeName(req.Msg.Name)
	updated, err := s.store.UpdateBucketlist(ctx, bucketlist)
	if err != nil {
		s.logger.Error("UpdateBucketlist failed", "error", err)
		return nil, toConnectError(err)
	}
	if !updated {
		return nil, toConnectError(errBucketlistNotFound)
	}

	s.logger.Info("Bucketlist updated", "bucketlist_id", bucketlist.ID)
	return connect.NewResponse(&UpdateBucketlistResponse{
		Bucketlist: toBucketlist(bucketlist, nil),
	}), nil
}

// DeleteBucketlist removes one of the caller's bucket lists and its items.
func (s *BucketlistService) DeleteBucketlist(ctx context.Context, req *connect.Request[DeleteBucketlistRequest]) (*connect.Response[DeleteBucketlistResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("DeleteBucketlist request received", "bucketlist_id", req.Msg.ID)

	if _, err := ownedBucketlist(ctx, s.store, userID, req.Msg.ID); err != nil {
		return nil, toConnectError(err)
	}

	deleted, err := s.store.DeleteBucketlist(ctx, req.Msg.ID)
	if err != nil {
		s.logger.Error("DeleteBucketlist failed", "error", err)
		return nil, toConnectError(err)
	}
	if !deleted {
		return nil, toConnectError(errBucketlistNotFound)
	}

	s.logger.Info("Bucketlist deleted", "bucketlist_id", req.Msg.ID)
	return connect.NewResponse(&DeleteBucketlistResponse{}), nil
}

// callerID returns the authenticated user ID set by RequireAuth.
func callerID(ctx context.Context) (int64, error) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		return 0, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return userID, nil
}

// ownedBucketlist loads a bucket list and checks that userID owns it.
func ownedBucketlist(ctx context.Context, store storage.Store, userID, bucketlistID int64) (*models.Bucketlist, error) {
	bucketlist, err := store.GetBucketlist(ctx, bucketlistID)
	if err != nil {
		return nil, err
	}
	if bucketlist == nil || !bucketlist.OwnedBy(userID) {
		return nil, errBucketlistNotFound
	}
	return bucketlist, nil
}
