// Package service exposes the bucket list operations as Connect RPCs.
//
// Messages are plain Go structs carried as JSON (see WithJSON), so any
// Connect client, or curl with Content-Type: application/json, can call them.
package service

import (
	"log/slog"
	"net/http"

	"connectrpc.com/connect"
	"golang.org/x/time/rate"

	"github.com/mmynk/bucketlist/internal/auth"
	"github.com/mmynk/bucketlist/internal/middleware"
	"github.com/mmynk/bucketlist/internal/storage"
)

// Fully-qualified service names.
const (
	AuthServiceName       = "bucketlist.v1.AuthService"
	BucketlistServiceName = "bucketlist.v1.BucketlistService"
	ItemServiceName       = "bucketlist.v1.ItemService"
)

// Procedure paths.
const (
	AuthServiceRegisterProcedure = "/" + AuthServiceName + "/Register"
	AuthServiceLoginProcedure    = "/" + AuthServiceName + "/Login"
	AuthServiceMeProcedure       = "/" + AuthServiceName + "/Me"

	BucketlistServiceCreateProcedure = "/" + BucketlistServiceName + "/CreateBucketlist"
	BucketlistServiceGetProcedure    = "/" + BucketlistServiceName + "/GetBucketlist"
	BucketlistServiceListProcedure   = "/" + BucketlistServiceName + "/ListBucketlists"
	BucketlistServiceUpdateProcedure = "/" + BucketlistServiceName + "/UpdateBucketlist"
	BucketlistServiceDeleteProcedure = "/" + BucketlistServiceName + "/DeleteBucketlist"

	ItemServiceCreateProcedure = "/" + ItemServiceName + "/CreateItem"
	ItemServiceGetProcedure    = "/" + ItemServiceName + "/GetItem"
	ItemServiceListProcedure   = "/" + ItemServiceName + "/ListItems"
	ItemServiceUpdateProcedure = "/" + ItemServiceName + "/UpdateItem"
	ItemServiceDeleteProcedure = "/" + ItemServiceName + "/DeleteItem"
)

// Deps are the collaborators the services are built from.
type Deps struct {
	Store         storage.Store
	Authenticator auth.Authenticator
	Tokens        *auth.TokenManager
	Logger        *slog.Logger

	// Metrics is optional.
	Metrics *middleware.Metrics

	// LoginLimiter throttles Register and Login. Optional.
	LoginLimiter *rate.Limiter
}

// Mount registers every service on mux.
func Mount(mux *http.ServeMux, deps Deps) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	base := []connect.Interceptor{middleware.LoggingInterceptor(logger)}
	if deps.Metrics != nil {
		base = append(base, deps.Metrics.Interceptor())
	}

	public := base
	if deps.LoginLimiter != nil {
		public = append(public[:len(public):len(public)], middleware.RateLimit(deps.LoginLimiter))
	}
	private := append(base[:len(base):len(base)], middleware.RequireAuth(deps.Authenticator))

	publicOpts := []connect.HandlerOption{WithJSON(), connect.WithInterceptors(public...)}
	privateOpts := []connect.HandlerOption{WithJSON(), connect.WithInterceptors(private...)}

	authSvc := NewAuthService(deps.Authenticator, deps.Tokens, deps.Store, logger)
	bucketlistSvc := NewBucketlistService(deps.Store, logger)
	itemSvc := NewItemService(deps.Store, logger)

	mux.Handle(AuthServiceRegisterProcedure, connect.NewUnaryHandler(AuthServiceRegisterProcedure, authSvc.Register, publicOpts...))
	mux.Handle(AuthServiceLoginProcedure, connect.NewUnaryHandler(AuthServiceLoginProcedure, authSvc.Login, publicOpts...))
	mux.Handle(AuthServiceMeProcedure, connect.NewUnaryHandler(AuthServiceMeProcedure, authSvc.Me, privateOpts...))

	mux.Handle(BucketlistServiceCreateProcedure, connect.NewUnaryHandler(BucketlistServiceCreateProcedure, bucketlistSvc.CreateBucketlist, privateOpts...))
	mux.Handle(BucketlistServiceGetProcedure, connect.NewUnaryHandler(BucketlistServiceGetProcedure, bucketlistSvc.GetBucketlist, privateOpts...))
	mux.Handle(BucketlistServiceListProcedure, connect.NewUnaryHandler(BucketlistServiceListProcedure, bucketlistSvc.ListBucketlists, privateOpts...))
	mux.Handle(BucketlistServiceUpdateProcedure, connect.NewUnaryHandler(BucketlistServiceUpdateProcedure, bucketlistSvc.UpdateBucketlist, privateOpts...))
	mux.Handle(BucketlistServiceDeleteProcedure, connect.NewUnaryHandler(BucketlistServiceDeleteProcedure, bucketlistSvc.DeleteBucketlist, privateOpts...))

	mux.Handle(ItemServiceCreateProcedure, connect.NewUnaryHandler(ItemServiceCreateProcedure, itemSvc.CreateItem, privateOpts...))
	mux.Handle(ItemServiceGetProcedure, connect.NewUnaryHandler(ItemServiceGetProcedure, itemSvc.GetItem, privateOpts...))
	mux.Handle(ItemServiceListProcedure, connect.NewUnaryHandler(ItemServiceListProcedure, itemSvc.ListItems, privateOpts...))
	mux.Handle(ItemServiceUpdateProcedure, connect.NewUnaryHandler(ItemServiceUpdateProcedure, itemSvc.UpdateItem, privateOpts...))
	mux.Handle(ItemServiceDeleteProcedure, connect.NewUnaryHandler(ItemServiceDeleteProcedure, itemSvc.DeleteItem, privateOpts...))
}
