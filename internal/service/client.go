package service

import (
	"context"

	"connectrpc.com/connect"
)

// Client calls every procedure over one base URL.
type Client struct {
	register *connect.Client[RegisterRequest, RegisterResponse]
	login    *connect.Client[LoginRequest, LoginResponse]
	me       *connect.Client[MeRequest, MeResponse]

	createBucketlist *connect.Client[CreateBucketlistRequest, CreateBucketlistResponse]
	getBucketlist    *connect.Client[GetBucketlistRequest, GetBucketlistResponse]
	listBucketlists  *connect.Client[ListBucketlistsRequest, ListBucketlistsResponse]
	updateBucketlist *connect.Client[UpdateBucketlistRequest, UpdateBucketlistResponse]
	deleteBucketlist *connect.Client[DeleteBucketlistRequest, DeleteBucketlistResponse]

	createItem *connect.Client[CreateItemRequest, CreateItemResponse]
	getItem    *connect.Client[GetItemRequest, GetItemResponse]
	listItems  *connect.Client[ListItemsRequest, ListItemsResponse]
	updateItem *connect.Client[UpdateItemRequest, UpdateItemResponse]
	deleteItem *connect.Client[DeleteItemRequest, DeleteItemResponse]

	token string
}

// NewClient creates a client for the services mounted at baseURL.
func NewClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *Client {
	opts = append([]connect.ClientOption{WithJSON()}, opts...)
	return &Client{
		register: connect.NewClient[RegisterRequest, RegisterResponse](httpClient, baseURL+AuthServiceRegisterProcedure, opts...),
		login:    connect.NewClient[LoginRequest, LoginResponse](httpClient, baseURL+AuthServiceLoginProcedure, opts...),
		me:       connect.NewClient[MeRequest, MeResponse](httpClient, baseURL+AuthServiceMeProcedure, opts...),

		createBucketlist: connect.NewClient[CreateBucketlistRequest, CreateBucketlistResponse](httpClient, baseURL+BucketlistServiceCreateProcedure, opts...),
		getBucketlist:    connect.NewClient[GetBucketlistRequest, GetBucketlistResponse](httpClient, baseURL+BucketlistServiceGetProcedure, opts...),
		listBucketlists:  connect.NewClient[ListBucketlistsRequest, ListBucketlistsResponse](httpClient, baseURL+BucketlistServiceListProcedure, opts...),
		updateBucketlist: connect.NewClient[UpdateBucketlistRequest, UpdateBucketlistResponse](httpClient, baseURL+BucketlistServiceUpdateProcedure, opts...),
		deleteBucketlist: connect.NewClient[DeleteBucketlistRequest, DeleteBucketlistResponse](httpClient, baseURL+BucketlistServiceDeleteProcedure, opts...),

		createItem: connect.NewClient[CreateItemRequest, CreateItemResponse](httpClient, baseURL+ItemServiceCreateProcedure, opts...),
		getItem:    connect.NewClient[GetItemRequest, GetItemResponse](httpClient, baseURL+ItemServiceGetProcedure, opts...),
		listItems:  connect.NewClient[ListItemsRequest, ListItemsResponse](httpClient, baseURL+ItemServiceListProcedure, opts...),
		updateItem: connect.NewClient[UpdateItemRequest, UpdateItemResponse](httpClient, baseURL+ItemServiceUpdateProcedure, opts...),
		deleteItem: connect.NewClient[DeleteItemRequest, DeleteItemResponse](httpClient, baseURL+ItemServiceDeleteProcedure, opts...),
	}
}

// WithToken returns a copy of the client that sends token as a bearer token.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

// call sends msg through client with the bearer token, if any.
// call sends msg with the client's bearer token, if any.
func call[Req, Res any](ctx context.Context, c *Client, client *connect.Client[Req, Res], msg *Req) (*Res, error) {
	req := connect.NewRequest(msg)
	if c.token != "" {
		req.Header().Set("Authorization", "Bearer "+c.token)
	}
	resp, err := client.CallUnary(ctx, req)
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}

// Register calls AuthService.Register.
func (c *Client) Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error) {
	return call(ctx, c, c.register, req)
}

// Login calls AuthService.Login.
func (c *Client) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	return call(ctx, c, c.login, req)
}

// Me returns the user the client's token belongs to.
func (c *Client) Me(ctx context.Context) (*MeResponse, error) {
	return call(ctx, c, c.me, &MeRequest{})
}

// CreateBucketlist calls BucketlistService.CreateBucketlist.
func (c *Client) CreateBucketlist(ctx context.Context, req *CreateBucketlistRequest) (*CreateBucketlistResponse, error) {
	return call(ctx, c, c.createBucketlist, req)
}

// GetBucketlist calls BucketlistService.GetBucketlist.
func (c *Client) GetBucketlist(ctx context.Context, req *GetBucketlistRequest) (*GetBucketlistResponse, error) {
	return call(ctx, c, c.getBucketlist, req)
}

// ListBucketlists calls BucketlistService.ListBucketlists.
func (c *Client) ListBucketlists(ctx context.Context, req *ListBucketlistsRequest) (*ListBucketlistsResponse, error) {
	return call(ctx, c, c.listBucketlists, req)
}

// UpdateBucketlist calls BucketlistService.UpdateBucketlist.
func (c *Client) UpdateBucketlist(ctx context.Context, req *UpdateBucketlistRequest) (*UpdateBucketlistResponse, error) {
	return call(ctx, c, c.updateBucketlist, req)
}

// DeleteBucketlist calls BucketlistService.DeleteBucketlist.
func (c *Client) DeleteBucketlist(ctx context.Context, req *DeleteBucketlistRequest) (*DeleteBucketlistResponse, error) {
	return call(ctx, c, c.deleteBucketlist, req)
}

// CreateItem calls ItemService.CreateItem.
func (c *Client) CreateItem(ctx context.Context, req *CreateItemRequest) (*CreateItemResponse, error) {
	return call(ctx, c, c.createItem, req)
}

// GetItem calls ItemService.GetItem.
func (c *Client) GetItem(ctx context.Context, req *GetItemRequest) (*GetItemResponse, error) {
	return call(ctx, c, c.getItem, req)
}

// ListItems calls ItemService.ListItems.
func (c *Client) ListItems(ctx context.Context, req *ListItemsRequest) (*ListItemsResponse, error) {
	return call(ctx, c, c.listItems, req)
}

// UpdateItem calls ItemService.UpdateItem.
func (c *Client) UpdateItem(ctx context.Context, req *UpdateItemRequest) (*UpdateItemResponse, error) {
	return call(ctx, c, c.updateItem, req)
}

// DeleteItem calls ItemService.DeleteItem.
func (c *Client) DeleteItem(ctx context.Context, req *DeleteItemRequest) (*DeleteItemResponse, error) {
	return call(ctx, c, c.deleteItem, req)
}
