package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/daojo/pkg/api"
)

const CircleServiceName = "daojo.v1.CircleService"

const (
	CircleServiceCreateCircleProcedure      = "/daojo.v1.CircleService/CreateCircle"
	CircleServiceJoinCircleProcedure        = "/daojo.v1.CircleService/JoinCircle"
	CircleServiceGetCircleProcedure         = "/daojo.v1.CircleService/GetCircle"
	CircleServiceContributeProcedure        = "/daojo.v1.CircleService/Contribute"
	CircleServiceGetCircleBalancesProcedure = "/daojo.v1.CircleService/GetCircleBalances"
	CircleServiceCreateRequestProcedure     = "/daojo.v1.CircleService/CreateRequest"
	CircleServiceVoteOnRequestProcedure     = "/daojo.v1.CircleService/VoteOnRequest"
	CircleServiceDisburseFundsProcedure     = "/daojo.v1.CircleService/DisburseFunds"
	CircleServiceGetRequestProcedure        = "/daojo.v1.CircleService/GetRequest"
	CircleServiceListRequestsProcedure      = "/daojo.v1.CircleService/ListRequests"
)

// CircleServiceHandler is implemented by the server side of daojo.v1.CircleService.
type CircleServiceHandler interface {
	CreateCircle(context.Context, *connect.Request[api.CreateCircleRequest]) (*connect.Response[api.CreateCircleResponse], error)
	JoinCircle(context.Context, *connect.Request[api.JoinCircleRequest]) (*connect.Response[api.JoinCircleResponse], error)
	GetCircle(context.Context, *connect.Request[api.GetCircleRequest]) (*connect.Response[api.GetCircleResponse], error)
	Contribute(context.Context, *connect.Request[api.ContributeRequest]) (*connect.Response[api.ContributeResponse], error)
	GetCircleBalances(context.Context, *connect.Request[api.GetCircleBalancesRequest]) (*connect.Response[api.GetCircleBalancesResponse], error)
	CreateRequest(context.Context, *connect.Request[api.CreateRequestRequest]) (*connect.Response[api.CreateRequestResponse], error)
	VoteOnRequest(context.Context, *connect.Request[api.VoteOnRequestRequest]) (*connect.Response[api.VoteOnRequestResponse], error)
	DisburseFunds(context.Context, *connect.Request[api.DisburseFundsRequest]) (*connect.Response[api.DisburseFundsResponse], error)
	GetRequest(context.Context, *connect.Request[api.GetRequestRequest]) (*connect.Response[api.GetRequestResponse], error)
	ListRequests(context.Context, *connect.Request[api.ListRequestsRequest]) (*connect.Response[api.ListRequestsResponse], error)
}

// NewCircleServiceHandler returns the mount path and handler for svc.
func NewCircleServiceHandler(svc CircleServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + CircleServiceName + "/", route{
		CircleServiceCreateCircleProcedure:      connect.NewUnaryHandler(CircleServiceCreateCircleProcedure, svc.CreateCircle, opts...),
		CircleServiceJoinCircleProcedure:        connect.NewUnaryHandler(CircleServiceJoinCircleProcedure, svc.JoinCircle, opts...),
		CircleServiceGetCircleProcedure:         connect.NewUnaryHandler(CircleServiceGetCircleProcedure, svc.GetCircle, opts...),
		CircleServiceContributeProcedure:        connect.NewUnaryHandler(CircleServiceContributeProcedure, svc.Contribute, opts...),
		CircleServiceGetCircleBalancesProcedure: connect.NewUnaryHandler(CircleServiceGetCircleBalancesProcedure, svc.GetCircleBalances, opts...),
		CircleServiceCreateRequestProcedure:     connect.NewUnaryHandler(CircleServiceCreateRequestProcedure, svc.CreateRequest, opts...),
		CircleServiceVoteOnRequestProcedure:     connect.NewUnaryHandler(CircleServiceVoteOnRequestProcedure, svc.VoteOnRequest, opts...),
		CircleServiceDisburseFundsProcedure:     connect.NewUnaryHandler(CircleServiceDisburseFundsProcedure, svc.DisburseFunds, opts...),
		CircleServiceGetRequestProcedure:        connect.NewUnaryHandler(CircleServiceGetRequestProcedure, svc.GetRequest, opts...),
		CircleServiceListRequestsProcedure:      connect.NewUnaryHandler(CircleServiceListRequestsProcedure, svc.ListRequests, opts...),
	}
}

// CircleServiceClient is a client for daojo.v1.CircleService.
type CircleServiceClient interface {
	CreateCircle(context.Context, *connect.Request[api.CreateCircleRequest]) (*connect.Response[api.CreateCircleResponse], error)
	JoinCircle(context.Context, *connect.Request[api.JoinCircleRequest]) (*connect.Response[api.JoinCircleResponse], error)
	GetCircle(context.Context, *connect.Request[api.GetCircleRequest]) (*connect.Response[api.GetCircleResponse], error)
	Contribute(context.Context, *connect.Request[api.ContributeRequest]) (*connect.Response[api.ContributeResponse], error)
	GetCircleBalances(context.Context, *connect.Request[api.GetCircleBalancesRequest]) (*connect.Response[api.GetCircleBalancesResponse], error)
	CreateRequest(context.Context, *connect.Request[api.CreateRequestRequest]) (*connect.Response[api.CreateRequestResponse], error)
	VoteOnRequest(context.Context, *connect.Request[api.VoteOnRequestRequest]) (*connect.Response[api.VoteOnRequestResponse], error)
	DisburseFunds(context.Context, *connect.Request[api.DisburseFundsRequest]) (*connect.Response[api.DisburseFundsResponse], error)
	GetRequest(context.Context, *connect.Request[api.GetRequestRequest]) (*connect.Response[api.GetRequestResponse], error)
	ListRequests(context.Context, *connect.Request[api.ListRequestsRequest]) (*connect.Response[api.ListRequestsResponse], error)
}

// NewCircleServiceClient builds a client for the service at baseURL.
func NewCircleServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) CircleServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &circleServiceClient{
		createCircle:      connect.NewClient[api.CreateCircleRequest, api.CreateCircleResponse](httpClient, baseURL+CircleServiceCreateCircleProcedure, opts...),
		joinCircle:        connect.NewClient[api.JoinCircleRequest, api.JoinCircleResponse](httpClient, baseURL+CircleServiceJoinCircleProcedure, opts...),
		getCircle:         connect.NewClient[api.GetCircleRequest, api.GetCircleResponse](httpClient, baseURL+CircleServiceGetCircleProcedure, opts...),
		contribute:        connect.NewClient[api.ContributeRequest, api.ContributeResponse](httpClient, baseURL+CircleServiceContributeProcedure, opts...),
		getCircleBalances: connect.NewClient[api.GetCircleBalancesRequest, api.GetCircleBalancesResponse](httpClient, baseURL+CircleServiceGetCircleBalancesProcedure, opts...),
		createRequest:     connect.NewClient[api.CreateRequestRequest, api.CreateRequestResponse](httpClient, baseURL+CircleServiceCreateRequestProcedure, opts...),
		voteOnRequest:     connect.NewClient[api.VoteOnRequestRequest, api.VoteOnRequestResponse](httpClient, baseURL+CircleServiceVoteOnRequestProcedure, opts...),
		disburseFunds:     connect.NewClient[api.DisburseFundsRequest, api.DisburseFundsResponse](httpClient, baseURL+CircleServiceDisburseFundsProcedure, opts...),
		getRequest:        connect.NewClient[api.GetRequestRequest, api.GetRequestResponse](httpClient, baseURL+CircleServiceGetRequestProcedure, opts...),
		listRequests:      connect.NewClient[api.ListRequestsRequest, api.ListRequestsResponse](httpClient, baseURL+CircleServiceListRequestsProcedure, opts...),
	}
}

type circleServiceClient struct {
	createCircle      *connect.Client[api.CreateCircleRequest, api.CreateCircleResponse]
	joinCircle        *connect.Client[api.JoinCircleRequest, api.JoinCircleResponse]
	getCircle         *connect.Client[api.GetCircleRequest, api.GetCircleResponse]
	contribute        *connect.Client[api.ContributeRequest, api.ContributeResponse]
	getCircleBalances *connect.Client[api.GetCircleBalancesRequest, api.GetCircleBalancesResponse]
	createRequest     *connect.Client[api.CreateRequestRequest, api.CreateRequestResponse]
	voteOnRequest     *connect.Client[api.VoteOnRequestRequest, api.VoteOnRequestResponse]
	disburseFunds     *connect.Client[api.DisburseFundsRequest, api.DisburseFundsResponse]
	getRequest        *connect.Client[api.GetRequestRequest, api.GetRequestResponse]
	listRequests      *connect.Client[api.ListRequestsRequest, api.ListRequestsResponse]
}

func (c *circleServiceClient) CreateCircle(ctx context.Context, req *connect.Request[api.CreateCircleRequest]) (*connect.Response[api.CreateCircleResponse], error) {
	return c.createCircle.CallUnary(ctx, req)
}

func (c *circleServiceClient) JoinCircle(ctx context.Context, req *connect.Request[api.JoinCircleRequest]) (*connect.Response[api.JoinCircleResponse], error) {
	return c.joinCircle.CallUnary(ctx, req)
}

func (c *circleServiceClient) GetCircle(ctx context.Context, req *connect.Request[api.GetCircleRequest]) (*connect.Response[api.GetCircleResponse], error) {
	return c.getCircle.CallUnary(ctx, req)
}

func (c *circleServiceClient) Contribute(ctx context.Context, req *connect.Request[api.ContributeRequest]) (*connect.Response[api.ContributeResponse], error) {
	return c.contribute.CallUnary(ctx, req)
}

func (c *circleServiceClient) GetCircleBalances(ctx context.Context, req *connect.Request[api.GetCircleBalancesRequest]) (*connect.Response[api.GetCircleBalancesResponse], error) {
	return c.getCircleBalances.CallUnary(ctx, req)
}

func (c *circleServiceClient) CreateRequest(ctx context.Context, req *connect.Request[api.CreateRequestRequest]) (*connect.Response[api.CreateRequestResponse], error) {
	return c.createRequest.CallUnary(ctx, req)
}

func (c *circleServiceClient) VoteOnRequest(ctx context.Context, req *connect.Request[api.VoteOnRequestRequest]) (*connect.Response[api.VoteOnRequestResponse], error) {
	return c.voteOnRequest.CallUnary(ctx, req)
}

func (c *circleServiceClient) DisburseFunds(ctx context.Context, req *connect.Request[api.DisburseFundsRequest]) (*connect.Response[api.DisburseFundsResponse], error) {
	return c.disburseFunds.CallUnary(ctx, req)
}

func (c *circleServiceClient) GetRequest(ctx context.Context, req *connect.Request[api.GetRequestRequest]) (*connect.Response[api.GetRequestResponse], error) {
	return c.getRequest.CallUnary(ctx, req)
}

func (c *circleServiceClient) ListRequests(ctx context.Context, req *connect.Request[api.ListRequestsRequest]) (*connect.Response[api.ListRequestsResponse], error) {
	return c.listRequests.CallUnary(ctx, req)
}
