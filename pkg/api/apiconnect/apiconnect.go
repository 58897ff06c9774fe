// Package apiconnect wires the daojo.v1 services to Connect handlers and
// clients using the api package's JSON codec.
package apiconnect

import (
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/daojo/pkg/api"
)

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(api.JSONCodec{})}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(api.JSONCodec{})}, opts...)
}

// route dispatches a service's procedures to their unary handlers.
type route map[string]http.Handler

func (r route) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	h, ok := r[req.URL.Path]
	if !ok {
		http.NotFound(w, req)
		return
	}
	h.ServeHTTP(w, req)
}
