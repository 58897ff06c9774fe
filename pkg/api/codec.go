// Package api defines the request and response messages of the daojo.v1
// services and the JSON codec they travel in.
package api

import (
	"bytes"
	"encoding/json"
	"errors"

	"connectrpc.com/connect"
)

// CodecName is the Connect codec name; requests use Content-Type application/json.
const CodecName = "json"

// ErrorCodeHeader is the Connect error metadata key holding the stable
// governance error code, e.g. ALREADY_VOTED.
const ErrorCodeHeader = "Daojo-Error-Code"

// JSONCodec marshals plain Go message structs with encoding/json.
// Unknown fields are rejected.
type JSONCodec struct{}

var _ connect.Codec = JSONCodec{}

func (JSONCodec) Name() string {
	return CodecName
}

func (JSONCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (JSONCodec) Unmarshal(data []byte, msg any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(msg)
}

// ErrorCode returns the governance error code carried by a Connect error,
// or "" if err has none.
func ErrorCode(err error) string {
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		return ""
	}
	return connectErr.Meta().Get(ErrorCodeHeader)
}
