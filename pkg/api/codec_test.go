package api

import (
	"errors"
	"testing"

	"connectrpc.com/connect"
)

func TestJSONCodec(t *testing.T) {
	var codec JSONCodec

	data, err := codec.Marshal(&CreateRequestRequest{CircleID: "c1", Amount: 250, Description: "fees"})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	want := `{"circleId":"c1","amount":"250","description":"fees"}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}

	var req CreateRequestRequest
	if err := codec.Unmarshal([]byte(`{"circleId":"c1","bogus":1}`), &req); err == nil {
		t.Error("expected unknown field to be rejected")
	}

	var empty OpenAccountRequest
	if err := codec.Unmarshal(nil, &empty); err != nil {
		t.Errorf("empty body: %v", err)
	}
}

func TestErrorCode(t *testing.T) {
	err := connect.NewError(connect.CodeFailedPrecondition, errors.New("you have already voted on this request"))
	err.Meta().Set(ErrorCodeHeader, "ALREADY_VOTED")

	if got := ErrorCode(err); got != "ALREADY_VOTED" {
		t.Errorf("ErrorCode = %q, want ALREADY_VOTED", got)
	}
	if got := ErrorCode(errors.New("plain")); got != "" {
		t.Errorf("ErrorCode(plain) = %q, want empty", got)
	}
}
