// Package protocol defines Ember's wire format: one Request frame sent by
// a client, answered by exactly one Response frame from the server, over
// a connection that is then closed. Frames reuse the same streaming JSON
// technique as internal/record.
package protocol

import (
	"encoding/json"
	"io"

	"github.com/sagararora86/ember/pkg/kvserrors"
)

// RequestOp names the kind of request a client can send.
type RequestOp string

const (
	OpSet    RequestOp = "set"
	OpGet    RequestOp = "get"
	OpRemove RequestOp = "rm"
)

// Request is one client command.
type Request struct {
	Op    RequestOp `json:"op"`
	Key   string    `json:"key"`
	Value string    `json:"value,omitempty"`
}

// SetRequest builds a Set request.
func SetRequest(key, value string) Request { return Request{Op: OpSet, Key: key, Value: value} }

// GetRequest builds a Get request.
func GetRequest(key string) Request { return Request{Op: OpGet, Key: key} }

// RemoveRequest builds a Remove request.
func RemoveRequest(key string) Request { return Request{Op: OpRemove, Key: key} }

// ResponseKind tags which of the four response variants a Response is.
type ResponseKind string

const (
	// KindSetResult answers a successful Set, echoing the key.
	KindSetResult ResponseKind = "set_result"
	// KindGetResult answers a successful Get with a present value.
	KindGetResult ResponseKind = "get_result"
	// KindRmResult answers a successful Remove.
	KindRmResult ResponseKind = "rm_result"
	// KindError answers any engine or protocol failure, including Get/Remove
	// of an absent key, which carries the message "Key not found".
	KindError ResponseKind = "error"
)

// KeyNotFoundMessage is the exact error text the server sends for Get or
// Remove of an absent key, and that the client matches on to decide
// whether "Key not found" is a clean exit (get) or a failure (remove).
const KeyNotFoundMessage = "Key not found"

// UnknownCommandMessage is the exact error text the server sends for a
// request it cannot decode or whose op it does not recognize.
const UnknownCommandMessage = "Unknown Command"

// Response is the server's answer to one Request.
type Response struct {
	Kind    ResponseKind `json:"kind"`
	Key     string       `json:"key,omitempty"`
	Value   string       `json:"value,omitempty"`
	Message string       `json:"message,omitempty"`
}

// SetResult builds the response to a successful Set.
func SetResult(key string) Response { return Response{Kind: KindSetResult, Key: key} }

// GetResult builds the response to a successful Get.
func GetResult(value string) Response { return Response{Kind: KindGetResult, Value: value} }

// RmResult builds the response to a successful Remove.
func RmResult() Response { return Response{Kind: KindRmResult} }

// ErrorResult builds a failure response from err's message.
func ErrorResult(err error) Response {
	return Response{Kind: KindError, Message: err.Error()}
}

// KeyNotFoundResult builds the canonical "Key not found" error response.
func KeyNotFoundResult() Response {
	return Response{Kind: KindError, Message: KeyNotFoundMessage}
}

// IsKeyNotFound reports whether resp is the canonical "Key not found"
// error response.
func (r Response) IsKeyNotFound() bool {
	return r.Kind == KindError && r.Message == KeyNotFoundMessage
}

// UnknownCommandResult builds the canonical "Unknown Command" error
// response.
func UnknownCommandResult() Response {
	return Response{Kind: KindError, Message: UnknownCommandMessage}
}

// IsUnknownCommand reports whether resp is the canonical "Unknown Command"
// error response.
func (r Response) IsUnknownCommand() bool {
	return r.Kind == KindError && r.Message == UnknownCommandMessage
}

// EncodeRequest writes req to w as one JSON object.
func EncodeRequest(w io.Writer, req Request) error {
	if err := json.NewEncoder(w).Encode(req); err != nil {
		return kvserrors.Encoding(err, "encode request")
	}
	return nil
}

// DecodeRequest reads exactly one Request from r.
func DecodeRequest(r io.Reader) (Request, error) {
	var req Request
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return Request{}, kvserrors.Encoding(err, "decode request")
	}
	switch req.Op {
	case OpSet, OpGet, OpRemove:
		return req, nil
	default:
		return Request{}, kvserrors.Protocol("unknown request op").WithKey(req.Key)
	}
}

// EncodeResponse writes resp to w as one JSON object.
func EncodeResponse(w io.Writer, resp Response) error {
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		return kvserrors.Encoding(err, "encode response")
	}
	return nil
}

// DecodeResponse reads exactly one Response from r.
func DecodeResponse(r io.Reader) (Response, error) {
	var resp Response
	if err := json.NewDecoder(r).Decode(&resp); err != nil {
		return Response{}, kvserrors.Encoding(err, "decode response")
	}
	return resp, nil
}
