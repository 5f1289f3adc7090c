package transport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const jsonrpcVersion = "2.0"

// JSON-RPC 2.0 error codes.
const (
	ErrParseCode      = -32700
	ErrInvalidReq     = -32600
	ErrMethodNotFound = -32601
	ErrInvalidParams  = -32602
	ErrInternal       = -32603
)

// Request is one JSON-RPC 2.0 call. Params stay raw until the handler knows
// which method is being invoked.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
	ID      any             `json:"id,omitempty"`
}

// Response is one JSON-RPC 2.0 reply, success or error.
type Response struct {
	JSONRPC string `json:"jsonrpc"`
	Result  any    `json:"result,omitempty"`
	Error   *Error `json:"error,omitempty"`
	ID      any    `json:"id,omitempty"`
}

// Error is the JSON-RPC 2.0 error object.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// WireError is an error that knows its JSON-RPC representation. Handlers
// return it when a failure has a stable code and payload; anything else is
// reported as an internal error.
type WireError struct {
	Code    int
	Message string
	Data    any
}

func (e *WireError) Error() string {
	return e.Message
}

// ParseRequest decodes and validates one JSON-RPC call. Params, when present,
// must be an object; positional params are not part of this surface.
func ParseRequest(body io.Reader) (Request, error) {
	var req Request
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return Request{}, fmt.Errorf("parse error: %w", err)
	}
	if req.JSONRPC != jsonrpcVersion {
		return Request{}, fmt.Errorf("unsupported jsonrpc version %q", req.JSONRPC)
	}
	if req.Method == "" {
		return Request{}, fmt.Errorf("missing method")
	}
	if p := bytes.TrimSpace(req.Params); len(p) > 0 && p[0] != '{' && !bytes.Equal(p, []byte("null")) {
		return Request{}, fmt.Errorf("params must be an object")
	}
	return req, nil
}

// WriteResult writes a success response.
func WriteResult(w http.ResponseWriter, id any, result any) {
	respond(w, Response{JSONRPC: jsonrpcVersion, Result: result, ID: id})
}

// WriteError writes an error response. Errors travel in the envelope, so the
// HTTP status stays 200.
func WriteError(w http.ResponseWriter, id any, code int, message string, data any) {
	respond(w, Response{
		JSONRPC: jsonrpcVersion,
		Error:   &Error{Code: code, Message: message, Data: data},
		ID:      id,
	})
}

func respond(w http.ResponseWriter, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}
