package transport

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRequest(t *testing.T) {
	body := bytes.NewBufferString(`{"jsonrpc":"2.0","method":"contribute","params":{"amount":500},"id":1}`)
	req, err := ParseRequest(body)
	require.NoError(t, err)
	require.Equal(t, "2.0", req.JSONRPC)
	require.Equal(t, "contribute", req.Method)
	require.Equal(t, json.RawMessage(`{"amount":500}`), req.Params)
}

func TestParseRequest_MissingMethod(t *testing.T) {
	body := bytes.NewBufferString(`{"jsonrpc":"2.0","id":1}`)
	_, err := ParseRequest(body)
	require.Error(t, err)
}

func TestParseRequest_PositionalParamsRejected(t *testing.T) {
	body := bytes.NewBufferString(`{"jsonrpc":"2.0","method":"contribute","params":[1,2],"id":1}`)
	_, err := ParseRequest(body)
	require.Error(t, err)
}

func TestParseRequest_NullParams(t *testing.T) {
	body := bytes.NewBufferString(`{"jsonrpc":"2.0","method":"get_round","params":null,"id":1}`)
	req, err := ParseRequest(body)
	require.NoError(t, err)
	require.Equal(t, "get_round", req.Method)
}

func TestParseRequest_WrongVersion(t *testing.T) {
	body := bytes.NewBufferString(`{"jsonrpc":"1.0","method":"contribute","id":1}`)
	_, err := ParseRequest(body)
	require.Error(t, err)
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, 1, ErrInvalidParams, "bad params", nil)

	require.Equal(t, 200, rec.Code)
	require.Contains(t, rec.Body.String(), `"error"`)
}
