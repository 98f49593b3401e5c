package test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// RPCStub is a minimal JSON-RPC node answering fixed results per method.
type RPCStub struct {
	URL string

	mu      sync.Mutex
	results map[string]any
	calls   map[string][]json.RawMessage
}

type rpcRequest struct {
	ID     json.RawMessage `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

// NewRPCStub starts a stub node. The default chain answers eth_chainId with chainIDHex.
func NewRPCStub(t *testing.T, chainIDHex string) *RPCStub {
	t.Helper()

	stub := &RPCStub{
		results: map[string]any{"eth_chainId": chainIDHex},
		calls:   make(map[string][]json.RawMessage),
	}

	srv := httptest.NewServer(http.HandlerFunc(stub.serveHTTP))
	t.Cleanup(srv.Close)
	stub.URL = srv.URL

	return stub
}

// Set fixes the result returned for method.
func (s *RPCStub) Set(method string, result any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.results[method] = result
}

// Calls returns the params of every call to method.
func (s *RPCStub) Calls(method string) []json.RawMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]json.RawMessage(nil), s.calls[method]...)
}

func (s *RPCStub) serveHTTP(w http.ResponseWriter, r *http.Request) {
	var req rpcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.calls[req.Method] = append(s.calls[req.Method], req.Params)
	result, ok := s.results[req.Method]
	s.mu.Unlock()

	resp := rpcResponse{JSONRPC: "2.0", ID: req.ID}
	if ok {
		resp.Result = result
	} else {
		resp.Error = &rpcError{Code: -32601, Message: fmt.Sprintf("method %s not stubbed", req.Method)}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
