package main

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewHTTPServer(t *testing.T) {
	srv := newHTTPServer(":8080", http.NotFoundHandler())

	require.Equal(t, ":8080", srv.Addr)
	require.NotNil(t, srv.Handler)
	require.Positive(t, srv.ReadHeaderTimeout, "Slow clients should not hold connections open")
	require.Positive(t, srv.ReadTimeout)
	require.Positive(t, srv.WriteTimeout)
	require.Greater(t, srv.WriteTimeout, srv.ReadTimeout, "Searches may take longer than reading a request")
}
