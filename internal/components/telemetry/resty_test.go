package telemetry

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatRequestBody(t *testing.T) {
	require.Equal(t, "<NO BODY AVAILABLE>", formatRequestBody(nil))

	get, err := http.NewRequest(http.MethodGet, "http://localhost/home", nil)
	require.NoError(t, err)
	require.Equal(t, "<NO BODY AVAILABLE>", formatRequestBody(get))

	get.GetBody = func() (io.ReadCloser, error) { return nil, nil }
	require.Equal(t, "<NO BODY AVAILABLE>", formatRequestBody(get))

	get.GetBody = func() (io.ReadCloser, error) { return http.NoBody, nil }
	require.Equal(t, "<NO BODY AVAILABLE>", formatRequestBody(get))

	post, err := http.NewRequest(http.MethodPost, "http://localhost/graphql", strings.NewReader(`{"query":"{}"}`))
	require.NoError(t, err)
	require.Equal(t, `{"query":"{}"}`, formatRequestBody(post))
}
