package api

import (
	"encoding/json/v2"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, resp *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), out))
}
