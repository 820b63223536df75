package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedCall struct {
	method string
	path   string
	query  string
	values [][]interface{}
}

func newTestClient(t *testing.T) (*Client, *[]recordedCall) {
	t.Helper()

	var (
		mu    sync.Mutex
		calls []recordedCall
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Values [][]interface{} `json:"values"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)

		mu.Lock()
		calls = append(calls, recordedCall{
			method: r.Method,
			path:   r.URL.Path,
			query:  r.URL.RawQuery,
			values: body.Values,
		})
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(context.Background(), Config{
		Endpoint:   srv.URL + "/",
		HTTPClient: srv.Client(),
	})
	require.NoError(t, err)
	return client, &calls
}

func TestNewClientRequiresCredentials(t *testing.T) {
	_, err := NewClient(context.Background(), Config{})
	require.Error(t, err)
}

func TestAppendValues(t *testing.T) {
	client, calls := newTestClient(t)

	err := client.AppendValues(context.Background(), "sheet-1", "Jobs!A2", [][]interface{}{{"1", "Go Engineer"}})
	require.NoError(t, err)

	require.Len(t, *calls, 1)
	call := (*calls)[0]
	assert.Equal(t, http.MethodPost, call.method)
	assert.True(t, strings.HasPrefix(call.path, "/v4/spreadsheets/sheet-1/values/"), call.path)
	assert.True(t, strings.HasSuffix(call.path, ":append"), call.path)
	assert.Contains(t, call.query, "valueInputOption=RAW")
	assert.Contains(t, call.query, "insertDataOption=INSERT_ROWS")
	assert.Equal(t, [][]interface{}{{"1", "Go Engineer"}}, call.values)
}

func TestUpdateAndClear(t *testing.T) {
	client, calls := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.UpdateValues(ctx, "sheet-1", "Jobs!A1", [][]interface{}{{"ID"}}))
	require.NoError(t, client.ClearValues(ctx, "sheet-1", "Jobs!A2:Z"))

	require.Len(t, *calls, 2)
	assert.Equal(t, http.MethodPut, (*calls)[0].method)
	assert.Equal(t, http.MethodPost, (*calls)[1].method)
	assert.True(t, strings.HasSuffix((*calls)[1].path, ":clear"), (*calls)[1].path)
}
