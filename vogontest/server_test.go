package vogontest_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shubhiks/vogon-go/vogontest"
)

func getJSON(t *testing.T, url string, out interface{}) *http.Response {
	t.Helper()
	resp, err := http.Get(url) //nolint:gosec // test server URL
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestServer_Lifecycle(t *testing.T) {
	srv := vogontest.NewServer(vogontest.Options{
		StatusSequence: []string{"QUEUED", "SUCCEEDED"},
		Rows:           [][]interface{}{{"x", 1}, {"y", 2}, {"z", 3}},
		Columns:        []string{"name", "n"},
	})
	defer srv.Close()

	body, err := json.Marshal(map[string]string{"sql": "SELECT 1"})
	require.NoError(t, err)
	resp, err := http.Post(srv.URL()+"/api/spark/sql", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck

	var ack struct {
		Status string `json:"status"`
		ID     string `json:"id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ack))
	assert.Equal(t, "SUBMITTED", ack.Status)
	assert.NotEmpty(t, ack.ID)
	assert.Equal(t, "SELECT 1", srv.LastSQL())

	var progress struct {
		Status string `json:"status"`
	}
	getJSON(t, srv.URL()+"/api/spark/progress?id="+ack.ID, &progress)
	assert.Equal(t, "QUEUED", progress.Status)
	getJSON(t, srv.URL()+"/api/spark/progress?id="+ack.ID, &progress)
	assert.Equal(t, "SUCCEEDED", progress.Status)
	// The last status repeats once the sequence is exhausted.
	getJSON(t, srv.URL()+"/api/spark/progress?id="+ack.ID, &progress)
	assert.Equal(t, "SUCCEEDED", progress.Status)

	var result struct {
		Rows    [][]interface{} `json:"rows"`
		Columns []string        `json:"columns"`
	}
	getJSON(t, srv.URL()+"/api/spark/result/v2?id="+ack.ID+"&start=1&total=2", &result)
	assert.Len(t, result.Rows, 2)
	assert.Equal(t, []string{"name", "n"}, result.Columns)

	getJSON(t, srv.URL()+"/api/spark/cancel?id="+ack.ID, nil)
	assert.Equal(t, 1, srv.CancelCalls())
	assert.Equal(t, 3, srv.ProgressCalls())
	assert.Equal(t, 1, srv.ResultCalls())
}

func TestServer_AuthToken(t *testing.T) {
	srv := vogontest.NewServer(vogontest.Options{AuthToken: "tok"})
	defer srv.Close()

	resp := getJSON(t, srv.URL()+"/api/spark/progress?id=x", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, err := http.NewRequest(http.MethodGet, srv.URL()+"/api/spark/progress?id=x", nil)
	require.NoError(t, err)
	req.Header.Set("vogon-auth-token", "tok")
	authed, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer authed.Body.Close() //nolint:errcheck
	assert.Equal(t, http.StatusOK, authed.StatusCode)
}

func TestServer_FailProgressTicks(t *testing.T) {
	srv := vogontest.NewServer(vogontest.Options{
		StatusSequence:    []string{"RUNNING", "RUNNING", "SUCCEEDED"},
		FailProgressTicks: []int{2},
	})
	defer srv.Close()

	resp := getJSON(t, srv.URL()+"/api/spark/progress?id=x", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = getJSON(t, srv.URL()+"/api/spark/progress?id=x", nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	resp = getJSON(t, srv.URL()+"/api/spark/progress?id=x", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
