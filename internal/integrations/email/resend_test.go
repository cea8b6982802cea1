package email

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestResendSendBatchChunks(t *testing.T) {
	var calls atomic.Int32
	var sizes []int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails/batch", r.URL.Path)
		var body []map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		sizes = append(sizes, len(body))
		n := calls.Add(1)

		data := make([]map[string]string, len(body))
		for i := range body {
			data[i] = map[string]string{"id": fmt.Sprintf("m-%d-%d", n, i)}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"data": data})
	}))
	defer srv.Close()

	sender := NewResendSender("re_test", "Bus <noreply@example.com>", zap.NewNop())
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	sender.client.BaseURL = base

	reqs := make([]SendRequest, 150)
	for i := range reqs {
		reqs[i] = SendRequest{To: []string{fmt.Sprintf("u%d@example.com", i)}, Subject: "s", HTML: "<p>b</p>"}
	}

	results, err := sender.SendBatch(context.Background(), reqs)
	require.NoError(t, err)
	assert.Len(t, results, 150)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, []int{100, 50}, sizes)
}

func TestNoopSender(t *testing.T) {
	results, err := NewNoopSender(zap.NewNop()).SendBatch(context.Background(), []SendRequest{{To: []string{"a@example.com"}}, {To: []string{"b@example.com"}}})
	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.NotEqual(t, results[0].MessageID, results[1].MessageID)
}
