package ml_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Svaella/app-atension-api/internal/infrastructure/ml"
	"github.com/Svaella/app-atension-api/pkg/testutil"
)

func TestHTTPModelClient_Predict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body struct {
			Features []float64 `json:"features"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []float64(sampleVector), body.Features)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"probability": 0.61})
	}))
	defer server.Close()

	client := ml.NewHTTPModelClient(server.URL, time.Second, testutil.DiscardLogger())

	p, err := client.Predict(context.Background(), sampleVector)
	require.NoError(t, err)
	assert.Equal(t, 0.61, p)
}

func TestHTTPModelClient_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := ml.NewHTTPModelClient(server.URL, time.Second, testutil.DiscardLogger())

	_, err := client.Predict(context.Background(), sampleVector)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
	assert.Contains(t, err.Error(), "model not loaded")
}

func TestHTTPModelClient_MissingProbability(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"label": 1}`))
	}))
	defer server.Close()

	client := ml.NewHTTPModelClient(server.URL, time.Second, testutil.DiscardLogger())

	_, err := client.Predict(context.Background(), sampleVector)
	assert.ErrorContains(t, err, "no probability")
}

func TestHTTPModelClient_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer server.Close()

	client := ml.NewHTTPModelClient(server.URL, time.Second, testutil.DiscardLogger())

	_, err := client.Predict(context.Background(), sampleVector)
	assert.ErrorContains(t, err, "failed to parse response")
}

func TestHTTPModelClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	client := ml.NewHTTPModelClient(server.URL, 50*time.Millisecond, testutil.DiscardLogger())

	_, err := client.Predict(context.Background(), sampleVector)
	assert.ErrorContains(t, err, "model server request failed")
}

func TestStubModelClient_Predict(t *testing.T) {
	stub := ml.NewStubModelClient(0.42, testutil.DiscardLogger())

	p, err := stub.Predict(context.Background(), sampleVector)
	require.NoError(t, err)
	assert.Equal(t, 0.42, p)
}
