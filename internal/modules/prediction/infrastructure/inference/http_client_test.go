package inference

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"CardioCheck/internal/modules/prediction/domain/entity"
	"CardioCheck/internal/modules/prediction/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleRequest = entity.InferenceRequest{
	Age: 45, Gender: 1, Height: 170, Weight: 80,
	ApHi: 150, ApLo: 95, Cholesterol: 3, Gluc: 1,
	Smoke: 1, Alco: 0, Active: 0,
}

func newUpstream(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func TestPredict_Success(t *testing.T) {
	var got map[string]any
	srv := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"prediction":1,"probability_no_disease":0.29,"probability_disease":0.71}`))
	})

	c := NewHTTPClient(srv.URL+"/predict", srv.Client(), 0)
	resp, err := c.Predict(context.Background(), sampleRequest)
	require.NoError(t, err)

	assert.Equal(t, &entity.InferenceResponse{
		Prediction:           entity.Disease,
		ProbabilityNoDisease: 0.29,
		ProbabilityDisease:   0.71,
	}, resp)

	// field names go out exactly as the service expects them
	for _, k := range []string{"age", "gender", "height", "weight", "ap_hi", "ap_lo", "cholesterol", "gluc", "smoke", "alco", "active"} {
		assert.Contains(t, got, k)
	}
	assert.Len(t, got, 11)
}

func TestPredict_NonSuccessStatus(t *testing.T) {
	srv := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"boom"}`, http.StatusUnprocessableEntity)
	})

	_, err := NewHTTPClient(srv.URL, srv.Client(), 0).Predict(context.Background(), sampleRequest)
	var statusErr *repository.UpstreamStatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnprocessableEntity, statusErr.StatusCode)
}

func TestPredict_MalformedBodies(t *testing.T) {
	bodies := []string{
		`not json`,
		`{"prediction":1}`,
		`{"prediction":3,"probability_no_disease":0.5,"probability_disease":0.5}`,
		`{"prediction":0,"probability_no_disease":0.9,"probability_disease":0.9}`,
		`{"prediction":"yes","probability_no_disease":0.5,"probability_disease":0.5}`,
		`{"probability_no_disease":0.5,"probability_disease":0.5}`,
	}
	for _, body := range bodies {
		srv := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		})
		_, err := NewHTTPClient(srv.URL, srv.Client(), 0).Predict(context.Background(), sampleRequest)
		assert.True(t, errors.Is(err, repository.ErrMalformedResponse), "body %q: %v", body, err)
	}
}

func TestPredict_BodyLimit(t *testing.T) {
	srv := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"prediction":1,"probability_no_disease":0.29,"probability_disease":0.71,"pad":"` + strings.Repeat("x", 512) + `"}`))
	})

	_, err := NewHTTPClient(srv.URL, srv.Client(), 128).Predict(context.Background(), sampleRequest)
	assert.True(t, errors.Is(err, repository.ErrMalformedResponse))
}

func TestPredict_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	client := srv.Client()
	client.Timeout = 50 * time.Millisecond

	start := time.Now()
	_, err := NewHTTPClient(srv.URL, client, 0).Predict(context.Background(), sampleRequest)
	require.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)

	var netErr interface{ Timeout() bool }
	require.True(t, errors.As(err, &netErr))
	assert.True(t, netErr.Timeout())
}

func TestPredict_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTPClient(url, nil, 0).Predict(context.Background(), sampleRequest)
	require.Error(t, err)
	assert.False(t, errors.Is(err, repository.ErrMalformedResponse))
}
