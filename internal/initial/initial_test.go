package initial

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"CardioCheck/internal/config"
	"CardioCheck/internal/modules/prediction/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *config.Config {
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	return cfg
}

func TestNewSigner_RandomKeyWhenUnset(t *testing.T) {
	cfg := defaults()

	a, err := NewSigner(cfg)
	require.NoError(t, err)
	b, err := NewSigner(cfg)
	require.NoError(t, err)

	claims := a.Registered(time.Minute)
	token, err := a.Sign(&claims)
	require.NoError(t, err)

	assert.NoError(t, a.Parse(token, &jwt.RegisteredClaims{}))
	assert.Error(t, b.Parse(token, &jwt.RegisteredClaims{}), "random keys differ between signers")
}

func TestNewSigner_ConfiguredKeyIsStable(t *testing.T) {
	cfg := defaults()
	cfg.SigningKey = "shared-secret"

	a, err := NewSigner(cfg)
	require.NoError(t, err)
	b, err := NewSigner(cfg)
	require.NoError(t, err)

	claims := a.Registered(time.Minute)
	token, err := a.Sign(&claims)
	require.NoError(t, err)
	assert.NoError(t, b.Parse(token, &jwt.RegisteredClaims{}))
}

func TestNewInferenceClient_UsesConfiguredURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/predict", r.URL.Path)
		_, _ = w.Write([]byte(`{"prediction":0,"probability_no_disease":0.8,"probability_disease":0.2}`))
	}))
	defer srv.Close()

	cfg := defaults()
	cfg.InferenceConfig.URL = srv.URL + "/predict"
	assert.Equal(t, 5*time.Second, InferenceTimeout(cfg))

	resp, err := NewInferenceClient(cfg).Predict(context.Background(), entity.InferenceRequest{})
	require.NoError(t, err)
	assert.Equal(t, entity.NoDisease, resp.Prediction)
}
