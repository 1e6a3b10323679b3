package geocoding

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/wanderlust/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Forward(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/New Delhi, India.json", r.URL.Path)
		assert.Equal(t, "pk.test", r.URL.Query().Get("access_token"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"features":[{"geometry":{"type":"Point","coordinates":[77.209,28.6139]}}]}`))
	}))
	defer srv.Close()

	client := NewClient(config.GeocodingConfig{BaseURL: srv.URL + "/", Token: "pk.test", TimeoutSeconds: 2})

	g, err := client.Forward(context.Background(), "New Delhi, India")

	require.NoError(t, err)
	require.NotNil(t, g)
	assert.Equal(t, "Point", g.Type)
	assert.Equal(t, [2]float64{77.209, 28.6139}, g.Coordinates)
}

func TestClient_Forward_NoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"features":[]}`))
	}))
	defer srv.Close()

	client := NewClient(config.GeocodingConfig{BaseURL: srv.URL, Token: "pk.test", TimeoutSeconds: 2})

	g, err := client.Forward(context.Background(), "Atlantis")

	assert.NoError(t, err)
	assert.Nil(t, g)
}

func TestClient_Forward_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(config.GeocodingConfig{BaseURL: srv.URL, Token: "bad", TimeoutSeconds: 2})
	_, err := client.Forward(context.Background(), "Goa")
	assert.ErrorContains(t, err, "unexpected status 401")

	disabled := NewClient(config.GeocodingConfig{BaseURL: srv.URL, TimeoutSeconds: 2})
	g, err := disabled.Forward(context.Background(), "Goa")
	assert.NoError(t, err)
	assert.Nil(t, g)
}
