package geoapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/doleances-service/internal/domain"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/geo/communes", func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("auth-token"); err != nil || c.Value != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`[{"code":"MG11101","name":"Antananarivo Renivohitra","parentName":"Antananarivo Renivohitra","regionName":"Analamanga","lat":-18.9,"lon":47.5}]`))
	})
	mux.HandleFunc("/api/geo/regions", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	})
	mux.HandleFunc("/api/geo/districts", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Erreur lors du chargement des districts"}`))
	})
	mux.HandleFunc("/api/nominatim/search", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "Isoraka", q.Get("q"))
		assert.Equal(t, "mg", q.Get("countryCodes"))
		assert.Equal(t, "8", q.Get("limit"))
		_, _ = w.Write([]byte(`[{"place_id":42,"display_name":"Isoraka, Antananarivo","lat":"-18.91","lon":"47.52","address":{"city":"Antananarivo"}}]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Areas(t *testing.T) {
	srv := newServer(t)
	client := NewClient(Config{BaseURL: srv.URL + "/", AuthToken: "secret"}, zap.NewNop())

	communes, err := client.Areas(context.Background(), domain.LevelCommune)
	require.NoError(t, err)
	require.Len(t, communes, 1)
	assert.Equal(t, "MG11101", communes[0].Code)
	assert.Equal(t, "Analamanga", communes[0].RegionName)
	require.NotNil(t, communes[0].Lat)
	assert.Equal(t, -18.9, *communes[0].Lat)

	regions, err := client.Areas(context.Background(), domain.LevelRegion)
	require.NoError(t, err)
	assert.NotNil(t, regions)
	assert.Empty(t, regions)

	_, err = client.Areas(context.Background(), domain.LevelDistrict)
	assert.Error(t, err)

	_, err = client.Areas(context.Background(), domain.AdminLevel("zone"))
	assert.Error(t, err)
}

func TestClient_AreasWithoutCookie(t *testing.T) {
	srv := newServer(t)
	client := NewClient(Config{BaseURL: srv.URL}, zap.NewNop())

	_, err := client.Areas(context.Background(), domain.LevelCommune)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestClient_Search(t *testing.T) {
	srv := newServer(t)
	client := NewClient(Config{BaseURL: srv.URL}, zap.NewNop())

	places, err := client.Search(context.Background(), "Isoraka", domain.GeocodeOptions{CountryCodes: "mg", Limit: 8})
	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, int64(42), places[0].ID)
	assert.Equal(t, "Antananarivo", places[0].ToSelectedLocation().City)
}
