package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveClientFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "45.0000", r.URL.Query().Get("latitude"))
		assert.Equal(t, "2023-01-01", r.URL.Query().Get("start_date"))
		assert.Equal(t, "2023-12-31", r.URL.Query().Get("end_date"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"daily":{
			"time":["2023-01-01","2023-01-02","2023-01-03"],
			"temperature_2m_max":[10.5,null,12],
			"temperature_2m_min":[1.5,2,3],
			"precipitation_sum":[0.4,0,null],
			"shortwave_radiation_sum":[5.1,6,7]}}`))
	}))
	defer srv.Close()

	c := NewArchiveClient()
	c.BaseURL = srv.URL
	days, err := c.Fetch(context.Background(), 45, 11, 2023)
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, Day{Day: 1, TMin: 1.5, TMax: 10.5, Rain: 0.4, SRad: 5.1}, days[0])
	assert.Equal(t, Day{Day: 2, TMin: 3, TMax: 12, Rain: 0, SRad: 7}, days[1])
}

func TestArchiveClientErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("latitude") == "1.0000" {
			http.Error(w, "boom", http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewArchiveClient()
	c.BaseURL = srv.URL

	_, err := c.Fetch(context.Background(), 1, 1, 2023)
	assert.ErrorContains(t, err, "unexpected status")

	_, err = c.Fetch(context.Background(), 2, 1, 2023)
	assert.ErrorContains(t, err, "no daily block")
}
