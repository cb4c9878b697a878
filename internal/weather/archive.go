package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultArchiveURL is the Open-Meteo historical (ERA5) endpoint.
const DefaultArchiveURL = "https://archive-api.open-meteo.com/v1/archive"

const archiveDaily = "temperature_2m_max,temperature_2m_min,precipitation_sum,shortwave_radiation_sum"

// ArchiveClient fetches one calendar year of daily observations for a site.
type ArchiveClient struct {
	BaseURL string
	HTTP    *http.Client
	Logger  *slog.Logger
}

func NewArchiveClient() *ArchiveClient {
	return &ArchiveClient{
		BaseURL: DefaultArchiveURL,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
		Logger:  slog.Default(),
	}
}

type archiveResponse struct {
	Daily *struct {
		Time []string   `json:"time"`
		TMax []*float64 `json:"temperature_2m_max"`
		TMin []*float64 `json:"temperature_2m_min"`
		Rain []*float64 `json:"precipitation_sum"`
		SRad []*float64 `json:"shortwave_radiation_sum"`
	} `json:"daily"`
}

// Fetch returns the daily sequence for year at (lat, lon). Days with a
// missing temperature are dropped; missing rain or radiation become 0.
func (c *ArchiveClient) Fetch(ctx context.Context, lat, lon float64, year int) ([]Day, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', 4, 64))
	q.Set("longitude", strconv.FormatFloat(lon, 'f', 4, 64))
	q.Set("start_date", fmt.Sprintf("%d-01-01", year))
	q.Set("end_date", fmt.Sprintf("%d-12-31", year))
	q.Set("daily", archiveDaily)
	q.Set("timezone", "auto")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	c.Logger.Debug("fetching weather archive", "lat", lat, "lon", lon, "year", year)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather archive: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather archive: unexpected status %s", resp.Status)
	}

	var body archiveResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("weather archive: decode: %w", err)
	}
	if body.Daily == nil {
		return nil, fmt.Errorf("weather archive: response has no daily block")
	}

	d := body.Daily
	days := make([]Day, 0, len(d.Time))
	for i := range d.Time {
		tmax, okMax := at(d.TMax, i)
		tmin, okMin := at(d.TMin, i)
		if !okMax || !okMin {
			continue
		}
		rain, _ := at(d.Rain, i)
		srad, _ := at(d.SRad, i)
		days = append(days, Day{Day: len(days) + 1, TMin: tmin, TMax: tmax, Rain: rain, SRad: srad})
	}

	c.Logger.Info("weather archive fetched", "days", len(days), "year", year)
	return days, nil
}

func at(vals []*float64, i int) (float64, bool) {
	if i >= len(vals) || vals[i] == nil {
		return 0, false
	}
	return *vals[i], true
}
