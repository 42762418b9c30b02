package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/kjstillabower/weather-planner-service/internal/models"
	"github.com/kjstillabower/weather-planner-service/internal/observability"
)

// ForecastClient fetches a raw hourly forecast for a coordinate pair.
type ForecastClient interface {
	FetchHourly(ctx context.Context, lat, lon float64) (models.RawHourlySeries, error)
}

// ErrFetchFailed is returned for any network or non-success HTTP
// outcome. There are no retries and no recovery: a failed fetch is
// surfaced to the caller immediately as a user-visible error state.
var ErrFetchFailed = errors.New("forecast fetch failed")

// celsiusUnit is assumed when the provider omits hourly_units; the
// upstream default is metric and the assumption is pinned by tests.
const celsiusUnit = "°C"

// OpenMeteoClient fetches hourly forecasts from the Open-Meteo API.
// Open-Meteo is keyless; the only request inputs are coordinates.
type OpenMeteoClient struct {
	apiURL       string
	forecastDays int
	timeout      time.Duration
	client       *http.Client
}

// NewOpenMeteoClient validates the endpoint URL and builds a client.
// forecastDays outside Open-Meteo's 1..16 range falls back to 7.
func NewOpenMeteoClient(apiURL string, timeout time.Duration, forecastDays int) (*OpenMeteoClient, error) {
	if apiURL == "" {
		return nil, fmt.Errorf("forecast API URL is required")
	}
	if _, err := url.Parse(apiURL); err != nil {
		return nil, fmt.Errorf("invalid forecast API URL %q: %w", apiURL, err)
	}
	if forecastDays < 1 || forecastDays > 16 {
		forecastDays = 7
	}

	return &OpenMeteoClient{
		apiURL:       apiURL,
		forecastDays: forecastDays,
		timeout:      timeout,
		client: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type openMeteoResponse struct {
	HourlyUnits struct {
		Temperature2M string `json:"temperature_2m"`
	} `json:"hourly_units"`
	Hourly struct {
		Time          []string  `json:"time"`
		Temperature2M []float64 `json:"temperature_2m"`
		WeatherCode   []int     `json:"weathercode"`
	} `json:"hourly"`
}

// FetchHourly performs a single forecast request. One shot: no retries,
// no backoff; cancellation comes only from the caller's context.
func (c *OpenMeteoClient) FetchHourly(ctx context.Context, lat, lon float64) (models.RawHourlySeries, error) {
	start := time.Now()

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := c.buildRequest(reqCtx, lat, lon)
	if err != nil {
		observability.ForecastAPICallsTotal.WithLabelValues("error").Inc()
		return models.RawHourlySeries{}, fmt.Errorf("build request: %w", err)
	}

	corrID := extractCorrelationID(ctx)
	if corrID != "" {
		req.Header.Set("X-Correlation-ID", corrID)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		duration := time.Since(start).Seconds()
		observability.ForecastAPICallsTotal.WithLabelValues("error").Inc()
		observability.ForecastAPIDuration.WithLabelValues("error").Observe(duration)

		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return models.RawHourlySeries{}, fmt.Errorf("request timeout: %w", err)
		}
		return models.RawHourlySeries{}, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	duration := time.Since(start).Seconds()
	status := statusLabel(resp.StatusCode)
	observability.ForecastAPICallsTotal.WithLabelValues(status).Inc()
	observability.ForecastAPIDuration.WithLabelValues(status).Observe(duration)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return models.RawHourlySeries{}, fmt.Errorf("%w: HTTP %d", ErrFetchFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.RawHourlySeries{}, fmt.Errorf("read response body: %w", err)
	}

	var apiResp openMeteoResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return models.RawHourlySeries{}, fmt.Errorf("parse response: %w", err)
	}

	return mapResponse(apiResp), nil
}

func (c *OpenMeteoClient) buildRequest(ctx context.Context, lat, lon float64) (*http.Request, error) {
	baseURL, err := url.Parse(c.apiURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API URL: %w", err)
	}

	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', 4, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', 4, 64))
	params.Set("hourly", "temperature_2m,weathercode")
	params.Set("forecast_days", strconv.Itoa(c.forecastDays))
	params.Set("timezone", "auto")
	baseURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", baseURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	return req, nil
}

// mapResponse lifts the provider payload into the pipeline's raw
// series. A missing unit field means Celsius.
func mapResponse(apiResp openMeteoResponse) models.RawHourlySeries {
	unit := apiResp.HourlyUnits.Temperature2M
	if unit == "" {
		unit = celsiusUnit
	}

	return models.RawHourlySeries{
		Times:        apiResp.Hourly.Time,
		Temperatures: apiResp.Hourly.Temperature2M,
		WeatherCodes: apiResp.Hourly.WeatherCode,
		Unit:         unit,
	}
}

func extractCorrelationID(ctx context.Context) string {
	if corrIDVal := ctx.Value("correlation_id"); corrIDVal != nil {
		if corrID, ok := corrIDVal.(string); ok {
			return corrID
		}
	}
	return ""
}

func statusLabel(statusCode int) string {
	if statusCode >= 200 && statusCode < 300 {
		return "success"
	}
	if statusCode == 429 {
		return "rate_limited"
	}
	if statusCode >= 400 && statusCode < 500 {
		return "client_error"
	}
	if statusCode >= 500 {
		return "server_error"
	}
	return "error"
}
