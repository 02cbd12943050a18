package openmeteo

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"place-history/internal/domain/weather"
	"place-history/internal/platform/httpclient"
)

var ErrNoData = errors.New("open-meteo: no current weather data")

// currentParams son los campos de condiciones actuales que pedimos.
var currentParams = []string{
	"temperature_2m",
	"relative_humidity_2m",
	"weather_code",
	"precipitation",
	"is_day",
	"apparent_temperature",
	"wind_speed_10m",
	"wind_direction_10m",
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client implementa weather.Provider contra la API de Open-Meteo.
type Client struct {
	http *httpclient.Client
}

func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.New("open-meteo: base url required")
	}
	hc, err := httpclient.NewWithBaseURL(cfg.BaseURL, cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("open-meteo: %w", err)
	}
	return &Client{http: hc}, nil
}

// NewClientWithHTTP permite inyectar el http client (tests).
func NewClientWithHTTP(hc *httpclient.Client) *Client {
	return &Client{http: hc}
}

type forecastResponse struct {
	Latitude  float64         `json:"latitude"`
	Longitude float64         `json:"longitude"`
	Current   *currentWeather `json:"current"`
}

type currentWeather struct {
	Time          string  `json:"time"`
	Temperature   float64 `json:"temperature_2m"`
	Humidity      int     `json:"relative_humidity_2m"`
	WeatherCode   int     `json:"weather_code"`
	WindSpeed     float64 `json:"wind_speed_10m"`
	WindDirection float64 `json:"wind_direction_10m"`
	IsDay         int     `json:"is_day"`
}

// Current hace un único GET /forecast, sin retries. Si la respuesta no
// trae sección "current" devuelve ErrNoData; el caller (weather.Service)
// colapsa cualquier error a "no data".
func (c *Client) Current(ctx context.Context, latitude, longitude float64) (weather.Observation, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))
	q.Set("current", strings.Join(currentParams, ","))

	var resp forecastResponse
	if err := c.http.GetJSON(ctx, "/forecast", q, &resp); err != nil {
		return weather.Observation{}, err
	}
	if resp.Current == nil {
		return weather.Observation{}, ErrNoData
	}

	cur := resp.Current
	return weather.Observation{
		Temperature:   cur.Temperature,
		Humidity:      cur.Humidity,
		WindSpeed:     cur.WindSpeed,
		WindDirection: cur.WindDirection,
		WeatherCode:   cur.WeatherCode,
		IsDay:         cur.IsDay == 1,
	}, nil
}
