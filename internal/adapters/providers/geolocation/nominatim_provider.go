package geolocation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/healthconnect/navigator-api/internal/domain/providers"
)

const (
	defaultNominatimURL    = "https://nominatim.openstreetmap.org"
	defaultGeocodeCacheTTL = 60 * 60 * 24 * 30
	defaultHTTPTimeout     = 8 * time.Second
	userAgent              = "healthconnect-navigator/1.0"
)

// NominatimProvider implements GeolocationProvider against the Nominatim
// open geocoding service. Responses are cached for 30 days; the service's
// usage policy forbids hammering it with repeat queries.
type NominatimProvider struct {
	baseURL    string
	httpClient *http.Client
	cache      providers.CacheProvider
}

// NewNominatimProvider creates a new Nominatim provider
func NewNominatimProvider(baseURL string, cache providers.CacheProvider) providers.GeolocationProvider {
	return NewNominatimProviderWithHTTP(baseURL, cache, nil)
}

// NewNominatimProviderWithHTTP allows overriding the HTTP client (used for tests)
func NewNominatimProviderWithHTTP(baseURL string, cache providers.CacheProvider, httpClient *http.Client) providers.GeolocationProvider {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultNominatimURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &NominatimProvider{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		cache:      cache,
	}
}

type nominatimResult struct {
	DisplayName string           `json:"display_name"`
	Lat         string           `json:"lat"`
	Lon         string           `json:"lon"`
	Address     nominatimAddress `json:"address"`
}

type nominatimAddress struct {
	Road    string `json:"road"`
	Suburb  string `json:"suburb"`
	City    string `json:"city"`
	Town    string `json:"town"`
	Village string `json:"village"`
	State   string `json:"state"`
	Region  string `json:"region"`
	Country string `json:"country"`
}

// Geocode converts a free-text place query to coordinates
func (p *NominatimProvider) Geocode(ctx context.Context, query string) (*providers.GeocodedAddress, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, fmt.Errorf("query is required")
	}

	cacheKey := "geo:geocode:" + hashKey(strings.ToLower(trimmed))
	if addr := p.cached(ctx, cacheKey); addr != nil {
		return addr, nil
	}

	params := url.Values{}
	params.Set("q", trimmed)
	params.Set("format", "json")
	params.Set("addressdetails", "1")
	params.Set("limit", "1")
	params.Set("countrycodes", "gh")

	var results []nominatimResult
	if err := p.get(ctx, p.baseURL+"/search?"+params.Encode(), &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no results for query")
	}

	addr, err := toGeocodedAddress(results[0])
	if err != nil {
		return nil, err
	}

	p.store(ctx, cacheKey, addr)
	return addr, nil
}

// ReverseGeocode converts coordinates to an address
func (p *NominatimProvider) ReverseGeocode(ctx context.Context, lat, lon float64) (*providers.GeocodedAddress, error) {
	cacheKey := "geo:reverse:" + hashKey(fmt.Sprintf("%.5f,%.5f", lat, lon))
	if addr := p.cached(ctx, cacheKey); addr != nil {
		return addr, nil
	}

	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', 6, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', 6, 64))
	params.Set("format", "json")
	params.Set("addressdetails", "1")

	var result nominatimResult
	if err := p.get(ctx, p.baseURL+"/reverse?"+params.Encode(), &result); err != nil {
		return nil, err
	}
	if result.DisplayName == "" {
		return nil, fmt.Errorf("no results for coordinates")
	}

	addr, err := toGeocodedAddress(result)
	if err != nil {
		return nil, err
	}

	p.store(ctx, cacheKey, addr)
	return addr, nil
}

func (p *NominatimProvider) get(ctx context.Context, reqURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build geocode request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("geocode request returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode geocode response: %w", err)
	}
	return nil
}

func (p *NominatimProvider) cached(ctx context.Context, key string) *providers.GeocodedAddress {
	if p.cache == nil {
		return nil
	}
	payload, err := p.cache.Get(ctx, key)
	if err != nil || len(payload) == 0 {
		return nil
	}
	var addr providers.GeocodedAddress
	if err := json.Unmarshal(payload, &addr); err != nil {
		return nil
	}
	if addr.Coordinates.Latitude == 0 && addr.Coordinates.Longitude == 0 {
		return nil
	}
	return &addr
}

func (p *NominatimProvider) store(ctx context.Context, key string, addr *providers.GeocodedAddress) {
	if p.cache == nil {
		return
	}
	if payload, err := json.Marshal(addr); err == nil {
		_ = p.cache.Set(ctx, key, payload, defaultGeocodeCacheTTL)
	}
}

func toGeocodedAddress(result nominatimResult) (*providers.GeocodedAddress, error) {
	lat, err := strconv.ParseFloat(result.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude in geocode result: %w", err)
	}
	lon, err := strconv.ParseFloat(result.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude in geocode result: %w", err)
	}

	city := result.Address.City
	if city == "" {
		city = result.Address.Town
	}
	if city == "" {
		city = result.Address.Village
	}

	region := result.Address.State
	if region == "" {
		region = result.Address.Region
	}

	return &providers.GeocodedAddress{
		DisplayName: result.DisplayName,
		Street:      result.Address.Road,
		Suburb:      result.Address.Suburb,
		City:        city,
		Region:      region,
		Country:     result.Address.Country,
		Coordinates: providers.Coordinates{Latitude: lat, Longitude: lon},
	}, nil
}

func hashKey(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
