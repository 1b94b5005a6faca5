package geocoder

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"
)

const (
	// NominatimBaseURL is the public Nominatim API endpoint.
	NominatimBaseURL = "https://nominatim.openstreetmap.org"
	// UserAgent is required by the Nominatim usage policy.
	UserAgent = "NagrikNivedan/1.0 (civic issue reporting)"
	// Nominatim allows at most 1 request per second.
	minRequestInterval = time.Second
)

// Place is one reverse-geocoding result: the geocoder's own formatted
// string plus structured address components.
type Place struct {
	Name        string            `json:"name"`
	DisplayName string            `json:"display_name"`
	Address     StructuredAddress `json:"address"`
}

// StructuredAddress carries the Nominatim address components the
// resolver's preference chain reads.
type StructuredAddress struct {
	Amenity       string `json:"amenity"`
	Building      string `json:"building"`
	Shop          string `json:"shop"`
	Tourism       string `json:"tourism"`
	HouseNumber   string `json:"house_number"`
	Road          string `json:"road"`
	Neighbourhood string `json:"neighbourhood"`
	Suburb        string `json:"suburb"`
	District      string `json:"city_district"`
	City          string `json:"city"`
	Town          string `json:"town"`
	Village       string `json:"village"`
	State         string `json:"state"`
	Postcode      string `json:"postcode"`
	Country       string `json:"country"`
}

// ReverseGeocoder is the external dependency boundary of the resolver.
type ReverseGeocoder interface {
	ReverseGeocode(lat, lon float64) (*Place, error)
}

// Client is a rate-limited Nominatim reverse-geocoding client.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	lastRequest   time.Time
	rateLimitLock sync.Mutex
}

// NewClient creates a Nominatim client against the public endpoint.
func NewClient() *Client {
	return NewClientWithBaseURL(NominatimBaseURL)
}

// NewClientWithBaseURL creates a client against a custom endpoint,
// e.g. a self-hosted Nominatim instance.
func NewClientWithBaseURL(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) enforceRateLimit() {
	c.rateLimitLock.Lock()
	defer c.rateLimitLock.Unlock()

	elapsed := time.Since(c.lastRequest)
	if elapsed < minRequestInterval {
		time.Sleep(minRequestInterval - elapsed)
	}
	c.lastRequest = time.Now()
}

// ReverseGeocode asks Nominatim for the structured address of a
// coordinate pair at building-level zoom.
func (c *Client) ReverseGeocode(lat, lon float64) (*Place, error) {
	c.enforceRateLimit()

	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%f", lat))
	params.Set("lon", fmt.Sprintf("%f", lon))
	params.Set("format", "jsonv2")
	params.Set("addressdetails", "1")
	params.Set("namedetails", "1")
	params.Set("zoom", "18") // fine enough for POI names

	reqURL := fmt.Sprintf("%s/reverse?%s", c.baseURL, params.Encode())

	req, err := http.NewRequest("GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("nominatim returned status %d: %s", resp.StatusCode, string(body))
	}

	var place Place
	if err := json.NewDecoder(resp.Body).Decode(&place); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &place, nil
}
