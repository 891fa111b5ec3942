// Package resources locates nearby mental health facilities through
// OpenStreetMap and carries a static set of national crisis helplines as a
// fallback. Lookups need no API key: geocoding goes through Nominatim,
// facility search through an Overpass mirror.
package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"

	"github.com/dmitrijs2005/mindlens/internal/logging"
)

const (
	DefaultNominatimURL = "https://nominatim.openstreetmap.org/search"
	DefaultOverpassURL  = "https://overpass.kumi.systems/api/interpreter"

	// userAgent identifies us to the OSM services, which require one.
	userAgent = "MindLens-mental-health-finder/1.0"

	// DefaultRadiusMeters is the facility search radius.
	DefaultRadiusMeters = 10000
)

// Facility is one support location or helpline.
type Facility struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"contact_number"`
	Website string `json:"website"`
}

// Helpline is an always-available crisis resource.
type Helpline struct {
	Name        string `json:"name"`
	Phone       string `json:"contact_number"`
	Description string `json:"description"`
}

// Service answers "where can I get help near X" queries.
type Service struct {
	nominatimURL string
	overpassURL  string
	httpClient   *http.Client
	log          logging.Logger
}

// New creates a Service. Empty URLs fall back to the public endpoints.
func New(nominatimURL, overpassURL string, log logging.Logger) *Service {
	if nominatimURL == "" {
		nominatimURL = DefaultNominatimURL
	}
	if overpassURL == "" {
		overpassURL = DefaultOverpassURL
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Service{
		nominatimURL: nominatimURL,
		overpassURL:  overpassURL,
		httpClient: &http.Client{
			Timeout: 90 * time.Second,
		},
		log: log,
	}
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

type overpassElement struct {
	ID   int64             `json:"id"`
	Tags map[string]string `json:"tags"`
}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

// Geocode resolves a free-form place name to coordinates. When the exact
// query yields nothing, it retries once with the broadest trailing
// components (district, state, country).
func (s *Service) Geocode(ctx context.Context, place string) (lat, lon float64, err error) {
	query := cleanAddress(place)

	results, err := s.geocodeQuery(ctx, query)
	if err != nil {
		return 0, 0, err
	}
	if len(results) == 0 {
		if parts := strings.Split(query, ","); len(parts) > 2 {
			broader := make([]string, 0, 3)
			for _, p := range parts[len(parts)-3:] {
				broader = append(broader, strings.TrimSpace(p))
			}
			retry := strings.Join(broader, ", ")
			s.log.Info(ctx, "retrying geocoding with broader location", "query", retry)
			results, err = s.geocodeQuery(ctx, retry)
			if err != nil {
				return 0, 0, err
			}
		}
	}
	if len(results) == 0 {
		return 0, 0, fmt.Errorf("could not find location %q", place)
	}

	if _, err := fmt.Sscan(results[0].Lat, &lat); err != nil {
		return 0, 0, fmt.Errorf("bad latitude %q: %w", results[0].Lat, err)
	}
	if _, err := fmt.Sscan(results[0].Lon, &lon); err != nil {
		return 0, 0, fmt.Errorf("bad longitude %q: %w", results[0].Lon, err)
	}
	return lat, lon, nil
}

func (s *Service) geocodeQuery(ctx context.Context, query string) ([]nominatimResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")

	body, err := s.get(ctx, s.nominatimURL+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("geocoding: %w", err)
	}

	var results []nominatimResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("geocoding: decode: %w", err)
	}
	return results, nil
}

// NearbyHospitals finds hospitals around a place. Any lookup failure or an
// empty result degrades to the static national helplines, so the caller
// always gets something actionable.
func (s *Service) NearbyHospitals(ctx context.Context, place string, radiusMeters int) []Facility {
	if radiusMeters <= 0 {
		radiusMeters = DefaultRadiusMeters
	}

	lat, lon, err := s.Geocode(ctx, place)
	if err != nil {
		s.log.Warn(ctx, "geocoding failed, using fallback resources", "place", place, "error", err)
		return FallbackFacilities()
	}

	query := fmt.Sprintf(`[out:json];node(around:%d,%f,%f)["amenity"="hospital"];out;`,
		radiusMeters, lat, lon)
	params := url.Values{}
	params.Set("data", query)

	body, err := s.get(ctx, s.overpassURL+"?"+params.Encode())
	if err != nil {
		s.log.Warn(ctx, "facility search failed, using fallback resources", "error", err)
		return FallbackFacilities()
	}

	var resp overpassResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		s.log.Warn(ctx, "facility search returned bad data, using fallback resources", "error", err)
		return FallbackFacilities()
	}
	if len(resp.Elements) == 0 {
		return FallbackFacilities()
	}

	facilities := make([]Facility, 0, len(resp.Elements))
	for _, el := range resp.Elements {
		facilities = append(facilities, facilityFromElement(el))
	}
	return facilities
}

func (s *Service) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func facilityFromElement(el overpassElement) Facility {
	tags := el.Tags

	name := tags["name"]
	if name == "" {
		name = "Unnamed Hospital"
	}

	address := firstNonEmpty(tags["addr:full"], tags["addr:street"], tags["addr:city"])
	if address == "" {
		address = "Address not available"
	}

	phone := firstNonEmpty(tags["phone"], tags["contact:phone"])
	if phone == "" {
		phone = "Contact not available"
	}

	website := firstNonEmpty(tags["website"], tags["contact:website"])
	if website == "" {
		website = fmt.Sprintf("https://www.openstreetmap.org/node/%d", el.ID)
	}

	return Facility{Name: name, Address: address, Phone: phone, Website: website}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// cleanAddress normalizes a free-form address for Nominatim.
func cleanAddress(address string) string {
	addr := strings.ReplaceAll(address, ",", ", ")
	words := strings.Fields(addr)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	addr = strings.Join(words, " ")
	if !strings.Contains(addr, "India") {
		addr += ", India"
	}
	return addr
}
