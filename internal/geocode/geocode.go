// Package geocode resolves postal addresses to coordinates through the
// Google Geocoding API.
package geocode

import (
	"errors"
	"fmt"
	"sync"

	"github.com/kelvins/geocoder"
)

var errNoAPIKey = errors.New("geocoder api key is not configured")

// Address is the subset of a postal address used to locate a game.
type Address struct {
	City    string `json:"city"`
	State   string `json:"state,omitempty"`
	Country string `json:"country"`
}

// Geocoder turns an address into latitude and longitude.
type Geocoder interface {
	Geocode(addr Address) (lat, lon float64, err error)
}

// lookupFunc matches geocoder.Geocoding so tests can stub the network call.
type lookupFunc func(geocoder.Address) (geocoder.Location, error)

// GoogleGeocoder wraps kelvins/geocoder. The library keeps its key in a
// package variable, so calls are serialized.
type GoogleGeocoder struct {
	apiKey string
	lookup lookupFunc
	mu     sync.Mutex
}

func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	return &GoogleGeocoder{apiKey: apiKey, lookup: geocoder.Geocoding}
}

func (g *GoogleGeocoder) Geocode(addr Address) (float64, float64, error) {
	if g.apiKey == "" {
		return 0, 0, errNoAPIKey
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	geocoder.ApiKey = g.apiKey
	loc, err := g.lookup(geocoder.Address{
		City:    addr.City,
		State:   addr.State,
		Country: addr.Country,
	})
	if err != nil {
		return 0, 0, fmt.Errorf("geocode %s, %s: %w", addr.City, addr.Country, err)
	}
	return loc.Latitude, loc.Longitude, nil
}
