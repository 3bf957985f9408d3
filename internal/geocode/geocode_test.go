package geocode

import (
	"errors"
	"testing"

	"github.com/kelvins/geocoder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeocodeRequiresKey(t *testing.T) {
	_, _, err := NewGoogleGeocoder("").Geocode(Address{City: "Duluth", Country: "US"})
	assert.ErrorIs(t, err, errNoAPIKey)
}

func TestGeocodePassesAddress(t *testing.T) {
	g := NewGoogleGeocoder("key")
	g.lookup = func(a geocoder.Address) (geocoder.Location, error) {
		assert.Equal(t, "Duluth", a.City)
		assert.Equal(t, "Minnesota", a.State)
		assert.Equal(t, "US", a.Country)
		assert.Equal(t, "key", geocoder.ApiKey)
		return geocoder.Location{Latitude: 46.78, Longitude: -92.1}, nil
	}

	lat, lon, err := g.Geocode(Address{City: "Duluth", State: "Minnesota", Country: "US"})
	require.NoError(t, err)
	assert.Equal(t, 46.78, lat)
	assert.Equal(t, -92.1, lon)
}

func TestGeocodeWrapsLookupError(t *testing.T) {
	boom := errors.New("ZERO_RESULTS")
	g := NewGoogleGeocoder("key")
	g.lookup = func(geocoder.Address) (geocoder.Location, error) {
		return geocoder.Location{}, boom
	}

	_, _, err := g.Geocode(Address{City: "Nowhere"})
	assert.ErrorIs(t, err, boom)
}
