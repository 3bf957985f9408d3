package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/first-snowfall/internal/geocode"
	"github.com/i474232898/first-snowfall/internal/snowfall"
)

type stubGeocoder struct {
	lat, lon float64
	err      error
	got      geocode.Address
}

func (s *stubGeocoder) Geocode(addr geocode.Address) (float64, float64, error) {
	s.got = addr
	return s.lat, s.lon, s.err
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "file.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDecodeGuessesObjectKeepsOrder(t *testing.T) {
	raw, err := decodeGuesses([]byte(`{"Zoe": "2024-11-20", "Adam": "2024-11-01", "Mia": 20241110}`))
	require.NoError(t, err)
	assert.Equal(t, []snowfall.RawGuess{
		{Player: "Zoe", Value: "2024-11-20"},
		{Player: "Adam", Value: "2024-11-01"},
		{Player: "Mia", Value: "20241110"},
	}, raw)

	guesses, bad := snowfall.ParseGuesses(raw)
	assert.Len(t, guesses, 2)
	require.Len(t, bad, 1)
	assert.Equal(t, "Mia", bad[0].Player)
}

func TestDecodeGuessesList(t *testing.T) {
	raw, err := decodeGuesses([]byte(`[
		{"player": "Alice", "guess_date": "2024-10-28"},
		{"player": "Bob", "guess_date": "2024-11-10"}
	]`))
	require.NoError(t, err)
	assert.Equal(t, []snowfall.RawGuess{
		{Player: "Alice", Value: "2024-10-28"},
		{Player: "Bob", Value: "2024-11-10"},
	}, raw)
}

func TestDecodeGuessesEdgeCases(t *testing.T) {
	raw, err := decodeGuesses([]byte("  \n"))
	require.NoError(t, err)
	assert.Empty(t, raw)

	_, err = decodeGuesses([]byte(`"2024-11-10"`))
	assert.Error(t, err)

	_, err = decodeGuesses([]byte(`{"Alice": "2024-11-10"`))
	assert.Error(t, err)
}

func TestLoadGuessesSample(t *testing.T) {
	raw, err := LoadGuesses(filepath.Join("..", "..", "config", "guesses.json"))
	require.NoError(t, err)
	guesses, bad := snowfall.ParseGuesses(raw)
	assert.Empty(t, bad)
	assert.NotEmpty(t, guesses)
}

func TestLoadLocationWithCoordinates(t *testing.T) {
	path := writeFile(t, `{"name": "Minneapolis", "latitude": 44.9778, "longitude": -93.265, "timezone": "America/Chicago"}`)

	loc, err := LoadLocation(path, nil)
	require.NoError(t, err)
	assert.Equal(t, snowfall.Location{
		Name:      "Minneapolis",
		Latitude:  44.9778,
		Longitude: -93.265,
		Timezone:  "America/Chicago",
	}, loc)
}

func TestLoadLocationGeocodesAddress(t *testing.T) {
	path := writeFile(t, `{"address": {"city": "Duluth", "state": "Minnesota", "country": "US"}}`)
	gc := &stubGeocoder{lat: 46.78, lon: -92.1}

	loc, err := LoadLocation(path, gc)
	require.NoError(t, err)
	assert.Equal(t, "Duluth", gc.got.City)
	assert.Equal(t, "Duluth", loc.Name)
	assert.Equal(t, 46.78, loc.Latitude)
	assert.Equal(t, -92.1, loc.Longitude)
}

func TestLoadLocationErrors(t *testing.T) {
	_, err := LoadLocation(writeFile(t, `{"name": "Nowhere"}`), nil)
	assert.Error(t, err)

	_, err = LoadLocation(writeFile(t, `{"latitude": 95, "longitude": 0}`), nil)
	assert.Error(t, err)

	_, err = LoadLocation(writeFile(t, `{"latitude": 45, "longitude": -93, "timezone": "Mars/Olympus"}`), nil)
	assert.Error(t, err)

	_, err = LoadLocation(writeFile(t, `{"address": {"city": "Duluth", "country": "US"}}`), nil)
	assert.ErrorIs(t, err, errNoCoordinates)

	boom := errors.New("ZERO_RESULTS")
	_, err = LoadLocation(writeFile(t, `{"address": {"city": "Duluth", "country": "US"}}`), &stubGeocoder{err: boom})
	assert.ErrorIs(t, err, boom)

	_, err = LoadLocation(filepath.Join(t.TempDir(), "missing.json"), nil)
	assert.Error(t, err)
}
