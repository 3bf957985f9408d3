package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/i474232898/first-snowfall/internal/geocode"
	"github.com/i474232898/first-snowfall/internal/snowfall"
)

var errNoCoordinates = errors.New("location needs latitude/longitude or an address")

// locationFile mirrors config/location.json.
type locationFile struct {
	Name      string           `json:"name"`
	Latitude  *float64         `json:"latitude" validate:"required_without=Address,omitempty,latitude"`
	Longitude *float64         `json:"longitude" validate:"required_without=Address,omitempty,longitude"`
	Address   *geocode.Address `json:"address"`
	Timezone  string           `json:"timezone" validate:"omitempty,timezone"`
}

// LoadLocation reads the game location. When coordinates are missing the
// address is resolved through gc.
func LoadLocation(path string, gc geocode.Geocoder) (snowfall.Location, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return snowfall.Location{}, fmt.Errorf("read location file: %w", err)
	}

	var lf locationFile
	if err := json.Unmarshal(data, &lf); err != nil {
		return snowfall.Location{}, fmt.Errorf("parse location file: %w", err)
	}
	if err := validate.Struct(lf); err != nil {
		return snowfall.Location{}, fmt.Errorf("invalid location file: %w", err)
	}

	loc := snowfall.Location{Name: lf.Name, Timezone: lf.Timezone}

	if lf.Latitude != nil && lf.Longitude != nil {
		loc.Latitude, loc.Longitude = *lf.Latitude, *lf.Longitude
		return loc, nil
	}

	if lf.Address == nil || gc == nil {
		return snowfall.Location{}, errNoCoordinates
	}

	lat, lon, err := gc.Geocode(*lf.Address)
	if err != nil {
		return snowfall.Location{}, err
	}
	loc.Latitude, loc.Longitude = lat, lon
	if loc.Name == "" {
		loc.Name = lf.Address.City
	}
	return loc, nil
}

// LoadGuesses reads config/guesses.json. Both the object form
// {"player": "YYYY-MM-DD"} and the list form
// [{"player": "...", "guess_date": "YYYY-MM-DD"}] are accepted; file order
// is preserved either way. Dates are not parsed here.
func LoadGuesses(path string) ([]snowfall.RawGuess, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read guesses file: %w", err)
	}
	return decodeGuesses(data)
}

func decodeGuesses(data []byte) ([]snowfall.RawGuess, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	switch trimmed[0] {
	case '[':
		var list []struct {
			Player    string          `json:"player"`
			GuessDate json.RawMessage `json:"guess_date"`
		}
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("parse guesses list: %w", err)
		}
		raw := make([]snowfall.RawGuess, 0, len(list))
		for _, item := range list {
			raw = append(raw, snowfall.RawGuess{Player: item.Player, Value: rawString(item.GuessDate)})
		}
		return raw, nil

	case '{':
		return decodeGuessObject(trimmed)

	default:
		return nil, fmt.Errorf("parse guesses: expected a JSON object or list")
	}
}

// decodeGuessObject walks the object token by token because a map would
// lose the file order that ties are reported in.
func decodeGuessObject(data []byte) ([]snowfall.RawGuess, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("parse guesses object: %w", err)
	}

	var raw []snowfall.RawGuess
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parse guesses object: %w", err)
		}
		player, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("parse guesses object: unexpected key %v", tok)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("parse guess for %q: %w", player, err)
		}
		raw = append(raw, snowfall.RawGuess{Player: player, Value: rawString(value)})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("parse guesses object: %w", err)
	}
	return raw, nil
}

// rawString returns a JSON string's contents, or the raw text for any other
// value so the date parser can reject it with context.
func rawString(v json.RawMessage) string {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	return string(v)
}
