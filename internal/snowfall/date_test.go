package snowfall

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-11-15")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2024, Month: time.November, Day: 15}, d)
	assert.Equal(t, "2024-11-15", d.String())

	for _, bad := range []string{"", "2024-13-01", "15/11/2024", "2024-11-15 10:00:00"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestDateOfIgnoresTimeOfDay(t *testing.T) {
	morning := time.Date(2024, 11, 15, 0, 5, 0, 0, time.UTC)
	evening := time.Date(2024, 11, 15, 23, 55, 0, 0, time.UTC)
	assert.Equal(t, DateOf(morning), DateOf(evening))

	// The calendar day is the one in the time's own zone.
	chicago := time.FixedZone("CST", -6*3600)
	assert.Equal(t, NewDate(2024, time.November, 14), DateOf(time.Date(2024, 11, 15, 3, 0, 0, 0, time.UTC).In(chicago)))
}

func TestDaysUntil(t *testing.T) {
	a := NewDate(2024, time.November, 10)
	b := NewDate(2024, time.November, 15)
	assert.Equal(t, 5, a.DaysUntil(b))
	assert.Equal(t, -5, b.DaysUntil(a))

	// Across a leap day and a year boundary.
	assert.Equal(t, 366, NewDate(2024, time.January, 1).DaysUntil(NewDate(2025, time.January, 1)))
	assert.Equal(t, 2, NewDate(2024, time.February, 28).DaysUntil(NewDate(2024, time.March, 1)))

	// Centuries apart, beyond what a time.Duration can hold.
	target := NewDate(2024, time.November, 15)
	assert.Equal(t, 118657, NewDate(1700, time.January, 1).DaysUntil(target))
	assert.Equal(t, -739204, target.DaysUntil(NewDate(1, time.January, 1)))
	assert.Equal(t, 3652058, NewDate(1, time.January, 1).DaysUntil(NewDate(9999, time.December, 31)))
}

func TestNewDateNormalizes(t *testing.T) {
	assert.Equal(t, NewDate(2024, time.December, 1), NewDate(2024, time.November, 31))
	assert.Equal(t, NewDate(2024, time.January, 1), NewDate(2023, time.December, 31).AddDays(1))
}

func TestDateJSON(t *testing.T) {
	in := NewDate(2024, time.November, 5)
	b, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `"2024-11-05"`, string(b))

	var out Date
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, in, out)

	assert.Error(t, json.Unmarshal([]byte(`"Nov 5"`), &out))
}

func TestMonthDayString(t *testing.T) {
	assert.Equal(t, "November 10", MonthDay{Month: time.November, Day: 10}.String())
	assert.Equal(t, "July 03", MonthDay{Month: time.July, Day: 3}.String())
	assert.Equal(t, "February 29", MonthDay{Month: time.February, Day: 29}.String())
}

func TestMonthDayFromYearDay(t *testing.T) {
	assert.Equal(t, MonthDay{Month: time.January, Day: 1}, MonthDayFromYearDay(1))
	assert.Equal(t, MonthDay{Month: time.November, Day: 16}, MonthDayFromYearDay(320))
	assert.Equal(t, MonthDay{Month: time.December, Day: 31}, MonthDayFromYearDay(365))
	assert.Equal(t, MonthDay{Month: time.December, Day: 31}, MonthDayFromYearDay(366))
	assert.Equal(t, MonthDay{Month: time.January, Day: 1}, MonthDayFromYearDay(0))
}

func TestMonthDayJSON(t *testing.T) {
	in := MonthDay{Month: time.December, Day: 20}
	b, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `"December 20"`, string(b))

	var out MonthDay
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, in, out)
}
