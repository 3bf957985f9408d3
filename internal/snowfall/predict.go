package snowfall

import (
	"math"
	"sort"
)

// PredictFirstSnowfall returns the date of the first in-season sample with a
// positive amount. ok is false when no sample qualifies, which is a valid
// "no snowfall predicted" outcome. The series length is up to the caller.
func PredictFirstSnowfall(series Series, season SeasonWindow) (Date, bool) {
	for _, s := range series.samples {
		if !season.Contains(s.Date) {
			continue
		}
		if s.Amount > 0 {
			return s.Date, true
		}
	}
	return Date{}, false
}

// BuildFirstSnowfallRecords scans one series per season-year and returns the
// first snowfall record of each year, ordered by year. Years without a
// qualifying day are omitted.
func BuildFirstSnowfallRecords(byYear map[int]Series, season SeasonWindow) []FirstSnowfallRecord {
	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	records := make([]FirstSnowfallRecord, 0, len(years))
	for _, y := range years {
		if d, ok := PredictFirstSnowfall(byYear[y], season); ok {
			records = append(records, FirstSnowfallRecord{Year: y, Date: d})
		}
	}
	return records
}

// ComputeStatistics summarizes records. Earliest and latest compare
// month-days on the calendar rotated to the season start. The average is the
// mean day-of-year mapped onto a non-leap reference year; it is approximate
// around leap days and meaningless for windows that straddle New Year's.
func ComputeStatistics(records []FirstSnowfallRecord, season SeasonWindow) (HistoricalStatistics, error) {
	if len(records) == 0 {
		return HistoricalStatistics{}, ErrEmptyDataset
	}

	earliest := records[0].Date.MonthDay()
	latest := earliest
	sum := 0

	for _, r := range records {
		md := r.Date.MonthDay()
		if season.compareInSeason(md, earliest) < 0 {
			earliest = md
		}
		if season.compareInSeason(md, latest) > 0 {
			latest = md
		}
		sum += r.Date.YearDay()
	}

	mean := float64(sum) / float64(len(records))

	return HistoricalStatistics{
		Earliest:         earliest,
		Latest:           latest,
		Average:          MonthDayFromYearDay(int(math.Round(mean))),
		AverageDayOfYear: mean,
		Count:            len(records),
	}, nil
}

// FrequencyBucket counts how many seasons first saw snow on a month-day.
type FrequencyBucket struct {
	MonthDay MonthDay `json:"monthDay"`
	Count    int      `json:"count"`
}

// SnowfallFrequency groups records by month-day, in season order.
func SnowfallFrequency(records []FirstSnowfallRecord, season SeasonWindow) []FrequencyBucket {
	counts := make(map[MonthDay]int, len(records))
	for _, r := range records {
		counts[r.Date.MonthDay()]++
	}

	buckets := make([]FrequencyBucket, 0, len(counts))
	for md, n := range counts {
		buckets = append(buckets, FrequencyBucket{MonthDay: md, Count: n})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return season.compareInSeason(buckets[i].MonthDay, buckets[j].MonthDay) < 0
	})
	return buckets
}
