package pipeline

import (
	"strings"

	"github.com/skycast-app/skycast/internal/openweather"
	"github.com/skycast-app/skycast/internal/weather"
)

// referenceHourMarker selects one sample per day out of the provider's
// 3-hourly feed by matching the textual timestamp. Day-uniqueness is a
// by-product of the feed's UTC-stamped sampling interval; the marker is
// not adjusted for the viewer's time zone.
const referenceHourMarker = "12:00:00"

// DailySamples reduces the raw forecast feed to the midday sample of
// each day, preserving feed order. Running it over already-filtered
// input returns the same sequence.
func DailySamples(entries []openweather.ForecastEntry) []weather.ForecastSample {
	midday := filterMidday(entries)
	samples := make([]weather.ForecastSample, 0, len(midday))
	for _, entry := range midday {
		sample := weather.ForecastSample{
			Timestamp:   entry.Dt,
			Temperature: entry.Main.Temp,
			Condition:   weather.ConditionOther,
		}
		if len(entry.Weather) > 0 {
			sample.Condition = weather.ConditionFromMain(entry.Weather[0].Main)
		}
		samples = append(samples, sample)
	}
	return samples
}

func filterMidday(entries []openweather.ForecastEntry) []openweather.ForecastEntry {
	filtered := make([]openweather.ForecastEntry, 0, len(entries))
	for _, entry := range entries {
		if strings.Contains(entry.DtTxt, referenceHourMarker) {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}
