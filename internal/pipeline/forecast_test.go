package pipeline

import (
	"reflect"
	"testing"

	"github.com/skycast-app/skycast/internal/openweather"
	"github.com/skycast-app/skycast/internal/weather"
)

func entry(dt int64, temp float64, main, dtTxt string) openweather.ForecastEntry {
	var e openweather.ForecastEntry
	e.Dt = dt
	e.Main.Temp = temp
	e.DtTxt = dtTxt
	if main != "" {
		e.Weather = []struct {
			Main        string `json:"main"`
			Description string `json:"description"`
		}{{Main: main}}
	}
	return e
}

func TestDailySamplesKeepsMiddayEntriesInOrder(t *testing.T) {
	entries := []openweather.ForecastEntry{
		entry(100, 10.0, "Clear", "2026-08-30 09:00:00"),
		entry(200, 15.0, "Clouds", "2026-08-30 12:00:00"),
		entry(300, 12.0, "Rain", "2026-08-30 15:00:00"),
		entry(400, 16.5, "Drizzle", "2026-08-31 12:00:00"),
		entry(500, 11.0, "Snow", "2026-08-31 21:00:00"),
	}

	samples := DailySamples(entries)

	if len(samples) != 2 {
		t.Fatalf("Expected 2 midday samples, got %d", len(samples))
	}

	if samples[0].Timestamp != 200 || samples[1].Timestamp != 400 {
		t.Errorf("Samples out of order: %+v", samples)
	}

	if samples[0].Condition != weather.ConditionClouds {
		t.Errorf("Expected Clouds, got %s", samples[0].Condition)
	}

	if samples[1].Temperature != 16.5 {
		t.Errorf("Expected temperature 16.5, got %v", samples[1].Temperature)
	}
}

func TestFilterMiddayIdempotent(t *testing.T) {
	entries := []openweather.ForecastEntry{
		entry(100, 10.0, "Clear", "2026-08-30 12:00:00"),
		entry(200, 11.0, "Clouds", "2026-08-31 12:00:00"),
		entry(300, 12.0, "Rain", "2026-09-01 12:00:00"),
	}

	once := filterMidday(entries)
	twice := filterMidday(once)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Filtering already-filtered input changed the sequence: %+v vs %+v", once, twice)
	}

	if len(once) != len(entries) {
		t.Errorf("Expected all %d entries kept, got %d", len(entries), len(once))
	}
}

func TestDailySamplesUnknownConditionFallsBack(t *testing.T) {
	entries := []openweather.ForecastEntry{
		entry(100, 20.0, "Tornado", "2026-08-30 12:00:00"),
		entry(200, 21.0, "", "2026-08-31 12:00:00"),
	}

	samples := DailySamples(entries)

	if len(samples) != 2 {
		t.Fatalf("Expected 2 samples, got %d", len(samples))
	}

	for _, s := range samples {
		if s.Condition != weather.ConditionOther {
			t.Errorf("Expected Other condition, got %s", s.Condition)
		}
	}
}

func TestDailySamplesEmptyInput(t *testing.T) {
	if samples := DailySamples(nil); len(samples) != 0 {
		t.Errorf("Expected no samples, got %d", len(samples))
	}
}
