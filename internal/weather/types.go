package weather

// Units selects the measurement system sent to the provider. Changing
// units requires a fresh fetch; there is no client-side conversion.
type Units string

const (
	UnitsMetric   Units = "metric"
	UnitsImperial Units = "imperial"
)

// DefaultUnits is the units system used when the caller does not ask
// for one.
const DefaultUnits = UnitsMetric

func (u Units) Valid() bool {
	return u == UnitsMetric || u == UnitsImperial
}

// Condition is the normalized weather condition group. It mirrors the
// provider's `weather[0].main` values; anything unrecognized collapses
// to ConditionOther.
type Condition string

const (
	ConditionClear        Condition = "Clear"
	ConditionClouds       Condition = "Clouds"
	ConditionRain         Condition = "Rain"
	ConditionSnow         Condition = "Snow"
	ConditionThunderstorm Condition = "Thunderstorm"
	ConditionDrizzle      Condition = "Drizzle"
	ConditionOther        Condition = "Other"
)

func ConditionFromMain(main string) Condition {
	switch main {
	case "Clear", "Clouds", "Rain", "Snow", "Thunderstorm", "Drizzle":
		return Condition(main)
	default:
		return ConditionOther
	}
}

// Icon maps a condition to the icon name the viewer renders.
func (c Condition) Icon() string {
	switch c {
	case ConditionClear:
		return "sunny"
	case ConditionClouds:
		return "cloudy"
	case ConditionRain:
		return "rainy"
	case ConditionSnow:
		return "snow"
	case ConditionThunderstorm:
		return "thunderstorm"
	case ConditionDrizzle:
		return "rainy-outline"
	default:
		return "partly-sunny"
	}
}

// Coordinate is a geographic point. The JSON shape doubles as the
// persisted "lastLocation" value.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Snapshot is the full current-conditions record for one resolved
// coordinate at one fetch time. It is rebuilt whole on every successful
// fetch, never field-patched.
type Snapshot struct {
	CityName    string     `json:"city_name"`
	Coordinate  Coordinate `json:"coordinate"`
	Temperature float64    `json:"temperature"`
	FeelsLike   float64    `json:"feels_like"`
	Humidity    int        `json:"humidity"`
	WindSpeed   float64    `json:"wind_speed"`
	Pressure    float64    `json:"pressure"`
	Condition   Condition  `json:"condition"`
	Description string     `json:"description"`
	ObservedAt  int64      `json:"observed_at"`
}

// ForecastSample is one daily-representative point derived from the
// provider's 3-hourly forecast feed.
type ForecastSample struct {
	Timestamp   int64     `json:"timestamp"`
	Temperature float64   `json:"temperature"`
	Condition   Condition `json:"condition"`
}
