package models

import "fmt"

// Airport is the origin or destination descriptor of a provider flight record.
type Airport struct {
	City     string `json:"city"`
	CodeIATA string `json:"code_iata"`
	Name     string `json:"name"`
}

// RawFlight is a flight record as returned by the flight-search provider.
// Origin and Destination are nil when the provider does not know them.
type RawFlight struct {
	Ident        string   `json:"ident"`
	AircraftType string   `json:"aircraft_type"`
	Origin       *Airport `json:"origin"`
	Destination  *Airport `json:"destination"`
}

// WeatherUnavailable is the marker serialized in place of a weather description
// when the lookup for a flight failed.
const WeatherUnavailable = "Weather data unavailable."

// FlightSummary is the compact, weather-enriched representation returned to API callers.
type FlightSummary struct {
	Ident           string  `json:"ident"`
	AircraftType    string  `json:"aircraft_type"`
	OriginCity      string  `json:"origin_city"`
	OriginCode      string  `json:"origin_code"`
	OriginName      string  `json:"origin_name"`
	DestinationCity string  `json:"destination_city"`
	DestinationCode string  `json:"destination_code"`
	DestinationName string  `json:"destination_name"`
	Weather         *string `json:"weather"`
	WeatherError    string  `json:"weather_error,omitempty"`

	enrichmentErr error
}

// ProjectFlight copies the fields exposed to callers out of a provider record.
// The result carries no weather yet.
func ProjectFlight(flight RawFlight) FlightSummary {
	var origin, destination Airport
	if flight.Origin != nil {
		origin = *flight.Origin
	}
	if flight.Destination != nil {
		destination = *flight.Destination
	}

	return FlightSummary{
		Ident:           flight.Ident,
		AircraftType:    flight.AircraftType,
		OriginCity:      origin.City,
		OriginCode:      origin.CodeIATA,
		OriginName:      origin.Name,
		DestinationCity: destination.City,
		DestinationCode: destination.CodeIATA,
		DestinationName: destination.Name,
	}
}

// SetWeather attaches a weather description and clears any enrichment failure.
func (fs *FlightSummary) SetWeather(description string) {
	fs.Weather = &description
	fs.WeatherError = ""
	fs.enrichmentErr = nil
}

// MarkWeatherFailure records a failed lookup. The cause is kept for callers in-process
// but only the generic marker is serialized.
func (fs *FlightSummary) MarkWeatherFailure(cause error) {
	fs.Weather = nil
	fs.WeatherError = WeatherUnavailable
	fs.enrichmentErr = fmt.Errorf("%w: %w", ErrEnrichmentFailure, cause)
}

// EnrichmentErr returns the weather lookup failure, or nil if enrichment succeeded.
func (fs *FlightSummary) EnrichmentErr() error {
	return fs.enrichmentErr
}
