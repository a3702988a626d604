package booking

import (
	"strings"
	"time"

	"github.com/robertarktes/ticket-booking-and-payments/internal/domain"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// FlightTime is the departure/arrival pair of a flight. Departure is always
// strictly before arrival.
type FlightTime struct {
	departure time.Time
	arrival   time.Time
}

// NewFlightTime parses both timestamps and validates their order.
func NewFlightTime(departureTime, arrivalTime string) (FlightTime, error) {
	if strings.TrimSpace(departureTime) == "" || strings.TrimSpace(arrivalTime) == "" {
		return FlightTime{}, domain.Validationf("invalid flight time data: departure and arrival are required")
	}
	dep, okDep := parseTimestamp(departureTime)
	arr, okArr := parseTimestamp(arrivalTime)
	if !okDep || !okArr {
		return FlightTime{}, domain.Validationf("invalid date format for flight times")
	}
	return FlightTimeOf(dep, arr)
}

// FlightTimeOf builds a FlightTime from already parsed instants.
func FlightTimeOf(departure, arrival time.Time) (FlightTime, error) {
	if departure.IsZero() || arrival.IsZero() {
		return FlightTime{}, domain.Validationf("invalid flight time data: departure and arrival are required")
	}
	if !departure.Before(arrival) {
		return FlightTime{}, domain.Validationf("departure time must be before arrival time")
	}
	return FlightTime{departure: departure.UTC(), arrival: arrival.UTC()}, nil
}

func (f FlightTime) Departure() time.Time { return f.departure }
func (f FlightTime) Arrival() time.Time   { return f.arrival }

func (f FlightTime) IsZero() bool {
	return f.departure.IsZero() && f.arrival.IsZero()
}

// DurationInMinutes is the whole number of minutes between departure and
// arrival, rounded down.
func (f FlightTime) DurationInMinutes() int64 {
	return int64(f.arrival.Sub(f.departure) / time.Minute)
}

func (f FlightTime) DurationInHours() float64 {
	return float64(f.DurationInMinutes()) / 60
}

func (f FlightTime) Equals(other FlightTime) bool {
	return f.departure.Equal(other.departure) && f.arrival.Equal(other.arrival)
}

func parseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
