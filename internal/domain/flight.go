package domain

import "time"

type Seat struct {
	SeatNumber string `json:"seatNumber" bson:"seatNumber"`
	IsBooked   bool   `json:"isBooked" bson:"isBooked"`
}

type Flight struct {
	ID                string    `json:"id" bson:"_id"`
	DepartureDateTime time.Time `json:"departureDateTime" bson:"departureDateTime"`
	ArrivalDateTime   time.Time `json:"arrivalDateTime" bson:"arrivalDateTime"`
	DepartureAirport  string    `json:"departureAirport" bson:"departureAirport"`
	ArrivalAirport    string    `json:"arrivalAirport" bson:"arrivalAirport"`
	FlightNumber      string    `json:"flightNumber" bson:"flightNumber"`
	Price             float64   `json:"price" bson:"price"`
	Duration          string    `json:"duration" bson:"duration"`
	Seats             []Seat    `json:"seats" bson:"seats"`
	CreatedAt         time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt" bson:"updatedAt"`
}

// FlightDetails is a flight with its airport references resolved. An airport
// that no longer exists is left nil.
type FlightDetails struct {
	Flight
	DepartureAirportInfo *Airport `json:"departureAirportInfo,omitempty"`
	ArrivalAirportInfo   *Airport `json:"arrivalAirportInfo,omitempty"`
}

// FlightFilter narrows a flight listing. Zero values leave a field unfiltered.
type FlightFilter struct {
	DepartureAirport string
	ArrivalAirport   string
	DepartAfter      *time.Time
	DepartBefore     *time.Time
}

// FlightKey is the tuple used to detect duplicate flights.
type FlightKey struct {
	DepartureDateTime time.Time
	ArrivalDateTime   time.Time
	DepartureAirport  string
	ArrivalAirport    string
	FlightNumber      string
}
