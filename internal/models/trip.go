package models

import (
	"gorm.io/gorm"
)

// Trip is a driver-published offer of seats. TotalSeats never changes after
// creation; AvailableSeats is only moved by the inventory's reserve and
// release statements.
type Trip struct {
	gorm.Model
	DriverID       uint   `json:"driverId" gorm:"not null;index"`
	Origin         string `json:"origin" gorm:"not null"`
	Destination    string `json:"destination" gorm:"not null"`
	Stopover       string `json:"stopover,omitempty"`
	DepartureDate  string `json:"departureDate" gorm:"column:departure_date;not null"`
	DepartureTime  string `json:"departureTime" gorm:"column:departure_time;not null"`
	VehicleType    string `json:"vehicleType,omitempty"`
	PricePerSeat   int64  `json:"pricePerSeat" gorm:"not null;default:0"`
	TotalSeats     int    `json:"totalSeats" gorm:"not null"`
	AvailableSeats int    `json:"availableSeats" gorm:"not null"`
}

// TableName specifies the table name
func (Trip) TableName() string {
	return "trips"
}

// IsFull reports whether no seat is left.
func (t *Trip) IsFull() bool {
	return t.AvailableSeats <= 0
}
