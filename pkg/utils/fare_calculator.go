package utils

import "fmt"

// BookingAmount is what a passenger owes for a booking, in the trip's
// currency minor units.
func BookingAmount(seats int, pricePerSeat int64) int64 {
	if seats <= 0 || pricePerSeat <= 0 {
		return 0
	}
	return int64(seats) * pricePerSeat
}

// EarningLine is one completed booking counted toward a driver's balance.
type EarningLine struct {
	Seats        int
	PricePerSeat int64
}

// TotalEarnings sums the amounts of the given completed bookings.
func TotalEarnings(lines []EarningLine) int64 {
	var total int64
	for _, l := range lines {
		total += BookingAmount(l.Seats, l.PricePerSeat)
	}
	return total
}

// FormatAmount renders minor units as "12.50".
func FormatAmount(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%d.%02d", sign, amount/100, amount%100)
}
