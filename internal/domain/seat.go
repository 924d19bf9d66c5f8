package domain

import "fmt"

const (
	SeatRows    = "ABCDEF"
	SeatsPerRow = 24
)

type Seat struct {
	SeatNumber  string
	IsAvailable bool
}

// GenerateSeatMap builds the fixed seat layout every function starts with:
// rows A to F, 24 seats per row, all available. The result is ordered by
// row, then seat number.
func GenerateSeatMap() []Seat {
	seats := make([]Seat, 0, len(SeatRows)*SeatsPerRow)

	for _, row := range SeatRows {
		for number := 1; number <= SeatsPerRow; number++ {
			seats = append(seats, Seat{
				SeatNumber:  fmt.Sprintf("%c%d", row, number),
				IsAvailable: true,
			})
		}
	}

	return seats
}

// AvailableSeats filters a seat map down to the free seats, preserving order.
func AvailableSeats(seats []Seat) []Seat {
	available := make([]Seat, 0, len(seats))

	for _, seat := range seats {
		if seat.IsAvailable {
			available = append(available, seat)
		}
	}

	return available
}
