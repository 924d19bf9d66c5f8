package api

import (
	"time"

	"github.com/shopspring/decimal"
)

type UserResponse struct {
	Id        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Activated bool      `json:"activated"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int       `json:"version"`
}

type Seat struct {
	SeatNumber string `json:"seatNumber"`
	Available  bool   `json:"isAvailable"`
}

type FunctionResponse struct {
	Id        string          `json:"id"`
	Datetime  time.Time       `json:"datetime"`
	BasePrice decimal.Decimal `json:"basePrice"`
	CreatedAt time.Time       `json:"createdAt"`
}

type FunctionListResponse struct {
	MovieId   int                `json:"movieId"`
	Functions []FunctionResponse `json:"functions"`
}

type SeatMapResponse struct {
	MovieId    int    `json:"movieId"`
	FunctionId string `json:"functionId"`
	Seats      []Seat `json:"seats"`
}

type MovieResponse struct {
	Id        int                `json:"id"`
	Title     string             `json:"title"`
	Year      int                `json:"year"`
	Director  string             `json:"director"`
	Duration  int                `json:"duration"`
	Rating    float64            `json:"rating"`
	PosterUrl string             `json:"poster"`
	Genres    []string           `json:"genre"`
	Functions []FunctionResponse `json:"functions,omitempty"`
}

type MovieListResponse struct {
	Movies   []MovieResponse `json:"movies"`
	Metadata *Metadata       `json:"metadata,omitempty"`
}

type ReservationResponse struct {
	Id         string    `json:"id"`
	UserId     int       `json:"userId"`
	MovieId    int       `json:"movieId"`
	FunctionId string    `json:"functionId"`
	Seats      []string  `json:"seats"`
	CreatedAt  time.Time `json:"createdAt"`
}

type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}
