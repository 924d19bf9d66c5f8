package api

import (
	"time"

	"github.com/shopspring/decimal"
)

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=3,max=50"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Password *string `json:"password,omitempty" validate:"omitempty,password"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type NewFunctionRequest struct {
	Datetime  time.Time        `json:"datetime" validate:"required"`
	BasePrice *decimal.Decimal `json:"basePrice,omitempty"`
}

type CreateMovieRequest struct {
	Title     string               `json:"title" validate:"required,max=200"`
	Year      int                  `json:"year" validate:"required,min=1900"`
	Director  string               `json:"director" validate:"required,max=100"`
	Duration  int                  `json:"duration" validate:"required,gt=0"`
	Rating    float64              `json:"rating" validate:"min=0,max=10"`
	PosterUrl string               `json:"poster" validate:"required,url"`
	Genres    []string             `json:"genre" validate:"required,min=1,dive,genre"`
	Functions []NewFunctionRequest `json:"functions,omitempty" validate:"omitempty,dive"`
}

type UpdateMovieRequest struct {
	Title     *string                     `json:"title,omitempty" validate:"omitempty,max=200"`
	Year      *int                        `json:"year,omitempty" validate:"omitempty,min=1900"`
	Director  *string                     `json:"director,omitempty" validate:"omitempty,max=100"`
	Duration  *int                        `json:"duration,omitempty" validate:"omitempty,gt=0"`
	Rating    *float64                    `json:"rating,omitempty" validate:"omitempty,min=0,max=10"`
	PosterUrl *string                     `json:"poster,omitempty" validate:"omitempty,url"`
	Genres    []string                    `json:"genre,omitempty" validate:"omitempty,min=1,dive,genre"`
	Updates   []RescheduleFunctionRequest `json:"updates,omitempty" validate:"omitempty,dive"`
}

type AddFunctionsRequest struct {
	Functions []NewFunctionRequest `json:"functions" validate:"required,min=1,dive"`
}

type RescheduleFunctionRequest struct {
	Datetime    time.Time `json:"datetime" validate:"required"`
	NewDatetime time.Time `json:"newDatetime" validate:"required"`
}

type RescheduleFunctionsRequest struct {
	Updates []RescheduleFunctionRequest `json:"updates" validate:"required,min=1,dive"`
}

type CreateReservationRequest struct {
	MovieId    int      `json:"movieId" validate:"required,gt=0"`
	FunctionId string   `json:"functionId" validate:"required,uuid4"`
	Seats      []string `json:"seats" validate:"required,min=1,unique,dive,seat_number"`
}
