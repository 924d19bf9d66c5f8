package domain

import (
	"context"
	"time"
)

type Movie struct {
	ID        int
	Title     string
	Year      int
	Director  string
	Duration  int
	Rating    float64
	PosterUrl string
	Genres    []string
	Functions []Function
	CreatedAt time.Time
	Version   int
}

type MovieFilters struct {
	Page     int
	PageSize int
	Genre    string
	Term     string
	Sort     string
}

func (f MovieFilters) SortColumn() string {
	return Pagination{Sort: f.Sort}.SortColumn()
}

func (f MovieFilters) SortDirection() string {
	return Pagination{Sort: f.Sort}.SortDirection()
}

func (f MovieFilters) Limit() int {
	return f.PageSize
}

func (f MovieFilters) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// MovieUpdate carries the optional descriptive fields of a partial movie
// update. Nil fields are left untouched.
type MovieUpdate struct {
	Title     *string
	Year      *int
	Director  *string
	Duration  *int
	Rating    *float64
	PosterUrl *string
	Genres    []string
}

type MovieRepository interface {
	GetAll(ctx context.Context, filters MovieFilters) ([]*Movie, *Metadata, error)
	GetById(ctx context.Context, id int) (*Movie, error)
	Create(ctx context.Context, movie *Movie) error
	Update(ctx context.Context, id int, update MovieUpdate) (*Movie, error)
	// Delete removes the movie together with its functions and their seat
	// maps. Returns ErrRecordNotFound when the movie does not exist.
	Delete(ctx context.Context, id int) error
}
