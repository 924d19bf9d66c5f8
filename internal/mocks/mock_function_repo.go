package mocks

import (
	"context"

	"github.com/cartelera-app/cartelera/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockFunctionRepo struct {
	mock.Mock
	domain.FunctionRepository
}

func (m *MockFunctionRepo) AddToMovie(
	ctx context.Context,
	movieID int,
	inputs []domain.NewFunction) ([]domain.Function, error) {

	args := m.Called(ctx, movieID, inputs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Function), args.Error(1)
}

func (m *MockFunctionRepo) GetAllByMovie(ctx context.Context, movieID int) ([]domain.Function, error) {
	args := m.Called(ctx, movieID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Function), args.Error(1)
}

func (m *MockFunctionRepo) Get(
	ctx context.Context,
	movieID int,
	functionID uuid.UUID) (*domain.Function, error) {

	args := m.Called(ctx, movieID, functionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Function), args.Error(1)
}

func (m *MockFunctionRepo) Reschedule(
	ctx context.Context,
	movieID int,
	changes []domain.ScheduleChange) ([]domain.Function, []bool, error) {

	args := m.Called(ctx, movieID, changes)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.Function), args.Get(1).([]bool), args.Error(2)
}

func (m *MockFunctionRepo) Remove(ctx context.Context, movieID int, functionID uuid.UUID) error {
	args := m.Called(ctx, movieID, functionID)
	return args.Error(0)
}

func (m *MockFunctionRepo) AvailableSeats(
	ctx context.Context,
	movieID int,
	functionID uuid.UUID) ([]domain.Seat, error) {

	args := m.Called(ctx, movieID, functionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Seat), args.Error(1)
}
