package app

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/cartelera-app/cartelera/api"
	"github.com/cartelera-app/cartelera/internal/domain"
	"github.com/cartelera-app/cartelera/internal/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type UsersTestSuite struct {
	suite.Suite
	app             *Application
	userRepo        *mocks.MockUserRepo
	reservationRepo *mocks.MockReservationRepo
}

func (s *UsersTestSuite) SetupTest() {
	s.userRepo = new(mocks.MockUserRepo)
	s.reservationRepo = new(mocks.MockReservationRepo)
	s.app = newTestApplication(func(a *Application) {
		a.userRepo = s.userRepo
		a.reservationRepo = s.reservationRepo
	})
}

func TestUsersSuite(t *testing.T) {
	suite.Run(t, new(UsersTestSuite))
}

func (s *UsersTestSuite) TestGetCurrentUser() {
	tests := []struct {
		name           string
		setupSession   bool
		setupMock      func()
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:           "no session",
			setupSession:   false,
			wantStatus:     http.StatusUnauthorized,
			wantErrMessage: ErrUnauthorized,
		},
		{
			name:         "user vanished from store",
			setupSession: true,
			setupMock: func() {
				s.userRepo.On("GetById", mock.Anything, 1).Return(nil, domain.ErrRecordNotFound)
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: ErrNotFound,
		},
		{
			name:         "database error",
			setupSession: true,
			setupMock: func() {
				s.userRepo.On("GetById", mock.Anything, 1).Return(nil, fmt.Errorf("database error"))
			},
			wantStatus:     http.StatusInternalServerError,
			wantErrMessage: ErrInternalServer,
		},
		{
			name:         "successful retrieval",
			setupSession: true,
			setupMock: func() {
				s.userRepo.On("GetById", mock.Anything, 1).
					Return(&domain.User{ID: 1, Name: "Ada", Email: "ada@example.com", Role: domain.RoleUser}, nil)
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			defer s.userRepo.AssertExpectations(s.T())

			if tt.setupMock != nil {
				tt.setupMock()
			}

			w, r := executeRequest(s.T(), http.MethodGet, "/users/me", nil)

			if tt.setupSession {
				r = setupTestSession(s.T(), s.app, r, 1, domain.RoleUser)
			}

			handler := s.app.requireAuthentication(http.HandlerFunc(s.app.GetCurrentUser))
			handler = s.app.sessionManager.LoadAndSave(handler)
			handler.ServeHTTP(w, r)

			s.Equal(tt.wantStatus, w.Code)

			if tt.wantStatus == http.StatusOK {
				var response api.UserResponse
				err := json.NewDecoder(w.Body).Decode(&response)
				s.Require().NoError(err, "Failed to decode response")
				s.Equal(1, response.Id)
			}

			checkErrorResponse(s.T(), w, struct {
				wantStatus     int
				wantErrMessage string
			}{
				wantStatus:     tt.wantStatus,
				wantErrMessage: tt.wantErrMessage,
			})
		})
	}
}

func (s *UsersTestSuite) TestUpdateCurrentUser() {
	currentUser := func() *domain.User {
		return &domain.User{
			ID:      1,
			Name:    "Ada",
			Email:   "ada@example.com",
			Role:    domain.RoleUser,
			Version: 1,
		}
	}

	tests := []struct {
		name           string
		body           api.UpdateUserRequest
		setupMock      func()
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:           "invalid email",
			body:           api.UpdateUserRequest{Email: ptr("not-an-email")},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "must be a valid email address",
		},
		{
			name: "user vanished from store",
			body: api.UpdateUserRequest{Name: ptr("Ada Lovelace")},
			setupMock: func() {
				s.userRepo.On("GetById", mock.Anything, 1).Return(nil, domain.ErrRecordNotFound)
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: ErrNotFound,
		},
		{
			name: "email already taken",
			body: api.UpdateUserRequest{Email: ptr("taken@example.com")},
			setupMock: func() {
				s.userRepo.On("GetById", mock.Anything, 1).Return(currentUser(), nil)
				s.userRepo.On("Update", mock.Anything, mock.Anything).Return(domain.ErrUserAlreadyExists)
			},
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "invalid input data",
		},
		{
			name: "edit conflict",
			body: api.UpdateUserRequest{Name: ptr("Ada Lovelace")},
			setupMock: func() {
				s.userRepo.On("GetById", mock.Anything, 1).Return(currentUser(), nil)
				s.userRepo.On("Update", mock.Anything, mock.Anything).Return(domain.ErrEditConflict)
			},
			wantStatus:     http.StatusConflict,
			wantErrMessage: "unable to update the record due to an edit conflict, please try again",
		},
		{
			name: "successful update",
			body: api.UpdateUserRequest{Name: ptr("Ada Lovelace"), Password: ptr("N3wSecret!")},
			setupMock: func() {
				s.userRepo.On("GetById", mock.Anything, 1).Return(currentUser(), nil)
				s.userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
					return u.Name == "Ada Lovelace" && len(u.Password.Hash) > 0
				})).Run(func(args mock.Arguments) {
					args.Get(1).(*domain.User).Version = 2
				}).Return(nil)
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			defer s.userRepo.AssertExpectations(s.T())

			if tt.setupMock != nil {
				tt.setupMock()
			}

			w, r := executeRequest(s.T(), http.MethodPatch, "/users/me", tt.body)
			r = setupTestSession(s.T(), s.app, r, 1, domain.RoleUser)

			handler := s.app.requireAuthentication(http.HandlerFunc(s.app.UpdateCurrentUser))
			handler = s.app.sessionManager.LoadAndSave(handler)
			handler.ServeHTTP(w, r)

			s.Equal(tt.wantStatus, w.Code)

			if tt.wantStatus == http.StatusOK {
				var response api.UserResponse
				err := json.NewDecoder(w.Body).Decode(&response)
				s.Require().NoError(err, "Failed to decode response")
				s.Equal("Ada Lovelace", response.Name)
				s.Equal(2, response.Version)
			}

			checkErrorResponse(s.T(), w, struct {
				wantStatus     int
				wantErrMessage string
			}{
				wantStatus:     tt.wantStatus,
				wantErrMessage: tt.wantErrMessage,
			})
		})
	}
}

func (s *UsersTestSuite) TestDeleteCurrentUser() {
	currentUser := &domain.User{ID: 1, Name: "Ada", Email: "ada@example.com", Role: domain.RoleUser}

	tests := []struct {
		name           string
		setupMock      func()
		wantStatus     int
		wantErrMessage string
	}{
		{
			name: "user vanished from store",
			setupMock: func() {
				s.userRepo.On("GetById", mock.Anything, 1).Return(nil, domain.ErrRecordNotFound)
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: ErrNotFound,
		},
		{
			name: "database error",
			setupMock: func() {
				s.userRepo.On("GetById", mock.Anything, 1).Return(currentUser, nil)
				s.userRepo.On("Delete", mock.Anything, currentUser).Return(fmt.Errorf("database error"))
			},
			wantStatus:     http.StatusInternalServerError,
			wantErrMessage: ErrInternalServer,
		},
		{
			name: "successful deletion",
			setupMock: func() {
				s.userRepo.On("GetById", mock.Anything, 1).Return(currentUser, nil)
				s.userRepo.On("Delete", mock.Anything, currentUser).Return(nil)
			},
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			defer s.userRepo.AssertExpectations(s.T())

			tt.setupMock()

			w, r := executeRequest(s.T(), http.MethodDelete, "/users/me", nil)
			r = setupTestSession(s.T(), s.app, r, 1, domain.RoleUser)

			handler := s.app.requireAuthentication(http.HandlerFunc(s.app.DeleteCurrentUser))
			handler = s.app.sessionManager.LoadAndSave(handler)
			handler.ServeHTTP(w, r)

			s.Equal(tt.wantStatus, w.Code)

			checkErrorResponse(s.T(), w, struct {
				wantStatus     int
				wantErrMessage string
			}{
				wantStatus:     tt.wantStatus,
				wantErrMessage: tt.wantErrMessage,
			})
		})
	}
}

func (s *UsersTestSuite) TestGetCurrentUserReservations() {
	createdAt := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		setupMock      func()
		wantStatus     int
		wantErrMessage string
		wantCount      int
	}{
		{
			name: "database error",
			setupMock: func() {
				s.reservationRepo.On("GetAll", mock.Anything, domain.ReservationFilter{UserID: 1}).
					Return(nil, fmt.Errorf("database error"))
			},
			wantStatus:     http.StatusInternalServerError,
			wantErrMessage: ErrInternalServer,
		},
		{
			name: "no reservations",
			setupMock: func() {
				s.reservationRepo.On("GetAll", mock.Anything, domain.ReservationFilter{UserID: 1}).
					Return([]domain.Reservation{}, nil)
			},
			wantStatus: http.StatusOK,
			wantCount:  0,
		},
		{
			name: "successful retrieval",
			setupMock: func() {
				s.reservationRepo.On("GetAll", mock.Anything, domain.ReservationFilter{UserID: 1}).
					Return([]domain.Reservation{
						{
							ID:         testReservationId,
							UserID:     1,
							MovieID:    1,
							FunctionID: testFunctionId,
							Seats:      []string{"A1", "A2"},
							CreatedAt:  createdAt,
						},
					}, nil)
			},
			wantStatus: http.StatusOK,
			wantCount:  1,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			defer s.reservationRepo.AssertExpectations(s.T())

			tt.setupMock()

			w, r := executeRequest(s.T(), http.MethodGet, "/users/me/reservations", nil)
			r = setupTestSession(s.T(), s.app, r, 1, domain.RoleUser)

			handler := s.app.requireAuthentication(http.HandlerFunc(s.app.GetCurrentUserReservations))
			handler = s.app.sessionManager.LoadAndSave(handler)
			handler.ServeHTTP(w, r)

			s.Equal(tt.wantStatus, w.Code)

			if tt.wantStatus == http.StatusOK {
				var response api.ReservationListResponse
				err := json.NewDecoder(w.Body).Decode(&response)
				s.Require().NoError(err, "Failed to decode response")
				s.Len(response.Reservations, tt.wantCount)
			}

			checkErrorResponse(s.T(), w, struct {
				wantStatus     int
				wantErrMessage string
			}{
				wantStatus:     tt.wantStatus,
				wantErrMessage: tt.wantErrMessage,
			})
		})
	}
}
