//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"seatly/internal/domain/redirect"
	"seatly/internal/handler/api"
	reqdto "seatly/internal/handler/dto/request"
	resdto "seatly/internal/handler/dto/response"
	"seatly/internal/pkg/clock"
	"seatly/internal/pkg/errs"
	"seatly/internal/pkg/ptr"
	"seatly/internal/usecase"
	"seatly/internal/usecase/commands"
	"seatly/internal/usecase/queries"
	"seatly/tests/common/builder"
	"seatly/tests/common/httptest"
	"seatly/tests/common/testutil"
	apimock "seatly/tests/mock/api"
	commandsmock "seatly/tests/mock/commands"
	queriesmock "seatly/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

var testNow = time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)

const testUserID = "user-1"

// fakeAuth authenticates every request carrying a bearer token as testUserID.
func fakeAuth(c *gin.Context) {
	if c.GetHeader("Authorization") == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
		return
	}
	c.Set("principal", usecase.Principal{UserID: testUserID, Email: "guest@example.com"})
	c.Set("user_id", testUserID)
	c.Next()
}

type ReservationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockReservationCommands
	mockQueries  *queriesmock.MockReservationQueries
	mockInbox    *apimock.MockRedirectSubmitter
	handler      *api.ReservationHandler
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReservationCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.mockInbox = apimock.NewMockRedirectSubmitter(s.mockCtrl)
	s.handler = api.NewReservationHandler(s.mockCommands, s.mockQueries, s.mockInbox, clock.NewMockClock(testNow))

	s.router.POST("/reservations", fakeAuth, s.handler.StartCheckout)
	s.router.GET("/reservations", fakeAuth, s.handler.ListReservations)
	s.router.GET("/reservations/:id", fakeAuth, s.handler.GetReservation)
	s.router.POST("/reservations/:id/cancel", fakeAuth, s.handler.CancelReservation)
	s.router.POST("/reservations/:id/finalize", fakeAuth, s.handler.FinalizeReservation)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

func pendingView() *queries.ReservationView {
	return queries.NewReservationView(builder.NewReservationBuilder().BuildReconstructed(), nil)
}

type testCaseReservation struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestStartCheckout
// ================================================================================

func (s *ReservationHandlerTestSuite) TestStartCheckout() {
	url := "/reservations"
	reqBody := reqdto.CheckoutRequest{
		BarID:   " bar-1 ",
		MatchID: "match-1",
		Name:    "Juan Perez",
		Phone:   "1123456789",
		People:  4,
	}
	result := &commands.CheckoutResult{
		Reservation: pendingView(),
		BackURLs: commands.BackURLs{
			Success: "https://seatly.test/payment/success?reservationId=r-1",
			Failure: "https://seatly.test/payment/failure?reservationId=r-1",
			Pending: "https://seatly.test/payment/pending?reservationId=r-1",
		},
	}

	s.Run("success: 201 with back urls", func() {
		s.mockCommands.EXPECT().StartCheckout(gomock.Any(), commands.CheckoutRequest{
			UserID:    testUserID,
			UserEmail: "guest@example.com",
			BarID:     "bar-1",
			MatchID:   "match-1",
			Name:      "Juan Perez",
			Phone:     "1123456789",
			People:    4,
		}).Return(result, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var body resdto.CheckoutResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(result.BackURLs.Success, body.BackURLs.Success)
		s.Equal("pending", body.Reservation.Status)
		s.Equal([]string{}, body.Reservation.TableIDs)
	})

	s.Run("success: typed e-mail overrides the token e-mail", func() {
		s.mockCommands.EXPECT().StartCheckout(gomock.Any(), gomock.Cond(func(x any) bool {
			req, ok := x.(commands.CheckoutRequest)
			return ok && req.UserEmail == "other@example.com"
		})).Return(result, nil)

		m := testutil.DtoMap(s.T(), reqBody, testutil.Field("email", " other@example.com "))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, m, "bearer-token")

		s.Equal(http.StatusCreated, rec.Code)
	})

	validation := []testCaseReservation{
		{name: "missing field: barId", mutate: testutil.Field("barId", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: matchId", mutate: testutil.Field("matchId", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: name", mutate: testutil.Field("name", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: phone", mutate: testutil.Field("phone", nil), expectCode: http.StatusBadRequest},
		{name: "people boundary invalid (0)", mutate: testutil.Field("people", 0), expectCode: http.StatusBadRequest},
		{name: "people boundary invalid (-1)", mutate: testutil.Field("people", -1), expectCode: http.StatusBadRequest},
		{name: "people wrong type", mutate: testutil.Field("people", "four"), expectCode: http.StatusBadRequest},
	}
	s.Run("error: 400 on validation errors", func() {
		for _, tc := range validation {
			s.Run(tc.name, func() {
				m := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, m, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "Invalid request format")
			})
		}
	})

	s.Run("error: 401 without token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	useCaseErrors := []struct {
		name       string
		err        error
		expectCode int
		expectMsg  string
	}{
		{
			name:       "invalid guest data",
			err:        errs.Mark(errs.New("phone must have 10 digits"), errs.ErrInvalidInput),
			expectCode: http.StatusBadRequest,
			expectMsg:  "Invalid request",
		},
		{
			name:       "unknown bar",
			err:        errs.Mark(errs.New("bar not found"), errs.ErrNotFound),
			expectCode: http.StatusNotFound,
			expectMsg:  "Not found",
		},
		{
			name:       "no tables left",
			err:        errs.Mark(errs.New("need 4 seats, 2 free"), errs.ErrInsufficientCapacity),
			expectCode: http.StatusConflict,
			expectMsg:  "Not enough free tables",
		},
		{
			name:       "store down",
			err:        errs.MarkAll(errs.New("dial tcp"), errs.ErrStoreUnavailable, errs.ErrRetryable),
			expectCode: http.StatusServiceUnavailable,
			expectMsg:  "Temporarily unavailable",
		},
		{
			name:       "unexpected",
			err:        errs.New("boom"),
			expectCode: http.StatusInternalServerError,
			expectMsg:  "Checkout failed",
		},
	}
	for _, tc := range useCaseErrors {
		s.Run("error: "+tc.name, func() {
			s.mockCommands.EXPECT().StartCheckout(gomock.Any(), gomock.Any()).Return(nil, tc.err)

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

			httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, tc.expectMsg)
			if tc.expectCode == http.StatusServiceUnavailable {
				httptest.AssertHeaders(s.T(), rec, map[string]string{"Retry-After": "5"})
			}
		})
	}
}

// ================================================================================
// TestGetReservation / TestListReservations
// ================================================================================

func (s *ReservationHandlerTestSuite) TestGetReservation() {
	view := pendingView()

	s.Run("success", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), testUserID, view.ID).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/"+view.ID, nil, "bearer-token")

		var body resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.ID, body.ID)
		s.Equal(int64(6000_00), body.TotalPrice)
	})

	s.Run("error: 403 for another user's reservation", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), testUserID, "r-2").
			Return(nil, errs.Mark(errs.New("reservation belongs to another user"), errs.ErrForbidden))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/r-2", nil, "bearer-token")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Forbidden")
	})
}

func (s *ReservationHandlerTestSuite) TestListReservations() {
	newer := pendingView()
	older := queries.NewReservationView(builder.NewReservationBuilder().Confirmed("pay-1", "t1").BuildReconstructed(), ptr.Of(testNow))
	s.mockQueries.EXPECT().ListByUser(gomock.Any(), testUserID).Return([]*queries.ReservationView{newer, older}, nil)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations", nil, "bearer-token")

	var body []resdto.ReservationListResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	s.Require().Len(body, 2)
	s.Equal(newer.ID, body[0].ID)
	s.Equal("confirmed", body[1].Status)
	s.Require().NotNil(body[1].MatchDate)
	s.True(testNow.Equal(*body[1].MatchDate))
}

// ================================================================================
// TestCancelReservation
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCancelReservation() {
	s.Run("success", func() {
		view := pendingView()
		view.Status = "cancelled"
		s.mockCommands.EXPECT().CancelReservation(gomock.Any(), view.ID, testUserID).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/reservations/"+view.ID+"/cancel", nil, "bearer-token")

		var body resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("cancelled", body.Status)
	})

	s.Run("error: 409 once confirmed", func() {
		s.mockCommands.EXPECT().CancelReservation(gomock.Any(), "r-1", testUserID).
			Return(nil, errs.MarkAll(errs.New("reservation can no longer change"), errs.ErrReservationClosed))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/reservations/r-1/cancel", nil, "bearer-token")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Reservation is closed")
	})
}

// ================================================================================
// TestFinalizeReservation
// ================================================================================

func (s *ReservationHandlerTestSuite) TestFinalizeReservation() {
	view := pendingView()
	url := "/reservations/" + view.ID + "/finalize"

	s.Run("success: publishes an api event and returns the outcome", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), testUserID, view.ID).Return(view, nil)
		s.mockInbox.EXPECT().Submit(gomock.Any(), redirect.Event{
			Channel: redirect.ChannelAPI,
			Signal: redirect.Signal{
				Kind:          redirect.KindSuccess,
				ReservationID: view.ID,
				PaymentID:     "pay-1",
			},
			ReceivedAt:        testNow,
			CancelOnShortfall: true,
		}).Return(&commands.FinalizeResult{
			Outcome:       commands.OutcomeConfirmed,
			ReservationID: view.ID,
			TableIDs:      []string{"t1"},
			Confirmation:  &commands.Confirmation{BarName: "The Corner Pub", MatchTeams: "Boca vs River", People: 4},
		}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			reqdto.FinalizeRequest{PaymentID: ptr.Of(" pay-1 "), CancelOnShortfall: true}, "bearer-token")

		var body resdto.OutcomeResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("confirmed", body.Outcome)
		s.Equal([]string{"t1"}, body.TableIDs)
		s.Require().NotNil(body.Confirmation)
		s.Equal("The Corner Pub", body.Confirmation.BarName)
	})

	s.Run("success: 202 while the payment is pending", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), testUserID, view.ID).Return(view, nil)
		s.mockInbox.EXPECT().Submit(gomock.Any(), gomock.Any()).
			Return(&commands.FinalizeResult{Outcome: commands.OutcomePaymentPending, ReservationID: view.ID}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqdto.FinalizeRequest{}, "bearer-token")

		var body resdto.OutcomeResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusAccepted, &body)
		s.Equal("payment_pending", body.Outcome)
	})

	s.Run("error: foreign reservation never reaches the inbox", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), testUserID, view.ID).
			Return(nil, errs.Mark(errs.New("reservation belongs to another user"), errs.ErrForbidden))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqdto.FinalizeRequest{}, "bearer-token")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Forbidden")
	})

	s.Run("error: 503 when the caller times out", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), testUserID, view.ID).Return(view, nil)
		s.mockInbox.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(nil, context.DeadlineExceeded)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqdto.FinalizeRequest{}, "bearer-token")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusServiceUnavailable, "Temporarily unavailable")
	})

	s.Run("error: 400 on a reference mismatch", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), testUserID, view.ID).Return(view, nil)
		s.mockInbox.EXPECT().Submit(gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(commands.ErrReferenceMismatch, errs.ErrInvalidInput))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqdto.FinalizeRequest{}, "bearer-token")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}
