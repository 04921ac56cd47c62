//go:build e2e

package reservation_test

import (
	"net/http"
	"sync"
	"testing"

	reqdto "seatly/internal/handler/dto/request"
	resdto "seatly/internal/handler/dto/response"
	"seatly/tests/common/authtest"
	"seatly/tests/common/builder"
	"seatly/tests/common/dbtest"
	"seatly/tests/common/httptest"
	"seatly/tests/e2e"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	userID = "user-e2e"
	email  = "fan@example.com"
)

type ReservationSuite struct {
	e2e.SharedSuite
	token string
}

func TestReservationSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(ReservationSuite))
}

func (s *ReservationSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.token = authtest.NewJWTHelper(s.Config.JWT).GenerateToken(s.T(), userID, email)
}

func (s *ReservationSuite) seedVenue(capacities ...int) {
	dbtest.SeedVenue(s.T(), s.DB, builder.NewVenueBuilder().WithTables(capacities...).WithMatchPromotion(1500_00))
}

func (s *ReservationSuite) checkout(people int) *resdto.CheckoutResponse {
	req := reqdto.CheckoutRequest{
		BarID:   "bar-1",
		MatchID: "match-1",
		Name:    "Lucia",
		Phone:   "1155550000",
		People:  people,
	}
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/reservations", req, s.token)
	var res resdto.CheckoutResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &res)
	require.NotNil(s.T(), res.Reservation)
	return &res
}

func (s *ReservationSuite) TestCheckoutAndBrowserRedirect() {
	s.Run("confirms on the success back url and replays afterwards", func() {
		s.seedVenue(2, 4)
		res := s.checkout(3)

		assert.Equal(s.T(), "pending", res.Reservation.Status)
		assert.Equal(s.T(), int64(4500_00), res.Reservation.TotalPrice)
		assert.Equal(s.T(), email, res.Reservation.UserEmail)
		assert.Contains(s.T(), res.BackURLs.Success, "/payment/success")

		id := res.Reservation.ID
		s.Payments.Set("pay-1", "approved", id)

		path := "/payment/success?reservationId=" + id + "&payment_id=pay-1"
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, path, nil, "")
		var outcome resdto.OutcomeResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &outcome)
		assert.Equal(s.T(), "confirmed", outcome.Outcome)
		assert.False(s.T(), outcome.Replayed)
		assert.Equal(s.T(), []string{"t2"}, outcome.TableIDs)
		require.NotNil(s.T(), outcome.Confirmation)
		assert.Equal(s.T(), "The Corner Pub", outcome.Confirmation.BarName)

		row := dbtest.GetReservationRow(s.T(), s.DB, id)
		assert.Equal(s.T(), "confirmed", row.Status)
		assert.True(s.T(), row.Paid)
		assert.Equal(s.T(), int64(1), dbtest.GetFenceVersion(s.T(), s.DB, "bar-1", "match-1"))

		calls := s.Payments.Calls()
		w = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, path, nil, "")
		var replay resdto.OutcomeResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &replay)
		assert.True(s.T(), replay.Replayed)
		assert.Equal(s.T(), []string{"t2"}, replay.TableIDs)
		assert.Equal(s.T(), calls, s.Payments.Calls(), "replay must not re-verify")
		assert.Equal(s.T(), int64(1), dbtest.GetFenceVersion(s.T(), s.DB, "bar-1", "match-1"))
	})

	s.Run("pending payment keeps the reservation pending", func() {
		s.seedVenue(4)
		res := s.checkout(2)
		s.Payments.Set("pay-2", "in_process", res.Reservation.ID)

		body := reqdto.RedirectRequest{
			URL:     "seatly://payment/success?rid=" + res.Reservation.ID + "&payment_id=pay-2",
			Channel: "deep_link",
		}
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/payments/redirects", body, "")
		var outcome resdto.OutcomeResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusAccepted, &outcome)
		assert.Equal(s.T(), "payment_pending", outcome.Outcome)

		row := dbtest.GetReservationRow(s.T(), s.DB, res.Reservation.ID)
		assert.Equal(s.T(), "pending", row.Status)
		assert.Empty(s.T(), row.TableIDs)
	})

	s.Run("failure redirect changes nothing", func() {
		s.seedVenue(4)
		res := s.checkout(2)

		path := "/payment/failure?reservationId=" + res.Reservation.ID
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, path, nil, "")
		var outcome resdto.OutcomeResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &outcome)
		assert.Equal(s.T(), "payment_failed", outcome.Outcome)
		assert.Equal(s.T(), 0, s.Payments.Calls())
	})
}

func (s *ReservationSuite) TestConcurrentChannelsForTheLastTable() {
	s.Run("only one of two reservations gets the table", func() {
		s.seedVenue(4)
		first := s.checkout(4)
		second := s.checkout(4)
		s.Payments.Set("pay-a", "approved", first.Reservation.ID)
		s.Payments.Set("pay-b", "approved", second.Reservation.ID)

		requests := []reqdto.RedirectRequest{
			{URL: "https://seatly.test/payment/success?reservationId=" + first.Reservation.ID + "&payment_id=pay-a", Channel: "webview"},
			{URL: "seatly://payment/success?rid=" + second.Reservation.ID + "&payment_id=pay-b", Channel: "deep_link"},
		}

		codes := make([]int, len(requests))
		var wg sync.WaitGroup
		for i, body := range requests {
			wg.Add(1)
			go func() {
				defer wg.Done()
				w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/payments/redirects", body, "")
				codes[i] = w.Code
			}()
		}
		wg.Wait()

		assert.ElementsMatch(s.T(), []int{http.StatusOK, http.StatusConflict}, codes)

		confirmed := 0
		for _, id := range []string{first.Reservation.ID, second.Reservation.ID} {
			if dbtest.GetReservationRow(s.T(), s.DB, id).Status == "confirmed" {
				confirmed++
			}
		}
		assert.Equal(s.T(), 1, confirmed)
	})
}

func (s *ReservationSuite) TestReservationReads() {
	s.Run("lists and fetches the caller's reservations", func() {
		s.seedVenue(4)
		res := s.checkout(2)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/reservations", nil, s.token)
		var list []resdto.ReservationListResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &list)
		require.Len(s.T(), list, 1)
		assert.Equal(s.T(), "Boca vs River", list[0].MatchTeams)

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/reservations/"+res.Reservation.ID, nil, s.token)
		var got resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &got)
		assert.Equal(s.T(), res.Reservation.ID, got.ID)
		require.NotNil(s.T(), got.MatchDate)
	})

	s.Run("other users are refused", func() {
		s.seedVenue(4)
		res := s.checkout(2)
		other := authtest.NewJWTHelper(s.Config.JWT).GenerateToken(s.T(), "someone-else", "x@example.com")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/reservations/"+res.Reservation.ID, nil, other)
		httptest.AssertErrorResponse(s.T(), w, http.StatusForbidden, "Forbidden")
	})

	s.Run("requires a token", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/reservations", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "Access token required")
	})

	s.Run("cancel then finalize is closed", func() {
		s.seedVenue(4)
		res := s.checkout(2)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/reservations/"+res.Reservation.ID+"/cancel", nil, s.token)
		require.Equal(s.T(), http.StatusOK, w.Code)

		s.Payments.Set("pay-c", "approved", res.Reservation.ID)
		pid := "pay-c"
		w = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/reservations/"+res.Reservation.ID+"/finalize",
			reqdto.FinalizeRequest{PaymentID: &pid}, s.token)
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "Reservation is closed")
	})
}

func (s *ReservationSuite) TestCatalog() {
	s.Run("bars for a match carry price and free seats", func() {
		s.seedVenue(2, 4)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/matches/match-1/bars", nil, "")
		var bars []resdto.BarAvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &bars)
		require.Len(s.T(), bars, 1)
		assert.Equal(s.T(), 6, bars[0].FreeSeats)
		require.NotNil(s.T(), bars[0].PriceCents)
		assert.Equal(s.T(), int64(1500_00), *bars[0].PriceCents)
	})

	s.Run("matches from an explicit date", func() {
		s.seedVenue(4)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/matches?from=2026-01-01T00:00:00Z", nil, "")
		var matches []resdto.MatchResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &matches)
		require.Len(s.T(), matches, 1)
		assert.Equal(s.T(), "match-1", matches[0].ID)
	})

	s.Run("availability", func() {
		s.seedVenue(2, 4)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/matches/match-1/availability?barId=bar-1&people=5", nil, "")
		var got resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &got)
		assert.True(s.T(), got.Available)
		assert.Equal(s.T(), []string{"t1", "t2"}, got.TableIDs)
	})
}
