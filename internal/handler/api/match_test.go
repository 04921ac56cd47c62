//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"seatly/internal/handler/api"
	resdto "seatly/internal/handler/dto/response"
	"seatly/internal/pkg/clock"
	"seatly/internal/pkg/errs"
	"seatly/internal/pkg/ptr"
	"seatly/internal/usecase/queries"
	"seatly/tests/common/httptest"
	queriesmock "seatly/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type MatchHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockMatchQueries
	handler     *api.MatchHandler
}

func (s *MatchHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockMatchQueries(s.mockCtrl)
	s.handler = api.NewMatchHandler(s.mockQueries, clock.NewMockClock(testNow))

	s.router.GET("/matches", s.handler.ListMatches)
	s.router.GET("/matches/:id/bars", s.handler.ListBars)
	s.router.GET("/matches/:id/availability", s.handler.CheckAvailability)
}

func (s *MatchHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestMatchHandlerSuite(t *testing.T) {
	suite.Run(t, new(MatchHandlerTestSuite))
}

func (s *MatchHandlerTestSuite) TestListMatches() {
	matches := []*queries.MatchView{{
		ID:       "match-1",
		Teams:    "Boca vs River",
		Date:     time.Date(2026, 3, 8, 21, 0, 0, 0, time.UTC),
		BarCount: 3,
	}}

	s.Run("success: defaults to now", func() {
		s.mockQueries.EXPECT().ListMatches(gomock.Any(), testNow).Return(matches, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/matches", nil, "")

		var body []resdto.MatchResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body, 1)
		s.Equal(3, body[0].BarCount)
	})

	s.Run("success: explicit lower bound", func() {
		from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		s.mockQueries.EXPECT().ListMatches(gomock.Any(), gomock.Cond(func(x any) bool {
			t, ok := x.(time.Time)
			return ok && t.Equal(from)
		})).Return([]*queries.MatchView{}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/matches?from=2026-01-01T00:00:00Z", nil, "")

		var body []resdto.MatchResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Empty(body)
	})

	s.Run("error: malformed lower bound", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/matches?from=yesterday", nil, "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid query")
	})
}

func (s *MatchHandlerTestSuite) TestListBars() {
	s.Run("success", func() {
		s.mockQueries.EXPECT().ListBarsForMatch(gomock.Any(), "match-1").Return([]*queries.BarAvailabilityView{{
			BarID:      "bar-1",
			Name:       "The Corner Pub",
			PriceCents: ptr.Of(int64(1500_00)),
			FreeSeats:  12,
		}}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/matches/match-1/bars", nil, "")

		var body []resdto.BarAvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body, 1)
		s.Equal(12, body[0].FreeSeats)
		s.Equal(int64(1500_00), *body[0].PriceCents)
	})

	s.Run("error: unknown match", func() {
		s.mockQueries.EXPECT().ListBarsForMatch(gomock.Any(), "nope").
			Return(nil, errs.Mark(errs.New("match not found"), errs.ErrNotFound))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/matches/nope/bars", nil, "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Not found")
	})
}

func (s *MatchHandlerTestSuite) TestCheckAvailability() {
	s.Run("success", func() {
		s.mockQueries.EXPECT().CheckAvailability(gomock.Any(), "bar-1", "match-1", 6).Return(&queries.AvailabilityView{
			BarID:     "bar-1",
			MatchID:   "match-1",
			People:    6,
			Available: true,
			FreeSeats: 10,
			TableIDs:  []string{"t1", "t2"},
		}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/matches/match-1/availability?barId=bar-1&people=6", nil, "")

		var body resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.Available)
		s.Equal([]string{"t1", "t2"}, body.TableIDs)
	})

	invalid := []struct {
		name  string
		query string
	}{
		{name: "missing barId", query: "?people=2"},
		{name: "missing people", query: "?barId=bar-1"},
		{name: "zero people", query: "?barId=bar-1&people=0"},
		{name: "non-numeric people", query: "?barId=bar-1&people=two"},
	}
	for _, tc := range invalid {
		s.Run("error: "+tc.name, func() {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/matches/match-1/availability"+tc.query, nil, "")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid query")
		})
	}
}
