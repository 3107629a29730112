//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"velostore/internal/handler/api"
	resdto "velostore/internal/handler/dto/response"
	"velostore/internal/usecase/queries"
	"velostore/tests/common/httptest"
	queriesmock "velostore/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type InventoryHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockInventoryQueries
	handler     *api.InventoryHandler
}

func (s *InventoryHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockInventoryQueries(s.mockCtrl)
	s.handler = api.NewInventoryHandler(s.mockQueries)

	s.router.GET("/products/:id/availability", s.handler.GetAvailability)
}

func (s *InventoryHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestInventoryHandlerSuite(t *testing.T) {
	suite.Run(t, new(InventoryHandlerTestSuite))
}

func (s *InventoryHandlerTestSuite) TestGetAvailability() {
	productID := uuid.New()

	s.Run("success: returns the availability rollup", func() {
		view := &queries.AvailabilityView{
			ProductID:     productID,
			TotalPhysical: 5,
			Maintenance:   1,
			Renting:       2,
			Available:     2,
		}
		s.mockQueries.EXPECT().GetAvailability(gomock.Any(), productID).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/products/"+productID.String()+"/availability", nil, "")
		s.Equal(http.StatusOK, rec.Code)

		var resp resdto.AvailabilityResponse
		_ = httptest.DecodeResponseBody(s.T(), rec.Body, &resp)
		s.Equal(int32(5), resp.TotalPhysical)
		s.Equal(int32(2), resp.Available)
	})

	s.Run("malformed product id: returns 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/products/not-a-uuid/availability", nil, "")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("unknown product: returns 404", func() {
		s.mockQueries.EXPECT().GetAvailability(gomock.Any(), productID).
			Return(nil, queries.ErrProductNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/products/"+productID.String()+"/availability", nil, "")
		s.Equal(http.StatusNotFound, rec.Code)
	})
}
