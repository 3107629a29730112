//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"velostore/internal/handler/api"
	resdto "velostore/internal/handler/dto/response"
	"velostore/internal/pkg/jwt"
	"velostore/internal/usecase/commands"
	"velostore/internal/usecase/queries"
	"velostore/tests/common/httptest"
	"velostore/tests/common/testutil"
	commandsmock "velostore/tests/mock/commands"
	queriesmock "velostore/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CartHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockCartCommands
	mockQueries  *queriesmock.MockCartQueries
	handler      *api.CartHandler
	customerID   uuid.UUID
}

func (s *CartHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.customerID = uuid.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockCartCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockCartQueries(s.mockCtrl)
	s.handler = api.NewCartHandler(s.mockCommands, s.mockQueries)

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			return
		}
		c.Set("user_id", s.customerID)
		c.Set("user_role", jwt.RoleCustomer)
		c.Next()
	}

	s.router.POST("/cart/items", authMiddleware, s.handler.AddItem)
	s.router.PATCH("/cart/items/:id", authMiddleware, s.handler.UpdateItem)
	s.router.DELETE("/cart/items/:id", authMiddleware, s.handler.RemoveItem)
	s.router.GET("/cart", authMiddleware, s.handler.GetCart)
}

func (s *CartHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCartHandlerSuite(t *testing.T) {
	suite.Run(t, new(CartHandlerTestSuite))
}

type testCaseCart struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

func (s *CartHandlerTestSuite) addItemBody() map[string]any {
	return map[string]any{
		"product_id": uuid.New().String(),
		"kind":       "buy",
		"quantity":   2,
	}
}

// ================================================================================
// TestAddItem
// ================================================================================

func (s *CartHandlerTestSuite) TestAddItem() {
	url := "/cart/items"

	s.Run("success: returns 201 Created with line IDs", func() {
		result := &commands.AddLineResult{CartID: uuid.New(), LineID: uuid.New()}
		s.mockCommands.EXPECT().AddLine(gomock.Any(), s.customerID, gomock.Any()).
			Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, s.addItemBody(), "bearer-token")
		s.Equal(http.StatusCreated, rec.Code)
		s.Contains(rec.Body.String(), result.LineID.String())
	})

	validationCases := []testCaseCart{
		{name: "missing field: product_id", mutate: testutil.Field("product_id", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: kind", mutate: testutil.Field("kind", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: quantity", mutate: testutil.Field("quantity", nil), expectCode: http.StatusBadRequest},
		{name: "invalid kind", mutate: testutil.Field("kind", "lease"), expectCode: http.StatusBadRequest},
		{name: "zero quantity", mutate: testutil.Field("quantity", 0), expectCode: http.StatusBadRequest},
		{name: "negative quantity", mutate: testutil.Field("quantity", -1), expectCode: http.StatusBadRequest},
	}
	for _, tc := range validationCases {
		s.Run(tc.name, func() {
			body := s.addItemBody()
			tc.mutate(body)
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
			s.Equal(tc.expectCode, rec.Code)
		})
	}

	errorCases := []struct {
		name       string
		err        error
		expectCode int
	}{
		{name: "unknown product: returns 404", err: commands.ErrProductNotFound, expectCode: http.StatusNotFound},
		{name: "not rentable: returns 422", err: commands.ErrProductNotRentable, expectCode: http.StatusUnprocessableEntity},
		{name: "rental days out of range: returns 422", err: commands.ErrRentalDaysOutOfRange, expectCode: http.StatusUnprocessableEntity},
	}
	for _, tc := range errorCases {
		s.Run(tc.name, func() {
			s.mockCommands.EXPECT().AddLine(gomock.Any(), s.customerID, gomock.Any()).
				Return(nil, tc.err).Times(1)
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, s.addItemBody(), "bearer-token")
			s.Equal(tc.expectCode, rec.Code)
		})
	}

	s.Run("unauthorized: returns 401 without token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, s.addItemBody(), "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

// ================================================================================
// TestUpdateItem / TestRemoveItem
// ================================================================================

func (s *CartHandlerTestSuite) TestUpdateItem() {
	lineID := uuid.New()
	url := "/cart/items/" + lineID.String()
	body := map[string]any{"quantity": 3}

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().UpdateLine(gomock.Any(), s.customerID, lineID, gomock.Any()).
			Return(nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, body, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("malformed line ID: returns 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/cart/items/not-a-uuid", body, "bearer-token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("line owned by someone else: returns 404", func() {
		s.mockCommands.EXPECT().UpdateLine(gomock.Any(), s.customerID, lineID, gomock.Any()).
			Return(commands.ErrCartLineNotFound).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, body, "bearer-token")
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

func (s *CartHandlerTestSuite) TestRemoveItem() {
	lineID := uuid.New()
	url := "/cart/items/" + lineID.String()

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().RemoveLine(gomock.Any(), s.customerID, lineID).
			Return(nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("unknown line: returns 404", func() {
		s.mockCommands.EXPECT().RemoveLine(gomock.Any(), s.customerID, lineID).
			Return(commands.ErrCartLineNotFound).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

// ================================================================================
// TestGetCart
// ================================================================================

func (s *CartHandlerTestSuite) TestGetCart() {
	s.Run("success: returns priced summary", func() {
		summary := &queries.CartSummaryView{
			Cart: queries.CartView{
				ID:     uuid.New(),
				Status: "Active",
				Lines: []queries.CartLineView{
					{ID: uuid.New(), ProductName: "Gravel bike", Kind: "buy", Quantity: 1, UnitPriceCents: 20000, SubtotalCents: 20000},
				},
				SubtotalBuyCents: 20000,
				SubtotalCents:    20000,
			},
			TotalDueCents: 20000,
		}
		s.mockQueries.EXPECT().GetSummary(gomock.Any(), s.customerID, gomock.Nil(), gomock.Nil()).
			Return(summary, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/cart", nil, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)

		var resp resdto.CartSummaryResponse
		_ = httptest.DecodeResponseBody(s.T(), rec.Body, &resp)
		s.Equal(int64(20000), resp.TotalDueCents)
		s.Len(resp.Cart.Lines, 1)
		s.Equal("Gravel bike", resp.Cart.Lines[0].ProductName)
	})

	s.Run("voucher codes forwarded from query string", func() {
		buy := "SPRING10"
		s.mockQueries.EXPECT().GetSummary(gomock.Any(), s.customerID, &buy, gomock.Nil()).
			Return(&queries.CartSummaryView{}, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/cart?buy_voucher_code=SPRING10", nil, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("unknown voucher: returns 404", func() {
		s.mockQueries.EXPECT().GetSummary(gomock.Any(), s.customerID, gomock.Any(), gomock.Any()).
			Return(nil, queries.ErrVoucherNotFound).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/cart?buy_voucher_code=NOPE", nil, "bearer-token")
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("unusable voucher: returns 422", func() {
		s.mockQueries.EXPECT().GetSummary(gomock.Any(), s.customerID, gomock.Any(), gomock.Any()).
			Return(nil, queries.ErrInvalidVoucher).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/cart?buy_voucher_code=EXPIRED", nil, "bearer-token")
		s.Equal(http.StatusUnprocessableEntity, rec.Code)
	})
}
