//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"velostore/internal/handler/api"
	resdto "velostore/internal/handler/dto/response"
	"velostore/internal/pkg/jwt"
	"velostore/internal/pkg/ptr"
	"velostore/internal/usecase/commands"
	"velostore/tests/common/httptest"
	"velostore/tests/common/testutil"
	commandsmock "velostore/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CheckoutHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockCheckoutCommands
	handler      *api.CheckoutHandler
	customerID   uuid.UUID
}

func (s *CheckoutHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.customerID = uuid.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockCheckoutCommands(s.mockCtrl)
	s.handler = api.NewCheckoutHandler(s.mockCommands)

	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			return
		}
		c.Set("user_id", s.customerID)
		c.Set("user_role", jwt.RoleCustomer)
		c.Next()
	}

	s.router.POST("/order/checkout", authMiddleware, s.handler.Checkout)
}

func (s *CheckoutHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCheckoutHandlerSuite(t *testing.T) {
	suite.Run(t, new(CheckoutHandlerTestSuite))
}

func (s *CheckoutHandlerTestSuite) validBody() map[string]any {
	return map[string]any{
		"address_id":     uuid.New().String(),
		"payment_method": "card",
	}
}

func (s *CheckoutHandlerTestSuite) TestCheckout() {
	s.Run("success: returns 201 with both order numbers", func() {
		saleID, rentalID := uuid.New(), uuid.New()
		result := &commands.CheckoutResult{
			SaleOrderID:       &saleID,
			SaleOrderNumber:   ptr.To("SO-20260901-AB12"),
			RentalOrderID:     &rentalID,
			RentalOrderNumber: ptr.To("RN-20260901-CD34"),
			DiscountCents:     3500,
			TotalDueCents:     31500,
		}
		s.mockCommands.EXPECT().Checkout(gomock.Any(), s.customerID, gomock.Any()).
			Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/order/checkout",
			s.validBody(), "bearer-token")
		s.Equal(http.StatusCreated, rec.Code)

		var resp resdto.CheckoutResponse
		_ = httptest.DecodeResponseBody(s.T(), rec.Body, &resp)
		s.Equal("SO-20260901-AB12", *resp.SaleOrderNumber)
		s.Equal("RN-20260901-CD34", *resp.RentalOrderNumber)
		s.Equal(int64(31500), resp.TotalDueCents)
	})

	s.Run("validation errors return 400", func() {
		testCases := []struct {
			name    string
			mutator func(map[string]any)
		}{
			{"missing address_id", testutil.Field("address_id", nil)},
			{"missing payment_method", testutil.Field("payment_method", nil)},
			{"malformed address_id", testutil.Field("address_id", "not-a-uuid")},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				body := s.validBody()
				tc.mutator(body)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/order/checkout",
					body, "bearer-token")
				s.Equal(http.StatusBadRequest, rec.Code)
			})
		}
	})

	s.Run("use case errors map to status codes", func() {
		testCases := []struct {
			name     string
			err      error
			expected int
		}{
			{"empty cart", commands.ErrCartEmpty, http.StatusConflict},
			{"address not found", commands.ErrAddressNotFound, http.StatusNotFound},
			{"invalid voucher", commands.ErrInvalidVoucher, http.StatusUnprocessableEntity},
			{"insufficient stock", commands.ErrInsufficientStock, http.StatusConflict},
			{"number generation exhausted", commands.ErrDatabaseOperationFailed, http.StatusInternalServerError},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Checkout(gomock.Any(), s.customerID, gomock.Any()).
					Return(nil, tc.err).Times(1)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/order/checkout",
					s.validBody(), "bearer-token")
				s.Equal(tc.expected, rec.Code)
			})
		}
	})

	s.Run("no token: returns 401", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/order/checkout",
			s.validBody(), "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}
