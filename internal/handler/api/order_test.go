//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"velostore/internal/domain/order"
	"velostore/internal/handler/api"
	resdto "velostore/internal/handler/dto/response"
	"velostore/internal/pkg/jwt"
	"velostore/internal/usecase/commands"
	"velostore/internal/usecase/queries"
	"velostore/tests/common/httptest"
	commandsmock "velostore/tests/mock/commands"
	queriesmock "velostore/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type OrderHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockOrderCommands
	mockQueries  *queriesmock.MockOrderQueries
	handler      *api.OrderHandler
	customerID   uuid.UUID
}

func (s *OrderHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.customerID = uuid.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockOrderCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockOrderQueries(s.mockCtrl)
	s.handler = api.NewOrderHandler(s.mockCommands, s.mockQueries)

	// Mock authentication middleware; the X-Test-Role header picks the role.
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			return
		}
		role := jwt.RoleCustomer
		if c.GetHeader("X-Test-Role") == jwt.RoleStaff {
			role = jwt.RoleStaff
		}
		c.Set("user_id", s.customerID)
		c.Set("user_role", role)
		c.Next()
	}

	s.router.GET("/orders", authMiddleware, s.handler.ListOrders)
	s.router.GET("/orders/:id", authMiddleware, s.handler.GetOrder)
	s.router.PATCH("/orders/:id/status", authMiddleware, s.handler.SetStatus)
	s.router.POST("/orders/:id/request-review", authMiddleware, s.handler.ReviewRequest)
	s.router.POST("/orders/:id/rental-preparation", authMiddleware, s.handler.PrepareRentalItem)
	s.router.POST("/orders/:id/cancellation-request", authMiddleware, s.handler.RequestCancellation)
	s.router.POST("/orders/:id/return-request", authMiddleware, s.handler.RequestReturn)
}

func (s *OrderHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestOrderHandlerSuite(t *testing.T) {
	suite.Run(t, new(OrderHandlerTestSuite))
}

// ================================================================================
// TestSetStatus
// ================================================================================

func (s *OrderHandlerTestSuite) TestSetStatus() {
	orderID := uuid.New()
	body := map[string]any{"status": "Shipped"}

	s.Run("success: sets sale order status", func() {
		s.mockCommands.EXPECT().SetSaleStatus(gomock.Any(), orderID, "Shipped").
			Return(nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch,
			"/orders/"+orderID.String()+"/status?type=sale", body, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("success: sets rental order status", func() {
		s.mockCommands.EXPECT().SetRentalStatus(gomock.Any(), orderID, "Shipped").
			Return(nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch,
			"/orders/"+orderID.String()+"/status?type=rental", body, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("missing order type: returns 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch,
			"/orders/"+orderID.String()+"/status", body, "bearer-token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("unknown status label: returns 400", func() {
		s.mockCommands.EXPECT().SetSaleStatus(gomock.Any(), orderID, "Teleported").
			Return(order.ErrInvalidStatus).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch,
			"/orders/"+orderID.String()+"/status?type=sale", map[string]any{"status": "Teleported"}, "bearer-token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("unknown order: returns 404", func() {
		s.mockCommands.EXPECT().SetSaleStatus(gomock.Any(), orderID, "Shipped").
			Return(commands.ErrOrderNotFound).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch,
			"/orders/"+orderID.String()+"/status?type=sale", body, "bearer-token")
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

// ================================================================================
// TestReviewRequest
// ================================================================================

func (s *OrderHandlerTestSuite) TestReviewRequest() {
	orderID := uuid.New()
	url := "/orders/" + orderID.String() + "/request-review?type=rental"

	s.Run("success: accepts pending request", func() {
		s.mockCommands.EXPECT().ReviewRentalRequest(gomock.Any(), orderID, "accept").
			Return(nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"decision": "accept"}, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("invalid decision label: returns 400 before reaching the use case", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"decision": "maybe"}, "bearer-token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("nothing pending: returns 409", func() {
		s.mockCommands.EXPECT().ReviewRentalRequest(gomock.Any(), orderID, "decline").
			Return(order.ErrNoPendingRequest).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"decision": "decline"}, "bearer-token")
		s.Equal(http.StatusConflict, rec.Code)
	})
}

// ================================================================================
// TestPrepareRentalItem
// ================================================================================

func (s *OrderHandlerTestSuite) TestPrepareRentalItem() {
	orderID := uuid.New()
	url := "/orders/" + orderID.String() + "/rental-preparation"
	body := map[string]any{
		"line_id":         uuid.New().String(),
		"asset_id":        "BK-0042",
		"condition_notes": "scratch on left crank",
		"evidence_photos": []string{"s3://evidence/bk-0042-1.jpg"},
	}

	s.Run("success: returns 204", func() {
		s.mockCommands.EXPECT().PrepareRentalItem(gomock.Any(), orderID, gomock.Any()).
			Return(nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("missing asset_id: returns 400", func() {
		bad := map[string]any{"line_id": uuid.New().String()}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, bad, "bearer-token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("order already delivered: returns 409", func() {
		s.mockCommands.EXPECT().PrepareRentalItem(gomock.Any(), orderID, gomock.Any()).
			Return(order.ErrInvalidState).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
		s.Equal(http.StatusConflict, rec.Code)
	})
}

// ================================================================================
// TestRequestCancellation / TestRequestReturn
// ================================================================================

func (s *OrderHandlerTestSuite) TestRequestCancellation() {
	orderID := uuid.New()

	s.Run("sale order requires a reason", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost,
			"/orders/"+orderID.String()+"/cancellation-request?type=sale", map[string]any{}, "bearer-token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("sale order cancellation accepted", func() {
		s.mockCommands.EXPECT().RequestSaleCancellation(gomock.Any(), orderID, s.customerID, "changed my mind").
			Return(nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost,
			"/orders/"+orderID.String()+"/cancellation-request?type=sale",
			map[string]any{"reason": "changed my mind"}, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("rental order cancellation needs no body", func() {
		s.mockCommands.EXPECT().RequestRentalCancellation(gomock.Any(), orderID, s.customerID).
			Return(nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost,
			"/orders/"+orderID.String()+"/cancellation-request?type=rental", nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("someone else's order: returns 404", func() {
		s.mockCommands.EXPECT().RequestRentalCancellation(gomock.Any(), orderID, s.customerID).
			Return(commands.ErrOrderNotOwned).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost,
			"/orders/"+orderID.String()+"/cancellation-request?type=rental", nil, "bearer-token")
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

func (s *OrderHandlerTestSuite) TestRequestReturn() {
	orderID := uuid.New()
	url := "/orders/" + orderID.String() + "/return-request"

	s.Run("success: returns 204", func() {
		s.mockCommands.EXPECT().RequestRentalReturn(gomock.Any(), orderID, s.customerID).
			Return(nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("not in a returnable state: returns 409", func() {
		s.mockCommands.EXPECT().RequestRentalReturn(gomock.Any(), orderID, s.customerID).
			Return(order.ErrInvalidState).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		s.Equal(http.StatusConflict, rec.Code)
	})
}

// ================================================================================
// TestGetOrder / TestListOrders
// ================================================================================

func (s *OrderHandlerTestSuite) TestGetOrder() {
	orderID := uuid.New()

	s.Run("success: returns rental order with legacy status code", func() {
		view := &queries.RentalOrderView{
			ID:            orderID,
			Number:        "RN-20260901-AB12",
			CustomerID:    s.customerID,
			RentalDate:    time.Now(),
			DueDate:       time.Now().AddDate(0, 0, 14),
			Status:        "Return Requested",
			StatusCode:    50,
			TotalDueCents: 14000,
			PaymentMethod: "card",
		}
		s.mockQueries.EXPECT().GetRental(gomock.Any(), orderID, s.customerID, jwt.RoleCustomer).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/orders/"+orderID.String()+"?type=rental", nil, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)

		var resp resdto.RentalOrderResponse
		_ = httptest.DecodeResponseBody(s.T(), rec.Body, &resp)
		s.Equal("Return Requested", resp.Status)
		s.Equal(int16(50), resp.StatusCode)
	})

	s.Run("other customer's order: returns 404", func() {
		s.mockQueries.EXPECT().GetSale(gomock.Any(), orderID, s.customerID, jwt.RoleCustomer).
			Return(nil, queries.ErrOrderAccess).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/orders/"+orderID.String()+"?type=sale", nil, "bearer-token")
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

func (s *OrderHandlerTestSuite) TestListOrders() {
	s.Run("success: returns both groups", func() {
		history := &queries.OrderHistoryView{
			Sales: []*queries.SaleOrderListItem{
				{ID: uuid.New(), Number: "SO-20260901-0001", Status: "Confirmed", TotalDueCents: 20000},
			},
			Rentals: []*queries.RentalOrderListItem{
				{ID: uuid.New(), Number: "RN-20260901-0001", Status: "Active", TotalDueCents: 7000},
			},
		}
		s.mockQueries.EXPECT().History(gomock.Any(), s.customerID).
			Return(history, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders", nil, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)

		var resp resdto.OrderHistoryResponse
		_ = httptest.DecodeResponseBody(s.T(), rec.Body, &resp)
		s.Len(resp.Sales, 1)
		s.Len(resp.Rentals, 1)
	})
}
