package response

import (
	"time"

	"velostore/internal/usecase/commands"
	"velostore/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type SaleOrderLineResponse struct {
	ID             uuid.UUID `json:"id"`
	ProductID      uuid.UUID `json:"productId"`
	ProductName    string    `json:"productName"`
	Quantity       int32     `json:"quantity"`
	UnitPriceCents int64     `json:"unitPriceCents"`
	SubtotalCents  int64     `json:"subtotalCents"`
}

type SaleOrderResponse struct {
	ID                      uuid.UUID               `json:"id"`
	Number                  string                  `json:"number"`
	CustomerID              uuid.UUID               `json:"customerId"`
	OrderDate               time.Time               `json:"orderDate"`
	Status                  string                  `json:"status"`
	FreightCents            int64                   `json:"freightCents"`
	TotalDueCents           int64                   `json:"totalDueCents"`
	PaymentMethod           string                  `json:"paymentMethod"`
	Note                    *string                 `json:"note,omitempty"`
	CancellationRequestedAt *time.Time              `json:"cancellationRequestedAt,omitempty"`
	CancellationReason      *string                 `json:"cancellationReason,omitempty"`
	Lines                   []SaleOrderLineResponse `json:"lines"`
}

type RentalOrderLineResponse struct {
	ID              uuid.UUID `json:"id"`
	ProductID       uuid.UUID `json:"productId"`
	ProductName     string    `json:"productName"`
	Quantity        int32     `json:"quantity"`
	UnitPriceCents  int64     `json:"unitPriceCents"`
	RentalDays      int32     `json:"rentalDays"`
	SubtotalCents   int64     `json:"subtotalCents"`
	AssignedAssetID *string   `json:"assignedAssetId,omitempty"`
	ConditionNotes  *string   `json:"conditionNotes,omitempty"`
	EvidencePhotos  []string  `json:"evidencePhotos,omitempty"`
}

type RentalOrderResponse struct {
	ID            uuid.UUID                 `json:"id"`
	Number        string                    `json:"number"`
	CustomerID    uuid.UUID                 `json:"customerId"`
	RentalDate    time.Time                 `json:"rentalDate"`
	DueDate       time.Time                 `json:"dueDate"`
	ReturnDate    *time.Time                `json:"returnDate,omitempty"`
	Status        string                    `json:"status"`
	StatusCode    int16                     `json:"statusCode,omitempty"`
	TotalDueCents int64                     `json:"totalDueCents"`
	PaymentMethod string                    `json:"paymentMethod"`
	Lines         []RentalOrderLineResponse `json:"lines"`
}

type SaleOrderListResponse struct {
	ID            uuid.UUID `json:"id"`
	Number        string    `json:"number"`
	OrderDate     time.Time `json:"orderDate"`
	Status        string    `json:"status"`
	TotalDueCents int64     `json:"totalDueCents"`
}

type RentalOrderListResponse struct {
	ID            uuid.UUID  `json:"id"`
	Number        string     `json:"number"`
	RentalDate    time.Time  `json:"rentalDate"`
	DueDate       time.Time  `json:"dueDate"`
	ReturnDate    *time.Time `json:"returnDate,omitempty"`
	Status        string     `json:"status"`
	TotalDueCents int64      `json:"totalDueCents"`
}

type OrderHistoryResponse struct {
	Sales   []SaleOrderListResponse   `json:"sales"`
	Rentals []RentalOrderListResponse `json:"rentals"`
}

type CheckoutResponse struct {
	SaleOrderID       *uuid.UUID `json:"saleOrderId,omitempty"`
	SaleOrderNumber   *string    `json:"saleOrderNumber,omitempty"`
	RentalOrderID     *uuid.UUID `json:"rentalOrderId,omitempty"`
	RentalOrderNumber *string    `json:"rentalOrderNumber,omitempty"`
	DiscountCents     int64      `json:"discountCents"`
	TotalDueCents     int64      `json:"totalDueCents"`
}

func FromSaleOrderView(view *queries.SaleOrderView) (*SaleOrderResponse, error) {
	var resp SaleOrderResponse
	if err := copier.Copy(&resp, view); err != nil {
		return nil, err
	}
	if resp.Lines == nil {
		resp.Lines = []SaleOrderLineResponse{}
	}
	return &resp, nil
}

func FromRentalOrderView(view *queries.RentalOrderView) (*RentalOrderResponse, error) {
	var resp RentalOrderResponse
	if err := copier.Copy(&resp, view); err != nil {
		return nil, err
	}
	if resp.Lines == nil {
		resp.Lines = []RentalOrderLineResponse{}
	}
	return &resp, nil
}

func FromOrderHistoryView(view *queries.OrderHistoryView) (*OrderHistoryResponse, error) {
	resp := &OrderHistoryResponse{
		Sales:   make([]SaleOrderListResponse, 0, len(view.Sales)),
		Rentals: make([]RentalOrderListResponse, 0, len(view.Rentals)),
	}
	if err := copier.Copy(&resp.Sales, view.Sales); err != nil {
		return nil, err
	}
	if err := copier.Copy(&resp.Rentals, view.Rentals); err != nil {
		return nil, err
	}
	return resp, nil
}

func FromCheckoutResult(result *commands.CheckoutResult) *CheckoutResponse {
	return &CheckoutResponse{
		SaleOrderID:       result.SaleOrderID,
		SaleOrderNumber:   result.SaleOrderNumber,
		RentalOrderID:     result.RentalOrderID,
		RentalOrderNumber: result.RentalOrderNumber,
		DiscountCents:     result.DiscountCents,
		TotalDueCents:     result.TotalDueCents,
	}
}
