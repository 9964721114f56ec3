package http

import (
	"math"
	"time"

	"lastmile/internal/core/application/usecases/queries"
	"lastmile/internal/core/domain/model/kernel"
)

// Amounts cross the wire in whole currency units with two decimals; the core
// works in integer cents.

func moneyFromAPI(units float64) kernel.Money {
	return kernel.MoneyFromCents(int64(math.Round(units * 100)))
}

type registerUserRequest struct {
	Role      string `json:"role"`
	Transport string `json:"transport,omitempty"`
}

type createOrderItemRequest struct {
	Description string  `json:"description"`
	Address     string  `json:"address"`
	Lat         float64 `json:"lat"`
	Long        float64 `json:"long"`
}

type createOrderRequest struct {
	PickupAddress string                   `json:"pickup_address"`
	PickupLat     float64                  `json:"pickup_lat"`
	PickupLong    float64                  `json:"pickup_long"`
	DeliveryCost  float64                  `json:"delivery_cost"`
	Items         []createOrderItemRequest `json:"items"`
}

type advanceOrderRequest struct {
	Status string `json:"status"`
}

type cancelOrderRequest struct {
	Reason string `json:"reason,omitempty"`
}

type amountRequest struct {
	Amount float64 `json:"amount"`
}

type createReviewRequest struct {
	OrderID string `json:"order_id"`
	Stars   int    `json:"stars"`
	Comment string `json:"comment,omitempty"`
}

type locationRequest struct {
	Lat  float64 `json:"lat"`
	Long float64 `json:"long"`
}

type setUserStatusRequest struct {
	Status string `json:"status"`
}

type idResponse struct {
	ID string `json:"id"`
}

type balanceResponse struct {
	Balance   float64 `json:"balance"`
	Frozen    float64 `json:"frozen"`
	Available float64 `json:"available"`
}

type ledgerEntryResponse struct {
	ID        string    `json:"id"`
	OrderID   *string   `json:"order_id,omitempty"`
	EntryType string    `json:"entry_type"`
	Amount    float64   `json:"amount"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type availableOrderResponse struct {
	ID            string    `json:"id"`
	PickupAddress string    `json:"pickup_address"`
	PickupLat     float64   `json:"pickup_lat"`
	PickupLong    float64   `json:"pickup_long"`
	DeliveryCost  float64   `json:"delivery_cost"`
	DistanceKm    float64   `json:"distance_km"`
	CreatedAt     time.Time `json:"created_at"`
}

type orderSummaryResponse struct {
	ID            string    `json:"id"`
	PickupAddress string    `json:"pickup_address"`
	Status        string    `json:"status"`
	DeliveryCost  float64   `json:"delivery_cost"`
	CreatedAt     time.Time `json:"created_at"`
}

type orderItemResponse struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Address     string  `json:"address"`
	Lat         float64 `json:"lat"`
	Long        float64 `json:"long"`
	Delivered   bool    `json:"delivered"`
}

type orderResponse struct {
	ID               string              `json:"id"`
	SellerID         string              `json:"seller_id"`
	CourierID        *string             `json:"courier_id,omitempty"`
	PickupAddress    string              `json:"pickup_address"`
	PickupLat        float64             `json:"pickup_lat"`
	PickupLong       float64             `json:"pickup_long"`
	Status           string              `json:"status"`
	DeliveryCost     float64             `json:"delivery_cost"`
	Commission       float64             `json:"commission"`
	CancelReason     string              `json:"cancel_reason,omitempty"`
	DeliveryDeadline *time.Time          `json:"delivery_deadline,omitempty"`
	ConfirmDeadline  *time.Time          `json:"confirm_deadline,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
	Items            []orderItemResponse `json:"items"`
}

func toOrderResponse(o queries.GetOrderByIDQueryResponse) orderResponse {
	resp := orderResponse{
		ID:               o.ID.String(),
		SellerID:         o.SellerID.String(),
		PickupAddress:    o.PickupAddress,
		PickupLat:        o.PickupPoint.Lat(),
		PickupLong:       o.PickupPoint.Long(),
		Status:           o.Status,
		DeliveryCost:     o.DeliveryCost.Float64(),
		Commission:       o.Commission.Float64(),
		CancelReason:     o.CancelReason,
		DeliveryDeadline: o.DeliveryDeadline,
		ConfirmDeadline:  o.ConfirmDeadline,
		CreatedAt:        o.CreatedAt,
		Items:            make([]orderItemResponse, 0, len(o.Items)),
	}
	if o.CourierID != nil {
		courierID := o.CourierID.String()
		resp.CourierID = &courierID
	}
	for _, item := range o.Items {
		resp.Items = append(resp.Items, orderItemResponse{
			ID:          item.ID.String(),
			Description: item.Description,
			Address:     item.Address,
			Lat:         item.Point.Lat(),
			Long:        item.Point.Long(),
			Delivered:   item.Delivered,
		})
	}
	return resp
}
