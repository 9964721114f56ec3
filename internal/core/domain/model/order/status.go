package order

import "lastmile/internal/pkg/errs"

// Status is a step of the order delivery lifecycle.
//
//	created -> waiting -> accepted -> on_way_shop -> at_shop ->
//	on_way_client -> delivered -> confirmed -> completed
//
// A courier cancellation returns the order from accepted or on_way_shop back
// to waiting. The seller may cancel any order up to and including at_shop.
// The delivery timer expires an order stuck in on_way_client. Completed,
// cancelled_seller and expired are terminal.
type Status struct {
	name string
}

var (
	StatusCreated         = Status{name: "created"}
	StatusWaiting         = Status{name: "waiting"}
	StatusAccepted        = Status{name: "accepted"}
	StatusOnWayShop       = Status{name: "on_way_shop"}
	StatusAtShop          = Status{name: "at_shop"}
	StatusOnWayClient     = Status{name: "on_way_client"}
	StatusDelivered       = Status{name: "delivered"}
	StatusConfirmed       = Status{name: "confirmed"}
	StatusCompleted       = Status{name: "completed"}
	StatusCancelledSeller = Status{name: "cancelled_seller"}
	StatusExpired         = Status{name: "expired"}
)

// transitions enumerates every legal status change. Anything absent here is
// an invalid transition, no exceptions.
var transitions = map[Status][]Status{
	StatusCreated:     {StatusWaiting, StatusCancelledSeller},
	StatusWaiting:     {StatusAccepted, StatusCancelledSeller},
	StatusAccepted:    {StatusOnWayShop, StatusWaiting, StatusCancelledSeller},
	StatusOnWayShop:   {StatusAtShop, StatusWaiting, StatusCancelledSeller},
	StatusAtShop:      {StatusOnWayClient, StatusCancelledSeller},
	StatusOnWayClient: {StatusDelivered, StatusExpired},
	StatusDelivered:   {StatusConfirmed},
	StatusConfirmed:   {StatusCompleted},
}

// courierSteps are the transitions a courier drives through the progress
// endpoint, keyed by the current status.
var courierSteps = map[Status]Status{
	StatusAccepted:    StatusOnWayShop,
	StatusOnWayShop:   StatusAtShop,
	StatusAtShop:      StatusOnWayClient,
	StatusOnWayClient: StatusDelivered,
}

// StatusFromString parses a status from its wire representation.
func StatusFromString(name string) (Status, error) {
	for from := range transitions {
		if from.name == name {
			return from, nil
		}
	}
	switch name {
	case StatusCompleted.name:
		return StatusCompleted, nil
	case StatusCancelledSeller.name:
		return StatusCancelledSeller, nil
	case StatusExpired.name:
		return StatusExpired, nil
	}
	return Status{}, errs.NewValueIsInvalidError("status")
}

// Validate rejects the zero value.
func (s Status) Validate() error {
	if s.name == "" {
		return errs.NewValueIsRequiredError("status")
	}
	return nil
}

// String returns the wire representation of the status.
func (s Status) String() string {
	return s.name
}

// CanTransitionTo reports whether the change from s to next is legal.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// NextCourierStep returns the status a courier moves the order to from s.
// ok is false when s has no courier-driven continuation.
func (s Status) NextCourierStep() (next Status, ok bool) {
	next, ok = courierSteps[s]
	return next, ok
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0 && s.name != ""
}

// IsSellerCancellable reports whether the seller may still cancel at s.
func (s Status) IsSellerCancellable() bool {
	return s.CanTransitionTo(StatusCancelledSeller)
}
