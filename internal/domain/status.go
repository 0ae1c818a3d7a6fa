package domain

import "time"

// StageFlag is one fulfillment stage of an order: whether it has been reached
// and when. At is stamped only when the flag flips to completed.
type StageFlag struct {
	Completed bool       `json:"completed"`
	At        *time.Time `json:"at"`
}

// ReturnFlag records a customer return request. Once set it is never cleared.
type ReturnFlag struct {
	Requested bool       `json:"requested"`
	At        *time.Time `json:"at"`
}

// OrderStatus is the flag map carried by every order. The four fulfillment
// stages are conventionally monotonic but admin toggles may flip them either
// way. Cancelled and ReturnRequested are side flags set at most once; a
// cancelled order is terminal and rejects further stage toggles.
type OrderStatus struct {
	ReceivedOrder   StageFlag   `json:"received_order"`
	Packed          StageFlag   `json:"packed"`
	Shipped         StageFlag   `json:"shipped"`
	Delivered       StageFlag   `json:"delivered"`
	Cancelled       *StageFlag  `json:"cancelled,omitempty"`
	ReturnRequested *ReturnFlag `json:"return_requested,omitempty"`
}

// Stage names accepted by admin status toggles.
const (
	StageReceivedOrder = "received_order"
	StagePacked        = "packed"
	StageShipped       = "shipped"
	StageDelivered     = "delivered"
)

// NewOrderStatus returns the status of a freshly placed order:
// received_order completed at now, everything else unset.
func NewOrderStatus(now time.Time) OrderStatus {
	return OrderStatus{
		ReceivedOrder: StageFlag{Completed: true, At: &now},
	}
}

// IsCancelled reports whether the cancelled flag has been set.
func (s *OrderStatus) IsCancelled() bool {
	return s.Cancelled != nil && s.Cancelled.Completed
}

// CanCancel reports whether a customer cancellation is still allowed:
// the order must not be packed yet and not already cancelled.
func (s *OrderStatus) CanCancel() bool {
	return !s.Packed.Completed && !s.IsCancelled()
}

// Cancel sets the cancelled side flag. Callers must check CanCancel first.
func (s *OrderStatus) Cancel(now time.Time) {
	s.Cancelled = &StageFlag{Completed: true, At: &now}
}

// CanRequestReturn reports whether a return request is allowed: the order
// must have shipped and no prior request may exist.
func (s *OrderStatus) CanRequestReturn() bool {
	return s.Shipped.Completed && s.ReturnRequested == nil
}

// RequestReturn sets the return_requested side flag. Callers must check
// CanRequestReturn first.
func (s *OrderStatus) RequestReturn(now time.Time) {
	s.ReturnRequested = &ReturnFlag{Requested: true, At: &now}
}

// ValidStage reports whether name is one of the four toggleable stages.
func ValidStage(name string) bool {
	switch name {
	case StageReceivedOrder, StagePacked, StageShipped, StageDelivered:
		return true
	}
	return false
}

// SetStage toggles a fulfillment stage. The timestamp is stamped only when
// setting to true; toggling back to false clears it. Stage toggles on a
// cancelled order are rejected by the service layer, not here.
func (s *OrderStatus) SetStage(name string, completed bool, now time.Time) bool {
	var flag *StageFlag
	switch name {
	case StageReceivedOrder:
		flag = &s.ReceivedOrder
	case StagePacked:
		flag = &s.Packed
	case StageShipped:
		flag = &s.Shipped
	case StageDelivered:
		flag = &s.Delivered
	default:
		return false
	}
	flag.Completed = completed
	if completed {
		flag.At = &now
	} else {
		flag.At = nil
	}
	return true
}
