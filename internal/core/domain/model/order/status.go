package order

import (
	"fmt"

	"workshop/internal/pkg/errs"
)

// Status represents the lifecycle state of a service order.
//
// State transitions:
//
//	Received ──> Diagnosing ──> Budgeting ──> AwaitingApproval ──> Executing ──> Finalized ──> Delivered
//	   │             │              │  ^             │  │  │
//	   │             │              │  └─ re-quote ──┘  │  │
//	   └─────────────┴──────────────┴──> Cancelled <────┘  │
//	                                         │             │
//	                                         └──> Returned <┘ (rejected, vehicle already picked up)
//
// Cancelled orders are never reopened.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota
	Received
	Diagnosing
	Budgeting
	AwaitingApproval
	Executing
	Finalized
	Delivered
	Cancelled
	Returned
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:          "Unknown",
		Received:         "Received",
		Diagnosing:       "Diagnosing",
		Budgeting:        "Budgeting",
		AwaitingApproval: "AwaitingApproval",
		Executing:        "Executing",
		Finalized:        "Finalized",
		Delivered:        "Delivered",
		Cancelled:        "Cancelled",
		Returned:         "Returned",
	}
}

func getValidStatusStrings() map[Status]string {
	valid := getStatusStrings()
	delete(valid, Unknown)
	return valid
}

// Statuses lists every valid order status in workflow order.
// It is the seed of the order status catalog.
func Statuses() []Status {
	return []Status{Received, Diagnosing, Budgeting, AwaitingApproval, Executing, Finalized, Delivered, Cancelled, Returned}
}

// ParseStatus maps a catalog name back to its Status.
func ParseStatus(name string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", name))
}

func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Expect returns an InvalidStateError naming the allowed statuses when s is not one of them.
func (s Status) Expect(allowed ...Status) error {
	for _, a := range allowed {
		if s == a {
			return nil
		}
	}
	expected := make([]string, 0, len(allowed))
	for _, a := range allowed {
		expected = append(expected, a.String())
	}
	return errs.NewInvalidStateError("order", s.String(), expected...)
}

func (s Status) moveTo(target Status, allowed ...Status) (Status, error) {
	if err := s.Expect(allowed...); err != nil {
		return Unknown, err
	}
	return target, nil
}

// StartDiagnosis transitions Received -> Diagnosing.
func (s Status) StartDiagnosis() (Status, error) {
	return s.moveTo(Diagnosing, Received)
}

// FinishDiagnosis transitions Diagnosing -> Budgeting.
func (s Status) FinishDiagnosis() (Status, error) {
	return s.moveTo(Budgeting, Diagnosing)
}

// AwaitApproval transitions Budgeting -> AwaitingApproval.
func (s Status) AwaitApproval() (Status, error) {
	return s.moveTo(AwaitingApproval, Budgeting)
}

// Approve transitions AwaitingApproval -> Executing.
func (s Status) Approve() (Status, error) {
	return s.moveTo(Executing, AwaitingApproval)
}

// Requote transitions AwaitingApproval back to Budgeting after a rejected quote.
func (s Status) Requote() (Status, error) {
	return s.moveTo(Budgeting, AwaitingApproval)
}

// Finish transitions Executing -> Finalized.
func (s Status) Finish() (Status, error) {
	return s.moveTo(Finalized, Executing)
}

// Deliver transitions Finalized -> Delivered.
func (s Status) Deliver() (Status, error) {
	return s.moveTo(Delivered, Finalized)
}

// Cancel is allowed from every status before execution starts.
func (s Status) Cancel() (Status, error) {
	return s.moveTo(Cancelled, Received, Diagnosing, Budgeting, AwaitingApproval)
}

// ReturnVehicle transitions Cancelled -> Returned. A rejected quote whose vehicle
// was already picked up also ends in Returned, directly from AwaitingApproval.
func (s Status) ReturnVehicle() (Status, error) {
	return s.moveTo(Returned, Cancelled, AwaitingApproval)
}

// CanReprice reports whether line values may still be corrected, that is before
// the quote is shown to the customer.
func (s Status) CanReprice() error {
	return s.Expect(Received, Diagnosing, Budgeting)
}

// IsActive is false for orders whose work is done (Finalized, Delivered).
func (s Status) IsActive() bool {
	return s != Finalized && s != Delivered
}

// Priority orders active work for the workshop floor: lower comes first.
func (s Status) Priority() int {
	switch s {
	case Executing:
		return 1
	case AwaitingApproval:
		return 2
	case Diagnosing:
		return 3
	case Received:
		return 4
	case Budgeting:
		return 5
	case Cancelled:
		return 6
	case Returned:
		return 7
	default:
		return 99
	}
}

func (s Status) hasCompletion() bool {
	return s == Finalized || s == Delivered
}

func (s Status) hasDelivery() bool {
	return s == Delivered || s == Returned
}
