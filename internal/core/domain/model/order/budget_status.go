package order

import (
	"fmt"

	"workshop/internal/pkg/errs"
)

// BudgetStatus represents the state of a quote.
//
//	Created ──> InElaboration ──> PendingApproval ──> Approved
//	   │              │                  │
//	   │              │                  └──> Rejected
//	   └──────────────┴──> PendingApproval / Rejected
//
// Approved and Rejected are final.
type BudgetStatus int

const (
	BudgetUnknown BudgetStatus = iota
	BudgetCreated
	BudgetInElaboration
	BudgetPendingApproval
	BudgetApproved
	BudgetRejected
)

func getBudgetStatusStrings() map[BudgetStatus]string {
	return map[BudgetStatus]string{
		BudgetUnknown:         "Unknown",
		BudgetCreated:         "Created",
		BudgetInElaboration:   "InElaboration",
		BudgetPendingApproval: "PendingApproval",
		BudgetApproved:        "Approved",
		BudgetRejected:        "Rejected",
	}
}

// BudgetStatuses lists every valid budget status; it seeds the budget status catalog.
func BudgetStatuses() []BudgetStatus {
	return []BudgetStatus{BudgetCreated, BudgetInElaboration, BudgetPendingApproval, BudgetApproved, BudgetRejected}
}

func ParseBudgetStatus(name string) (BudgetStatus, error) {
	for _, status := range BudgetStatuses() {
		if status.String() == name {
			return status, nil
		}
	}
	return BudgetUnknown, errs.NewValueIsInvalidErrorWithCause(
		"budget status is invalid", fmt.Errorf("%q is not a valid budget status", name))
}

func (s BudgetStatus) Validate() error {
	if _, ok := getBudgetStatusStrings()[s]; !ok || s == BudgetUnknown {
		return errs.NewValueIsInvalidErrorWithCause("budget status is invalid", fmt.Errorf("%d is not a valid budget status", s))
	}
	return nil
}

func (s BudgetStatus) String() string {
	if str, ok := getBudgetStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

func (s BudgetStatus) Expect(allowed ...BudgetStatus) error {
	for _, a := range allowed {
		if s == a {
			return nil
		}
	}
	expected := make([]string, 0, len(allowed))
	for _, a := range allowed {
		expected = append(expected, a.String())
	}
	return errs.NewInvalidStateError("budget", s.String(), expected...)
}

func (s BudgetStatus) IsFinal() bool {
	return s == BudgetApproved || s == BudgetRejected
}

func (s BudgetStatus) moveTo(target BudgetStatus, allowed ...BudgetStatus) (BudgetStatus, error) {
	if err := s.Expect(allowed...); err != nil {
		return BudgetUnknown, err
	}
	return target, nil
}

// Elaborate transitions Created -> InElaboration.
func (s BudgetStatus) Elaborate() (BudgetStatus, error) {
	return s.moveTo(BudgetInElaboration, BudgetCreated)
}

// Submit transitions Created or InElaboration -> PendingApproval.
func (s BudgetStatus) Submit() (BudgetStatus, error) {
	return s.moveTo(BudgetPendingApproval, BudgetCreated, BudgetInElaboration)
}

// Approve transitions PendingApproval -> Approved.
func (s BudgetStatus) Approve() (BudgetStatus, error) {
	return s.moveTo(BudgetApproved, BudgetPendingApproval)
}

// Reject is allowed from every non-final status.
func (s BudgetStatus) Reject() (BudgetStatus, error) {
	return s.moveTo(BudgetRejected, BudgetCreated, BudgetInElaboration, BudgetPendingApproval)
}
