package commands

import (
	"errors"
	"strings"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"
)

var (
	ErrCancelOrderCommandIsNotConstructed = errors.New("CancelOrderCommand must be created via NewCancelOrderCommand")
	ErrReasonIsRequired                   = errs.NewValueIsRequiredError("reason")
)

// CancelOrderCommand stops an order before execution. VehicleReturned records
// that the customer already took the vehicle back.
type CancelOrderCommand struct {
	orderRef
	reason          string
	notes           string
	vehicleReturned bool
}

func NewCancelOrderCommand(orderID kernel.UUID, reason string, notes string, vehicleReturned bool) (CancelOrderCommand, error) {
	ref, err := newOrderRef(orderID)
	if err != nil {
		return CancelOrderCommand{}, err
	}
	if strings.TrimSpace(reason) == "" {
		return CancelOrderCommand{}, ErrReasonIsRequired
	}
	return CancelOrderCommand{
		orderRef:        ref,
		reason:          reason,
		notes:           notes,
		vehicleReturned: vehicleReturned,
	}, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) Reason() string        { return c.reason }
func (c CancelOrderCommand) Notes() string         { return c.notes }
func (c CancelOrderCommand) VehicleReturned() bool { return c.vehicleReturned }
