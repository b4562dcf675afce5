package commands

import (
	"errors"

	"workshop/internal/core/domain/model/kernel"
)

var ErrReturnVehicleCommandIsNotConstructed = errors.New("ReturnVehicleCommand must be created via NewReturnVehicleCommand")

// ReturnVehicleCommand hands the vehicle of a cancelled order back without service.
type ReturnVehicleCommand struct {
	orderRef
	reason string
}

func NewReturnVehicleCommand(orderID kernel.UUID, reason string) (ReturnVehicleCommand, error) {
	ref, err := newOrderRef(orderID)
	if err != nil {
		return ReturnVehicleCommand{}, err
	}
	return ReturnVehicleCommand{orderRef: ref, reason: reason}, nil
}

func (c ReturnVehicleCommand) Validate() error {
	return c.guard.Validate(ErrReturnVehicleCommandIsNotConstructed)
}

func (c ReturnVehicleCommand) Reason() string {
	return c.reason
}
