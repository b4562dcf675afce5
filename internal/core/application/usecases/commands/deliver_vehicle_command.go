package commands

import (
	"errors"

	"workshop/internal/core/domain/model/kernel"
)

var ErrDeliverVehicleCommandIsNotConstructed = errors.New("DeliverVehicleCommand must be created via NewDeliverVehicleCommand")

// DeliverVehicleCommand records the hand-over of a finalized order's vehicle.
type DeliverVehicleCommand struct {
	orderRef
}

func NewDeliverVehicleCommand(orderID kernel.UUID) (DeliverVehicleCommand, error) {
	ref, err := newOrderRef(orderID)
	if err != nil {
		return DeliverVehicleCommand{}, err
	}
	return DeliverVehicleCommand{orderRef: ref}, nil
}

func (c DeliverVehicleCommand) Validate() error {
	return c.guard.Validate(ErrDeliverVehicleCommandIsNotConstructed)
}
