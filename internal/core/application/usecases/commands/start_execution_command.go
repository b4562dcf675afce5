package commands

import (
	"errors"

	"workshop/internal/core/domain/model/kernel"
)

var ErrStartExecutionCommandIsNotConstructed = errors.New("StartExecutionCommand must be created via NewStartExecutionCommand")

// StartExecutionCommand confirms that an order is ready to be worked on.
type StartExecutionCommand struct {
	orderRef
}

func NewStartExecutionCommand(orderID kernel.UUID) (StartExecutionCommand, error) {
	ref, err := newOrderRef(orderID)
	if err != nil {
		return StartExecutionCommand{}, err
	}
	return StartExecutionCommand{orderRef: ref}, nil
}

func (c StartExecutionCommand) Validate() error {
	return c.guard.Validate(ErrStartExecutionCommandIsNotConstructed)
}
