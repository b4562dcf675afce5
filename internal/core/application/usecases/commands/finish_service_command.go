package commands

import (
	"errors"

	"workshop/internal/core/domain/model/kernel"
)

var ErrFinishServiceCommandIsNotConstructed = errors.New("FinishServiceCommand must be created via NewFinishServiceCommand")

// FinishServiceCommand marks the work on an executing order as done.
type FinishServiceCommand struct {
	orderRef
}

func NewFinishServiceCommand(orderID kernel.UUID) (FinishServiceCommand, error) {
	ref, err := newOrderRef(orderID)
	if err != nil {
		return FinishServiceCommand{}, err
	}
	return FinishServiceCommand{orderRef: ref}, nil
}

func (c FinishServiceCommand) Validate() error {
	return c.guard.Validate(ErrFinishServiceCommandIsNotConstructed)
}
