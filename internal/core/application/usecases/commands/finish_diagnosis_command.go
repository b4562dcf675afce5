package commands

import (
	"errors"

	"workshop/internal/core/domain/model/kernel"
)

var ErrFinishDiagnosisCommandIsNotConstructed = errors.New("FinishDiagnosisCommand must be created via NewFinishDiagnosisCommand")

// FinishDiagnosisCommand closes the diagnosis of an order.
type FinishDiagnosisCommand struct {
	orderRef
}

func NewFinishDiagnosisCommand(orderID kernel.UUID) (FinishDiagnosisCommand, error) {
	ref, err := newOrderRef(orderID)
	if err != nil {
		return FinishDiagnosisCommand{}, err
	}
	return FinishDiagnosisCommand{orderRef: ref}, nil
}

func (c FinishDiagnosisCommand) Validate() error {
	return c.guard.Validate(ErrFinishDiagnosisCommandIsNotConstructed)
}
