package commands

import (
	"errors"

	"workshop/internal/core/domain/model/kernel"
)

var ErrStartDiagnosisCommandIsNotConstructed = errors.New("StartDiagnosisCommand must be created via NewStartDiagnosisCommand")

// StartDiagnosisCommand asks for a Received order to enter diagnosis.
type StartDiagnosisCommand struct {
	orderRef
}

func NewStartDiagnosisCommand(orderID kernel.UUID) (StartDiagnosisCommand, error) {
	ref, err := newOrderRef(orderID)
	if err != nil {
		return StartDiagnosisCommand{}, err
	}
	return StartDiagnosisCommand{orderRef: ref}, nil
}

func (c StartDiagnosisCommand) Validate() error {
	return c.guard.Validate(ErrStartDiagnosisCommandIsNotConstructed)
}
