package commands

import (
	"errors"

	"workshop/internal/core/domain/model/kernel"
)

var ErrSendBudgetForApprovalCommandIsNotConstructed = errors.New(
	"SendBudgetForApprovalCommand must be created via NewSendBudgetForApprovalCommand")

type SendBudgetForApprovalCommand struct {
	budgetRef
	notes string
}

func NewSendBudgetForApprovalCommand(budgetID kernel.UUID, notes string) (SendBudgetForApprovalCommand, error) {
	ref, err := newBudgetRef(budgetID)
	if err != nil {
		return SendBudgetForApprovalCommand{}, err
	}
	return SendBudgetForApprovalCommand{budgetRef: ref, notes: notes}, nil
}

func (c SendBudgetForApprovalCommand) Validate() error {
	return c.guard.Validate(ErrSendBudgetForApprovalCommandIsNotConstructed)
}

func (c SendBudgetForApprovalCommand) Notes() string {
	return c.notes
}
