package commands

import (
	"errors"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"
)

var ErrRepriceLineCommandIsNotConstructed = errors.New("RepriceLineCommand must be created via NewRepriceLineCommand")

// LineKind selects which order line a reprice targets.
type LineKind string

const (
	ServiceLineKind LineKind = "service"
	PartLineKind    LineKind = "part"
)

// RepriceLineCommand changes the value of a service line, or the unit value of
// a part line, while the quote is still being prepared.
type RepriceLineCommand struct {
	orderRef
	kind   LineKind
	itemID kernel.UUID
	value  kernel.Money
}

func NewRepriceLineCommand(orderID kernel.UUID, kind LineKind, itemID kernel.UUID, value kernel.Money) (RepriceLineCommand, error) {
	ref, err := newOrderRef(orderID)
	if err != nil {
		return RepriceLineCommand{}, err
	}
	if kind != ServiceLineKind && kind != PartLineKind {
		return RepriceLineCommand{}, errs.NewValueIsInvalidError("kind")
	}
	if err = itemID.Validate(); err != nil {
		return RepriceLineCommand{}, err
	}
	if err = value.Validate(); err != nil {
		return RepriceLineCommand{}, err
	}
	return RepriceLineCommand{orderRef: ref, kind: kind, itemID: itemID, value: value}, nil
}

func (c RepriceLineCommand) Validate() error {
	return c.guard.Validate(ErrRepriceLineCommandIsNotConstructed)
}

func (c RepriceLineCommand) Kind() LineKind      { return c.kind }
func (c RepriceLineCommand) ItemID() kernel.UUID { return c.itemID }
func (c RepriceLineCommand) Value() kernel.Money { return c.value }
