package catalog

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

var ErrPartIsNotConstructed = errors.New("Part must be created via NewPart or RestorePart")

// Part is a stocked item. The engine only reads stock to refuse orders that
// need more units than are on hand; it never reserves or decrements stock.
type Part struct {
	id    kernel.UUID
	name  string
	code  string
	price kernel.Money
	stock int
	guard guard.ConstructorGuard
}

func NewPart(name string, code string, price kernel.Money, stock int) (*Part, error) {
	return RestorePart(kernel.NewUUID(), name, code, price, stock)
}

func RestorePart(id kernel.UUID, name string, code string, price kernel.Money, stock int) (*Part, error) {
	var nameErr, stockErr error
	if strings.TrimSpace(name) == "" {
		nameErr = ErrNameIsRequired
	}
	if stock < 0 {
		stockErr = errs.NewValueIsOutOfRangeError("stock", stock, 0, math.MaxInt32)
	}
	if err := errors.Join(id.Validate(), price.Validate(), nameErr, stockErr); err != nil {
		return nil, err
	}
	return &Part{
		id:    id,
		name:  name,
		code:  code,
		price: price,
		stock: stock,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (p *Part) Validate() error {
	return p.guard.Validate(ErrPartIsNotConstructed)
}

func (p *Part) ID() kernel.UUID     { return p.id }
func (p *Part) Name() string        { return p.name }
func (p *Part) Code() string        { return p.code }
func (p *Part) Price() kernel.Money { return p.price }
func (p *Part) Stock() int          { return p.stock }

// EnsureAvailable fails with an InvalidStateError carrying the requested and
// available quantities when stock does not cover quantity.
func (p *Part) EnsureAvailable(quantity int) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if quantity <= 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, p.stock)
	}
	if quantity > p.stock {
		return errs.NewInvalidStateError("part "+p.name,
			fmt.Sprintf("stock of %d", p.stock), fmt.Sprintf("stock of at least %d", quantity))
	}
	return nil
}
