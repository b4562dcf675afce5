package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

var (
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
	ErrServicesAreRequired   = errs.NewValueIsRequiredError("at least one service")
)

// Order is the aggregate root of a vehicle service order. It owns its line items
// and budgets and is the only place where either status machine advances.
//
// Invariants:
//   - at least one service line
//   - completedAt is set only in Finalized and Delivered
//   - deliveredAt is set only in Delivered and Returned
//   - the active budget is the most recently created one
//
// Every transition validates all preconditions before mutating anything and
// records one StatusChanged step.
type Order struct {
	id          kernel.UUID
	vehicle     Vehicle
	requestedAt time.Time
	status      Status
	completedAt *time.Time
	deliveredAt *time.Time
	services    []ServiceLine
	parts       []PartLine
	budgets     []*Budget
	events      []StatusChanged
	guard       guard.ConstructorGuard
}

// NewOrder creates an order in Received with no budget.
func NewOrder(
	id kernel.UUID,
	vehicle Vehicle,
	services []ServiceLine,
	parts []PartLine,
	requestedAt time.Time,
) (*Order, error) {
	o := &Order{
		status: Received,
		guard:  guard.NewConstructorGuard(),
	}
	if err := errors.Join(
		o.setID(id),
		o.setVehicle(vehicle),
		o.setRequestedAt(requestedAt),
		o.setServices(services),
		o.setParts(parts),
	); err != nil {
		return nil, err
	}
	return o, nil
}

// RestoreOrder rebuilds an order from storage and checks that the stored
// timestamps agree with the stored status.
func RestoreOrder(
	id kernel.UUID,
	vehicle Vehicle,
	requestedAt time.Time,
	status Status,
	completedAt *time.Time,
	deliveredAt *time.Time,
	services []ServiceLine,
	parts []PartLine,
	budgets []*Budget,
) (*Order, error) {
	o := &Order{
		completedAt: completedAt,
		deliveredAt: deliveredAt,
		guard:       guard.NewConstructorGuard(),
	}
	if err := errors.Join(
		o.setID(id),
		o.setVehicle(vehicle),
		o.setRequestedAt(requestedAt),
		o.setStatus(status),
		o.setServices(services),
		o.setParts(parts),
		o.setBudgets(budgets),
	); err != nil {
		return nil, err
	}
	if err := o.checkTimestamps(); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setVehicle(vehicle Vehicle) error {
	if err := vehicle.Validate(); err != nil {
		return err
	}
	o.vehicle = vehicle
	return nil
}

func (o *Order) setRequestedAt(requestedAt time.Time) error {
	if requestedAt.IsZero() {
		return errs.NewValueIsRequiredError("requested at")
	}
	o.requestedAt = requestedAt
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setServices(services []ServiceLine) error {
	if len(services) == 0 {
		return ErrServicesAreRequired
	}
	seen := make(map[kernel.UUID]struct{}, len(services))
	for _, line := range services {
		if err := line.Validate(); err != nil {
			return err
		}
		if _, dup := seen[line.ServiceID()]; dup {
			return errs.NewValueIsInvalidErrorWithCause("services", fmt.Errorf("service %s is listed twice", line.ServiceID()))
		}
		seen[line.ServiceID()] = struct{}{}
	}
	o.services = append([]ServiceLine(nil), services...)
	return nil
}

func (o *Order) setParts(parts []PartLine) error {
	seen := make(map[kernel.UUID]struct{}, len(parts))
	for _, line := range parts {
		if err := line.Validate(); err != nil {
			return err
		}
		if _, dup := seen[line.PartID()]; dup {
			return errs.NewValueIsInvalidErrorWithCause("parts", fmt.Errorf("part %s is listed twice", line.PartID()))
		}
		seen[line.PartID()] = struct{}{}
	}
	o.parts = append([]PartLine(nil), parts...)
	return nil
}

func (o *Order) setBudgets(budgets []*Budget) error {
	for i, b := range budgets {
		if b == nil {
			return errs.NewValueIsRequiredError("budget")
		}
		if err := b.Validate(); err != nil {
			return err
		}
		if !b.OrderID().IsEqual(o.id) {
			return errs.NewValueIsInvalidErrorWithCause("budget", fmt.Errorf("budget %s belongs to order %s", b.ID(), b.OrderID()))
		}
		if i > 0 && b.CreatedAt().Before(budgets[i-1].CreatedAt()) {
			return errs.NewValueIsInvalidErrorWithCause("budgets", errors.New("budgets must be ordered by creation time"))
		}
	}
	o.budgets = append([]*Budget(nil), budgets...)
	return nil
}

func (o *Order) checkTimestamps() error {
	if (o.completedAt != nil) != o.status.hasCompletion() {
		return errs.NewValueIsInvalidErrorWithCause("completed at",
			fmt.Errorf("completion timestamp does not match status %s", o.status))
	}
	if (o.deliveredAt != nil) != o.status.hasDelivery() {
		return errs.NewValueIsInvalidErrorWithCause("delivered at",
			fmt.Errorf("delivery timestamp does not match status %s", o.status))
	}
	return nil
}

func (o *Order) Validate() error {
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) ID() kernel.UUID         { return o.id }
func (o *Order) Vehicle() Vehicle        { return o.vehicle }
func (o *Order) RequestedAt() time.Time  { return o.requestedAt }
func (o *Order) Status() Status          { return o.status }
func (o *Order) CompletedAt() *time.Time { return o.completedAt }
func (o *Order) DeliveredAt() *time.Time { return o.deliveredAt }

func (o *Order) Services() []ServiceLine {
	return append([]ServiceLine(nil), o.services...)
}

func (o *Order) Parts() []PartLine {
	return append([]PartLine(nil), o.parts...)
}

// Budgets returns every budget, oldest first.
func (o *Order) Budgets() []*Budget {
	return append([]*Budget(nil), o.budgets...)
}

// ActiveBudget is the most recently created budget, nil before diagnosis starts.
func (o *Order) ActiveBudget() *Budget {
	if len(o.budgets) == 0 {
		return nil
	}
	return o.budgets[len(o.budgets)-1]
}

func (o *Order) Budget(id kernel.UUID) (*Budget, bool) {
	for _, b := range o.budgets {
		if b.ID().IsEqual(id) {
			return b, true
		}
	}
	return nil, false
}

func (o *Order) ServicesTotal() kernel.Money {
	total := kernel.ZeroMoney()
	for _, line := range o.services {
		total = total.Add(line.Value())
	}
	return total
}

func (o *Order) PartsTotal() kernel.Money {
	total := kernel.ZeroMoney()
	for _, line := range o.parts {
		total = total.Add(line.Total())
	}
	return total
}

// Total is the value of every budget of this order, derived from the current lines.
func (o *Order) Total() kernel.Money {
	return o.ServicesTotal().Add(o.PartsTotal())
}

// DomainEvents returns the steps recorded since the order was loaded.
func (o *Order) DomainEvents() []StatusChanged {
	return append([]StatusChanged(nil), o.events...)
}

func (o *Order) ClearDomainEvents() {
	o.events = nil
}

func (o *Order) record(from Status, note string, now time.Time, budgets ...BudgetChange) {
	o.events = append(o.events, StatusChanged{
		OrderID:    o.id,
		From:       from,
		To:         o.status,
		Budgets:    budgets,
		Note:       note,
		OccurredAt: now,
	})
}

func (o *Order) activeBudgetIn(allowed ...BudgetStatus) (*Budget, error) {
	active := o.ActiveBudget()
	if active == nil {
		expected := make([]string, 0, len(allowed))
		for _, a := range allowed {
			expected = append(expected, a.String())
		}
		return nil, errs.NewInvalidStateError("budget", "missing", expected...)
	}
	if err := active.Status().Expect(allowed...); err != nil {
		return nil, err
	}
	return active, nil
}

// targetBudget returns the budget addressed by id, which must be the active one.
func (o *Order) targetBudget(budgetID kernel.UUID) (*Budget, error) {
	b, ok := o.Budget(budgetID)
	if !ok {
		return nil, errs.NewObjectNotFoundError("budget", budgetID.String())
	}
	if b != o.ActiveBudget() {
		return nil, errs.NewInvalidStateError("budget", "superseded", "active")
	}
	return b, nil
}

// StartDiagnosis moves Received -> Diagnosing and opens the first budget.
func (o *Order) StartDiagnosis(now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	next, err := o.status.StartDiagnosis()
	if err != nil {
		return err
	}

	budget := newBudget(o.id, now)
	from := o.status
	o.status = next
	o.budgets = append(o.budgets, budget)
	o.record(from, "", now, BudgetChange{BudgetID: budget.ID(), From: BudgetUnknown, To: BudgetCreated})
	return nil
}

// FinishDiagnosis moves the order to Budgeting and the active budget to InElaboration.
func (o *Order) FinishDiagnosis(now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	next, err := o.status.FinishDiagnosis()
	if err != nil {
		return err
	}
	budget, err := o.activeBudgetIn(BudgetCreated)
	if err != nil {
		return err
	}
	nextBudget, err := budget.Status().Elaborate()
	if err != nil {
		return err
	}

	from, budgetFrom := o.status, budget.status
	o.status = next
	budget.status = nextBudget
	o.record(from, "", now, BudgetChange{BudgetID: budget.ID(), From: budgetFrom, To: nextBudget})
	return nil
}

// SendBudgetForApproval moves the order to AwaitingApproval and the budget to PendingApproval.
func (o *Order) SendBudgetForApproval(budgetID kernel.UUID, notes string, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	budget, err := o.targetBudget(budgetID)
	if err != nil {
		return err
	}
	nextBudget, err := budget.Status().Submit()
	if err != nil {
		return err
	}
	next, err := o.status.AwaitApproval()
	if err != nil {
		return err
	}

	from, budgetFrom := o.status, budget.status
	o.status = next
	budget.status = nextBudget
	o.record(from, notes, now, BudgetChange{BudgetID: budget.ID(), From: budgetFrom, To: nextBudget})
	return nil
}

// Resolution is the customer's answer to a pending quote.
type Resolution struct {
	Approved               bool
	RequestNewQuote        bool
	VehicleAlreadyPickedUp bool
	RejectionReason        string
	Notes                  string
}

func (r Resolution) note() string {
	parts := make([]string, 0, 2)
	if r.RejectionReason != "" {
		parts = append(parts, r.RejectionReason)
	}
	if r.Notes != "" {
		parts = append(parts, r.Notes)
	}
	return strings.Join(parts, "; ")
}

// ResolveBudget applies the customer's decision on a PendingApproval budget.
//
//   - approved: order Executing, budget Approved
//   - rejected with a new quote requested: order back to Budgeting, budget
//     Rejected, and a fresh Created budget becomes active
//   - rejected with the vehicle already picked up: order Returned (delivery
//     stamped), budget Rejected
//   - rejected otherwise: order Cancelled, budget Rejected
func (o *Order) ResolveBudget(budgetID kernel.UUID, resolution Resolution, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	budget, err := o.targetBudget(budgetID)
	if err != nil {
		return err
	}
	if err = budget.Status().Expect(BudgetPendingApproval); err != nil {
		return err
	}
	if err = o.status.Expect(AwaitingApproval); err != nil {
		return err
	}

	var next Status
	var nextBudget BudgetStatus
	switch {
	case resolution.Approved:
		next, err = o.status.Approve()
		if err == nil {
			nextBudget, err = budget.Status().Approve()
		}
	case resolution.RequestNewQuote:
		next, err = o.status.Requote()
		if err == nil {
			nextBudget, err = budget.Status().Reject()
		}
	case resolution.VehicleAlreadyPickedUp:
		next, err = o.status.ReturnVehicle()
		if err == nil {
			nextBudget, err = budget.Status().Reject()
		}
	default:
		next, err = o.status.Cancel()
		if err == nil {
			nextBudget, err = budget.Status().Reject()
		}
	}
	if err != nil {
		return err
	}

	from, budgetFrom := o.status, budget.status
	changes := []BudgetChange{{BudgetID: budget.ID(), From: budgetFrom, To: nextBudget}}
	o.status = next
	budget.status = nextBudget
	if !resolution.Approved {
		budget.rejectionReason = resolution.RejectionReason
	}
	if resolution.RequestNewQuote && !resolution.Approved {
		requote := newBudget(o.id, now)
		o.budgets = append(o.budgets, requote)
		changes = append(changes, BudgetChange{BudgetID: requote.ID(), From: BudgetUnknown, To: BudgetCreated})
	}
	if next == Returned {
		o.deliveredAt = &now
	}
	o.record(from, resolution.note(), now, changes...)
	return nil
}

// EnsureExecuting succeeds only while the order is Executing. Execution itself
// starts when the budget is approved; this is the read-only checkpoint.
func (o *Order) EnsureExecuting() error {
	if err := o.Validate(); err != nil {
		return err
	}
	return o.status.Expect(Executing)
}

// FinishService moves Executing -> Finalized and stamps completion.
func (o *Order) FinishService(now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	next, err := o.status.Finish()
	if err != nil {
		return err
	}

	from := o.status
	o.status = next
	o.completedAt = &now
	o.record(from, "", now)
	return nil
}

// DeliverVehicle moves Finalized -> Delivered and stamps delivery.
func (o *Order) DeliverVehicle(now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	next, err := o.status.Deliver()
	if err != nil {
		return err
	}

	from := o.status
	o.status = next
	o.deliveredAt = &now
	o.record(from, "", now)
	return nil
}

// Cancel stops an order before execution. The active budget, if still open, is
// rejected with the cancellation reason. When the vehicle has already been handed
// back the order continues to Returned.
func (o *Order) Cancel(reason string, notes string, vehicleReturned bool, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(reason) == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	next, err := o.status.Cancel()
	if err != nil {
		return err
	}
	returned := Unknown
	if vehicleReturned {
		if returned, err = next.ReturnVehicle(); err != nil {
			return err
		}
	}

	note := reason
	if notes != "" {
		note = reason + "; " + notes
	}

	var changes []BudgetChange
	if budget := o.ActiveBudget(); budget != nil && !budget.Status().IsFinal() {
		nextBudget, rejectErr := budget.Status().Reject()
		if rejectErr != nil {
			return rejectErr
		}
		changes = append(changes, BudgetChange{BudgetID: budget.ID(), From: budget.status, To: nextBudget})
		budget.status = nextBudget
		budget.rejectionReason = reason
	}

	from := o.status
	o.status = next
	o.record(from, note, now, changes...)

	if vehicleReturned {
		o.status = returned
		o.deliveredAt = &now
		o.record(next, note, now)
	}
	return nil
}

// ReturnVehicleWithoutService moves Cancelled -> Returned and stamps delivery.
// Completion is left unset since no service was performed.
func (o *Order) ReturnVehicleWithoutService(reason string, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := o.status.Expect(Cancelled); err != nil {
		return err
	}
	next, err := o.status.ReturnVehicle()
	if err != nil {
		return err
	}

	from := o.status
	o.status = next
	o.deliveredAt = &now
	o.record(from, reason, now)
	return nil
}

// RepriceService corrects the applied value of a service line before the quote
// reaches the customer.
func (o *Order) RepriceService(serviceID kernel.UUID, value kernel.Money) error {
	if err := errors.Join(o.Validate(), value.Validate()); err != nil {
		return err
	}
	if err := o.status.CanReprice(); err != nil {
		return err
	}
	for i, line := range o.services {
		if line.ServiceID().IsEqual(serviceID) {
			o.services[i] = line.withValue(value)
			return nil
		}
	}
	return errs.NewObjectNotFoundError("service", serviceID.String())
}

// RepricePart corrects the unit value of a part line before the quote reaches the customer.
func (o *Order) RepricePart(partID kernel.UUID, unitValue kernel.Money) error {
	if err := errors.Join(o.Validate(), unitValue.Validate()); err != nil {
		return err
	}
	if err := o.status.CanReprice(); err != nil {
		return err
	}
	for i, line := range o.parts {
		if line.PartID().IsEqual(partID) {
			o.parts[i] = line.withUnitValue(unitValue)
			return nil
		}
	}
	return errs.NewObjectNotFoundError("part", partID.String())
}
