package queries

import (
	"errors"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

// DefaultReportWindow is used when a report is requested without a start date.
const DefaultReportWindow = 30 * 24 * time.Hour

var ErrGetTurnaroundReportQueryIsNotConstructed = errors.New(
	"GetTurnaroundReportQuery must be created via NewGetTurnaroundReportQuery")

// GetTurnaroundReportQuery asks for turnaround statistics of delivered orders
// requested within [From, To]. A missing To is now and a missing From is
// To minus DefaultReportWindow.
type GetTurnaroundReportQuery struct {
	from       *time.Time
	to         *time.Time
	customerID *kernel.UUID
	minValue   *kernel.Money
	guard      guard.ConstructorGuard
}

func NewGetTurnaroundReportQuery(
	from, to *time.Time,
	customerID *kernel.UUID,
	minValue *kernel.Money,
) (GetTurnaroundReportQuery, error) {
	if from != nil && to != nil && from.After(*to) {
		return GetTurnaroundReportQuery{}, errs.NewValueIsOutOfRangeError(
			"from", from.Format(time.RFC3339), "", to.Format(time.RFC3339))
	}
	if minValue != nil {
		if err := minValue.Validate(); err != nil {
			return GetTurnaroundReportQuery{}, err
		}
	}
	return GetTurnaroundReportQuery{
		from:       from,
		to:         to,
		customerID: customerID,
		minValue:   minValue,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q GetTurnaroundReportQuery) Validate() error {
	return q.guard.Validate(ErrGetTurnaroundReportQueryIsNotConstructed)
}

// Window resolves the reporting window against now.
func (q GetTurnaroundReportQuery) Window(now time.Time) (time.Time, time.Time) {
	to := now
	if q.to != nil {
		to = *q.to
	}
	from := to.Add(-DefaultReportWindow)
	if q.from != nil {
		from = *q.from
	}
	return from, to
}

func (q GetTurnaroundReportQuery) CustomerID() *kernel.UUID { return q.customerID }
func (q GetTurnaroundReportQuery) MinValue() *kernel.Money  { return q.minValue }
