package queries

import (
	"errors"
	"time"

	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

var ErrGetExecutionSummaryQueryIsNotConstructed = errors.New(
	"GetExecutionSummaryQuery must be created via NewGetExecutionSummaryQuery")

// GetExecutionSummaryQuery lists every order with its timings plus overall and
// per-customer averages. Without bounds it covers the whole history.
type GetExecutionSummaryQuery struct {
	from  *time.Time
	to    *time.Time
	guard guard.ConstructorGuard
}

func NewGetExecutionSummaryQuery(from, to *time.Time) (GetExecutionSummaryQuery, error) {
	if from != nil && to != nil && from.After(*to) {
		return GetExecutionSummaryQuery{}, errs.NewValueIsOutOfRangeError(
			"from", from.Format(time.RFC3339), "", to.Format(time.RFC3339))
	}
	return GetExecutionSummaryQuery{from: from, to: to, guard: guard.NewConstructorGuard()}, nil
}

func (q GetExecutionSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetExecutionSummaryQueryIsNotConstructed)
}

func (q GetExecutionSummaryQuery) Window(now time.Time) (time.Time, time.Time) {
	from, to := time.Time{}, now
	if q.from != nil {
		from = *q.from
	}
	if q.to != nil {
		to = *q.to
	}
	return from, to
}
