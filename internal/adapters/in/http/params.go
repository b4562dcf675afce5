package http

import (
	"strings"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const dateLayout = "2006-01-02"

func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	return parseUUID(name, c.Param(name))
}

func parseUUID(name string, raw string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(strings.TrimSpace(raw))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

func optionalUUID(c echo.Context, name string) (*kernel.UUID, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	id, err := parseUUID(name, raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// optionalTime accepts RFC 3339 timestamps or plain dates. A plain date used
// as an upper bound covers the whole day.
func optionalTime(c echo.Context, name string, endOfDay bool) (*time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

func optionalMoney(c echo.Context, name string) (*kernel.Money, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	m, err := kernel.MoneyFromString(raw)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return &m, nil
}
