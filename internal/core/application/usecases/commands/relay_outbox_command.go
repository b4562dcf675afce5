package commands

import (
	"errors"
	"strings"

	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

var ErrRelayOutboxCommandIsNotConstructed = errors.New("RelayOutboxCommand must be created via NewRelayOutboxCommand")

// RelayOutboxCommand publishes up to BatchSize pending workflow events to Topic.
type RelayOutboxCommand struct {
	batchSize int
	topic     string
	guard     guard.ConstructorGuard
}

func NewRelayOutboxCommand(batchSize int, topic string) (RelayOutboxCommand, error) {
	if batchSize <= 0 {
		return RelayOutboxCommand{}, errs.NewValueIsOutOfRangeError("batch size", batchSize, 1, "unbounded")
	}
	if strings.TrimSpace(topic) == "" {
		return RelayOutboxCommand{}, errs.NewValueIsRequiredError("topic")
	}
	return RelayOutboxCommand{batchSize: batchSize, topic: topic, guard: guard.NewConstructorGuard()}, nil
}

func (c RelayOutboxCommand) Validate() error {
	return c.guard.Validate(ErrRelayOutboxCommandIsNotConstructed)
}

func (c RelayOutboxCommand) BatchSize() int { return c.batchSize }
func (c RelayOutboxCommand) Topic() string  { return c.topic }
