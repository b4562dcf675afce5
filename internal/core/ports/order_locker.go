package ports

import (
	"context"

	"workshop/internal/core/domain/model/kernel"
)

// ReleaseFunc releases a lock obtained from OrderLocker. It is safe to call once.
type ReleaseFunc func()

// OrderLocker serializes workflow transitions on the same order. Lock blocks
// until the lock is held or ctx is done.
type OrderLocker interface {
	Lock(ctx context.Context, orderID kernel.UUID) (ReleaseFunc, error)
}
