package switcher

import (
	"context"
	"sync/atomic"
)

// Owner identifies the caller that holds an activation. It stands in for a
// thread id: an activation may only be re-entered by the owner that started
// it.
type Owner uint64

var lastOwner atomic.Uint64

// NewOwner returns a process-unique owner token.
func NewOwner() Owner {
	return Owner(lastOwner.Add(1))
}

type ownerKey struct{}

// WithOwner returns a context carrying owner.
func WithOwner(ctx context.Context, owner Owner) context.Context {
	return context.WithValue(ctx, ownerKey{}, owner)
}

// OwnerFrom returns the owner carried by ctx.
func OwnerFrom(ctx context.Context) (Owner, bool) {
	o, ok := ctx.Value(ownerKey{}).(Owner)
	return o, ok
}
