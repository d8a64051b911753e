package kvstore

import (
	"context"
	"time"
)

// Observer receives timing for every store operation.
type Observer interface {
	ObserveKVOperation(op string, duration time.Duration, err error)
}

// Instrumented decorates a Store with operation timing. A nil observer
// passes calls straight through.
type Instrumented struct {
	next Store
	obs  Observer
}

// Instrument wraps next with the given observer.
func Instrument(next Store, obs Observer) *Instrumented {
	return &Instrumented{next: next, obs: obs}
}

func (i *Instrumented) Get(ctx context.Context, key string, dest interface{}) error {
	start := time.Now()
	err := i.next.Get(ctx, key, dest)
	i.observe("get", start, err)
	return err
}

func (i *Instrumented) Set(ctx context.Context, key string, value interface{}) error {
	start := time.Now()
	err := i.next.Set(ctx, key, value)
	i.observe("set", start, err)
	return err
}

func (i *Instrumented) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := i.next.Delete(ctx, key)
	i.observe("delete", start, err)
	return err
}

func (i *Instrumented) observe(op string, start time.Time, err error) {
	if i.obs == nil {
		return
	}
	i.obs.ObserveKVOperation(op, time.Since(start), err)
}
