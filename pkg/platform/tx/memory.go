package tx

import (
	"context"
	"slices"
	"sync"
	"time"

	dErrors "customercore/pkg/domain-errors"
)

// numShards spreads lock keys across mutexes to keep unrelated customers from
// contending with each other.
const numShards = 128

type lockKeysKey struct{}

type heldKey struct{}

// WithLockKeys attaches the keys the in-memory runner must hold for the
// duration of the transaction. Keys accumulate across calls.
func WithLockKeys(ctx context.Context, keys ...string) context.Context {
	existing, _ := ctx.Value(lockKeysKey{}).([]string)
	merged := append(slices.Clone(existing), keys...)
	return context.WithValue(ctx, lockKeysKey{}, merged)
}

// LockKeys returns the lock keys attached to ctx.
func LockKeys(ctx context.Context) []string {
	keys, _ := ctx.Value(lockKeysKey{}).([]string)
	return keys
}

// MemoryRunner provides the transactional boundary for in-memory stores using
// sharded mutexes. Shards are always acquired in ascending order so two
// transactions with overlapping keys cannot deadlock.
type MemoryRunner struct {
	shards  [numShards]sync.Mutex
	timeout time.Duration
}

func NewMemoryRunner() *MemoryRunner {
	return &MemoryRunner{timeout: DefaultTimeout}
}

func (r *MemoryRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(heldKey{}) != nil {
		return fn(ctx)
	}
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	shards := r.selectShards(LockKeys(ctx))
	for _, shard := range shards {
		r.shards[shard].Lock()
	}
	defer func() {
		for i := len(shards) - 1; i >= 0; i-- {
			r.shards[shards[i]].Unlock()
		}
	}()

	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	return fn(context.WithValue(ctx, heldKey{}, true))
}

// selectShards maps keys to a sorted, de-duplicated shard list. No keys means
// shard 0, which serializes all unkeyed transactions together.
func (r *MemoryRunner) selectShards(keys []string) []int {
	if len(keys) == 0 {
		return []int{0}
	}
	shards := make([]int, 0, len(keys))
	for _, key := range keys {
		shards = append(shards, int(hashKey(key)%numShards))
	}
	slices.Sort(shards)
	return slices.Compact(shards)
}

// hashKey is FNV-1a.
func hashKey(s string) uint32 {
	const (
		fnvOffset = 2166136261
		fnvPrime  = 16777619
	)
	h := uint32(fnvOffset)
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= fnvPrime
	}
	return h
}
