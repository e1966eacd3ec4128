package storage

import "context"

type prefixed struct {
	Store
	prefix string
}

// WithPrefix namespaces every key of store, e.g. one score profile per player on a shared Redis.
// Closing the returned store is a no-op; the underlying store is owned by the caller.
func WithPrefix(store Store, prefix string) Store {
	if prefix == "" {
		return store
	}

	return &prefixed{
		Store:  store,
		prefix: prefix,
	}
}

func (that *prefixed) Get(ctx context.Context, key string) ([]byte, error) {
	return that.Store.Get(ctx, that.prefix+key)
}

func (that *prefixed) Set(ctx context.Context, key string, value []byte) error {
	return that.Store.Set(ctx, that.prefix+key, value)
}

func (that *prefixed) Close() error {
	return nil
}
