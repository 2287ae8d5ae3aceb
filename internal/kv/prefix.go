package kv

import "context"

type prefixed struct {
	next   Store
	prefix string
}

// Prefixed namespaces every key with prefix so several stores can share one
// backend. An empty prefix returns next unchanged.
func Prefixed(next Store, prefix string) Store {
	if prefix == "" {
		return next
	}
	return &prefixed{next: next, prefix: prefix}
}

func (p *prefixed) Get(ctx context.Context, key string) (string, bool, error) {
	return p.next.Get(ctx, p.prefix+key)
}

func (p *prefixed) Set(ctx context.Context, key, value string) error {
	return p.next.Set(ctx, p.prefix+key, value)
}
