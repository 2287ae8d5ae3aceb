package kv

import (
	"context"
	"time"

	"github.com/pkordes/tripstore/internal/metrics"
)

type instrumented struct {
	next Store
	m    *metrics.Metrics
}

// Instrument records the outcome and latency of every call on m.
// A nil m returns next unchanged.
func Instrument(next Store, m *metrics.Metrics) Store {
	if m == nil {
		return next
	}
	return &instrumented{next: next, m: m}
}

func (s *instrumented) Get(ctx context.Context, key string) (string, bool, error) {
	start := time.Now()
	v, ok, err := s.next.Get(ctx, key)
	s.m.ObserveKV("get", err, time.Since(start))
	return v, ok, err
}

func (s *instrumented) Set(ctx context.Context, key, value string) error {
	start := time.Now()
	err := s.next.Set(ctx, key, value)
	s.m.ObserveKV("set", err, time.Since(start))
	return err
}
