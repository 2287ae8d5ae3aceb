package service_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripstore/internal/metrics"
	"github.com/pkordes/tripstore/internal/service"
)

func TestBroker_DeliversToEverySubscriber(t *testing.T) {
	b := service.NewBroker(nil)
	one, unsubOne := b.Subscribe()
	defer unsubOne()
	two, unsubTwo := b.Subscribe()
	defer unsubTwo()

	e := service.Event{Collection: service.CollectionTrips, Op: "add", ID: "t1"}
	b.Publish(e)

	assert.Equal(t, e, <-one)
	assert.Equal(t, e, <-two)
}

func TestBroker_SlowSubscriberKeepsNewest(t *testing.T) {
	b := service.NewBroker(nil)
	ch, unsub := b.Subscribe()
	defer unsub()

	for _, op := range []string{"add", "update", "delete"} {
		b.Publish(service.Event{Collection: service.CollectionTrips, Op: op})
	}

	got := <-ch
	assert.Equal(t, "delete", got.Op)
	select {
	case extra := <-ch:
		t.Fatalf("expected coalesced delivery, got extra event %+v", extra)
	default:
	}
}

func TestBroker_Unsubscribe(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	b := service.NewBroker(m)
	ch, unsub := b.Subscribe()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Subscribers))

	unsub()
	unsub()

	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Subscribers))
	b.Publish(service.Event{Collection: service.CollectionTrips, Op: "add"})
}

func TestBroker_Close(t *testing.T) {
	b := service.NewBroker(nil)
	ch, unsub := b.Subscribe()

	b.Close()
	unsub()

	_, open := <-ch
	assert.False(t, open)

	late, _ := b.Subscribe()
	_, open = <-late
	require.False(t, open, "subscribing after close yields a closed channel")
}
