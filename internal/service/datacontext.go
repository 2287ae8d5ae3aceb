package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/pkordes/tripstore/internal/catalog"
	"github.com/pkordes/tripstore/internal/domain"
	"github.com/pkordes/tripstore/internal/itinerary"
	"github.com/pkordes/tripstore/internal/metrics"
	"github.com/pkordes/tripstore/internal/repo"
	"github.com/pkordes/tripstore/internal/views"
)

// Options configures a DataContext. Zero fields get defaults.
type Options struct {
	Logger  *slog.Logger
	Metrics *metrics.Metrics
	// Now is the clock used by derived views. Defaults to time.Now.
	Now func() time.Time
	// Location decides calendar days for views and itinerary grouping.
	// Defaults to time.Local.
	Location *time.Location
}

// DataContext is the one facade screens use. Create it once in main and
// pass it by reference; it owns the store for its whole lifetime.
type DataContext struct {
	store  Store
	broker *Broker
	log    *slog.Logger
	now    func() time.Time
	loc    *time.Location

	startOnce sync.Once
	ready     chan struct{}
}

// New wraps store. Call Start to load persisted data.
func New(store Store, opts Options) *DataContext {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &DataContext{
		store:  store,
		broker: NewBroker(opts.Metrics),
		log:    opts.Logger,
		now:    opts.Now,
		loc:    opts.Location,
		ready:  make(chan struct{}),
	}
}

// Start loads persisted data in the background and returns immediately.
// Ready is closed once loading has finished, whether or not it succeeded.
// Calls after the first are no-ops.
func (d *DataContext) Start(ctx context.Context) {
	d.startOnce.Do(func() {
		go func() {
			defer close(d.ready)
			if err := d.store.Load(ctx); err != nil {
				d.log.Error("initial load aborted", "error", err)
				return
			}
			d.broker.Publish(Event{Collection: CollectionAll, Op: "load"})
		}()
	})
}

// Ready is closed when the initial load has finished.
func (d *DataContext) Ready() <-chan struct{} { return d.ready }

// Loaded reports whether persisted data has been merged into memory.
func (d *DataContext) Loaded() bool { return d.store.Loaded() }

// Durability reports when mutations reach the backing store.
func (d *DataContext) Durability() repo.Durability { return d.store.Durability() }

// Location is the timezone used for calendar days.
func (d *DataContext) Location() *time.Location { return d.loc }

// Subscribe returns a channel of change events and a func to unsubscribe.
func (d *DataContext) Subscribe() (<-chan Event, func()) { return d.broker.Subscribe() }

// Flush writes pending changes to the backing store now.
func (d *DataContext) Flush(ctx context.Context) error { return d.store.Flush(ctx) }

// Close ends all subscriptions and flushes pending writes.
func (d *DataContext) Close(ctx context.Context) error {
	d.broker.Close()
	if err := d.store.Close(ctx); err != nil {
		return fmt.Errorf("service.DataContext.Close: %w", err)
	}
	return nil
}

func (d *DataContext) publish(collection, op, id string) {
	d.broker.Publish(Event{Collection: collection, Op: op, ID: id})
}

// ---- trips ----

// TripView is a trip together with its calendar state.
type TripView struct {
	domain.Trip
	DateState views.CalendarState `json:"dateState"`
}

func (d *DataContext) AddTrip(in domain.TripInput) (domain.Trip, error) {
	t, err := d.store.AddTrip(in)
	if err != nil {
		return domain.Trip{}, err
	}
	d.publish(CollectionTrips, "add", t.ID)
	return t, nil
}

// UpdateTrip patches a trip. An unknown id is a silent no-op.
func (d *DataContext) UpdateTrip(id string, patch domain.TripPatch) error {
	if err := d.store.UpdateTrip(id, patch); err != nil {
		return err
	}
	d.publish(CollectionTrips, "update", id)
	return nil
}

func (d *DataContext) DeleteTrip(id string) {
	if d.store.DeleteTrip(id) {
		d.publish(CollectionTrips, "delete", id)
	}
}

func (d *DataContext) SetReview(id string, in domain.ReviewInput) (domain.Trip, error) {
	t, err := d.store.SetReview(id, in)
	if err != nil {
		return domain.Trip{}, err
	}
	d.publish(CollectionTrips, "review", id)
	return t, nil
}

func (d *DataContext) Trips() []domain.Trip { return d.store.Trips() }

// Trip returns one trip with its calendar state.
// Returns domain.ErrNotFound if no trip with that id exists.
func (d *DataContext) Trip(id string) (TripView, error) {
	t, err := d.store.Trip(id)
	if err != nil {
		return TripView{}, err
	}
	return TripView{Trip: t, DateState: views.DateState(t, d.now())}, nil
}

// SortedTrips filters and orders trips for the trip list screen.
func (d *DataContext) SortedTrips(f views.TripFilter) []domain.Trip {
	return views.SortTrips(d.store.Trips(), f)
}

// Stats summarises completed trips and reviews.
func (d *DataContext) Stats() views.TravelStats { return views.Stats(d.store.Trips()) }

// ---- itinerary ----

func (d *DataContext) AddItineraryItem(tripID string, in domain.ItemInput) (domain.ItineraryItem, error) {
	it, err := d.store.AddItineraryItem(tripID, in)
	if err != nil {
		return domain.ItineraryItem{}, err
	}
	d.publish(CollectionTrips, "itinerary_add", tripID)
	return it, nil
}

func (d *DataContext) UpdateItineraryItem(tripID, itemID string, patch domain.ItemPatch) error {
	if err := d.store.UpdateItineraryItem(tripID, itemID, patch); err != nil {
		return err
	}
	d.publish(CollectionTrips, "itinerary_update", tripID)
	return nil
}

func (d *DataContext) ToggleItineraryItem(tripID, itemID string) error {
	if err := d.store.ToggleItineraryItem(tripID, itemID); err != nil {
		return err
	}
	d.publish(CollectionTrips, "itinerary_toggle", tripID)
	return nil
}

func (d *DataContext) DeleteItineraryItem(tripID, itemID string) {
	if d.store.DeleteItineraryItem(tripID, itemID) {
		d.publish(CollectionTrips, "itinerary_delete", tripID)
	}
}

func (d *DataContext) ItineraryItem(tripID, itemID string) (domain.ItineraryItem, error) {
	return d.store.ItineraryItem(tripID, itemID)
}

// Itinerary returns the trip's items grouped by calendar day.
// Returns domain.ErrNotFound if the trip does not exist.
func (d *DataContext) Itinerary(tripID string) ([]itinerary.Day, error) {
	t, err := d.store.Trip(tripID)
	if err != nil {
		return nil, err
	}
	return itinerary.Days(t.Itinerary, d.loc), nil
}

// ---- bookings ----

func (d *DataContext) AddBooking(in domain.BookingInput) (domain.Booking, error) {
	b, err := d.store.AddBooking(in)
	if err != nil {
		return domain.Booking{}, err
	}
	d.publish(CollectionBookings, "add", b.ID)
	return b, nil
}

// BookFromCatalog books a catalog entry.
func (d *DataContext) BookFromCatalog(req catalog.Request) (domain.Booking, error) {
	in, err := catalog.Build(req)
	if err != nil {
		return domain.Booking{}, err
	}
	return d.AddBooking(in)
}

func (d *DataContext) CancelBooking(id string) {
	if d.store.CancelBooking(id) {
		d.publish(CollectionBookings, "cancel", id)
	}
}

func (d *DataContext) Bookings() []domain.Booking { return d.store.Bookings() }

func (d *DataContext) Booking(id string) (domain.Booking, error) { return d.store.Booking(id) }

// UpcomingBookings returns active bookings from today on, newest first.
func (d *DataContext) UpcomingBookings() []domain.Booking {
	return views.UpcomingBookings(d.store.Bookings(), d.now(), d.loc)
}

// BookingHistory returns past or cancelled bookings matching f, newest first.
func (d *DataContext) BookingHistory(f views.BookingFilter) []domain.Booking {
	return views.BookingHistory(d.store.Bookings(), d.now(), d.loc, f)
}

// ---- saved items ----

func (d *DataContext) AddSavedItem(item domain.SavedItem) error {
	if err := d.store.AddSavedItem(item); err != nil {
		return err
	}
	d.publish(CollectionSavedItems, "add", item.ID)
	return nil
}

func (d *DataContext) RemoveSavedItem(id string) {
	if d.store.RemoveSavedItem(id) {
		d.publish(CollectionSavedItems, "remove", id)
	}
}

// ToggleSavedItem flips membership and reports whether item is now saved.
func (d *DataContext) ToggleSavedItem(item domain.SavedItem) (bool, error) {
	saved, err := d.store.ToggleSavedItem(item)
	if err != nil {
		return false, err
	}
	d.publish(CollectionSavedItems, "toggle", item.ID)
	return saved, nil
}

func (d *DataContext) IsItemSaved(id string) bool { return d.store.IsItemSaved(id) }

func (d *DataContext) SavedItems() []domain.SavedItem { return d.store.SavedItems() }

// ---- export ----

// Export returns the flat trip and itinerary rows.
func (d *DataContext) Export() []domain.ExportRow { return ExportRows(d.store.Trips()) }
