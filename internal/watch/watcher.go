// Package watch implements the live collection subscriber: a standing
// change-stream subscription that republishes the entire current state of
// one collection to its consumers on every server-pushed change.
package watch

import (
	"context"
	"log"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"
)

// changeStream abstracts *mongo.ChangeStream so the run loop can be tested
// without a live deployment.
type changeStream interface {
	Next(ctx context.Context) bool
	Err() error
	Close(ctx context.Context) error
}

// StreamOpener establishes the change stream for a watcher.
type StreamOpener func(ctx context.Context) (changeStream, error)

// CollectionOpener returns a StreamOpener for a real collection.
func CollectionOpener(coll *mongo.Collection) StreamOpener {
	return func(ctx context.Context) (changeStream, error) {
		return coll.Watch(ctx, mongo.Pipeline{})
	}
}

// Watcher owns one subscription. Each event triggers a re-fetch of the
// full collection (snapshots are complete states, never diffs), mapped
// through fetch into the typed shape consumers expect. The mapping step is
// pure and idempotent.
type Watcher[T any] struct {
	name  string
	open  StreamOpener
	fetch func(ctx context.Context) ([]T, error)

	mu        sync.Mutex
	latest    []T
	hasLatest bool
	subs      map[int]chan []T
	nextSubID int

	loadingMu sync.Mutex
	loading   bool
}

// New creates a watcher over one collection. name is used for logging only.
func New[T any](name string, open StreamOpener, fetch func(ctx context.Context) ([]T, error)) *Watcher[T] {
	return &Watcher[T]{
		name:    name,
		open:    open,
		fetch:   fetch,
		subs:    make(map[int]chan []T),
		loading: true,
	}
}

// Loading reports whether the initial snapshot is still pending. After a
// subscription error it returns false even though the data may be stale.
func (w *Watcher[T]) Loading() bool {
	w.loadingMu.Lock()
	defer w.loadingMu.Unlock()
	return w.loading
}

func (w *Watcher[T]) setLoading(v bool) {
	w.loadingMu.Lock()
	w.loading = v
	w.loadingMu.Unlock()
}

// Latest returns the most recently published snapshot.
func (w *Watcher[T]) Latest() ([]T, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.latest, w.hasLatest
}

// Subscribe registers a consumer. The channel carries full snapshots with
// latest-wins delivery: a slow consumer only ever misses intermediate
// states, never the current one. The caller owns the returned cancel and
// must invoke it when no longer interested; failing to do so leaks the
// registration but cannot corrupt data.
func (w *Watcher[T]) Subscribe() (<-chan []T, func()) {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := w.nextSubID
	w.nextSubID++
	ch := make(chan []T, 1)
	w.subs[id] = ch

	if w.hasLatest {
		ch <- w.latest
	}

	cancel := func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		delete(w.subs, id)
	}
	return ch, cancel
}

// Run drives the subscription until the context is cancelled or the
// stream fails. Errors are logged and degrade the watcher to "not loading
// but possibly stale"; there is no automatic reconnect.
func (w *Watcher[T]) Run(ctx context.Context) {
	log.Printf("watcher %s: starting", w.name)

	if err := w.publishCurrent(ctx); err != nil {
		log.Printf("watcher %s: initial fetch failed: %v", w.name, err)
		w.setLoading(false)
		return
	}
	w.setLoading(false)

	stream, err := w.open(ctx)
	if err != nil {
		log.Printf("watcher %s: failed to open change stream: %v", w.name, err)
		return
	}
	defer stream.Close(context.Background())

	for stream.Next(ctx) {
		if err := w.publishCurrent(ctx); err != nil {
			log.Printf("watcher %s: snapshot refresh failed: %v", w.name, err)
		}
	}

	if err := stream.Err(); err != nil && ctx.Err() == nil {
		log.Printf("watcher %s: change stream closed with error: %v", w.name, err)
	}
	log.Printf("watcher %s: stopped", w.name)
}

// publishCurrent re-fetches the full collection and fans it out.
func (w *Watcher[T]) publishCurrent(ctx context.Context) error {
	items, err := w.fetch(ctx)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.latest = items
	w.hasLatest = true
	for _, ch := range w.subs {
		select {
		case <-ch: // drop the stale snapshot
		default:
		}
		ch <- items
	}
	return nil
}
