package helpers

import (
	"context"
	"sync"
)

// Observable holds the latest value of T. Subscribers receive the current
// value on subscribe and then every value that differs from the previous
// one, in order. Callbacks run on the setter's goroutine and must not call
// Set or unsubscribe on the same observable.
type Observable[T comparable] struct {
	deliver sync.Mutex
	lock    sync.Mutex

	value       T
	nextID      int
	subscribers map[int]func(T)

	noCopy NoCopy
}

func NewObservable[T comparable](initial T) *Observable[T] {
	return &Observable[T]{
		value:       initial,
		subscribers: map[int]func(T){},
	}
}

func (o *Observable[T]) Value() T {
	o.lock.Lock()
	defer o.lock.Unlock()
	return o.value
}

// Set swaps in the new value and notifies subscribers. Returns false if the
// value was unchanged.
func (o *Observable[T]) Set(value T) bool {
	o.deliver.Lock()
	defer o.deliver.Unlock()

	o.lock.Lock()
	if o.value == value {
		o.lock.Unlock()
		return false
	}
	o.value = value
	callbacks := make([]func(T), 0, len(o.subscribers))
	for _, f := range o.subscribers {
		callbacks = append(callbacks, f)
	}
	o.lock.Unlock()

	for _, f := range callbacks {
		f(value)
	}
	return true
}

func (o *Observable[T]) Subscribe(f func(T)) (unsubscribe func()) {
	o.deliver.Lock()
	defer o.deliver.Unlock()

	o.lock.Lock()
	id := o.nextID
	o.nextID++
	o.subscribers[id] = f
	current := o.value
	o.lock.Unlock()

	f(current)

	var once sync.Once
	return func() {
		once.Do(func() {
			o.deliver.Lock()
			defer o.deliver.Unlock()
			o.lock.Lock()
			delete(o.subscribers, id)
			o.lock.Unlock()
		})
	}
}

func (o *Observable[T]) NumSubscribers() int {
	o.lock.Lock()
	defer o.lock.Unlock()
	return len(o.subscribers)
}

// Channel delivers the latest value to a goroutine consumer. Intermediate
// values are dropped if the consumer falls behind. The channel is closed
// once ctx is done.
func (o *Observable[T]) Channel(ctx context.Context) <-chan T {
	result := make(chan T, 1)
	unsubscribe := o.Subscribe(func(t T) {
		select {
		case result <- t:
		default:
			select {
			case <-result:
			default:
			}
			result <- t
		}
	})
	go func() {
		<-ctx.Done()
		unsubscribe()
		close(result)
	}()
	return result
}

// Readable is the consumer side of an Observable.
type Readable[T comparable] interface {
	Value() T
	Subscribe(f func(T)) (unsubscribe func())
	Channel(ctx context.Context) <-chan T
}

var _ Readable[int] = (*Observable[int])(nil)
