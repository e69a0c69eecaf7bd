package observer

const (
	FIRST_VALID_HANDLE Handle = 1
)

type Handle int64

func (h Handle) Valid() bool {
	return h >= FIRST_VALID_HANDLE
}

// Observers is an ordered registry of observers. Unlike a free-list, removing an observer never changes the
// relative order of the remaining ones: notifications always happen in registration order.
// Observers is not safe for concurrent use.
type Observers[T any] struct {
	nextHandle Handle
	entries    []registeredObserver[T]
}

type registeredObserver[T any] struct {
	observer ValueObserver[T]
	handle   Handle
}

func NewObservers[T any]() *Observers[T] {
	return &Observers[T]{nextHandle: FIRST_VALID_HANDLE}
}

// Add registers an observer and returns a handle to remove it. A nil observer is ignored and the
// returned handle is not valid, the same goes for any observer added to a nil registry.
func (o *Observers[T]) Add(observer ValueObserver[T]) (handle Handle) {
	if o == nil || observer == nil {
		return
	}
	if o.nextHandle < FIRST_VALID_HANDLE {
		o.nextHandle = FIRST_VALID_HANDLE
	}

	handle = o.nextHandle
	o.nextHandle++

	o.entries = append(o.entries, registeredObserver[T]{observer: observer, handle: handle})
	return
}

// Remove unregisters the observer with the given handle, false is returned if there is no such observer.
func (o *Observers[T]) Remove(handle Handle) bool {
	if o == nil {
		return false
	}

	for i, entry := range o.entries {
		if entry.handle == handle {
			o.entries = append(o.entries[:i], o.entries[i+1:]...)
			return true
		}
	}
	return false
}

func (o *Observers[T]) RemoveAll() {
	if o == nil {
		return
	}
	clear(o.entries)
	o.entries = o.entries[:0]
}

func (o *Observers[T]) Len() int {
	if o == nil {
		return 0
	}
	return len(o.entries)
}

// List returns the registered observers in registration order followed by extra.
func (o *Observers[T]) List(extra ...ValueObserver[T]) []ValueObserver[T] {
	if o.Len() == 0 {
		return extra
	}

	list := make([]ValueObserver[T], 0, len(o.entries)+len(extra))
	for _, entry := range o.entries {
		list = append(list, entry.observer)
	}
	return append(list, extra...)
}
