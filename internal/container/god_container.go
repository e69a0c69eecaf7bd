package container

import (
	"github.com/emirpasic/gods/sets/hashset"
	"github.com/jlibgo/jlib/internal/observer"
	"github.com/jlibgo/jlib/internal/sequence"
	"github.com/rs/zerolog"
)

// Delegates holds the implementation of each capability of a GodContainer, a nil field leaves the
// capability unconfigured.
type Delegates[T any] struct {
	Counter          Counter
	EmptinessChecker EmptinessChecker
	ItemContainer    ItemContainer[T]
	ItemsContainer   ItemsContainer[T]
	ItemRemover      ItemRemover[T]
	ItemsRemover     ItemsRemover[T]
	AllRemover       AllRemover[T]
	Retainer         Retainer[T]
	SliceConverter   SliceConverter[T]
	SetConverter     SetConverter
	Traversable      Traversable[T]
	EqualItems       EqualItemsChecker[T]
	TraverserCreator TraverserCreator[T]
}

// A GodContainer assembles the full container surface from independent capability implementations.
// Callers should depend on the narrow capability interfaces (Counter, ItemRemover, ...) rather than on
// GodContainer. Invoking an unconfigured capability fails with a CapabilityError.
//
// GodContainer is not safe for concurrent use.
type GodContainer[T any] struct {
	counter          Counter
	emptinessChecker EmptinessChecker
	itemContainer    ItemContainer[T]
	itemsContainer   ItemsContainer[T]
	itemRemover      ItemRemover[T]
	itemsRemover     ItemsRemover[T]
	allRemover       AllRemover[T]
	retainer         Retainer[T]
	sliceConverter   SliceConverter[T]
	setConverter     SetConverter
	traversable      Traversable[T]
	equalItems       EqualItemsChecker[T]
	traverserCreator TraverserCreator[T]

	logger zerolog.Logger
}

func New[T any](delegates Delegates[T]) *GodContainer[T] {
	c := &GodContainer[T]{logger: zerolog.Nop()}

	c.SetCounter(delegates.Counter)
	c.SetEmptinessChecker(delegates.EmptinessChecker)
	c.SetItemContainer(delegates.ItemContainer)
	c.SetItemsContainer(delegates.ItemsContainer)
	c.SetItemRemover(delegates.ItemRemover)
	c.SetItemsRemover(delegates.ItemsRemover)
	c.SetAllRemover(delegates.AllRemover)
	c.SetRetainer(delegates.Retainer)
	c.SetSliceConverter(delegates.SliceConverter)
	c.SetSetConverter(delegates.SetConverter)
	c.SetTraversable(delegates.Traversable)
	c.SetEqualItemsChecker(delegates.EqualItems)
	c.SetTraverserCreator(delegates.TraverserCreator)
	return c
}

func (c *GodContainer[T]) SetLogger(logger zerolog.Logger) {
	c.logger = logger
}

func (c *GodContainer[T]) disabled(capability Capability) disabled[T] {
	return disabled[T]{capability: capability, logger: &c.logger}
}

// Configured reports whether the capability has an implementation.
func (c *GodContainer[T]) Configured(capability Capability) bool {
	var delegate any

	switch capability {
	case CountCapability:
		delegate = c.counter
	case EmptinessCapability:
		delegate = c.emptinessChecker
	case ContainsItemCapability:
		delegate = c.itemContainer
	case ContainsItemsCapability:
		delegate = c.itemsContainer
	case RemoveItemCapability:
		delegate = c.itemRemover
	case RemoveItemsCapability:
		delegate = c.itemsRemover
	case RemoveAllCapability:
		delegate = c.allRemover
	case RetainCapability:
		delegate = c.retainer
	case ToSliceCapability:
		delegate = c.sliceConverter
	case ToSetCapability:
		delegate = c.setConverter
	case TraverseCapability:
		delegate = c.traversable
	case EqualItemsCapability:
		delegate = c.equalItems
	case CreateTraverserCapability:
		delegate = c.traverserCreator
	default:
		return false
	}

	_, isDisabled := delegate.(disabled[T])
	return !isDisabled
}

// The setters below replace the implementation of a capability, passing nil unconfigures it.

func (c *GodContainer[T]) SetCounter(delegate Counter) {
	if delegate == nil {
		delegate = c.disabled(CountCapability)
	}
	c.counter = delegate
}

func (c *GodContainer[T]) SetEmptinessChecker(delegate EmptinessChecker) {
	if delegate == nil {
		delegate = c.disabled(EmptinessCapability)
	}
	c.emptinessChecker = delegate
}

func (c *GodContainer[T]) SetItemContainer(delegate ItemContainer[T]) {
	if delegate == nil {
		delegate = c.disabled(ContainsItemCapability)
	}
	c.itemContainer = delegate
}

func (c *GodContainer[T]) SetItemsContainer(delegate ItemsContainer[T]) {
	if delegate == nil {
		delegate = c.disabled(ContainsItemsCapability)
	}
	c.itemsContainer = delegate
}

func (c *GodContainer[T]) SetItemRemover(delegate ItemRemover[T]) {
	if delegate == nil {
		delegate = c.disabled(RemoveItemCapability)
	}
	c.itemRemover = delegate
}

func (c *GodContainer[T]) SetItemsRemover(delegate ItemsRemover[T]) {
	if delegate == nil {
		delegate = c.disabled(RemoveItemsCapability)
	}
	c.itemsRemover = delegate
}

func (c *GodContainer[T]) SetAllRemover(delegate AllRemover[T]) {
	if delegate == nil {
		delegate = c.disabled(RemoveAllCapability)
	}
	c.allRemover = delegate
}

func (c *GodContainer[T]) SetRetainer(delegate Retainer[T]) {
	if delegate == nil {
		delegate = c.disabled(RetainCapability)
	}
	c.retainer = delegate
}

func (c *GodContainer[T]) SetSliceConverter(delegate SliceConverter[T]) {
	if delegate == nil {
		delegate = c.disabled(ToSliceCapability)
	}
	c.sliceConverter = delegate
}

func (c *GodContainer[T]) SetSetConverter(delegate SetConverter) {
	if delegate == nil {
		delegate = c.disabled(ToSetCapability)
	}
	c.setConverter = delegate
}

func (c *GodContainer[T]) SetTraversable(delegate Traversable[T]) {
	if delegate == nil {
		delegate = c.disabled(TraverseCapability)
	}
	c.traversable = delegate
}

func (c *GodContainer[T]) SetEqualItemsChecker(delegate EqualItemsChecker[T]) {
	if delegate == nil {
		delegate = c.disabled(EqualItemsCapability)
	}
	c.equalItems = delegate
}

func (c *GodContainer[T]) SetTraverserCreator(delegate TraverserCreator[T]) {
	if delegate == nil {
		delegate = c.disabled(CreateTraverserCapability)
	}
	c.traverserCreator = delegate
}

func (c *GodContainer[T]) Count() (int, error) {
	return c.counter.Count()
}

func (c *GodContainer[T]) IsEmpty() (bool, error) {
	return c.emptinessChecker.IsEmpty()
}

func (c *GodContainer[T]) Contains(item T) (bool, error) {
	return c.itemContainer.Contains(item)
}

func (c *GodContainer[T]) ContainsAll(items []T) (bool, error) {
	return c.itemsContainer.ContainsAll(items)
}

func (c *GodContainer[T]) Remove(item T, observers ...observer.ValueObserver[T]) error {
	return c.itemRemover.Remove(item, observers...)
}

func (c *GodContainer[T]) RemoveItems(items []T, observers ...observer.ValueObserver[T]) error {
	return c.itemsRemover.RemoveItems(items, observers...)
}

func (c *GodContainer[T]) RemoveAll(observers ...observer.ValueObserver[T]) error {
	return c.allRemover.RemoveAll(observers...)
}

func (c *GodContainer[T]) Retain(items []T, observers ...observer.ValueObserver[T]) error {
	return c.retainer.Retain(items, observers...)
}

func (c *GodContainer[T]) ToSlice() ([]T, error) {
	return c.sliceConverter.ToSlice()
}

func (c *GodContainer[T]) ToSet() (*hashset.Set, error) {
	return c.setConverter.ToSet()
}

func (c *GodContainer[T]) ForEach(fn func(item T) error) error {
	return c.traversable.ForEach(fn)
}

func (c *GodContainer[T]) ContainsEqualItems(items []T) (bool, error) {
	return c.equalItems.ContainsEqualItems(items)
}

func (c *GodContainer[T]) CreateTraverser() (*sequence.Traverser[T], error) {
	return c.traverserCreator.CreateTraverser()
}

// disabled implements every capability by failing with a CapabilityError.
type disabled[T any] struct {
	capability Capability
	logger     *zerolog.Logger
}

func (d disabled[T]) fail() error {
	d.logger.Warn().Stringer("capability", d.capability).Msg("unconfigured capability invoked")
	return CapabilityError{Capability: d.capability}
}

func (d disabled[T]) Count() (int, error) {
	return 0, d.fail()
}

func (d disabled[T]) IsEmpty() (bool, error) {
	return false, d.fail()
}

func (d disabled[T]) Contains(item T) (bool, error) {
	return false, d.fail()
}

func (d disabled[T]) ContainsAll(items []T) (bool, error) {
	return false, d.fail()
}

func (d disabled[T]) Remove(item T, observers ...observer.ValueObserver[T]) error {
	return d.fail()
}

func (d disabled[T]) RemoveItems(items []T, observers ...observer.ValueObserver[T]) error {
	return d.fail()
}

func (d disabled[T]) RemoveAll(observers ...observer.ValueObserver[T]) error {
	return d.fail()
}

func (d disabled[T]) Retain(items []T, observers ...observer.ValueObserver[T]) error {
	return d.fail()
}

func (d disabled[T]) ToSlice() ([]T, error) {
	return nil, d.fail()
}

func (d disabled[T]) ToSet() (*hashset.Set, error) {
	return nil, d.fail()
}

func (d disabled[T]) ForEach(fn func(item T) error) error {
	return d.fail()
}

func (d disabled[T]) ContainsEqualItems(items []T) (bool, error) {
	return false, d.fail()
}

func (d disabled[T]) CreateTraverser() (*sequence.Traverser[T], error) {
	return nil, d.fail()
}
