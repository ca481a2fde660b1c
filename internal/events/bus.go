package events

import (
	"log"
	"sync"
)

// Kind identifies a notification category
type Kind string

const (
	KindBackgroundApplied Kind = "background-applied"
	KindFeaturesUpdated   Kind = "features-updated"
	KindSubclassUpdated   Kind = "subclass-updated"
	KindCombatUpdated     Kind = "combat-updated"
	KindSpellSlotsUpdated Kind = "spell-slots-updated"
	KindChoiceResolved    Kind = "choice-resolved"
)

// Event is a notification emitted after a character mutation. Payload
// carries kind-specific details; listeners must not rely on it being set.
type Event struct {
	Kind        Kind
	CharacterID string
	Payload     map[string]interface{}
}

// Listener receives events. Errors are logged and never propagate back
// to the mutation that emitted the event.
type Listener func(Event) error

// Bus is a fire-and-forget notification bus. Listener failures cannot
// cancel or roll back the mutation that triggered them.
type Bus struct {
	mu        sync.RWMutex
	listeners map[Kind][]Listener
	all       []Listener
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{listeners: make(map[Kind][]Listener)}
}

// Subscribe registers a listener for one event kind
func (b *Bus) Subscribe(kind Kind, l Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners[kind] = append(b.listeners[kind], l)
}

// SubscribeAll registers a listener for every event kind
func (b *Bus) SubscribeAll(l Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.all = append(b.all, l)
}

// Emit delivers the event to matching listeners synchronously, in
// registration order. A nil bus is a no-op so emission sites never
// need a guard.
func (b *Bus) Emit(event Event) {
	if b == nil {
		return
	}
	b.mu.RLock()
	targets := make([]Listener, 0, len(b.listeners[event.Kind])+len(b.all))
	targets = append(targets, b.listeners[event.Kind]...)
	targets = append(targets, b.all...)
	b.mu.RUnlock()

	for _, l := range targets {
		if err := l(event); err != nil {
			log.Printf("Event listener error for %s: %v", event.Kind, err)
		}
	}
}
