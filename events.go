package prism

import (
	"github.com/akmonengine/prism/actor"
)

const (
	COLLISION_ENTER EventType = iota
	COLLISION_STAY
	COLLISION_EXIT
)

type pairKey struct {
	idA int
	idB int
}

// makePairKey creates a normalized pair key with consistent ordering
func makePairKey(prismA, prismB *actor.Prism) pairKey {
	if prismB.ID < prismA.ID {
		prismA, prismB = prismB, prismA
	}

	return pairKey{idA: prismA.ID, idB: prismB.ID}
}

type activePair struct {
	key    pairKey
	prismA *actor.Prism
	prismB *actor.Prism
}

type EventType uint8

func (t EventType) String() string {
	switch t {
	case COLLISION_ENTER:
		return "COLLISION_ENTER"
	case COLLISION_STAY:
		return "COLLISION_STAY"
	case COLLISION_EXIT:
		return "COLLISION_EXIT"
	}
	return "UNKNOWN"
}

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

type CollisionEnterEvent struct {
	PrismA *actor.Prism
	PrismB *actor.Prism
}

func (e CollisionEnterEvent) Type() EventType { return COLLISION_ENTER }

type CollisionStayEvent struct {
	PrismA *actor.Prism
	PrismB *actor.Prism
}

func (e CollisionStayEvent) Type() EventType { return COLLISION_STAY }

type CollisionExitEvent struct {
	PrismA *actor.Prism
	PrismB *actor.Prism
}

func (e CollisionExitEvent) Type() EventType { return COLLISION_EXIT }

// EventListener - callback for events
type EventListener func(event Event)

// Events tracks colliding pairs across ticks and dispatches Enter/Stay/Exit
// events at the end of each tick. Pairs are reported in discovery order.
type Events struct {
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event

	previousActivePairs map[pairKey]bool
	currentActivePairs  map[pairKey]bool
	previous            []activePair
	current             []activePair
}

func NewEvents() Events {
	return Events{
		listeners:           make(map[EventType][]EventListener),
		buffer:              make([]Event, 0, 64),
		previousActivePairs: make(map[pairKey]bool),
		currentActivePairs:  make(map[pairKey]bool),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// recordCollision is called by the resolver for every pair it separated
func (e *Events) recordCollision(prismA, prismB *actor.Prism) {
	key := makePairKey(prismA, prismB)
	if e.currentActivePairs[key] {
		return
	}

	e.currentActivePairs[key] = true
	e.current = append(e.current, activePair{key: key, prismA: prismA, prismB: prismB})
}

// processCollisionEvents compares current and previous pairs to detect Enter/Stay/Exit
func (e *Events) processCollisionEvents() {
	for _, pair := range e.current {
		if e.previousActivePairs[pair.key] {
			e.buffer = append(e.buffer, CollisionStayEvent{PrismA: pair.prismA, PrismB: pair.prismB})
		} else {
			e.buffer = append(e.buffer, CollisionEnterEvent{PrismA: pair.prismA, PrismB: pair.prismB})
		}
	}

	for _, pair := range e.previous {
		if !e.currentActivePairs[pair.key] {
			e.buffer = append(e.buffer, CollisionExitEvent{PrismA: pair.prismA, PrismB: pair.prismB})
		}
	}

	// Swap for next tick and clear current
	e.previousActivePairs, e.currentActivePairs = e.currentActivePairs, e.previousActivePairs
	e.previous, e.current = e.current, e.previous[:0]
	clear(e.currentActivePairs)
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	e.processCollisionEvents()

	for _, event := range e.buffer {
		for _, listener := range e.listeners[event.Type()] {
			listener(event)
		}
	}
	e.buffer = e.buffer[:0]
}
