package domain

import "time"

// EventType defines the category of the event.
type EventType string

const (
	EventSymbolExpand   EventType = "symbol_expand"
	EventUndefined      EventType = "symbol_undefined"
	EventDepthExceeded  EventType = "depth_exceeded"
	EventGenerateFinish EventType = "generate_finish"
)

// SymbolEvent is emitted for every symbol the engine tries to resolve through the rule store.
type SymbolEvent struct {
	Type   EventType `json:"type"`
	Symbol string    `json:"symbol"`
	Depth  int       `json:"depth"`
	// Rule is the selected alternative. Only set for EventSymbolExpand.
	Rule *Rule `json:"rule,omitempty"`
}

// GenerateEvent is emitted once a generation call has produced its result.
type GenerateEvent struct {
	Type     EventType     `json:"type"`
	Root     string        `json:"root"`
	Depth    int           `json:"depth"`
	Duration time.Duration `json:"duration"`
	Seeded   bool          `json:"seeded"`
}

// LifecycleHooks defines callbacks for engine observability.
// Hooks run synchronously on the generating goroutine.
type LifecycleHooks struct {
	OnSymbolExpand    func(*SymbolEvent)
	OnUndefinedSymbol func(*SymbolEvent)
	OnDepthExceeded   func(*SymbolEvent)
	OnGenerate        func(*GenerateEvent)
}

// Merge returns hooks that call h first and then other for every event.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnSymbolExpand:    chainSymbol(h.OnSymbolExpand, other.OnSymbolExpand),
		OnUndefinedSymbol: chainSymbol(h.OnUndefinedSymbol, other.OnUndefinedSymbol),
		OnDepthExceeded:   chainSymbol(h.OnDepthExceeded, other.OnDepthExceeded),
		OnGenerate:        chainGenerate(h.OnGenerate, other.OnGenerate),
	}
}

func chainSymbol(a, b func(*SymbolEvent)) func(*SymbolEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(e *SymbolEvent) {
		a(e)
		b(e)
	}
}

func chainGenerate(a, b func(*GenerateEvent)) func(*GenerateEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(e *GenerateEvent) {
		a(e)
		b(e)
	}
}
