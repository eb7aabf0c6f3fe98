// Package accordion holds the expand/collapse state shared by a set of
// header/content pairs.
//
// A Group is the only owner of the open set. Items, Headers and Contents are
// views over it: they carry a pointer to the Group and an identifier and never
// copy open/closed state.
package accordion

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// ErrContextMissing reports an Item, Header or Content used without a Group.
var ErrContextMissing = errors.New("accordion: component used outside a group")

// Discipline governs how many items may be open at once.
type Discipline int

const (
	// Exclusive allows at most one open item.
	Exclusive Discipline = iota
	// Multiple lets every item open and close independently.
	Multiple
)

func (d Discipline) String() string {
	switch d {
	case Exclusive:
		return "exclusive"
	case Multiple:
		return "multiple"
	default:
		return fmt.Sprintf("discipline(%d)", int(d))
	}
}

// ParseDiscipline accepts "exclusive" or "multiple" (case-insensitive).
func ParseDiscipline(s string) (Discipline, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "exclusive":
		return Exclusive, nil
	case "multiple":
		return Multiple, nil
	}
	return Exclusive, fmt.Errorf("accordion: unknown discipline %q", s)
}

// Group is one accordion instance.
type Group struct {
	mu         sync.Mutex
	discipline Discipline
	open       map[string]struct{}
}

// Option configures a Group at construction.
type Option func(*Group)

// WithInitialOpen seeds the open set with id. An empty id leaves it empty.
func WithInitialOpen(id string) Option {
	return func(g *Group) {
		if id == "" {
			return
		}
		if g.discipline == Exclusive {
			clear(g.open)
		}
		g.open[id] = struct{}{}
	}
}

// New creates a Group. Each call returns independent state.
func New(d Discipline, opts ...Option) *Group {
	g := &Group{
		discipline: d,
		open:       make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Group) Discipline() Discipline {
	return g.discipline
}

// IsOpen reports whether id is in the open set.
func (g *Group) IsOpen(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.open[id]
	return ok
}

// Toggle flips id according to the group's discipline.
//
// Multiple: id is removed when open and added otherwise.
// Exclusive: when id is the only open item the set becomes empty; otherwise
// the set becomes exactly {id}.
func (g *Group) Toggle(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, isOpen := g.open[id]
	switch g.discipline {
	case Multiple:
		if isOpen {
			delete(g.open, id)
			return
		}
		g.open[id] = struct{}{}
	default:
		if isOpen && len(g.open) == 1 {
			clear(g.open)
			return
		}
		clear(g.open)
		g.open[id] = struct{}{}
	}
}

// OpenIDs returns a sorted snapshot of the open set.
func (g *Group) OpenIDs() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]string, 0, len(g.open))
	for id := range g.open {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Item binds id to this group.
func (g *Group) Item(id string) Item {
	return Item{group: g, id: id}
}
