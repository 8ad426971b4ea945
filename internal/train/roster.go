package train

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// Roster owns the trains of a simulation. Trains are addressed by ID; the
// insertion order is kept for display and pairing.
type Roster struct {
	order   []ID
	trains  map[ID]Train
	version uint64
}

// NewRoster returns an empty roster.
func NewRoster() *Roster {
	return &Roster{trains: make(map[ID]Train)}
}

// Version changes on every successful edit.
func (r *Roster) Version() uint64 { return r.version }

// Len returns the number of trains.
func (r *Roster) Len() int { return len(r.order) }

// Add validates t and appends it, assigning a fresh ID when t.ID is zero.
func (r *Roster) Add(t Train) (ID, error) {
	if err := t.Validate(); err != nil {
		return uuid.Nil, fmt.Errorf("train %q: %w", t.Name, err)
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	} else if _, exists := r.trains[t.ID]; exists {
		return uuid.Nil, fmt.Errorf("train id %s already exists", t.ID)
	}
	if other, ok := r.ByName(t.Name); ok {
		return uuid.Nil, fmt.Errorf("train %q (id %s): %w", t.Name, other.ID, ErrDuplicateName)
	}
	r.trains[t.ID] = t
	r.order = append(r.order, t.ID)
	r.version++
	return t.ID, nil
}

// Update applies fn to a copy of the train and stores it if it still
// validates. The ID cannot be changed.
func (r *Roster) Update(id ID, fn func(*Train)) error {
	t, ok := r.trains[id]
	if !ok {
		return fmt.Errorf("train %s: %w", id, ErrNotFound)
	}
	fn(&t)
	t.ID = id
	if err := t.Validate(); err != nil {
		return fmt.Errorf("train %q: %w", t.Name, err)
	}
	if other, ok := r.ByName(t.Name); ok && other.ID != id {
		return fmt.Errorf("train %q: %w", t.Name, ErrDuplicateName)
	}
	r.trains[id] = t
	r.version++
	return nil
}

// Remove drops a train. Other trains keep their IDs.
func (r *Roster) Remove(id ID) error {
	i := r.Index(id)
	if i < 0 {
		return fmt.Errorf("train %s: %w", id, ErrNotFound)
	}
	r.order = slices.Delete(r.order, i, i+1)
	delete(r.trains, id)
	r.version++
	return nil
}

// Get returns the train with the given ID.
func (r *Roster) Get(id ID) (Train, bool) {
	t, ok := r.trains[id]
	return t, ok
}

// ByName returns the train with the given name.
func (r *Roster) ByName(name string) (Train, bool) {
	for _, id := range r.order {
		if t := r.trains[id]; t.Name == name {
			return t, true
		}
	}
	return Train{}, false
}

// Index returns the display position of id, or -1.
func (r *Roster) Index(id ID) int { return slices.Index(r.order, id) }

// All returns the trains in display order.
func (r *Roster) All() []Train {
	out := make([]Train, len(r.order))
	for i, id := range r.order {
		out[i] = r.trains[id]
	}
	return out
}
