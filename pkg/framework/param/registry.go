package param

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

// ErrDuplicateID is returned when a parameter id is registered twice.
var ErrDuplicateID = errors.New("param: duplicate parameter id")

// snapshot is immutable once published.
type snapshot struct {
	byID  map[uint32]*Parameter
	index map[uint32]int32
	order []*Parameter
}

// Registry manages plugin parameters. Lookups never lock: writers publish a
// new snapshot, readers load the current one. Registration is expected to
// finish before processing starts.
type Registry struct {
	mu   sync.Mutex
	snap atomic.Pointer[snapshot]
}

// NewRegistry creates a new parameter registry
func NewRegistry() *Registry {
	r := &Registry{}
	r.snap.Store(&snapshot{
		byID:  map[uint32]*Parameter{},
		index: map[uint32]int32{},
	})
	return r
}

// Add registers parameters in order. Duplicates are skipped and reported.
func (r *Registry) Add(params ...*Parameter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	old := r.snap.Load()
	next := &snapshot{
		byID:  make(map[uint32]*Parameter, len(old.order)+len(params)),
		index: make(map[uint32]int32, len(old.order)+len(params)),
		order: make([]*Parameter, len(old.order), len(old.order)+len(params)),
	}
	copy(next.order, old.order)
	for id, p := range old.byID {
		next.byID[id] = p
	}
	for id, i := range old.index {
		next.index[id] = i
	}

	var err error
	for _, p := range params {
		if _, exists := next.byID[p.ID]; exists {
			err = fmt.Errorf("%w: %d (%s)", ErrDuplicateID, p.ID, p.Name)
			continue
		}
		next.byID[p.ID] = p
		next.index[p.ID] = int32(len(next.order))
		next.order = append(next.order, p)
	}

	r.snap.Store(next)
	return err
}

// Get retrieves a parameter by ID
func (r *Registry) Get(id uint32) *Parameter {
	return r.snap.Load().byID[id]
}

// GetByIndex retrieves a parameter by index
func (r *Registry) GetByIndex(index int32) *Parameter {
	s := r.snap.Load()
	if index < 0 || index >= int32(len(s.order)) {
		return nil
	}
	return s.order[index]
}

// IndexOf returns the registration index of id, or -1.
func (r *Registry) IndexOf(id uint32) int32 {
	if i, ok := r.snap.Load().index[id]; ok {
		return i
	}
	return -1
}

// Count returns the number of parameters
func (r *Registry) Count() int32 {
	return int32(len(r.snap.Load().order))
}

// All returns all parameters in order. The slice must not be modified.
func (r *Registry) All() []*Parameter {
	return r.snap.Load().order
}

// ResetAll restores every parameter to its default.
func (r *Registry) ResetAll() {
	for _, p := range r.snap.Load().order {
		p.Reset()
	}
}
