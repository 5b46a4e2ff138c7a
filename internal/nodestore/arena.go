package nodestore

import "fmt"

// Handle is a generation-tagged id. It stays comparable after the slot has
// been recycled, letting callers detect aliasing.
type Handle struct {
	ID  int32
	Gen uint32
}

type slot[T any] struct {
	value T
	gen   uint32
	alive bool
}

// Store is the arena for one record type T. Slot i holds id i+1.
type Store[T any] struct {
	name  string
	slots []slot[T]
	free  []int32
	live  int
}

var _ Source = (*Store[struct{}])(nil)

// New creates an empty store for records of type T.
func New[T any](name string) *Store[T] {
	return &Store[T]{name: name}
}

// Name implements Source.
func (s *Store[T]) Name() string {
	return s.name
}

// AddNode allocates the next free id, reusing the most recently freed slot
// before growing. Ids start at 1; 0 is reserved as "no id".
func (s *Store[T]) AddNode() int32 {
	var id int32
	if n := len(s.free); n > 0 {
		id = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.slots = append(s.slots, slot[T]{})
		id = int32(len(s.slots))
	}

	sl := &s.slots[id-1]
	var zero T
	sl.value = zero
	sl.alive = true
	if d, ok := any(&sl.value).(Defaulter); ok {
		d.OnSetDefaults()
	}
	s.live++
	return id
}

func (s *Store[T]) slot(id int32) (*slot[T], error) {
	if id < 1 || int(id) > len(s.slots) || !s.slots[id-1].alive {
		return nil, fmt.Errorf("%s node %d: %w", s.name, id, ErrNotFound)
	}
	return &s.slots[id-1], nil
}

// GetNode returns a pointer to the live record. The pointer is invalidated by
// any later AddNode that grows the arena.
func (s *Store[T]) GetNode(id int32) (*T, error) {
	sl, err := s.slot(id)
	if err != nil {
		return nil, err
	}
	return &sl.value, nil
}

// HandleOf returns the generation-tagged handle for a live id.
func (s *Store[T]) HandleOf(id int32) (Handle, error) {
	sl, err := s.slot(id)
	if err != nil {
		return Handle{}, err
	}
	return Handle{ID: id, Gen: sl.gen}, nil
}

// GetByHandle is GetNode guarded against recycled ids.
func (s *Store[T]) GetByHandle(h Handle) (*T, error) {
	sl, err := s.slot(h.ID)
	if err != nil {
		return nil, err
	}
	if sl.gen != h.Gen {
		return nil, fmt.Errorf("%s node %d (gen %d, live gen %d): %w", s.name, h.ID, h.Gen, sl.gen, ErrStale)
	}
	return &sl.value, nil
}

// RemoveNode zeroes the record and returns its slot to the free list.
func (s *Store[T]) RemoveNode(id int32) error {
	sl, err := s.slot(id)
	if err != nil {
		return err
	}
	var zero T
	sl.value = zero
	sl.alive = false
	sl.gen++
	s.free = append(s.free, id)
	s.live--
	return nil
}

// Has implements Source.
func (s *Store[T]) Has(id int32) bool {
	_, err := s.slot(id)
	return err == nil
}

// Node implements Source.
func (s *Store[T]) Node(id int32) (any, error) {
	return s.GetNode(id)
}

// Len implements Source.
func (s *Store[T]) Len() int {
	return s.live
}

// IDs implements Source.
func (s *Store[T]) IDs() []int32 {
	ids := make([]int32, 0, s.live)
	for i := range s.slots {
		if s.slots[i].alive {
			ids = append(ids, int32(i+1))
		}
	}
	return ids
}

// AddNodeClone allocates a new id in s holding a deep copy of src's record.
func (s *Store[T]) AddNodeClone(src *Store[T], id int32) (int32, error) {
	value, err := src.GetNode(id)
	if err != nil {
		return 0, err
	}
	copied := cloneValue(value)

	newID := s.AddNode()
	s.slots[newID-1].value = copied
	return newID, nil
}

// CopyNode overwrites the live record dstID with a deep copy of src's srcID.
func (s *Store[T]) CopyNode(src *Store[T], srcID, dstID int32) error {
	value, err := src.GetNode(srcID)
	if err != nil {
		return err
	}
	dst, err := s.slot(dstID)
	if err != nil {
		return err
	}
	dst.value = cloneValue(value)
	return nil
}

// CloneFrom implements Source.
func (s *Store[T]) CloneFrom(src Source, id int32) (int32, error) {
	typed, ok := src.(*Store[T])
	if !ok {
		return 0, fmt.Errorf("cannot clone %s node into %s storage: %w", src.Name(), s.name, ErrTypeMismatch)
	}
	return s.AddNodeClone(typed, id)
}

// NewEmpty implements Source.
func (s *Store[T]) NewEmpty() Source {
	return New[T](s.name)
}

func cloneValue[T any](value *T) T {
	if c, ok := any(value).(Cloner[T]); ok {
		return c.Clone()
	}
	return *value
}
