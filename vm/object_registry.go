package vm

import "sync"

// ---------------------------------------------------------------------------
// ObjectRegistry: Unified registry for VM-local heap entities
// ---------------------------------------------------------------------------

// slab stores one kind of heap entity keyed by a 24-bit ID. IDs start at 1
// so a zero payload never resolves. Removed IDs are reused.
type slab[T any] struct {
	name   string
	mu     sync.RWMutex
	items  map[uint32]T
	free   []uint32
	nextID uint32
}

func newSlab[T any](name string) *slab[T] {
	return &slab[T]{name: name, items: make(map[uint32]T)}
}

// registryExhausted is panicked by add when every ID of a slab is live.
// Send reports it as a fatal exception.
type registryExhausted struct {
	slab string
}

func (s *slab[T]) add(item T) uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var id uint32
	if n := len(s.free); n > 0 {
		id = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		if s.nextID >= idMask {
			panic(registryExhausted{slab: s.name})
		}
		s.nextID++
		id = s.nextID
	}
	s.items[id] = item
	return id
}

func (s *slab[T]) get(id uint32) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	return item, ok
}

func (s *slab[T]) remove(id uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; ok {
		delete(s.items, id)
		s.free = append(s.free, id)
	}
}

func (s *slab[T]) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// ObjectRegistry owns every heap entity of one VM. Values reference entries
// by marker-tagged IDs; see markers.go.
type ObjectRegistry struct {
	strings    *slab[*StringObject]
	hashes     *slab[*HashObject]
	largeInts  *slab[int64]
	exceptions *slab[*ExceptionObject]
	instances  *slab[*Instance]
	classes    *slab[*Class]
	data       *slab[*DataCell]

	classIDsMu sync.Mutex
	classIDs   map[*Class]uint32
}

// NewObjectRegistry creates a new ObjectRegistry with all slabs initialized.
func NewObjectRegistry() *ObjectRegistry {
	return &ObjectRegistry{
		strings:    newSlab[*StringObject]("string"),
		hashes:     newSlab[*HashObject]("hash"),
		largeInts:  newSlab[int64]("large integer"),
		exceptions: newSlab[*ExceptionObject]("exception"),
		instances:  newSlab[*Instance]("instance"),
		classes:    newSlab[*Class]("class"),
		data:       newSlab[*DataCell]("data"),
		classIDs:   make(map[*Class]uint32),
	}
}

// ---------------------------------------------------------------------------
// Strings
// ---------------------------------------------------------------------------

// RegisterString stores s and returns its Value.
func (or *ObjectRegistry) RegisterString(s *StringObject) Value {
	return markedValue(stringMarker, or.strings.add(s))
}

// GetString returns the StringObject for v, or nil.
func (or *ObjectRegistry) GetString(v Value) *StringObject {
	id, ok := markedID(v, stringMarker)
	if !ok {
		return nil
	}
	s, _ := or.strings.get(id)
	return s
}

// ---------------------------------------------------------------------------
// Hashes
// ---------------------------------------------------------------------------

// RegisterHash stores h and returns its Value.
func (or *ObjectRegistry) RegisterHash(h *HashObject) Value {
	return markedValue(hashMarker, or.hashes.add(h))
}

// GetHash returns the HashObject for v, or nil.
func (or *ObjectRegistry) GetHash(v Value) *HashObject {
	id, ok := markedID(v, hashMarker)
	if !ok {
		return nil
	}
	h, _ := or.hashes.get(id)
	return h
}

// ---------------------------------------------------------------------------
// Large integers
// ---------------------------------------------------------------------------

func (or *ObjectRegistry) registerLargeInt(n int64) Value {
	return markedValue(largeIntMarker, or.largeInts.add(n))
}

func (or *ObjectRegistry) getLargeInt(v Value) (int64, bool) {
	id, ok := markedID(v, largeIntMarker)
	if !ok {
		return 0, false
	}
	return or.largeInts.get(id)
}

// ---------------------------------------------------------------------------
// Exceptions
// ---------------------------------------------------------------------------

// RegisterException stores ex and returns its Value.
func (or *ObjectRegistry) RegisterException(ex *ExceptionObject) Value {
	return markedValue(exceptionMarker, or.exceptions.add(ex))
}

// GetException returns the ExceptionObject for v, or nil.
func (or *ObjectRegistry) GetException(v Value) *ExceptionObject {
	id, ok := markedID(v, exceptionMarker)
	if !ok {
		return nil
	}
	ex, _ := or.exceptions.get(id)
	return ex
}

// UnregisterException drops an exception. Send calls it once a raise has
// been turned into a RaisedError.
func (or *ObjectRegistry) UnregisterException(v Value) {
	if id, ok := markedID(v, exceptionMarker); ok {
		or.exceptions.remove(id)
	}
}

// ---------------------------------------------------------------------------
// Plain instances
// ---------------------------------------------------------------------------

// RegisterInstance stores inst and returns its Value.
func (or *ObjectRegistry) RegisterInstance(inst *Instance) Value {
	return markedValue(instanceMarker, or.instances.add(inst))
}

// GetInstance returns the Instance for v, or nil.
func (or *ObjectRegistry) GetInstance(v Value) *Instance {
	id, ok := markedID(v, instanceMarker)
	if !ok {
		return nil
	}
	inst, _ := or.instances.get(id)
	return inst
}

// ---------------------------------------------------------------------------
// Class values
// ---------------------------------------------------------------------------

// ClassValue returns the stable Value for c, registering it on first use.
func (or *ObjectRegistry) ClassValue(c *Class) Value {
	or.classIDsMu.Lock()
	defer or.classIDsMu.Unlock()
	if id, ok := or.classIDs[c]; ok {
		return markedValue(classValueMarker, id)
	}
	id := or.classes.add(c)
	or.classIDs[c] = id
	return markedValue(classValueMarker, id)
}

// GetClass returns the class referenced by a class value, or nil.
func (or *ObjectRegistry) GetClass(v Value) *Class {
	id, ok := markedID(v, classValueMarker)
	if !ok {
		return nil
	}
	c, _ := or.classes.get(id)
	return c
}

// ---------------------------------------------------------------------------
// Native data cells
// ---------------------------------------------------------------------------

func (or *ObjectRegistry) registerData(cell *DataCell) Value {
	return markedValue(dataMarker, or.data.add(cell))
}

func (or *ObjectRegistry) getData(v Value) *DataCell {
	id, ok := markedID(v, dataMarker)
	if !ok {
		return nil
	}
	cell, _ := or.data.get(id)
	return cell
}

func (or *ObjectRegistry) unregisterData(v Value) {
	if id, ok := markedID(v, dataMarker); ok {
		or.data.remove(id)
	}
}

// DataCount returns the number of live native data cells.
func (or *ObjectRegistry) DataCount() int {
	return or.data.len()
}

// ExceptionCount returns the number of registered exceptions.
func (or *ObjectRegistry) ExceptionCount() int {
	return or.exceptions.len()
}
