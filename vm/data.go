package vm

import (
	"fmt"
	"sync"
)

// ---------------------------------------------------------------------------
// Native data cells: boxing Go values behind a checked type ID
// ---------------------------------------------------------------------------

// DataCell is the heap cell holding one boxed native value. typeID is
// checked before the payload is ever type-asserted.
type DataCell struct {
	typeID  uint32
	class   *Class
	payload any
}

// dataTypeRegistry maps native type names to IDs. ID 0 means unregistered.
type dataTypeRegistry struct {
	mu     sync.Mutex
	byName map[string]uint32
	nextID uint32
}

func newDataTypeRegistry() *dataTypeRegistry {
	return &dataTypeRegistry{byName: make(map[string]uint32), nextID: 1}
}

// DataType is the boxing gateway for native values of type T. Values are
// stored as *T inside a DataCell; Unbox hands out that pointer for the
// duration of one primitive call.
type DataType[T any] struct {
	id    uint32
	name  string
	class *Class
}

// RegisterDataType defines a VM class called name whose instances box a T.
// A nil superclass means Object.
func RegisterDataType[T any](vm *VM, name string, superclass *Class) (*DataType[T], error) {
	vm.dataTypes.mu.Lock()
	defer vm.dataTypes.mu.Unlock()

	if _, ok := vm.dataTypes.byName[name]; ok {
		return nil, fmt.Errorf("data type %s already registered", name)
	}
	if superclass == nil {
		superclass = vm.ObjectClass
	}
	id := vm.dataTypes.nextID
	vm.dataTypes.nextID++
	vm.dataTypes.byName[name] = id

	class := vm.Classes.Lookup(name)
	if class == nil {
		class = vm.createClass(name, superclass)
	}
	return &DataType[T]{id: id, name: name, class: class}, nil
}

// Name returns the registered type name.
func (dt *DataType[T]) Name() string { return dt.name }

// Class returns the VM class of boxed values.
func (dt *DataType[T]) Class() *Class { return dt.class }

// Alloc moves value into a new cell and returns the reference.
func (dt *DataType[T]) Alloc(vm *VM, value T) Value {
	p := new(T)
	*p = value
	return vm.registry.registerData(&DataCell{typeID: dt.id, class: dt.class, payload: p})
}

// Unbox returns the payload of v. A value that is not a cell of this type
// yields an error wrapping ErrTypeMismatch.
func (dt *DataType[T]) Unbox(vm *VM, v Value) (*T, error) {
	cell := vm.registry.getData(v)
	if cell == nil || cell.typeID != dt.id {
		return nil, fmt.Errorf("%w: expected %s, got %s", ErrTypeMismatch, dt.name, vm.TypeName(v))
	}
	p, ok := cell.payload.(*T)
	if !ok {
		return nil, fmt.Errorf("%w: corrupt %s cell", ErrTypeMismatch, dt.name)
	}
	return p, nil
}

// Is reports whether v is a cell of this type.
func (dt *DataType[T]) Is(vm *VM, v Value) bool {
	cell := vm.registry.getData(v)
	return cell != nil && cell.typeID == dt.id
}

// Replace overwrites the payload of v in place. The reference keeps its
// identity.
func (dt *DataType[T]) Replace(vm *VM, v Value, value T) error {
	p, err := dt.Unbox(vm, v)
	if err != nil {
		return err
	}
	*p = value
	return nil
}

// Free drops the cell behind v. Later Unbox calls report a mismatch.
func (dt *DataType[T]) Free(vm *VM, v Value) {
	if dt.Is(vm, v) {
		vm.registry.unregisterData(v)
	}
}
