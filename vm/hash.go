package vm

// ---------------------------------------------------------------------------
// HashObject: Insertion-ordered key/value mapping
// ---------------------------------------------------------------------------

// HashObject is the heap payload of a VM Hash. Keys compare by identity
// except strings, which compare by content.
type HashObject struct {
	index  map[hashKey]int
	keys   []Value
	values []Value
}

type hashKey struct {
	str   bool
	text  string
	value Value
}

func (vm *VM) keyFor(k Value) hashKey {
	if s := vm.registry.GetString(k); s != nil {
		return hashKey{str: true, text: string(s.Bytes())}
	}
	return hashKey{value: k}
}

// NewHash allocates an empty VM Hash.
func (vm *VM) NewHash() Value {
	return vm.registry.RegisterHash(&HashObject{index: make(map[hashKey]int)})
}

// IsHash reports whether v is a VM Hash.
func (vm *VM) IsHash(v Value) bool {
	return vm.registry.GetHash(v) != nil
}

// HashSet stores value under key. It panics if h is not a Hash.
func (vm *VM) HashSet(h, key, value Value) {
	obj := vm.registry.GetHash(h)
	if obj == nil {
		panic("HashSet: not a hash")
	}
	k := vm.keyFor(key)
	if i, ok := obj.index[k]; ok {
		obj.values[i] = value
		return
	}
	obj.index[k] = len(obj.keys)
	obj.keys = append(obj.keys, key)
	obj.values = append(obj.values, value)
}

// HashGet returns the value stored under key.
func (vm *VM) HashGet(h, key Value) (Value, bool) {
	obj := vm.registry.GetHash(h)
	if obj == nil {
		return Nil, false
	}
	i, ok := obj.index[vm.keyFor(key)]
	if !ok {
		return Nil, false
	}
	return obj.values[i], true
}

// HashGetString looks up a String key without allocating one.
func (vm *VM) HashGetString(h Value, key string) (Value, bool) {
	obj := vm.registry.GetHash(h)
	if obj == nil {
		return Nil, false
	}
	i, ok := obj.index[hashKey{str: true, text: key}]
	if !ok {
		return Nil, false
	}
	return obj.values[i], true
}

// HashLen returns the number of entries, or 0 for non-hashes.
func (vm *VM) HashLen(h Value) int {
	obj := vm.registry.GetHash(h)
	if obj == nil {
		return 0
	}
	return len(obj.keys)
}

// HashKeys returns the keys in insertion order.
func (vm *VM) HashKeys(h Value) []Value {
	obj := vm.registry.GetHash(h)
	if obj == nil {
		return nil
	}
	return append([]Value(nil), obj.keys...)
}

func (vm *VM) registerHashPrimitives() {
	c := vm.HashClass

	c.AddClassMethod0(vm.Symbols, "new", func(vm *VM, self Value) Value {
		return vm.NewHash()
	})
	c.AddMethod1(vm.Symbols, "[]", func(vm *VM, self Value, key Value) Value {
		v, _ := vm.HashGet(self, key)
		return v
	})
	c.AddMethod2(vm.Symbols, "[]=", func(vm *VM, self Value, key, value Value) Value {
		vm.HashSet(self, key, value)
		return value
	})
	c.AddMethod0(vm.Symbols, "size", func(vm *VM, self Value) Value {
		return FromSmallInt(int64(vm.HashLen(self)))
	})
	c.AddMethod1(vm.Symbols, "key?", func(vm *VM, self Value, key Value) Value {
		_, ok := vm.HashGet(self, key)
		return FromBool(ok)
	})
}
