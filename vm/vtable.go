package vm

// VTable holds the method dispatch table for one side (instance or class)
// of a class.
//
// Methods are stored in a slice indexed by the selector's symbol ID.
// Inheritance is handled by walking the parent chain when a method is not
// found locally.
type VTable struct {
	class   *Class
	parent  *VTable
	methods []Method
}

// NewVTable creates a new vtable for a class.
func NewVTable(class *Class, parent *VTable) *VTable {
	return &VTable{
		class:   class,
		parent:  parent,
		methods: make([]Method, 0, 32),
	}
}

// Lookup finds a method by selector ID, walking the inheritance chain.
// Returns nil if no method is found.
func (vt *VTable) Lookup(selector uint32) Method {
	for v := vt; v != nil; v = v.parent {
		if int(selector) < len(v.methods) {
			if m := v.methods[selector]; m != nil {
				return m
			}
		}
	}
	return nil
}

// AddMethod adds or replaces a method at the given selector ID.
func (vt *VTable) AddMethod(selector uint32, method Method) {
	if int(selector) >= len(vt.methods) {
		grown := make([]Method, selector+1)
		copy(grown, vt.methods)
		vt.methods = grown
	}
	vt.methods[selector] = method
}

// HasMethod returns true if this vtable (not parents) has a method for selector.
func (vt *VTable) HasMethod(selector uint32) bool {
	return int(selector) < len(vt.methods) && vt.methods[selector] != nil
}

// Class returns the class this vtable belongs to.
func (vt *VTable) Class() *Class {
	return vt.class
}
