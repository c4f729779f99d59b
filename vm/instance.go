package vm

// Instance is a plain object of a host-defined class. Behavior comes from
// primitives registered on its class; Fields is free-form host state.
type Instance struct {
	Class  *Class
	Fields map[string]Value
}

// DefineClass creates and registers a class. A nil superclass means Object.
func (vm *VM) DefineClass(name string, superclass *Class) *Class {
	if superclass == nil {
		superclass = vm.ObjectClass
	}
	return vm.createClass(name, superclass)
}

// NewInstance allocates a plain instance of class.
func (vm *VM) NewInstance(class *Class) Value {
	return vm.registry.RegisterInstance(&Instance{Class: class, Fields: make(map[string]Value)})
}

// GetInstance returns the Instance behind v, or nil.
func (vm *VM) GetInstance(v Value) *Instance {
	return vm.registry.GetInstance(v)
}
