package vm

// registerObjectPrimitives installs the behavior every value shares.
func (vm *VM) registerObjectPrimitives() {
	c := vm.ObjectClass

	c.AddMethod0(vm.Symbols, "class", func(vm *VM, self Value) Value {
		return vm.ClassValue(vm.ClassFor(self))
	})
	c.AddMethod1(vm.Symbols, "equal?", func(vm *VM, self Value, other Value) Value {
		return FromBool(self == other)
	})
	c.Alias(vm.Symbols, "==", "equal?")
	c.AddMethod0(vm.Symbols, "nil?", func(vm *VM, self Value) Value {
		return FromBool(self == Nil)
	})
	c.AddMethod1(vm.Symbols, "respond_to?", func(vm *VM, self Value, selector Value) Value {
		name, ok := vm.Symbols.SymbolName(selector)
		if !ok {
			if name, ok = vm.StringValue(selector); !ok {
				vm.Raise(TypeError(vm.TypeName(selector) + " is not a symbol nor a string"))
			}
		}
		return FromBool(vm.RespondTo(self, name))
	})
	c.AddMethod1(vm.Symbols, "is_a?", func(vm *VM, self Value, class Value) Value {
		target := vm.registry.GetClass(class)
		if target == nil {
			vm.Raise(TypeError("class or module required"))
		}
		return FromBool(vm.ClassFor(self).IsSubclassOf(target))
	})
	c.AddMethod0(vm.Symbols, "initialize", func(vm *VM, self Value) Value {
		return Nil
	})
	c.AddMethod0(vm.Symbols, "inspect", func(vm *VM, self Value) Value {
		return vm.NewString("#<" + vm.TypeName(self) + ">")
	})
	c.Alias(vm.Symbols, "to_s", "inspect")

	c.AddClassPrimitiveMethod(vm.Symbols, "new", 0, -1, func(vm *VM, self Value, args []Value) Value {
		inst := vm.NewInstance(vm.registry.GetClass(self))
		vm.Call(inst, "initialize", args...)
		return inst
	})

	vm.ClassClass.AddMethod0(vm.Symbols, "name", func(vm *VM, self Value) Value {
		return vm.NewString(vm.registry.GetClass(self).Name)
	})
	vm.ClassClass.Alias(vm.Symbols, "to_s", "name")
	vm.ClassClass.Alias(vm.Symbols, "inspect", "name")

	vm.NilClass.AddMethod0(vm.Symbols, "to_s", func(vm *VM, self Value) Value {
		return vm.NewString("")
	})
	vm.SymbolClass.AddMethod0(vm.Symbols, "to_s", func(vm *VM, self Value) Value {
		name, _ := vm.Symbols.SymbolName(self)
		return vm.NewString(name)
	})
	vm.SymbolClass.AddMethod0(vm.Symbols, "to_sym", func(vm *VM, self Value) Value {
		return self
	})
}
