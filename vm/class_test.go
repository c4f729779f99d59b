package vm

import (
	"sync"
	"testing"
)

func TestNewClass(t *testing.T) {
	c := NewClass("Point", nil)
	if c.Name != "Point" {
		t.Errorf("Name = %q, want %q", c.Name, "Point")
	}
	if c.Superclass != nil {
		t.Error("Superclass should be nil")
	}
	if c.VTable == nil || c.ClassVTable == nil {
		t.Fatal("vtables should be created")
	}
	if c.VTable.Class() != c {
		t.Error("VTable.Class() should return the class")
	}
}

func TestIsSubclassOf(t *testing.T) {
	object := NewClass("Object", nil)
	magnitude := NewClass("Magnitude", object)
	number := NewClass("Number", magnitude)

	if !number.IsSubclassOf(object) {
		t.Error("Number should be subclass of Object")
	}
	if !number.IsSubclassOf(number) {
		t.Error("a class is a subclass of itself")
	}
	if object.IsSubclassOf(number) {
		t.Error("Object should not be subclass of Number")
	}
}

func TestMethodInheritance(t *testing.T) {
	symbols := NewSymbolTable()
	parent := NewClass("Parent", nil)
	child := NewClass("Child", parent)

	parent.AddMethod0(symbols, "answer", func(vm *VM, self Value) Value {
		return FromSmallInt(42)
	})

	m := child.LookupMethod(symbols, "answer")
	if m == nil {
		t.Fatal("expected inherited method")
	}
	if got := m.Invoke(nil, Nil, nil); got.SmallInt() != 42 {
		t.Errorf("expected 42, got %d", got.SmallInt())
	}
}

func TestMethodOverride(t *testing.T) {
	symbols := NewSymbolTable()
	parent := NewClass("Parent", nil)
	child := NewClass("Child", parent)

	parent.AddMethod0(symbols, "value", func(vm *VM, self Value) Value { return FromSmallInt(1) })
	child.AddMethod0(symbols, "value", func(vm *VM, self Value) Value { return FromSmallInt(2) })

	if got := parent.LookupMethod(symbols, "value").Invoke(nil, Nil, nil); got.SmallInt() != 1 {
		t.Errorf("parent: expected 1, got %d", got.SmallInt())
	}
	if got := child.LookupMethod(symbols, "value").Invoke(nil, Nil, nil); got.SmallInt() != 2 {
		t.Errorf("child: expected 2, got %d", got.SmallInt())
	}
}

func TestAliasSharesMethod(t *testing.T) {
	symbols := NewSymbolTable()
	c := NewClass("Thing", nil)
	c.AddMethod0(symbols, "tv_sec", func(vm *VM, self Value) Value { return FromSmallInt(9) })
	c.Alias(symbols, "to_i", "tv_sec")

	if c.LookupMethod(symbols, "to_i") != c.LookupMethod(symbols, "tv_sec") {
		t.Error("expected alias to resolve to the same method")
	}
	c.Alias(symbols, "ghost", "missing")
	if c.LookupMethod(symbols, "ghost") != nil {
		t.Error("aliasing a missing method should be a no-op")
	}
}

func TestClassSideIsSeparate(t *testing.T) {
	symbols := NewSymbolTable()
	c := NewClass("Thing", nil)
	c.AddClassMethod0(symbols, "now", func(vm *VM, self Value) Value { return True })

	if c.LookupMethod(symbols, "now") != nil {
		t.Error("class-side method leaked to instance side")
	}
	if c.LookupClassMethod(symbols, "now") == nil {
		t.Error("expected class-side method")
	}
	sub := NewClass("SubThing", c)
	if sub.LookupClassMethod(symbols, "now") == nil {
		t.Error("class-side methods should be inherited")
	}
}

func TestPrimitiveMethodArity(t *testing.T) {
	m := NewPrimitiveMethod("at", 1, 4, func(vm *VM, self Value, args []Value) Value { return Nil })
	for n, want := range map[int]bool{0: false, 1: true, 4: true, 5: false} {
		if got := acceptsArgs(m, n); got != want {
			t.Errorf("acceptsArgs(at, %d) = %v, want %v", n, got, want)
		}
	}
	variadic := NewPrimitiveMethod("new", 0, -1, func(vm *VM, self Value, args []Value) Value { return Nil })
	if !acceptsArgs(variadic, 10) {
		t.Error("variadic method should accept any count")
	}
}

func TestClassTableRegister(t *testing.T) {
	ct := NewClassTable()
	c := NewClass("Time", nil)
	ct.Register(c)

	if got := ct.Lookup("Time"); got != c {
		t.Error("Lookup should return the registered class")
	}
	if ct.Lookup("Missing") != nil {
		t.Error("Lookup of unknown class should be nil")
	}
	ct.Register(NewClass("Alpha", nil))
	names := ct.Names()
	if len(names) != 2 || names[0] != "Alpha" || names[1] != "Time" {
		t.Errorf("expected [Alpha Time], got %v", names)
	}
}

func TestClassTableConcurrency(t *testing.T) {
	ct := NewClassTable()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := string(rune('A' + i%26))
			ct.Register(NewClass(name, nil))
			ct.Lookup(name)
		}(i)
	}
	wg.Wait()
	if n := len(ct.Names()); n != 26 {
		t.Errorf("expected 26 classes, got %d", n)
	}
}

func TestSymbolTableIntern(t *testing.T) {
	st := NewSymbolTable()
	a := st.Intern("at")
	b := st.Intern("now")
	if a == b {
		t.Error("distinct names should get distinct IDs")
	}
	if st.Intern("at") != a {
		t.Error("Intern should be idempotent")
	}
	if st.Name(a) != "at" {
		t.Errorf("expected at, got %q", st.Name(a))
	}
	if _, ok := st.Lookup("missing"); ok {
		t.Error("Lookup should not intern")
	}
	name, ok := st.SymbolName(st.SymbolValue("in"))
	if !ok || name != "in" {
		t.Errorf("expected in, got %q", name)
	}
}
