package vm

import (
	"sort"
	"sync"
)

// Class is a VM class. Instance-side primitives live in VTable, class-side
// primitives (constructors) in ClassVTable.
type Class struct {
	Name        string
	Superclass  *Class
	VTable      *VTable
	ClassVTable *VTable
}

// NewClass creates a new class with the given name and superclass.
// The VTable and ClassVTable are automatically created and linked.
func NewClass(name string, superclass *Class) *Class {
	var parentVT, parentClassVT *VTable
	if superclass != nil {
		parentVT = superclass.VTable
		parentClassVT = superclass.ClassVTable
	}

	c := &Class{Name: name, Superclass: superclass}
	c.VTable = NewVTable(c, parentVT)
	c.ClassVTable = NewVTable(c, parentClassVT)
	return c
}

// String implements the Stringer interface.
func (c *Class) String() string {
	return c.Name
}

// IsSubclassOf reports whether c is other or inherits from it.
func (c *Class) IsSubclassOf(other *Class) bool {
	for cur := c; cur != nil; cur = cur.Superclass {
		if cur == other {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// Method registration on Class
// ---------------------------------------------------------------------------

// AddMethod registers an instance-side method. The selector is interned in
// symbols.
func (c *Class) AddMethod(symbols *SymbolTable, method Method) {
	c.VTable.AddMethod(symbols.Intern(method.Name()), method)
}

// AddMethod0 registers a zero-argument method on this class.
func (c *Class) AddMethod0(symbols *SymbolTable, name string, fn Method0Func) {
	c.AddMethod(symbols, NewMethod0(name, fn))
}

// AddMethod1 registers a one-argument method on this class.
func (c *Class) AddMethod1(symbols *SymbolTable, name string, fn Method1Func) {
	c.AddMethod(symbols, NewMethod1(name, fn))
}

// AddMethod2 registers a two-argument method on this class.
func (c *Class) AddMethod2(symbols *SymbolTable, name string, fn Method2Func) {
	c.AddMethod(symbols, NewMethod2(name, fn))
}

// AddPrimitiveMethod registers a method accepting lo..hi arguments.
func (c *Class) AddPrimitiveMethod(symbols *SymbolTable, name string, lo, hi int, fn PrimitiveFunc) {
	c.AddMethod(symbols, NewPrimitiveMethod(name, lo, hi, fn))
}

// Alias makes alias dispatch to the method currently registered as name.
func (c *Class) Alias(symbols *SymbolTable, alias, name string) {
	if m := c.LookupMethod(symbols, name); m != nil {
		c.VTable.AddMethod(symbols.Intern(alias), m)
	}
}

// LookupMethod looks up an instance-side method by selector name.
func (c *Class) LookupMethod(symbols *SymbolTable, name string) Method {
	id, ok := symbols.Lookup(name)
	if !ok {
		return nil
	}
	return c.VTable.Lookup(id)
}

// AddClassMethod registers a class-side method.
func (c *Class) AddClassMethod(symbols *SymbolTable, method Method) {
	c.ClassVTable.AddMethod(symbols.Intern(method.Name()), method)
}

// AddClassMethod0 registers a zero-argument class-side method.
func (c *Class) AddClassMethod0(symbols *SymbolTable, name string, fn Method0Func) {
	c.AddClassMethod(symbols, NewMethod0(name, fn))
}

// AddClassMethod1 registers a one-argument class-side method.
func (c *Class) AddClassMethod1(symbols *SymbolTable, name string, fn Method1Func) {
	c.AddClassMethod(symbols, NewMethod1(name, fn))
}

// AddClassPrimitiveMethod registers a class-side method accepting lo..hi
// arguments.
func (c *Class) AddClassPrimitiveMethod(symbols *SymbolTable, name string, lo, hi int, fn PrimitiveFunc) {
	c.AddClassMethod(symbols, NewPrimitiveMethod(name, lo, hi, fn))
}

// ClassAlias makes a class-side alias.
func (c *Class) ClassAlias(symbols *SymbolTable, alias, name string) {
	if m := c.LookupClassMethod(symbols, name); m != nil {
		c.ClassVTable.AddMethod(symbols.Intern(alias), m)
	}
}

// LookupClassMethod looks up a class-side method by selector name.
func (c *Class) LookupClassMethod(symbols *SymbolTable, name string) Method {
	id, ok := symbols.Lookup(name)
	if !ok {
		return nil
	}
	return c.ClassVTable.Lookup(id)
}

// ---------------------------------------------------------------------------
// ClassTable: Global class registry
// ---------------------------------------------------------------------------

// ClassTable manages registered classes by name.
type ClassTable struct {
	mu      sync.RWMutex
	classes map[string]*Class
}

// NewClassTable creates an empty class table.
func NewClassTable() *ClassTable {
	return &ClassTable{classes: make(map[string]*Class)}
}

// Register adds c, replacing any class with the same name.
func (ct *ClassTable) Register(c *Class) *Class {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	ct.classes[c.Name] = c
	return c
}

// Lookup returns the class registered under name, or nil.
func (ct *ClassTable) Lookup(name string) *Class {
	ct.mu.RLock()
	defer ct.mu.RUnlock()
	return ct.classes[name]
}

// Names returns the registered class names, sorted.
func (ct *ClassTable) Names() []string {
	ct.mu.RLock()
	defer ct.mu.RUnlock()
	names := make([]string, 0, len(ct.classes))
	for name := range ct.classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
