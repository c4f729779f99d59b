package vm

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/tliron/commonlog"
)

// ---------------------------------------------------------------------------
// VM: The embedding virtual machine
// ---------------------------------------------------------------------------

// VM holds the tables and heap of one embedded interpreter. A VM is driven
// from one goroutine at a time; primitives run to completion inside Send.
type VM struct {
	Symbols *SymbolTable
	Classes *ClassTable

	// Well-known classes
	ObjectClass  *Class
	ClassClass   *Class
	NilClass     *Class
	TrueClass    *Class
	FalseClass   *Class
	IntegerClass *Class
	FloatClass   *Class
	StringClass  *Class
	SymbolClass  *Class
	HashClass    *Class

	// Exception hierarchy
	ExceptionClass           *Class
	ScriptErrorClass         *Class
	NotImplementedErrorClass *Class
	StandardErrorClass       *Class
	ArgumentErrorClass       *Class
	TypeErrorClass           *Class
	RuntimeErrorClass        *Class
	NoMethodErrorClass       *Class
	RangeErrorClass          *Class
	OverflowErrorClass       *Class
	FloatDomainErrorClass    *Class
	FatalClass               *Class

	registry  *ObjectRegistry
	dataTypes *dataTypeRegistry

	warnOut  io.Writer
	warnings bool
	log      commonlog.Logger
}

// NewVM creates and bootstraps a new VM. Warnings go to stderr.
func NewVM() *VM {
	vm := &VM{
		Symbols:   NewSymbolTable(),
		Classes:   NewClassTable(),
		registry:  NewObjectRegistry(),
		dataTypes: newDataTypeRegistry(),
		warnOut:   os.Stderr,
		warnings:  true,
		log:       commonlog.GetLogger("tock.vm"),
	}
	vm.bootstrap()
	return vm
}

// ---------------------------------------------------------------------------
// Bootstrap: Create core classes
// ---------------------------------------------------------------------------

func (vm *VM) bootstrap() {
	vm.ObjectClass = vm.createClass("Object", nil)
	vm.ClassClass = vm.createClass("Class", vm.ObjectClass)

	vm.NilClass = vm.createClass("NilClass", vm.ObjectClass)
	vm.TrueClass = vm.createClass("TrueClass", vm.ObjectClass)
	vm.FalseClass = vm.createClass("FalseClass", vm.ObjectClass)

	numeric := vm.createClass("Numeric", vm.ObjectClass)
	vm.IntegerClass = vm.createClass("Integer", numeric)
	vm.FloatClass = vm.createClass("Float", numeric)

	vm.StringClass = vm.createClass("String", vm.ObjectClass)
	vm.SymbolClass = vm.createClass("Symbol", vm.ObjectClass)
	vm.HashClass = vm.createClass("Hash", vm.ObjectClass)

	vm.bootstrapExceptionClasses()

	vm.registerObjectPrimitives()
	vm.registerIntegerPrimitives()
	vm.registerFloatPrimitives()
	vm.registerStringPrimitives()
	vm.registerHashPrimitives()
}

func (vm *VM) createClass(name string, superclass *Class) *Class {
	return vm.Classes.Register(NewClass(name, superclass))
}

// ---------------------------------------------------------------------------
// Configuration
// ---------------------------------------------------------------------------

// SetWarningOutput redirects warnings. A nil writer discards them.
func (vm *VM) SetWarningOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	vm.warnOut = w
}

// SetWarnings enables or disables printing of warnings. Warnings are
// always logged.
func (vm *VM) SetWarnings(enabled bool) {
	vm.warnings = enabled
}

// Warn emits a runtime warning.
func (vm *VM) Warn(msg string) {
	vm.log.Warning(msg)
	if vm.warnings {
		fmt.Fprintln(vm.warnOut, msg)
	}
}

// Registry exposes the VM heap to hosts and tests.
func (vm *VM) Registry() *ObjectRegistry {
	return vm.registry
}

// ---------------------------------------------------------------------------
// Class lookup for values
// ---------------------------------------------------------------------------

// ClassFor returns the class used for instance-side dispatch on v.
func (vm *VM) ClassFor(v Value) *Class {
	switch {
	case v == Nil:
		return vm.NilClass
	case v == True:
		return vm.TrueClass
	case v == False:
		return vm.FalseClass
	case v.IsSmallInt():
		return vm.IntegerClass
	case v.IsFloat():
		return vm.FloatClass
	case !v.IsSymbol():
		return vm.ObjectClass
	}

	switch v.marker() {
	case 0:
		return vm.SymbolClass
	case stringMarker:
		return vm.StringClass
	case hashMarker:
		return vm.HashClass
	case largeIntMarker:
		return vm.IntegerClass
	case exceptionMarker:
		if c := vm.exceptionClassOf(v); c != nil {
			return c
		}
		return vm.ExceptionClass
	case instanceMarker:
		if inst := vm.registry.GetInstance(v); inst != nil {
			return inst.Class
		}
	case classValueMarker:
		return vm.ClassClass
	case dataMarker:
		if cell := vm.registry.getData(v); cell != nil {
			return cell.class
		}
	}
	return vm.ObjectClass
}

// TypeName returns the name used for v in error messages: "nil", "true"
// and "false" for the specials, the class name otherwise.
func (vm *VM) TypeName(v Value) string {
	switch v {
	case Nil:
		return "nil"
	case True:
		return "true"
	case False:
		return "false"
	}
	return vm.ClassFor(v).Name
}

// ClassValue returns the VM value naming class c.
func (vm *VM) ClassValue(c *Class) Value {
	return vm.registry.ClassValue(c)
}

// LookupClass returns the class value registered under name.
func (vm *VM) LookupClass(name string) (Value, bool) {
	c := vm.Classes.Lookup(name)
	if c == nil {
		return Nil, false
	}
	return vm.ClassValue(c), true
}

// ---------------------------------------------------------------------------
// Message sending
// ---------------------------------------------------------------------------

// lookup finds the method selector resolves to on v. Class values consult
// the class-side vtable of the named class first.
func (vm *VM) lookup(v Value, selector string) Method {
	id, ok := vm.Symbols.Lookup(selector)
	if !ok {
		return nil
	}
	if c := vm.registry.GetClass(v); c != nil {
		if m := c.ClassVTable.Lookup(id); m != nil {
			return m
		}
	}
	return vm.ClassFor(v).VTable.Lookup(id)
}

// RespondTo reports whether v has a method for selector.
func (vm *VM) RespondTo(v Value, selector string) bool {
	return vm.lookup(v, selector) != nil
}

// Call dispatches selector on receiver from inside a primitive. Failures
// raise; use Send from host code.
func (vm *VM) Call(receiver Value, selector string, args ...Value) Value {
	m := vm.lookup(receiver, selector)
	if m == nil {
		vm.Raise(NewError(KindNoMethod, "undefined method '%s' for %s", selector, vm.describe(receiver)))
	}
	if !acceptsArgs(m, len(args)) {
		lo, hi := m.Arity()
		vm.Raise(ArgumentError("wrong number of arguments (given " + strconv.Itoa(len(args)) + ", expected " + arityString(lo, hi) + ")"))
	}
	return m.Invoke(vm, receiver, args)
}

// Send dispatches selector on receiver and converts a raised exception into
// a *RaisedError.
func (vm *VM) Send(receiver Value, selector string, args ...Value) (result Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			raised := vm.recoverSignal(r)
			vm.log.Debugf("%s raised %s", selector, raised)
			result, err = Nil, raised
		}
	}()
	return vm.Call(receiver, selector, args...), nil
}

func (vm *VM) describe(v Value) string {
	switch {
	case v.IsSpecial():
		return vm.TypeName(v)
	case vm.registry.GetClass(v) != nil:
		return "class " + vm.registry.GetClass(v).Name
	default:
		return "an instance of " + vm.TypeName(v)
	}
}

func arityString(lo, hi int) string {
	switch {
	case hi < 0:
		return strconv.Itoa(lo) + "+"
	case lo == hi:
		return strconv.Itoa(lo)
	default:
		return strconv.Itoa(lo) + ".." + strconv.Itoa(hi)
	}
}
