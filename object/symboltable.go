// ==============================================================================================
// FILE: object/symboltable.go
// ==============================================================================================
// PACKAGE: object
// PURPOSE: Chained scopes and call-stack contexts.
// ==============================================================================================

package object

// SymbolTable is a name -> Value mapping plus an optional parent pointer.
// Lookup walks up the parent chain; Set writes into the nearest scope that
// already defines the name (walking up), falling back to the current scope
// only when no scope defines it yet. Declare always writes into the
// current scope unconditionally, regardless of shadowing.
type SymbolTable struct {
	vars   map[string]Value
	parent *SymbolTable
}

// NewSymbolTable creates a scope, optionally chained to parent.
func NewSymbolTable(parent *SymbolTable) *SymbolTable {
	return &SymbolTable{vars: make(map[string]Value), parent: parent}
}

// Get walks the parent chain looking for name.
func (t *SymbolTable) Get(name string) (Value, bool) {
	if v, ok := t.vars[name]; ok {
		return v, true
	}
	if t.parent != nil {
		return t.parent.Get(name)
	}
	return nil, false
}

// Found reports whether name is visible from this scope.
func (t *SymbolTable) Found(name string) bool {
	_, ok := t.Get(name)
	return ok
}

// owner returns the nearest scope (starting at t) that already defines
// name, or nil if no scope in the chain defines it.
func (t *SymbolTable) owner(name string) *SymbolTable {
	if _, ok := t.vars[name]; ok {
		return t
	}
	if t.parent != nil {
		return t.parent.owner(name)
	}
	return nil
}

// Set writes value into the nearest enclosing scope that already defines
// name; if no scope defines it, it writes into the current scope.
func (t *SymbolTable) Set(name string, value Value) {
	if owner := t.owner(name); owner != nil {
		owner.vars[name] = value
		return
	}
	t.vars[name] = value
}

// Declare always writes into the current scope, unconditionally. This is
// I HAS A's semantics, distinct from Set's nearest-scope-write rule.
func (t *SymbolTable) Declare(name string, value Value) {
	t.vars[name] = value
}

// Root walks to the outermost scope in the chain, where IT lives.
func (t *SymbolTable) Root() *SymbolTable {
	if t.parent == nil {
		return t
	}
	return t.parent.Root()
}

// ItName is the reserved implicit-result variable name.
const ItName = "IT"

// SetIT updates IT in the outermost scope of this chain.
func (t *SymbolTable) SetIT(value Value) {
	t.Root().Declare(ItName, value)
}

// GetIT reads IT, defaulting to NOOB if it has never been set.
func (t *SymbolTable) GetIT() Value {
	if v, ok := t.Root().Get(ItName); ok {
		return v
	}
	return TheNoob
}

// Names returns the variable names declared directly in this scope
// (not its parents), for debug/inspection sinks. Order is unspecified.
func (t *SymbolTable) Names() []string {
	names := make([]string, 0, len(t.vars))
	for name := range t.vars {
		names = append(names, name)
	}
	return names
}

// Context bundles a display name with a symbol table and a parent link,
// forming a call stack for diagnostics.
type Context struct {
	Name    string
	Symbols *SymbolTable
	Parent  *Context
}

// NewContext creates a context whose symbol table is a fresh scope
// chained to the parent context's symbol table (nil parent makes the
// global context, with a symbol table that has no parent scope either).
func NewContext(name string, parent *Context) *Context {
	var parentSymbols *SymbolTable
	if parent != nil {
		parentSymbols = parent.Symbols
	}
	return &Context{
		Name:    name,
		Symbols: NewSymbolTable(parentSymbols),
		Parent:  parent,
	}
}
