// Package model defines core data structures for namedgen.
package model

// Parameter is one entry of a function's ordered parameter list.
type Parameter struct {
	Name       string
	Position   int
	Type       string // verbatim type text, never inspected
	Variadic   bool
	HasDefault bool

	// Local is the name the parameter takes inside generated methods when
	// Name is also referenced by a default expression. Empty means Name.
	Local string
}

// LocalName returns the name of the parameter inside generated methods.
func (p Parameter) LocalName() string {
	if p.Local != "" {
		return p.Local
	}
	return p.Name
}

// Signature is the ordered parameter list of an annotated function.
// Positions are contiguous from 0.
type Signature struct {
	Name   string
	Params []Parameter
	Result string // result types only, without names
	Line   int
}

// Param returns the parameter called name.
func (s *Signature) Param(name string) (Parameter, bool) {
	for _, p := range s.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Parameter{}, false
}

// ParamNames returns the parameter names in declaration order.
func (s *Signature) ParamNames() []string {
	names := make([]string, len(s.Params))
	for i, p := range s.Params {
		names[i] = p.Name
	}
	return names
}

// DefaultEntry associates a parameter with a default expression.
type DefaultEntry struct {
	Param string
	Expr  string // verbatim Go expression
}

// DefaultTable maps parameter names to their defaults. Exactly the
// parameters present are optional.
type DefaultTable map[string]DefaultEntry

// Has reports whether name is optional.
func (t DefaultTable) Has(name string) bool {
	_, ok := t[name]
	return ok
}

// Get returns the default of name.
func (t DefaultTable) Get(name string) (DefaultEntry, bool) {
	e, ok := t[name]
	return e, ok
}

// Len returns the number of optional parameters.
func (t DefaultTable) Len() int {
	return len(t)
}

// Span is a half-open byte range in a source file.
type Span struct {
	Start int
	End   int
}

// FuncDecl is an annotated function found in a template file.
type FuncDecl struct {
	Signature Signature
	Directive string // text after "//named:", e.g. "defaults(a = 1)"
	File      string
	Line      int // line of the directive comment

	NameSpan      Span
	DirectiveSpan Span
	DeclEnd       int
}

// CombinationRule is one generated call shape. Supplied lists, in signature
// order, every parameter the caller names for this shape. Mask has bit i set
// when the i-th optional parameter (in signature order) is supplied.
type CombinationRule struct {
	Mask     uint32
	Supplied []Parameter
}

// CallForm is the synthesized method for one CombinationRule.
type CallForm struct {
	Rule   CombinationRule
	Method string
	Params []Parameter
	Args   []string // positional arguments, in signature order
}

// Binding publishes the call forms of one function under its original name.
type Binding struct {
	Func       string
	Var        string
	Type       string
	Positional string
	Result     string
	Forms      []CallForm
}

// ReportEntry describes the binding generated for one function.
type ReportEntry struct {
	File     string
	Line     int
	Optional []string
	Binding  Binding
}

// Report lists every binding produced by a run, ready for serialization.
type Report struct {
	Root    string
	Entries []ReportEntry
}
