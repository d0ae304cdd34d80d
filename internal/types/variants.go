package types

import "github.com/funvibe/typecore/internal/diagnostics"

// AnyKind classifies why a particular Any value exists; it is diagnostic
// only and never affects subtyping or equality (§3.1).
type AnyKind int

const (
	AnyUnannotated AnyKind = iota
	AnyExplicit
	AnyFromError
	AnyFromAnotherAny
	AnySpecialForm
	AnyFromOmittedGenerics
	AnyImplementationArtifact
)

// Any is the top/bottom dual: subtype of, and supertype of, every type.
type Any struct {
	Position diagnostics.Pos
	AnyKind  AnyKind
}

func (*Any) typeNode()                { }
func (a *Any) Pos() diagnostics.Pos   { return a.Position }
func (*Any) String() string           { return "Any" }

// NewAny builds an Any value of the given diagnostic kind.
func NewAny(kind AnyKind) *Any { return &Any{AnyKind: kind} }

// None is the singleton None type, distinguished from Uninhabited.
type NoneType struct {
	Position diagnostics.Pos
}

func (*NoneType) typeNode()              { }
func (n *NoneType) Pos() diagnostics.Pos { return n.Position }
func (*NoneType) String() string         { return "None" }

// NewNone builds the None type.
func NewNone() *NoneType { return &NoneType{} }

// Uninhabited is the bottom type: the erasure of an unsolved inference
// variable, an explicit NoReturn annotation, the result of a meet or a
// narrowing that leaves nothing, or NewUnion of no items.
type Uninhabited struct {
	Position   diagnostics.Pos
	IsNoReturn bool
}

func (*Uninhabited) typeNode()              { }
func (u *Uninhabited) Pos() diagnostics.Pos { return u.Position }
func (u *Uninhabited) String() string {
	if u.IsNoReturn {
		return "NoReturn"
	}
	return "<uninhabited>"
}

// Deleted marks a name that must not be read, e.g. after `del x`.
type Deleted struct {
	Position diagnostics.Pos
	Source   string
}

func (*Deleted) typeNode()              { }
func (d *Deleted) Pos() diagnostics.Pos { return d.Position }
func (*Deleted) String() string         { return "<deleted>" }

// Erased is a placeholder used during two-pass inference; it is never
// user-visible in a final diagnostic.
type Erased struct {
	Position diagnostics.Pos
}

func (*Erased) typeNode()              { }
func (e *Erased) Pos() diagnostics.Pos { return e.Position }
func (*Erased) String() string         { return "<erased>" }

// Partial represents inference in progress for a container literal whose
// element type is not yet known; Base is nil for a "None"-partial (e.g. `x =
// None` before its first use determines `Optional[T]`).
type Partial struct {
	Position   diagnostics.Pos
	Base       *TypeInfo
	Var        VarId
	InnerTypes []Type
}

func (*Partial) typeNode()              { }
func (p *Partial) Pos() diagnostics.Pos { return p.Position }
func (p *Partial) String() string {
	if p.Base == nil {
		return "<partial None>"
	}
	return "<partial " + p.Base.Fullname + ">"
}

// Unbound is a pre-resolution placeholder; the core treats it as Any.
type Unbound struct {
	Position diagnostics.Pos
	Name     string
	Args     []Type
}

func (*Unbound) typeNode()              { }
func (u *Unbound) Pos() diagnostics.Pos { return u.Position }
func (u *Unbound) String() string       { return "<unbound " + u.Name + ">" }

// Instance is a nominal class applied to its type arguments.
type Instance struct {
	Position diagnostics.Pos
	TypeInfo *TypeInfo
	Args     []Type
}

func (*Instance) typeNode()              { }
func (i *Instance) Pos() diagnostics.Pos { return i.Position }

// NewInstance builds an Instance, defaulting Args to Any for every declared
// type parameter when none are supplied (§3.1 invariant: an unparameterised
// class is implicitly [Any, …]).
func NewInstance(info *TypeInfo, args ...Type) *Instance {
	if len(args) == 0 && len(info.TypeVars) > 0 {
		args = make([]Type, len(info.TypeVars))
		for i := range args {
			args[i] = NewAny(AnyFromOmittedGenerics)
		}
	}
	return &Instance{TypeInfo: info, Args: args}
}

// TypeVar is a universally or existentially quantified variable. When
// Values is non-empty the variable is restricted to exactly one of those
// types (a value restriction, e.g. `AnyStr`).
type TypeVar struct {
	Position   diagnostics.Pos
	Id         VarId
	Name       string
	Values     []Type
	UpperBound Type
	VarVariance Variance
}

func (*TypeVar) typeNode()              { }
func (t *TypeVar) Pos() diagnostics.Pos { return t.Position }
func (t *TypeVar) String() string       { return t.Name }

// TypeVarTuple is a variadic type variable, standing for zero or more
// positional type arguments.
type TypeVarTuple struct {
	Position      diagnostics.Pos
	Id            VarId
	Name          string
	TupleFallback *Instance
}

func (*TypeVarTuple) typeNode()              { }
func (t *TypeVarTuple) Pos() diagnostics.Pos { return t.Position }
func (t *TypeVarTuple) String() string       { return "*" + t.Name }

// ParamSpec stands for a parameter list.
type ParamSpec struct {
	Position   diagnostics.Pos
	Id         VarId
	Name       string
	UpperBound Type
}

func (*ParamSpec) typeNode()              { }
func (p *ParamSpec) Pos() diagnostics.Pos { return p.Position }
func (p *ParamSpec) String() string       { return "**" + p.Name }

// TypeVarLike is implemented by TypeVar, TypeVarTuple, and ParamSpec — the
// three binder-quantifiable variable shapes a Callable's Variables field can
// hold.
type TypeVarLike interface {
	Type
	VarId() VarId
}

func (t *TypeVar) VarId() VarId      { return t.Id }
func (t *TypeVarTuple) VarId() VarId { return t.Id }
func (p *ParamSpec) VarId() VarId    { return p.Id }

// Callable is a function type.
type Callable struct {
	Position       diagnostics.Pos
	ArgTypes       []Type
	ArgKinds       []ArgKind
	ArgNames       []*string
	RetType        Type
	Fallback       *Instance
	Variables      []TypeVarLike
	IsEllipsisArgs bool
	SpecialSig     string
	BoundArgs      []Type
	TypeGuard      Type
	IsTypeObj      bool
}

func (*Callable) typeNode()              { }
func (c *Callable) Pos() diagnostics.Pos { return c.Position }

// MinArgs returns the count of mandatory (non-optional, non-star)
// parameters, positional and named alike.
func (c *Callable) MinArgs() int {
	n := 0
	for _, k := range c.ArgKinds {
		if k == POS || k == NAMED {
			n++
		}
	}
	return n
}

// HasStar reports whether the callable accepts *args.
func (c *Callable) HasStar() bool {
	for _, k := range c.ArgKinds {
		if k == STAR {
			return true
		}
	}
	return false
}

// HasStarStar reports whether the callable accepts **kwargs.
func (c *Callable) HasStarStar() bool {
	for _, k := range c.ArgKinds {
		if k == STARSTAR {
			return true
		}
	}
	return false
}

// Overloaded is an ordered overload set (§4.4 referenced from §3.1). No
// package here resolves a call against it; the subtype check accepts an
// Overloaded against a Callable when any one item is a subtype.
type Overloaded struct {
	Position diagnostics.Pos
	Items    []*Callable
}

func (*Overloaded) typeNode()              { }
func (o *Overloaded) Pos() diagnostics.Pos { return o.Position }

// Tuple is a heterogeneous, possibly-variadic tuple. Items may contain at
// most one Unpack (§3.1 invariant).
type Tuple struct {
	Position        diagnostics.Pos
	Items           []Type
	PartialFallback *Instance
}

func (*Tuple) typeNode()              { }
func (t *Tuple) Pos() diagnostics.Pos { return t.Position }

// TypedDict is a dictionary with a statically fixed schema.
type TypedDict struct {
	Position     diagnostics.Pos
	Items        []TypedDictItem
	RequiredKeys map[string]bool
	Fallback     *Instance
}

// TypedDictItem is one ordered (name, type) entry of a TypedDict's schema.
type TypedDictItem struct {
	Name string
	Type Type
}

func (*TypedDict) typeNode()              { }
func (t *TypedDict) Pos() diagnostics.Pos { return t.Position }

func (t *TypedDict) Get(name string) (Type, bool) {
	for _, it := range t.Items {
		if it.Name == name {
			return it.Type, true
		}
	}
	return nil, false
}

// LiteralValueKind distinguishes the handful of literal-value shapes Literal
// supports.
type LiteralValueKind int

const (
	LiteralInt LiteralValueKind = iota
	LiteralStr
	LiteralBytes
	LiteralBool
)

// Literal is a single-value subtype of its fallback.
type Literal struct {
	Position diagnostics.Pos
	ValueKind LiteralValueKind
	IntValue  int64
	StrValue  string
	BoolValue bool
	Fallback  *Instance
}

func (*Literal) typeNode()              { }
func (l *Literal) Pos() diagnostics.Pos { return l.Position }

// Union is a sum type, kept in simplified normal form (§3.1, §4.A).
type Union struct {
	Position diagnostics.Pos
	Items    []Type
}

func (*Union) typeNode()              { }
func (u *Union) Pos() diagnostics.Pos { return u.Position }

// TypeType is the type object of Item, i.e. type[T].
type TypeType struct {
	Position diagnostics.Pos
	Item     Type
}

func (*TypeType) typeNode()              { }
func (t *TypeType) Pos() diagnostics.Pos { return t.Position }

// Unpack is the *T operator inside a tuple or parameter list.
type Unpack struct {
	Position diagnostics.Pos
	Inner    Type
}

func (*Unpack) typeNode()              { }
func (u *Unpack) Pos() diagnostics.Pos { return u.Position }
func (u *Unpack) String() string       { return "*" + u.Inner.String() }
