package types

import "strings"

// String implements the canonical short-form pretty-printer (§4.A): List[int],
// Optional[X] when a union contains exactly one None, Callable[[int], str],
// and a trailing "..." for homogeneous tuples. Two types sharing a short
// name are not disambiguated here — that is the caller's job when printing
// a diagnostic that mentions both (§4.A: "must be printed by their
// fully-qualified name"); FullString below does that.
func (i *Instance) String() string {
	name := shortName(i.TypeInfo.Fullname)
	if len(i.Args) == 0 {
		return name
	}
	parts := make([]string, len(i.Args))
	for idx, a := range i.Args {
		parts[idx] = a.String()
	}
	return name + "[" + strings.Join(parts, ", ") + "]"
}

// FullString renders i using its fully-qualified class name, for diagnostics
// that must disambiguate two classes sharing a short name.
func (i *Instance) FullString() string {
	if len(i.Args) == 0 {
		return i.TypeInfo.Fullname
	}
	parts := make([]string, len(i.Args))
	for idx, a := range i.Args {
		parts[idx] = a.String()
	}
	return i.TypeInfo.Fullname + "[" + strings.Join(parts, ", ") + "]"
}

func shortName(fullname string) string {
	if idx := strings.LastIndex(fullname, "."); idx >= 0 {
		return fullname[idx+1:]
	}
	return fullname
}

func (c *Callable) String() string {
	if c.IsEllipsisArgs {
		return "Callable[..., " + c.RetType.String() + "]"
	}
	parts := make([]string, 0, len(c.ArgTypes))
	for idx, t := range c.ArgTypes {
		s := t.String()
		switch c.ArgKinds[idx] {
		case STAR:
			s = "*" + s
		case STARSTAR:
			s = "**" + s
		}
		parts = append(parts, s)
	}
	return "Callable[[" + strings.Join(parts, ", ") + "], " + c.RetType.String() + "]"
}

func (o *Overloaded) String() string {
	parts := make([]string, len(o.Items))
	for i, it := range o.Items {
		parts[i] = it.String()
	}
	return "Overload[" + strings.Join(parts, ", ") + "]"
}

func (t *Tuple) String() string {
	// A homogeneous tuple (a single Unpack wrapping one element type) is
	// printed with a trailing "..." per §4.A; a fixed-length tuple lists
	// every item, even when all items are identical.
	if len(t.Items) == 1 {
		if up, ok := t.Items[0].(*Unpack); ok {
			return "Tuple[" + up.Inner.String() + ", ...]"
		}
	}
	parts := make([]string, len(t.Items))
	for i, it := range t.Items {
		parts[i] = it.String()
	}
	return "Tuple[" + strings.Join(parts, ", ") + "]"
}

func (t *TypedDict) String() string {
	parts := make([]string, len(t.Items))
	for i, it := range t.Items {
		req := "?"
		if t.RequiredKeys[it.Name] {
			req = ""
		}
		parts[i] = it.Name + req + ": " + it.Type.String()
	}
	return "TypedDict({" + strings.Join(parts, ", ") + "})"
}

func (l *Literal) String() string {
	switch l.ValueKind {
	case LiteralInt:
		return "Literal[" + itoaLiteral(l.IntValue) + "]"
	case LiteralStr:
		return "Literal['" + l.StrValue + "']"
	case LiteralBytes:
		return "Literal[b'" + l.StrValue + "']"
	case LiteralBool:
		if l.BoolValue {
			return "Literal[True]"
		}
		return "Literal[False]"
	default:
		return "Literal[?]"
	}
}

func itoaLiteral(n int64) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// String renders a Union: Optional[X] for exactly {X, None}, otherwise
// Union[...] in member order (§4.A, S3).
func (u *Union) String() string {
	if len(u.Items) == 2 {
		for i, it := range u.Items {
			if _, isNone := it.(*NoneType); isNone {
				other := u.Items[1-i]
				return "Optional[" + other.String() + "]"
			}
		}
	}
	parts := make([]string, len(u.Items))
	for i, it := range u.Items {
		parts[i] = it.String()
	}
	return "Union[" + strings.Join(parts, ", ") + "]"
}

func (t *TypeType) String() string {
	return "type[" + t.Item.String() + "]"
}
