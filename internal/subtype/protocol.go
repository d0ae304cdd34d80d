package subtype

import (
	"sort"

	"github.com/funvibe/typecore/internal/config"
	"github.com/funvibe/typecore/internal/diagnostics"
	"github.com/funvibe/typecore/internal/types"
)

// memberType resolves a member of left by name through left's MRO (§4.C).
// Only an Instance has members here; for any other left-hand value (a
// Callable included) no member is found.
func memberType(left types.Type, name string) (types.Type, *types.MemberFlags, bool) {
	switch l := left.(type) {
	case *types.Instance:
		for _, info := range l.TypeInfo.MRO {
			if t, ok := info.Members[name]; ok {
				flags := info.MemberFlags[name]
				return t, &flags, true
			}
		}
		return nil, nil, false
	default:
		return nil, nil, false
	}
}

// protocolConforms is the silent predicate IsSubtype uses internally.
func protocolConforms(left types.Type, protocol *types.Instance, opts config.Options) bool {
	return checkProtocol(left, protocol, opts, diagnostics.Pos{}, nil)
}

// CheckProtocolConformance is the diagnostic-producing variant (§7, S7):
// when left fails to conform to protocol, it reports one "protocol member
// missing" or "protocol member type conflict" diagnostic per offending
// member.
func CheckProtocolConformance(left types.Type, protocol *types.Instance, opts config.Options, pos diagnostics.Pos, sink *diagnostics.Sink) bool {
	return checkProtocol(left, protocol, opts, pos, sink)
}

func checkProtocol(left types.Type, protocol *types.Instance, opts config.Options, pos diagnostics.Pos, sink *diagnostics.Sink) bool {
	ok := true
	names := make([]string, 0, len(protocol.TypeInfo.Members))
	for name := range protocol.TypeInfo.Members {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		want := protocol.TypeInfo.Members[name]
		got, gotFlags, found := memberType(left, name)
		if !found {
			ok = false
			if sink != nil {
				sink.Reportf(pos, diagnostics.ErrProtocolMissing,
					"%s has no attribute %q required by protocol %s", describeForProtocol(left), name, protocol.TypeInfo.Fullname)
			}
			continue
		}
		wantFlags := protocol.TypeInfo.MemberFlags[name]
		invariantOK := IsSubtype(got, want, opts) && (wantFlags.ClassVar || wantFlags.Settable == false || IsSubtype(want, got, opts))
		if !invariantOK {
			ok = false
			if sink != nil {
				sink.Reportf(pos, diagnostics.ErrProtocolConflict,
					"protocol member type conflict: member %q expected %s, got %s", name, want.String(), got.String())
			}
			continue
		}
		if gotFlags != nil && (gotFlags.ClassVar != wantFlags.ClassVar || gotFlags.Settable != wantFlags.Settable ||
			gotFlags.ClassMethod != wantFlags.ClassMethod || gotFlags.StaticMethod != wantFlags.StaticMethod) {
			ok = false
			if sink != nil {
				sink.Reportf(pos, diagnostics.ErrProtocolFlagConflict,
					"protocol member flag conflict: member %q", name)
			}
		}
	}

	// Open question (spec §9, preserved deliberately): recursive protocol
	// variance is not checked. If the protocol itself appears among its own
	// member types we do not attempt to verify variance of that recursive
	// occurrence; we only emit the documented limitation diagnostic so a
	// caller can see the check was skipped, never a false negative/positive.
	if protocolMentionsItself(protocol) && sink != nil {
		sink.Reportf(pos, diagnostics.ErrProtocolVariance,
			"protocol %s is used recursively as its own type argument; variance is not checked", protocol.TypeInfo.Fullname)
	}

	return ok
}

func protocolMentionsItself(protocol *types.Instance) bool {
	for _, t := range protocol.TypeInfo.Members {
		if types.Contains(t, func(x types.Type) bool {
			inst, ok := x.(*types.Instance)
			return ok && inst.TypeInfo.Fullname == protocol.TypeInfo.Fullname
		}) {
			return true
		}
	}
	return false
}

func describeForProtocol(t types.Type) string {
	return t.String()
}
