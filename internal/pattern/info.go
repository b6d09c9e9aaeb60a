// Package pattern implements: TypeMatchPattern (bidirectional
// pattern typing against an expected type) and IrrefutablePattern (the
// totality check `let` uses to decide whether a pattern needs no match
// arm). This is distinct from internal/match, which performs the
// value-level counterpart (MatchPattern) during evaluation.
//
// Dispatch is per-pattern-kind over Cursive's record/enum/modal/range
// pattern set.
package pattern

import (
	"github.com/cursive-lang/corec/internal/ast"
	"github.com/cursive-lang/corec/internal/corelib"
	"github.com/cursive-lang/corec/internal/resolve"
	"github.com/cursive-lang/corec/internal/semtype"
)

// FieldType is one named field's lowered type, used for both record and
// enum-record-variant field lookups.
type FieldType struct {
	Name string
	Type semtype.Type
}

// Info answers the declaration-table questions TypeMatchPattern and
// IrrefutablePattern need about nominal types, without this package
// depending on a concrete declaration-table implementation.
type Info interface {
	semtype.UserTypeInfo

	// RecordFieldType looks up a declared record field's lowered type,
	// visibility, and declaring module.
	RecordFieldType(path []string, field string) (ftype semtype.Type, vis ast.Visibility, declModule corelib.ModulePath, ok bool)
	// RecordFieldNames lists every field a record declares, in
	// declaration order.
	RecordFieldNames(path []string) []string

	// EnumVariantShape looks up a declared enum variant's payload shape.
	EnumVariantShape(path []string, variant string) (kind ast.VariantPayloadKind, tuple []semtype.Type, fields []FieldType, ok bool)
	// EnumVariantCount reports how many variants an enum declares.
	EnumVariantCount(path []string) int

	// ModalStateFields looks up a declared modal state's field set.
	ModalStateFields(path []string, state string) (fields []FieldType, ok bool)
	// ModalStateCount reports how many states a modal type declares.
	ModalStateCount(path []string) int
}

// Ctx threads the ambient information a pattern-typing pass needs through
// every recursive call: the module doing the matching (for visibility),
// the injected visibility predicate (can_access, reused
// here per the same injection point), declaration lookups, and the
// syntactic-type lowering hooks TypedPattern needs.
type Ctx struct {
	FromModule corelib.ModulePath
	CanAccess  resolve.CanAccess
	Info       Info
	TypeEnv    semtype.TypeEnv
	ConstLen   semtype.ConstLenEval
}

// Binding is one name bound by a successfully matched pattern.
type Binding struct {
	Name string
	Type semtype.Type
}
