// Package diag provides structured error codes and an execution trace
// logger shared by every phase of the corec compiler/interpreter core.
//
// This is not a diagnostic pretty-printer: codes carry enough structure for
// a caller (test, embedder, or a future pretty-printer built elsewhere) to
// act on them, but diag itself never formats source snippets or renders
// carets under a span.
package diag

// Code identifies a specific error or panic condition. Codes are grouped by
// phase prefix: RSLV (resolver), TYPE (semantic types), PAT (patterns),
// LAY (layout/encoding), EVAL (evaluation panics), CGEN (codegen support),
// CAP (builtins/capabilities).
type Code string

const (
	// Resolution errors
	ResolveModulePathErr  Code = "RSLV001"
	UsingPathItemPublic   Code = "RSLV002"
	UsingListPublic       Code = "RSLV003"
	UsingListDup          Code = "RSLV004"
	VisibilityDenied      Code = "RSLV005"
	NameNotFound          Code = "RSLV006"
	CollectDup            Code = "RSLV007"

	// Semantic type errors
	UnknownTypeName       Code = "TYPE001"
	TupleIndexNonConst    Code = "TYPE002"
	TupleIndexOOB         Code = "TYPE003"
	TupleAccessNotTuple   Code = "TYPE004"
	ValueUseNonBitcopy    Code = "TYPE005"
	FloatSuffixMismatch   Code = "E-TYP-1531"
	NullLiteralInferErr   Code = "TYPE006"
	LiteralOverflow       Code = "TYPE007"
	LiteralOutOfRange     Code = "TYPE008"
	WFApplyArityErr       Code = "TYPE009"
	ConstLenNotConst      Code = "TYPE010"

	// Pattern typing errors
	PatDupErr          Code = "PAT001"
	PatTupleArityErr   Code = "PAT002"
	RangePatternNonConst Code = "PAT003"
	RangePatternEmpty    Code = "PAT004"
	PatFieldUnknown      Code = "PAT005"
	PatVariantUnknown    Code = "PAT006"
	PatTypeMismatch      Code = "PAT007"

	// Layout/encoding errors
	EncodeConstRange   Code = "LAY001"
	InvalidNiche       Code = "LAY002"
	ValidValueReject   Code = "LAY003"

	// Evaluation panics, mirrors PanicReason 1:1.
	EvalErrorExpr    Code = "EVAL001"
	EvalErrorStmt    Code = "EVAL002"
	EvalDivZero      Code = "EVAL003"
	EvalOverflow     Code = "EVAL004"
	EvalShift        Code = "EVAL005"
	EvalBounds       Code = "EVAL006"
	EvalCast         Code = "EVAL007"
	EvalNullDeref    Code = "EVAL008"
	EvalExpiredDeref Code = "EVAL009"
	EvalInitPanic    Code = "EVAL010"
	EvalOther        Code = "EVAL011"

	// Codegen support errors
	ABIInvalidType   Code = "CGEN001"
	MangleInvalid    Code = "CGEN002"

	// Builtins/capability errors
	AllocOutOfMemory Code = "CAP001"
	SandboxViolation Code = "CAP002"
	FSNotFound       Code = "CAP003"
	FSAlreadyExists  Code = "CAP004"
	FSWrongState     Code = "CAP005"
)
