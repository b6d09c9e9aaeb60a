// Package codegen is the support layer a native code emitter consumes: it
// never emits instructions itself (there is no LLVM backend in this core),
// but it owns every decision the emitter needs to be byte-identical across
// implementations, symbol mangling, ABI classification, the panic
// out-parameter convention, bounds/cast/transmute lowering guards, and the
// runtime interface's symbol catalogue.
//
// Grounded on malphas-lang's internal/codegen/llvm/types.go and
// internal/codegen/mir2llvm/generator.go (other_examples/) for the
// type-to-representation mapping idiom and the "pure function over a typed
// IR" shape of a codegen support layer; the mangling and ABI rules
// themselves come from corelib.Mangle/PathSig/LiteralID and the layout
// package's size/alignment tables.
package codegen
