// Package snapshot digests a build's layout table and runtime symbol
// catalogue into a single YAML artifact, so a regression test can detect
// any change to size/alignment/offset numbers or mangled runtime symbol
// names, both are a bit-stable contract with the downstream emitter, and
// an unintentional change to either is exactly the kind of drift this
// package exists to catch.
//
// Grounded on internal/manifest/manifest.go's schema-versioned,
// SHA-256-digested JSON artifact pattern (New/Load/Save/Validate), reworked
// to YAML: a manifest digests which examples are expected to pass, this
// digests which byte layouts and symbol names the core currently produces.
package snapshot
