// Command cursivec is a manual smoke-test entry point for the bootstrap
// core: it evaluates a small hand-built sample module (there is no
// tokeniser/parser in this tree, evaluation starts at a hand-built AST) and prints the result, optionally tracing scope/region/call
// lifecycle events and writing out a runtime snapshot. It is not a
// driver: no source-file loading, no CLI subcommand surface beyond this.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/cursive-lang/corec/internal/ast"
	"github.com/cursive-lang/corec/internal/corelib"
	"github.com/cursive-lang/corec/internal/eval"
	"github.com/cursive-lang/corec/internal/sigma"
	"github.com/cursive-lang/corec/internal/snapshot"
)

var (
	Version = "dev"
	Commit  = "unknown"

	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

func main() {
	var (
		versionFlag  = flag.Bool("version", false, "print version information")
		traceFlag    = flag.Bool("trace", false, "enable scope/region/call trace output")
		heapQuota    = flag.Uint64("heap-quota", 0, "heap allocation quota in bytes (0 = unlimited)")
		snapshotPath = flag.String("snapshot", "", "write the core runtime snapshot to this path and exit")
	)
	flag.Parse()

	if *versionFlag {
		printVersion()
		return
	}

	if *snapshotPath != "" {
		runSnapshot(*snapshotPath)
		return
	}

	runSample(*traceFlag, *heapQuota)
}

func printVersion() {
	fmt.Printf("%s %s\n", bold("cursivec"), Version)
	if Commit != "unknown" {
		fmt.Printf("commit: %s\n", Commit)
	}
}

func runSnapshot(path string) {
	snap := snapshot.CoreRuntimeSnapshot()
	if err := snap.Save(path); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("error"), err)
		os.Exit(1)
	}
	fmt.Printf("%s wrote runtime snapshot to %s (digest %s)\n", green("ok"), path, snap.Digest[:12])
}

// runSample evaluates `double(21)` through a hand-built proc call, the
// smallest program that exercises call dispatch, arithmetic, and (with
// -trace) the scope push/pop lifecycle around a procedure body.
func runSample(trace bool, heapQuota uint64) {
	mod := &ast.Module{
		Path: corelib.ModulePath{"sample"},
		Items: []ast.Decl{
			&ast.ProcDecl{
				Name:   "double",
				Params: []ast.Param{{Name: "n", Mode: ast.ModeAlias}},
				Body: &ast.Block{
					Result: &ast.BinaryExpr{
						Op:    ast.OpMul,
						Left:  &ast.Ident{Name: "n"},
						Right: &ast.Literal{Kind: ast.LitInt, Text: "2", Base: 10, Suffix: "i32"},
					},
				},
			},
		},
	}

	ev := eval.NewEvaluator([]*ast.Module{mod})
	s := sigma.New(sigma.Config{HeapQuota: heapQuota, Trace: trace})

	call := &ast.CallExpr{
		Callee: &ast.Ident{Name: "double"},
		Args:   []ast.Arg{{Value: &ast.Literal{Kind: ast.LitInt, Text: "21", Base: 10, Suffix: "i32"}}},
	}

	v, ctrl := ev.EvalExpr(s, call)
	if ctrl.Kind == sigma.CtrlPanic {
		fmt.Fprintf(os.Stderr, "%s: %s (%s)\n", red("panic"), ctrl.Panic.Reason.DiagCode(), ctrl.Panic.Detail)
		os.Exit(1)
	}
	fmt.Printf("%s double(21) = %s\n", cyan("=>"), v.String())

	if trace {
		fmt.Printf("%d trace events recorded\n", len(s.Trace.Events()))
	}
}
