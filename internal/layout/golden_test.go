package layout

import (
	"testing"

	"github.com/cursive-lang/corec/internal/semtype"
	"github.com/cursive-lang/corec/testutil"
)

// TestLayoutOfI32Golden pins i32's layout against a committed fixture so a
// change to primLayout's size/align table fails loudly and legibly, rather
// than as a diff buried in a larger struct-field assertion.
func TestLayoutOfI32Golden(t *testing.T) {
	got, err := LayoutOf(&semtype.Prim{Kind: semtype.I32}, nil)
	if err != nil {
		t.Fatalf("LayoutOf: %v", err)
	}
	testutil.CompareWithGolden(t, "layout", "i32", got)
}
