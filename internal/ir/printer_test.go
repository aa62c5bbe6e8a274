package ir

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// These pin down the exact dump text for straight-line functions and the
// per-block dump text for the branching one; loop-bearing functions are
// checked structurally (here, and in cfg_test.go and builder_test.go),
// since their exact instruction numbering is sensitive to dedup/backpatch
// ordering.

func TestDumpScenario1EmptyFunction(t *testing.T) {
	f := buildCFG(t, "fn main() {}")
	want := "Function main:\n\nBB 0: preds: [] succs: []\n 0 ReturnVoid\n"
	assert.Equal(t, want, Dump(f))
}

func TestDumpScenario2ReturnParameter(t *testing.T) {
	f := buildCFG(t, "fn main(p: i64) -> i64 { return p; }")
	want := "Function main:\n\nBB 0: preds: [] succs: []\n%0 = Parameter\n 1 Return %0\n"
	assert.Equal(t, want, Dump(f))
}

func TestDumpScenario3LocalAndArithmetic(t *testing.T) {
	f := buildCFG(t, `fn main(p: i64) -> i64 {
		let mut local: i64 = 1;
		return p + local;
	}`)
	want := "Function main:\n\n" +
		"BB 0: preds: [] succs: []\n" +
		"%0 = Parameter\n" +
		"%1 = Alloc\n" +
		"%2 = Constant 1\n" +
		" 3 Store %2 at %1\n" +
		"%4 = Load %1\n" +
		"%5 = Add %0, %4\n" +
		" 6 Return %5\n"
	assert.Equal(t, want, Dump(f))
}

func TestDumpScenario4IfElseBothReturning(t *testing.T) {
	f := buildCFG(t, "fn main(p: i64) -> i64 { if (p == 0) { return 0; } else { return 1; } }")
	dump := Dump(f)

	assert.Equal(t, 4, len(f.Blocks))
	assert.Contains(t, dump, "BB 0: preds: [] succs: [1, 2]\n%0 = Parameter\n%1 = Constant 0\n 2 Branch %0 == %1\n")
	assert.Contains(t, dump, "BB 1: preds: [0] succs: [3]\n 3 Return %1\n 4 Jump\n")
	assert.Contains(t, dump, "BB 2: preds: [0] succs: [3]\n%5 = Constant 1\n 6 Return %5\n")
	assert.Contains(t, dump, "BB 3: preds: [1, 2] succs: []\n 7 ReturnVoid\n")
}

func TestDumpScenario5ConditionalLoopWithBreak(t *testing.T) {
	f := buildCFG(t, `fn main() {
		let mut a: i64 = 0;
		while (a == 1) { a = a + 1; if (a == 4) { break; } }
	}`)
	dump := Dump(f)

	// The loop's IfFalse and the break's placeholder Goto converge on
	// the same trailing ReturnVoid block.
	assert.True(t, strings.Contains(dump, "ReturnVoid"))
	lastBlock := f.Blocks[len(f.Blocks)-1]
	assert.Empty(t, lastBlock.Succs)
	assert.True(t, len(lastBlock.Preds) >= 2, "both the loop exit and the break should land on the exit block")
}

func TestDumpScenario6NestedInfiniteLoops(t *testing.T) {
	f := buildCFG(t, `fn main(p0: i64, p1: i64) {
		while (true) { if (p0 == 1) { break; }
			while (true) { if (p1 == 2) { break; } } }
	}`)
	lastBlock := f.Blocks[len(f.Blocks)-1]
	assert.Empty(t, lastBlock.Succs)
	assert.Contains(t, Dump(f), "ReturnVoid")
}
