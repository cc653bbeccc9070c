package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/sethmlarson/trytravis/pkg/provision"
)

var spewConfig = spew.ConfigState{
	Indent:                  "  ",
	DisableMethods:          true,
	DisableCapacities:       true,
	DisablePointerAddresses: true,
	SortKeys:                true,
}

// DumpCommands renders a command trace one line per command, for fail-fast
// diffing.
func DumpCommands(cmds []provision.Command) string {
	ret := new(strings.Builder)
	for i, cmd := range cmds {
		fmt.Fprintf(ret, "%3d: %s\n", i, cmd)
	}
	return ret.String()
}

// DumpCommandsFull renders everything about a command trace, stdin payloads
// and search paths included.
func DumpCommandsFull(cmds []provision.Command) string {
	ret := new(strings.Builder)
	for i, cmd := range cmds {
		fmt.Fprintf(ret, "command[%d] = %s", i, spewConfig.Sdump(cmd))
	}
	return ret.String()
}

// AssertEqualCommands compares two command traces; on mismatch it reports a
// unified diff of the short listing first, then of the full dump.
func AssertEqualCommands(t *testing.T, exp, act []provision.Command) bool {
	t.Helper()

	expStr := DumpCommands(exp)
	actStr := DumpCommands(act)
	if expStr != actStr {
		diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(expStr),
			B:        difflib.SplitLines(actStr),
			FromFile: "Expected",
			ToFile:   "Actual",
			Context:  1,
		})
		t.Errorf("Listing diff:\n%s", diff)
		return false
	}

	expStr = DumpCommandsFull(exp)
	actStr = DumpCommandsFull(act)
	if expStr != actStr {
		diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(expStr),
			B:        difflib.SplitLines(actStr),
			FromFile: "Expected",
			ToFile:   "Actual",
			Context:  1,
		})
		t.Errorf("Full diff:\n%s", diff)
		return false
	}

	return true
}
