// Package diff renders readable differences for test failures.
package diff

import (
	"strings"

	"github.com/k0kubun/pp/v3"
	"github.com/kylelemons/godebug/diff"
)

const legend = "\n\nto convert ACTUAL ⏩️ EXPECTED:\n\nadd:    ➕\nremove: ➖\n\n"

// Structs pretty-prints both values, exported fields only, and diffs the
// listings. It returns "" when they print the same.
func Structs[T any](want T, got T) string {
	printer := pp.New()
	printer.SetExportedOnly(true)
	printer.SetColoringEnabled(false)
	return render(printer.Sprint(got), printer.Sprint(want))
}

// Text diffs two documents line by line. Trailing whitespace is made visible
// so a missing space after a word shows up in the output.
func Text(want, got string) string {
	if want == got {
		return ""
	}
	return render(visible(got), visible(want))
}

func render(got, want string) string {
	d := diff.Diff(got, want)
	if d == "" {
		return ""
	}
	d = strings.ReplaceAll(d, "\n-", "\n➖")
	d = strings.ReplaceAll(d, "\n+", "\n➕")
	return legend + d
}

func visible(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		trimmed := strings.TrimRight(line, " ")
		if pad := len(line) - len(trimmed); pad > 0 {
			lines[i] = trimmed + strings.Repeat("·", pad)
		}
	}
	return strings.Join(lines, "\n")
}
