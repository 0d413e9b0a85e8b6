package ast

import (
	"io"

	"github.com/k0kubun/pp/v3"
	"gitlab.com/tozd/go/errors"
)

// Dump pretty-prints the tree rooted at n. Positions are included.
func Dump(w io.Writer, n Node, colorize bool) error {
	printer := pp.New()
	printer.SetColoringEnabled(colorize)
	printer.SetExportedOnly(true)
	if _, err := printer.Fprintln(w, n); err != nil {
		return errors.Errorf("dumping tree: %w", err)
	}
	return nil
}
