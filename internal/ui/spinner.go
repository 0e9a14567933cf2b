package ui

import (
	"io"

	"github.com/pterm/pterm"
)

type ptermSpinner struct {
	printer *pterm.SpinnerPrinter
}

func (s ptermSpinner) Stop() {
	if s.printer != nil {
		_ = s.printer.Stop()
	}
}

// PtermSpinner returns a factory for pterm spinners drawn on w. The
// spinner line is removed when it stops.
func PtermSpinner(w io.Writer) SpinnerFactory {
	return func(text string) Spinner {
		printer, err := pterm.DefaultSpinner.
			WithWriter(w).
			WithRemoveWhenDone(true).
			Start(text)
		if err != nil {
			return ptermSpinner{}
		}
		return ptermSpinner{printer: printer}
	}
}

type noopSpinner struct{}

func (noopSpinner) Stop() {}

// NoopSpinner draws nothing.
func NoopSpinner(string) Spinner {
	return noopSpinner{}
}
