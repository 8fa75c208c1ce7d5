package misc

import "github.com/BrugadaSyndrome/bslogger"

// Verbosity is applied to every logger made by NewLogger. Set it before constructing components.
var Verbosity = bslogger.Normal

func NewLogger(name string) bslogger.Logger {
	return bslogger.NewLogger(name, Verbosity, nil)
}
