package logging

import (
	"github.com/davecgh/go-spew/spew"

	"github.com/vvka-141/dbgapdd/pkg/dbgap"
)

var dumpConfig = &spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

type verboseReporter interface {
	VerboseEnabled() bool
}

// Dump writes a deep, human-readable rendering of v at verbose level.
// Loggers that do not report VerboseEnabled are skipped, since rendering a
// large dictionary is not free.
func Dump(logger dbgap.Logger, label string, v interface{}) {
	r, ok := logger.(verboseReporter)
	if !ok || !r.VerboseEnabled() {
		return
	}
	logger.Verbose("%s:\n%s", label, dumpConfig.Sdump(v))
}
