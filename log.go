package stroopwafel

import (
	"github.com/btcsuite/btclog/v2"
)

// Subsystem defines the logging code for this subsystem.
const Subsystem = "SWFL"

// log is a logger that is initialized with the btclog.Disabled logger
// by default. The core never logs on its own initiative; a host
// application wires in a real backend via UseLogger.
var log btclog.Logger = btclog.Disabled

// UseLogger uses a specified Logger to output package logging info.
// Only the verification engine calls into log, at Debug/Warn level; the root key and predicate contents beyond a caveat's own
// bytes are never passed to it.
func UseLogger(logger btclog.Logger) {
	log = logger
}

// DisableLog disables all logging output.
func DisableLog() {
	log = btclog.Disabled
}
