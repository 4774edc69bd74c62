package blindfour

import (
	"github.com/charmbracelet/log"
)

// FaultHandler receives engine invariant violations (desynchronized
// counters, a flip that changed the piece count). These indicate a corrupted
// engine, never a user mistake.
type FaultHandler func(err error)

// fatalFault is the default handler: log and terminate.
func fatalFault(logger *log.Logger) FaultHandler {
	return func(err error) {
		logger.Fatal("engine fault", "err", err)
	}
}
