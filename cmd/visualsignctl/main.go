// Command visualsignctl decodes a single unsigned transaction from the
// command line and prints its SignablePayload as canonical JSON or a
// human-readable rendering.
package main

import (
	"os"

	"github.com/anchorageoss/visualsign-parser/internal/obslog"
)

func main() {
	log := obslog.New().Named("visualsignctl")
	defer log.Sync() //nolint:errcheck

	os.Exit(run(log))
}
