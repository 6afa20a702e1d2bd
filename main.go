// Faultline ranks services by incident recurrence, failure cadence and
// SLA consumption from ticket snapshot exports.
package main

import (
	"os"

	"github.com/faultline/faultline/cmd"
	"github.com/faultline/faultline/internal/contract"
	"github.com/faultline/faultline/internal/iocache"
)

func main() {
	defer iocache.CloseStores()

	if err := cmd.Execute(); err != nil {
		contract.LogWarn("Command failed", err)
		os.Exit(1)
	}
}
