package probe

import (
	"github.com/spf13/cobra"
	"github/chapool/dex-wallet/internal/util/command"
)

const (
	verboseFlag string = "verbose"
)

// New groups the probes used by container health checks.
func New() *cobra.Command {
	return command.NewSubcommandGroup("probe",
		newLiveness(),
		newReadiness(),
	)
}
