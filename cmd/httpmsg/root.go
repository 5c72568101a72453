package main

import (
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "httpmsg",
		Short:   "Send HTTP requests described in YAML files",
		Version: version,
		Long: `httpmsg builds requests from YAML descriptions, including multipart and
form-data bodies, and sends them through a handler chain.`,
		SilenceUsage: true,
	}
	root.AddCommand(newSendCmd())
	return root
}
