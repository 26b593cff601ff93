package client

import (
	"github.com/spf13/cobra"
)

func (a *App) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "vault",
		Short:         "End-to-end encrypted password vault",
		Long:          "Stores credentials on a vault server. Records are encrypted locally with a key derived from your master password.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.overrides.ConfigPath, "config", "c", "", "JSON config file path")
	flags.StringVar(&a.overrides.ServerURL, "server", "", "vault server URL, e.g. http://localhost:8080")
	flags.StringVar(&a.overrides.Token, "token", "", "session token")
	flags.DurationVar(&a.overrides.Timeout, "timeout", 0, "per-request timeout")
	flags.DurationVar(&a.overrides.KDFTimeout, "kdf-timeout", 0, "upper bound for key derivation")
	flags.StringVar(&a.overrides.LogFile, "log-file", "", "write debug logs to this file")

	root.AddCommand(
		a.unlockCommand(),
		a.whoamiCommand(),
		a.addCommand(),
		a.listCommand(),
		a.showCommand(),
		a.editCommand(),
		a.deleteCommand(),
		a.generateCommand(),
		a.strengthCommand(),
		a.versionCommand(),
	)
	return root
}
