package client

import (
	"fmt"

	"github.com/MKhiriev/go-pass-vault/models"
	"github.com/spf13/cobra"
)

func (a *App) unlockCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "unlock",
		Aliases: []string{"check"},
		Short:   "Check that the master password opens the vault",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			vault, lock, err := a.unlocked(cmd)
			if err != nil {
				return err
			}
			defer lock()

			items, err := vault.List(cmd.Context())
			if err != nil {
				return friendlyError(err)
			}

			var broken int
			for _, it := range items {
				if it.Err != nil {
					broken++
				}
			}
			if broken > 0 {
				notice(a.stdout, "%d of %d items cannot be decrypted with this password", broken, len(items))
				return nil
			}
			success(a.stdout, "vault unlocked, %d items", len(items))
			return nil
		},
	}
}

func (a *App) whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the identity behind the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			services, err := a.connect()
			if err != nil {
				return err
			}
			id, err := services.VaultService.Whoami(cmd.Context())
			if err != nil {
				return friendlyError(err)
			}
			fmt.Fprintf(a.stdout, "%s (%s)\n", id.Email, id.SubjectID)
			return nil
		},
	}
}

func (a *App) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print client and server versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprint(a.stdout, a.buildInfo.String())

			serverVersion := models.NotAvailable
			if services, err := a.connect(); err == nil {
				if v, err := services.Server.Version(cmd.Context()); err == nil {
					serverVersion = v
				} else {
					a.logger.Debug().Err(err).Msg("server version unavailable")
				}
			}
			fmt.Fprintf(a.stdout, "Server version: %s\n", serverVersion)
			return nil
		},
	}
}
