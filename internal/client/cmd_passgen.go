package client

import (
	"fmt"

	"github.com/MKhiriev/go-pass-vault/internal/passgen"
	"github.com/spf13/cobra"
)

func (a *App) generateCommand() *cobra.Command {
	opts := passgen.DefaultOptions()
	var noUpper, noLower, noDigits, noSymbols, copyPassword bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.Uppercase = !noUpper
			opts.Lowercase = !noLower
			opts.Digits = !noDigits
			opts.Symbols = !noSymbols

			password, err := passgen.Generate(opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, password)
			printStrength(a.stdout, passgen.Strength(password))

			if copyPassword {
				return a.copyToClipboard(cmd.Context(), password)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.Length, "length", "l", passgen.DefaultLength, "password length")
	cmd.Flags().BoolVar(&noUpper, "no-upper", false, "leave out uppercase letters")
	cmd.Flags().BoolVar(&noLower, "no-lower", false, "leave out lowercase letters")
	cmd.Flags().BoolVar(&noDigits, "no-digits", false, "leave out digits")
	cmd.Flags().BoolVar(&noSymbols, "no-symbols", false, "leave out symbols")
	cmd.Flags().BoolVar(&opts.ExcludeSimilar, "exclude-similar", false, "leave out I, L, i, l, 1 and 0")
	cmd.Flags().BoolVar(&copyPassword, "copy", false, "copy the password to the clipboard")
	return cmd
}

func (a *App) strengthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "strength [password]",
		Short: "Score a password; prompts when no argument is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				p, err := a.prompter.ReadSecret("Password: ")
				if err != nil {
					return err
				}
				password = p
			}
			printStrength(a.stdout, passgen.Strength(password))
			return nil
		},
	}
}
