package client

import (
	"github.com/MKhiriev/go-pass-vault/internal/passgen"
	"github.com/MKhiriev/go-pass-vault/models"
	"github.com/spf13/cobra"
)

type recordFlags struct {
	title    string
	username string
	password string
	url      string
	notes    string
	generate bool
}

func (f *recordFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.title, "title", "t", "", "display name")
	cmd.Flags().StringVarP(&f.username, "username", "u", "", "login name")
	cmd.Flags().StringVarP(&f.password, "password", "p", "", "password; prompted for when omitted")
	cmd.Flags().StringVar(&f.url, "url", "", "site address")
	cmd.Flags().StringVar(&f.notes, "notes", "", "free-form notes")
	cmd.Flags().BoolVarP(&f.generate, "generate", "g", false, "generate a random password")
	cmd.MarkFlagsMutuallyExclusive("password", "generate")
}

// apply copies the flags the user actually set onto rec.
func (f *recordFlags) apply(cmd *cobra.Command, rec *models.VaultRecord) (changed bool) {
	set := func(name string, dst *string, value string) {
		if cmd.Flags().Changed(name) {
			*dst = value
			changed = true
		}
	}
	set("title", &rec.Title, f.title)
	set("username", &rec.Username, f.username)
	set("password", &rec.Password, f.password)
	set("url", &rec.URL, f.url)
	set("notes", &rec.Notes, f.notes)
	return changed
}

func (a *App) resolvePassword(f *recordFlags, rec *models.VaultRecord) error {
	if f.generate {
		p, err := passgen.Generate(passgen.DefaultOptions())
		if err != nil {
			return err
		}
		rec.Password = p
		return nil
	}
	if rec.Password != "" {
		return nil
	}
	p, err := a.prompter.ReadSecret("Item password: ")
	if err != nil {
		return err
	}
	rec.Password = p
	return nil
}

func (a *App) addCommand() *cobra.Command {
	var f recordFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Encrypt and store a new item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var rec models.VaultRecord
			f.apply(cmd, &rec)

			vault, lock, err := a.unlocked(cmd)
			if err != nil {
				return err
			}
			defer lock()

			if err = a.resolvePassword(&f, &rec); err != nil {
				return err
			}

			item, err := vault.Add(cmd.Context(), rec)
			if err != nil {
				return friendlyError(err)
			}
			success(a.stdout, "added %s", item.ID)
			if f.generate {
				printStrength(a.stdout, passgen.Strength(rec.Password))
			}
			return nil
		},
	}
	f.register(cmd)
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func (a *App) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list [term]",
		Aliases: []string{"ls"},
		Short:   "List items, newest first; a term filters by title, username, url and notes",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vault, lock, err := a.unlocked(cmd)
			if err != nil {
				return err
			}
			defer lock()

			var term string
			if len(args) == 1 {
				term = args[0]
			}

			items, err := vault.Search(cmd.Context(), term)
			if err != nil {
				return friendlyError(err)
			}
			if term != "" && len(items) == 0 {
				notice(a.stdout, "no items match %q", term)
				return nil
			}
			printItems(a.stdout, items)
			return nil
		},
	}
}

func (a *App) showCommand() *cobra.Command {
	var reveal, copyPassword bool
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Decrypt and print one item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vault, lock, err := a.unlocked(cmd)
			if err != nil {
				return err
			}

			item, err := vault.Show(cmd.Context(), args[0])
			lock()
			if err != nil {
				return friendlyError(err)
			}

			printItem(a.stdout, item, reveal)
			if copyPassword {
				return a.copyToClipboard(cmd.Context(), item.Record.Password)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&reveal, "reveal", "r", false, "print the password in clear text")
	cmd.Flags().BoolVar(&copyPassword, "copy", false, "copy the password to the clipboard")
	return cmd
}

func (a *App) editCommand() *cobra.Command {
	var f recordFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vault, lock, err := a.unlocked(cmd)
			if err != nil {
				return err
			}
			defer lock()

			current, err := vault.Show(cmd.Context(), args[0])
			if err != nil {
				return friendlyError(err)
			}

			rec := current.Record
			changed := f.apply(cmd, &rec)
			if f.generate {
				if err = a.resolvePassword(&f, &rec); err != nil {
					return err
				}
				changed = true
			}
			if !changed {
				return ErrNothingToEdit
			}

			item, err := vault.Edit(cmd.Context(), args[0], rec)
			if err != nil {
				return friendlyError(err)
			}
			success(a.stdout, "updated %s", item.ID)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func (a *App) deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an item",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			services, err := a.connect()
			if err != nil {
				return err
			}
			// deleting needs no record key
			if err = services.VaultService.Delete(cmd.Context(), args[0]); err != nil {
				return friendlyError(err)
			}
			success(a.stdout, "deleted %s", args[0])
			return nil
		},
	}
}
