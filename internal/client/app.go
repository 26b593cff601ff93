// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/MKhiriev/go-pass-vault/internal/adapter"
	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/service"
	"github.com/MKhiriev/go-pass-vault/internal/workers"
	"github.com/MKhiriev/go-pass-vault/models"
	"github.com/spf13/cobra"
)

// ServicesFactory builds the client services once the configuration is known.
type ServicesFactory func(cfg *config.ClientConfig, log *logger.Logger) (*service.ClientServices, error)

// App is the command-line client. Configuration, logging and the server
// connection are set up lazily by the first command that needs them.
type App struct {
	args   []string
	stdout io.Writer
	stderr io.Writer

	prompter     Prompter
	clipboard    workers.Clipboard
	clipboardTTL time.Duration
	buildInfo    models.AppBuildInfo
	newServices  ServicesFactory

	overrides config.ClientOverrides
	services  *service.ClientServices
	logger    *logger.Logger
}

type Option func(*App)

func WithArgs(args []string) Option {
	return func(a *App) { a.args = args }
}

func WithOutput(stdout, stderr io.Writer) Option {
	return func(a *App) { a.stdout, a.stderr = stdout, stderr }
}

func WithPrompter(p Prompter) Option {
	return func(a *App) { a.prompter = p }
}

// WithClipboard replaces the system clipboard and the time a copied secret
// is kept on it.
func WithClipboard(cb workers.Clipboard, ttl time.Duration) Option {
	return func(a *App) { a.clipboard, a.clipboardTTL = cb, ttl }
}

func WithServicesFactory(f ServicesFactory) Option {
	return func(a *App) { a.newServices = f }
}

func WithBuildInfo(info models.AppBuildInfo) Option {
	return func(a *App) { a.buildInfo = info }
}

func NewApp(opts ...Option) *App {
	a := &App{
		args:         os.Args[1:],
		stdout:       os.Stdout,
		stderr:       os.Stderr,
		clipboard:    workers.SystemClipboard{},
		clipboardTTL: workers.DefaultClipboardTTL,
		buildInfo:    models.NewAppBuildInfo("", "", ""),
		newServices:  httpServices,
		logger:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.prompter == nil {
		a.prompter = newTerminalPrompter(os.Stdin, a.stderr)
	}
	return a
}

// Run executes the command line.
func (a *App) Run() error {
	return a.RunContext(context.Background())
}

func (a *App) RunContext(ctx context.Context) error {
	root := a.rootCommand()
	root.SetArgs(a.args)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	return root.ExecuteContext(ctx)
}

// connect loads the configuration and builds the services on first use.
func (a *App) connect() (*service.ClientServices, error) {
	if a.services != nil {
		return a.services, nil
	}

	cfg, err := config.GetClientConfig(a.overrides)
	if err != nil {
		return nil, fmt.Errorf("load client config: %w", err)
	}

	a.logger = logger.NewClientLogger("vault-cli", cfg.LogFile)
	a.logger.Debug().Str("server", cfg.Adapter.HTTPAddress).Msg("client configured")

	services, err := a.newServices(cfg, a.logger)
	if err != nil {
		return nil, fmt.Errorf("create client services: %w", err)
	}
	a.services = services
	return services, nil
}

// unlocked connects, asks for the master password and unlocks the vault.
// The returned func locks it again.
func (a *App) unlocked(cmd *cobra.Command) (service.VaultClientService, func(), error) {
	services, err := a.connect()
	if err != nil {
		return nil, nil, err
	}

	master, err := a.prompter.ReadSecret("Master password: ")
	if err != nil {
		return nil, nil, err
	}
	if master == "" {
		return nil, nil, ErrEmptyMaster
	}

	s := startSpinner(a.stderr, " Deriving vault key...")
	err = services.VaultService.Unlock(cmd.Context(), master)
	s.Stop()
	if err != nil {
		return nil, nil, friendlyError(err)
	}

	vault := services.VaultService
	return vault, vault.Lock, nil
}

// copyToClipboard puts secret on the clipboard and blocks until it is wiped
// again, either after the ttl or when the command is interrupted.
func (a *App) copyToClipboard(ctx context.Context, secret string) error {
	clearer := workers.NewClipboardClearer(a.clipboard, secret, a.clipboardTTL, a.logger)
	if err := clearer.Copy(); err != nil {
		return err
	}
	notice(a.stdout, "copied to clipboard, clearing in %s", a.clipboardTTL)

	return workers.NewWorkers(clearer).Run(ctx)
}

func httpServices(cfg *config.ClientConfig, log *logger.Logger) (*service.ClientServices, error) {
	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		return nil, err
	}
	return service.NewClientServices(serverAdapter, cfg.App, log), nil
}
