package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-pass-vault/internal/client"
	"github.com/MKhiriev/go-pass-vault/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := client.NewApp(client.WithBuildInfo(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)))
	if err := app.RunContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
