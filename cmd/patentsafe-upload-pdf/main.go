package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/amphora/patentsafe-submit/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.UploadPDF().Execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
