package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/goliatone/go-accountctl/console"
	"github.com/goliatone/go-accountctl/pkg/config"
	"github.com/goliatone/go-accountctl/pkg/logging"
	"github.com/goliatone/go-accountctl/service"
)

const (
	exitOK          = 0
	exitFailure     = 1
	exitInterrupted = 130
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, opts ...config.Option) int {
	cfg, err := config.Load(args, opts...)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}

	slogger := logging.New(cfg.LogLevel, cfg.LogFile, stderr)
	logger := logging.Adapter{Logger: slogger}

	var b *backend
	switch cfg.Backend {
	case config.BackendSQLite:
		b, err = openSQLite(ctx, cfg, logger)
		if err != nil {
			if ctx.Err() != nil {
				return exitInterrupted
			}
			fmt.Fprintf(stderr, "Error opening local database: %v\n", err)
			return exitFailure
		}
	default:
		if !credentialsPresent(cfg.CredentialsPath, stdout, stderr) {
			return exitFailure
		}
		b, err = openFirebase(ctx, cfg, logger)
		if err != nil {
			fmt.Fprintf(stderr, "Error initializing Firebase Admin SDK: %v\n", err)
			return exitFailure
		}
		fmt.Fprintln(stdout, "Firebase Admin SDK initialized successfully")
	}
	defer func() {
		if err := b.close(); err != nil {
			logger.Error("accountctl: backend close failed", err)
		}
	}()

	svc := service.New(service.Config{
		Identity:     b.identity,
		Profiles:     b.profiles,
		ActivitySink: b.sink,
		Logger:       logger,
		FeatureGate:  cfg.Features(),
	})
	if err := svc.HealthCheck(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return exitInterrupted
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}

	sessionOpts := []console.Option{
		console.WithLogger(logger),
		console.WithErrorOutput(stderr),
	}
	if f, ok := stdin.(*os.File); ok {
		sessionOpts = append(sessionOpts, console.WithSecretReader(console.TerminalSecretReader(f)))
	}
	if closer, ok := stdin.(io.Closer); ok {
		// unblocks a pending read once the process is interrupted
		go func() {
			<-ctx.Done()
			closer.Close()
		}()
	}

	err = console.NewSession(console.WorkflowsFromService(svc), stdin, stdout, sessionOpts...).Run(ctx)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	default:
		logger.Error("accountctl: session failed", err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}
}

// credentialsPresent reports whether the key file exists, printing setup
// instructions when it does not.
func credentialsPresent(path string, stdout, stderr io.Writer) bool {
	if _, err := os.Stat(path); err == nil {
		return true
	}
	fmt.Fprintf(stderr, "Error: Service account key file not found at %s\n", path)
	fmt.Fprintln(stdout, "\nTo use this script:")
	fmt.Fprintln(stdout, "1. Go to Firebase console -> Project settings -> Service accounts")
	fmt.Fprintln(stdout, `2. Click "Generate new private key"`)
	fmt.Fprintln(stdout, `3. Save the JSON file as "serviceAccountKey.json" in this directory`)
	fmt.Fprintln(stdout, "4. Run this script again")
	return false
}
