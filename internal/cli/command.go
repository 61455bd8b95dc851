package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/pflag"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/amphora/patentsafe-submit/errorx"
	"github.com/amphora/patentsafe-submit/httpx"
	"github.com/amphora/patentsafe-submit/loggerx"
	"github.com/amphora/patentsafe-submit/patentsafe"
	"github.com/amphora/patentsafe-submit/tracex"
)

type environment struct {
	config *Config
	logger *loggerx.Logger
	client *patentsafe.Client
}

type runFunc func(ctx context.Context, env *environment, args []string) (*httpx.Response, error)

// Command is one of the submission tools. A Command parses its flags once, so a new one is needed
// for every execution.
type Command struct {
	name      string
	arguments []string
	flags     *pflag.FlagSet
	run       runFunc
}

func newCommand(name string, arguments []string, run runFunc) *Command {
	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flags.SortFlags = false
	addConfigFlags(flags)

	return &Command{
		name:      name,
		arguments: arguments,
		flags:     flags,
		run:       run,
	}
}

func (c *Command) Name() string {
	return c.name
}

// Execute runs the command with args, the process arguments without the program name. The answer
// of PatentSafe is written to stdout, logs and errors to stderr. It returns the exit code of the
// process.
func (c *Command) Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	c.flags.SetOutput(stderr)
	c.flags.Usage = func() {
		fmt.Fprintf(stderr, "usage: %s [flags] %s\n", c.name, strings.Join(c.arguments, " "))
		c.flags.PrintDefaults()
	}

	err := c.execute(ctx, args, stdout, stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return errorx.ExitCodeOK
	}
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", c.name, err)
	}
	return errorx.ExitCode(err)
}

func (c *Command) execute(ctx context.Context, args []string, stdout, stderr io.Writer) (err error) {
	if err := c.flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return err
		}
		c.flags.Usage()
		return errorx.InvalidArgumentErrorf("%v", err)
	}
	if c.flags.NArg() != len(c.arguments) {
		c.flags.Usage()
		return errorx.InvalidArgumentErrorf("expected %d arguments, got %d", len(c.arguments), c.flags.NArg())
	}

	cfg, err := loadConfig(ctx, c.flags, flagLogger(c.flags, stderr))
	if err != nil {
		return err
	}
	logger, err := cfg.Logger(stderr)
	if err != nil {
		return err
	}
	defer tracex.RecoverWithStackTrace(ctx, logger, c.name+" panicked", &err)

	tracer, err := cfg.Tracer(ctx, logger, stderr)
	if err != nil {
		return err
	}
	defer func() {
		if sErr := tracer.Shutdown(context.WithoutCancel(ctx)); sErr != nil {
			logger.WithError(sErr).Warn(ctx, "traces could not be exported")
		}
	}()
	if tracer.IsLoaded() {
		otel.SetTracerProvider(tracer.Provider())
		otel.SetTextMapPropagator(tracer.TextMapPropagator())
	}

	client, err := cfg.Client(logger, tracer)
	if err != nil {
		return err
	}

	if logger.Enabled(ctx, slog.LevelDebug) {
		logger.Debug(ctx, "parsed arguments",
			attribute.StringSlice("arguments", c.flags.Args()),
			attribute.String("config", spew.Sdump(cfg)),
		)
	}

	response, err := c.run(ctx, &environment{config: cfg, logger: logger, client: client}, c.flags.Args())
	if err != nil {
		return err
	}

	if _, err := stdout.Write(response.Body); err != nil {
		return errorx.InternalErrorf("cannot write the answer").WithCause(err)
	}
	if !response.IsSuccess() {
		return errorx.FailedPreconditionErrorf("PatentSafe answered %s", response.Status)
	}
	return nil
}
