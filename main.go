package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gruntwork-io/azure-bootstrap/cli"
	"github.com/gruntwork-io/azure-bootstrap/internal/errors"
	"github.com/gruntwork-io/azure-bootstrap/options"
	"github.com/gruntwork-io/azure-bootstrap/pkg/log"
)

func main() {
	opts := options.New()

	defer errors.Recover(checkForErrorsAndExit(opts.Logger))

	app := cli.NewApp(opts)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := app.RunContext(ctx, os.Args)

	checkForErrorsAndExit(opts.Logger)(err)
}

// checkForErrorsAndExit displays the error, if there is one, and exits with the
// matching code.
func checkForErrorsAndExit(logger log.Logger) func(error) {
	return func(err error) {
		if err == nil {
			os.Exit(0)
		}

		if errors.IsContextCanceled(err) {
			logger.Debugf("Run cancelled")
			os.Exit(1)
		}

		logger.Error(err.Error())

		if errStack := errors.ErrorStack(err); errStack != "" {
			logger.Trace(errStack)
		}

		os.Exit(errors.GetExitCode(err, 1))
	}
}
