package main

import (
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/pulumi/pulumi/sdk/v3/go/common/util/contract"
	"github.com/spf13/cobra"
	"github.com/verilsp/verilsp/logger"
	"github.com/verilsp/verilsp/server"
)

var versionString = server.Version

func newRootCmd() *cobra.Command {
	var logFile string
	var verbose bool

	root := &cobra.Command{
		Use:     "verilsp",
		Short:   "Language server and lint toolchain for Verilog",
		Version: versionString,
		// running the bare binary starts the server; editors spawn it
		// without a subcommand
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(logFile, verbose)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&logFile, "log-file", "", "write server logs to this file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the language server over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(logFile, verbose)
		},
	}

	root.AddCommand(serve, newLintCmd(), newFormatCmd())
	return root
}

// getLogger opens the side-channel log destination. Stdout belongs to the
// protocol, so without a file the logs are discarded.
func getLogger(filename string) (*log.Logger, io.Writer) {
	if filename == "" {
		return log.New(io.Discard, "", 0), io.Discard
	}
	logfile, err := os.OpenFile(filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0666)
	contract.AssertNoErrorf(err, "failed to open log file: %s", filename)
	return log.New(logfile, "[verilsp]", log.Ldate|log.Ltime|log.Lshortfile), logfile
}

func setupSlog(w io.Writer, verbose bool) {
	if verbose {
		logger.ProgramLevel.Set(slog.LevelDebug)
	}
	handler := logger.NewClientHandler(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logger.ProgramLevel,
	}))
	slog.SetDefault(slog.New(handler))
}
