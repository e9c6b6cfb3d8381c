// Package cli implements the guards command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir   string
	format      string
	logLevel    string
	logFormat   string
	writePolicy string
	silent      bool
}

var flags rootFlags

// current holds the settings resolved by PersistentPreRunE.
var current settings

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }

func (e *ExitError) Unwrap() error { return e.Err }

func userError(err error) error { return &ExitError{Code: exitUserError, Err: err} }

func sysError(err error) error { return &ExitError{Code: exitSysError, Err: err} }

// NewRootCmd creates the top-level "guards" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "guards",
		Short: "Demonstrate records with computed and validated fields",
		Long: "guards runs small demonstrations of guarded records: plain fields,\n" +
			"computed fields derived on every read, and validated fields whose\n" +
			"writes must pass a predicate.",
		Version: Version,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			current = s
			return nil
		},
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/guards)")
	root.PersistentFlags().StringVar(&flags.format, "format", defaultFormat, "serialization format: json or yaml")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", defaultLogLevel, "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&flags.logFormat, "log-format", defaultLogFormat, "log output: text or json")
	root.PersistentFlags().StringVar(&flags.writePolicy, "write-policy", defaultWritePolicy, "writes to computed fields: strict or silent")
	root.PersistentFlags().BoolVar(&flags.silent, "silent", false, "shorthand for --write-policy silent")
	root.MarkFlagsMutuallyExclusive("silent", "write-policy")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newDemoCmd())

	return root
}

// Execute runs the root command with args and returns the process exit code.
// Errors are printed to stderr.
func Execute(args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err == nil {
		return exitSuccess
	}
	fmt.Fprintln(stderr, "Error:", err)

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	// Flag and argument parsing errors come from cobra unwrapped.
	return exitUserError
}

// logger returns the logger built for the current command.
func logger() *slog.Logger {
	if current.logger == nil {
		return slog.Default()
	}
	return current.logger
}
