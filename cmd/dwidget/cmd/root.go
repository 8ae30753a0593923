// Package cmd implements the dwidget CLI commands.
//
// The command structure follows standard Go CLI patterns with a root command
// that dispatches to subcommands (run, render, check, inspect).
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-drift/dwidget/cmd/dwidget/internal/config"
	"github.com/go-drift/dwidget/pkg/errors"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Command represents a CLI command.
type Command struct {
	Name        string
	Short       string
	Long        string
	Usage       string
	Run         func(args []string) error
	SubCommands []*Command
}

var rootCmd = &Command{
	Name:  "dwidget",
	Short: "dwidget - retained widget scenes in Go",
	Long: `dwidget runs declarative widget scenes in a native window, renders them
to images and inspects running windows.

Use "dwidget <command> --help" for more information about a command.`,
	Usage: "dwidget <command> [flags]",
}

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// Output streams, replaced in tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// logLevel is set by --log-level or --verbose and overrides dwidget.yaml.
var logLevel *slog.Level

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	rootCmd.SubCommands = append(rootCmd.SubCommands, cmd)
}

// Execute runs the CLI with the process arguments.
func Execute() error {
	return execute(os.Args[1:])
}

func execute(args []string) error {
	logLevel = nil

	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	// Handle global flags
	var filteredArgs []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-h", "--help", "help":
			if len(filteredArgs) == 0 {
				printHelp(rootCmd)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "-v", "--version", "version":
			if len(filteredArgs) == 0 {
				fmt.Fprintf(stdout, "dwidget version %s (built %s)\n", Version, BuildTime)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "--verbose":
			setLogLevel(slog.LevelDebug)
		case "--log-level":
			if i+1 >= len(args) {
				return fmt.Errorf("--log-level requires a level (debug, info, warn, error)")
			}
			if err := parseLogLevelFlag(args[i+1]); err != nil {
				return err
			}
			i++
		default:
			if value, ok := strings.CutPrefix(arg, "--log-level="); ok {
				if err := parseLogLevelFlag(value); err != nil {
					return err
				}
				continue
			}
			filteredArgs = append(filteredArgs, arg)
		}
	}
	args = filteredArgs

	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	// Find and execute the command
	cmdName := args[0]
	cmd, ok := commands[cmdName]
	if !ok {
		fmt.Fprintf(stderr, "Error: unknown command %q\n\n", cmdName)
		printHelp(rootCmd)
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	// Check for help flag on subcommand
	cmdArgs := args[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" || arg == "help" {
			printCommandHelp(cmd)
			return nil
		}
	}

	return cmd.Run(cmdArgs)
}

func parseLogLevelFlag(s string) error {
	level, err := config.ParseLogLevel(s)
	if err != nil {
		return err
	}
	setLogLevel(level)
	return nil
}

func setLogLevel(level slog.Level) {
	logLevel = &level
}

// setupLogging installs a text logger on stderr at the flag level, or at
// the configured level when no flag was given.
func setupLogging(configured slog.Level) {
	level := configured
	if logLevel != nil {
		level = *logLevel
	}
	errors.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
}

// resolveConfig finds the project around dir and resolves dwidget.yaml.
func resolveConfig(dir string) (*config.Resolved, error) {
	root, err := config.FindProjectRoot(dir)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Resolve(root)
	if err != nil {
		return nil, err
	}
	setupLogging(cfg.LogLevel)
	return cfg, nil
}

func printHelp(cmd *Command) {
	w := stdout
	fmt.Fprintln(w, cmd.Long)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %s\n", cmd.Usage)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, sub := range cmd.SubCommands {
		fmt.Fprintf(w, "  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -h, --help           Show help for a command")
	fmt.Fprintln(w, "  -v, --version        Show version information")
	fmt.Fprintln(w, "  --log-level LEVEL    Log level: debug, info, warn, error (default from dwidget.yaml)")
	fmt.Fprintln(w, "  --verbose            Same as --log-level debug")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  dwidget run counter.yaml                 Open a scene in a window")
	fmt.Fprintln(w, "  dwidget render counter.yaml -o out.png   Render a scene to PNG")
	fmt.Fprintln(w, "  dwidget inspect localhost:9273           Print the widget tree of a running window")
}

func printCommandHelp(cmd *Command) {
	fmt.Fprintln(stdout, cmd.Long)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Usage:")
	fmt.Fprintf(stdout, "  %s\n", cmd.Usage)
}
