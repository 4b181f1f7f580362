package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(realMain(os.Args[1:], DefaultEnv()))
}

// realMain dispatches commands and returns the process exit code.
func realMain(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	command := args[0]
	rest := args[1:]

	switch command {
	case "version":
		fmt.Fprintf(env.Stdout, "html2md %s\n", Version)
		return ExitSuccess
	case "help", "--help", "-h":
		runHelp(rest, env)
		return ExitSuccess
	case "doctor":
		return runDoctorCmd(rest, pandocFlagValue(rest), env)
	case "convert":
		return runConvertCmd(rest, env)
	default:
		// Bare input path: treat as convert for convenience
		if _, err := os.Stat(command); err == nil {
			return runConvertCmd(args, env)
		}
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", command)
		printUsage(env.Stderr)
		return ExitUsage
	}
}

// runConvertCmd parses flags and runs the convert command.
func runConvertCmd(args []string, env *Environment) int {
	flags, positional, err := parseConvertFlags(args)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}

	// Configure GOMAXPROCS with conditional logging
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if flags.common.verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(env.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runConvert(ctx, positional, flags, env); err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// pandocFlagValue extracts a --pandoc value from raw args without full
// flag parsing, so doctor can honor it.
func pandocFlagValue(args []string) string {
	for i, arg := range args {
		if arg == "--pandoc" && i+1 < len(args) {
			return args[i+1]
		}
		if len(arg) > len("--pandoc=") && arg[:len("--pandoc=")] == "--pandoc=" {
			return arg[len("--pandoc="):]
		}
	}
	return ""
}
