// Command policygen builds least-privilege IAM policies from a selection of
// catalog resources and actions.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/pflag"
)

// command is one policygen subcommand
type command struct {
	summary string
	run     func(ctx context.Context, args []string, stdout, stderr io.Writer) error
}

var commands = map[string]command{
	"generate": {summary: "generate a policy from a selection file", run: runGenerate},
	"catalog":  {summary: "list catalog resources or the actions of one resource", run: runCatalog},
	"schema":   {summary: "print the JSON schema of selection files", run: runSchema},
	"expand":   {summary: "show the resource patterns an identifier expands to", run: runExpand},
	"simulate": {summary: "evaluate an action and resource against a policy", run: runSimulate},
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "policygen: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		printUsage(stdout)
		return nil
	}

	cmd, ok := commands[args[0]]
	if !ok {
		printUsage(stderr)
		return fmt.Errorf("unknown command %q", args[0])
	}

	err := cmd.run(ctx, args[1:], stdout, stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	return err
}

func printUsage(w io.Writer) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("Usage: policygen <command> [flags]\n\nCommands:\n")
	for _, name := range names {
		fmt.Fprintf(&b, "  %-10s %s\n", name, commands[name].summary)
	}
	b.WriteString("\nRun 'policygen <command> --help' for command flags.\n")
	io.WriteString(w, b.String())
}

// newFlagSet returns a flag set that reports errors instead of exiting
func newFlagSet(name string, stderr io.Writer) *pflag.FlagSet {
	flags := pflag.NewFlagSet("policygen "+name, pflag.ContinueOnError)
	flags.SetOutput(stderr)
	return flags
}

// requireFlags fails when any named string flag is empty
func requireFlags(flags *pflag.FlagSet, names ...string) error {
	var missing []string
	for _, name := range names {
		if v, _ := flags.GetString(name); v == "" {
			missing = append(missing, "--"+name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required flag(s): %s", strings.Join(missing, ", "))
	}
	return nil
}
