// Package dispatch maps a command name to its handler and enforces the
// minimal argument arity before a handler runs. Both cloudtools binaries
// build a static Table at startup and hand it to Dispatch; nothing is
// registered dynamically.
package dispatch

import (
	"fmt"
	"io"
	"strings"
)

// Handler runs one command with its positional arguments. Errors are
// returned for the caller to report; a handler must never terminate the
// process itself.
type Handler func(args []string) error

// Command describes a single dispatchable command.
type Command struct {
	// Name is the first CLI argument that selects this command.
	Name string

	// Usage is the one-line usage string printed when too few
	// arguments are supplied, e.g. "get_keys <type> <name> <group>".
	Usage string

	// MinArgs is the number of positional arguments required after the
	// command name.
	MinArgs int

	// Run is the handler invoked once arity has been checked.
	Run Handler
}

// Table is an ordered set of commands. Order is preserved in usage
// listings so related commands group together.
type Table []Command

// Names returns the command names in table order.
func (t Table) Names() []string {
	names := make([]string, 0, len(t))
	for _, cmd := range t {
		names = append(names, cmd.Name)
	}
	return names
}

// Lookup finds a command by name.
func (t Table) Lookup(name string) (Command, bool) {
	for _, cmd := range t {
		if cmd.Name == name {
			return cmd, true
		}
	}
	return Command{}, false
}

// Dispatch resolves name against the table and runs the matching handler.
//
// An unknown name prints the available command names to out and returns
// nil: mistyping a command is a usage problem, not a failure. Too few
// arguments prints the command's usage line and returns nil without
// invoking the handler. Only errors returned by the handler itself are
// propagated.
func Dispatch(table Table, name string, args []string, out io.Writer) error {
	cmd, ok := table.Lookup(name)
	if !ok {
		fmt.Fprintf(out, "Unknown command: %s\n", name)
		fmt.Fprintf(out, "Available: %s\n", strings.Join(table.Names(), ", "))
		return nil
	}

	if len(args) < cmd.MinArgs {
		fmt.Fprintf(out, "Usage: %s\n", cmd.Usage)
		return nil
	}

	return cmd.Run(args)
}

// PrintUsage writes the full command listing, one usage line per command.
// Used when a binary is invoked with no command at all.
func PrintUsage(table Table, program string, out io.Writer) {
	fmt.Fprintf(out, "Usage: %s <command> [args...]\n\nCommands:\n", program)
	for _, cmd := range table {
		fmt.Fprintf(out, "  %s\n", cmd.Usage)
	}
}
