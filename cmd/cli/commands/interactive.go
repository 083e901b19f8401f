package commands

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// InteractiveCmd creates the interactive command
func InteractiveCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Run several commands in one session (config and database loaded once)",
		Long: `Start a session that keeps the configuration and database connection open
while you run commands. Type 'help' to list commands, 'exit' or 'quit' to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := newSession(cmd.Parent(), cmd.OutOrStdout())
			fmt.Fprintln(s.out, "Interactive session. Type 'help' for commands, 'exit' to leave.")
			return s.run(cmd.InOrStdin())
		},
		Annotations: map[string]string{historyAnnotation: historyOptional},
	}
}

// session dispatches lines to the root command's subcommands without
// re-running the root's PersistentPreRunE
type session struct {
	commands map[string]*cobra.Command
	out      io.Writer
}

func newSession(root *cobra.Command, out io.Writer) *session {
	commands := make(map[string]*cobra.Command)
	for _, sub := range root.Commands() {
		switch sub.Name() {
		case "interactive", "completion", "help":
			continue
		}
		commands[sub.Name()] = sub
	}
	return &session{commands: commands, out: out}
}

func (s *session) run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			break
		}
		if done := s.exec(scanner.Text()); done {
			return nil
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}
	return nil
}

// exec runs one line and reports whether the session should end
func (s *session) exec(line string) bool {
	parts, err := parseCommandLine(strings.TrimSpace(line))
	if err != nil {
		fmt.Fprintf(s.out, "Error parsing command: %v\n", err)
		return false
	}
	if len(parts) == 0 {
		return false
	}

	name, args := parts[0], parts[1:]
	switch name {
	case "exit", "quit":
		fmt.Fprintln(s.out, "Goodbye!")
		return true
	case "help":
		s.printHelp()
		return false
	}

	target, ok := s.commands[name]
	if !ok {
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for available commands)\n", name)
		return false
	}

	// Flags keep their values between runs unless reset
	target.Flags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
		_ = flag.Value.Set(flag.DefValue)
	})

	if err := target.ParseFlags(args); err != nil {
		fmt.Fprintf(s.out, "Error parsing flags: %v\n", err)
		return false
	}
	args = target.Flags().Args()

	if target.Args != nil {
		if err := target.Args(target, args); err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
			return false
		}
	}

	if target.RunE != nil {
		if err := target.RunE(target, args); err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
		}
	} else if target.Run != nil {
		target.Run(target, args)
	}
	return false
}

func (s *session) printHelp() {
	names := make([]string, 0, len(s.commands))
	for name := range s.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(s.out, "Available commands:")
	for _, name := range names {
		cmd := s.commands[name]
		fmt.Fprintf(s.out, "  %-40s %s\n", cmd.Use, cmd.Short)
	}
	fmt.Fprintf(s.out, "  %-40s %s\n", "help", "Show this help message")
	fmt.Fprintf(s.out, "  %-40s %s\n", "exit, quit", "Leave the session")
}

// parseCommandLine splits a line into arguments. Single and double quotes group
// words, so prompt files with spaces in their path can be passed.
func parseCommandLine(line string) ([]string, error) {
	var args []string
	var current strings.Builder
	var quote rune
	inArg := false

	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inArg = true
		case unicode.IsSpace(r):
			if inArg {
				args = append(args, current.String())
				current.Reset()
				inArg = false
			}
		default:
			current.WriteRune(r)
			inArg = true
		}
	}

	if quote != 0 {
		return nil, fmt.Errorf("unclosed quote: %c", quote)
	}
	if inArg {
		args = append(args, current.String())
	}

	return args, nil
}
