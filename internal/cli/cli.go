package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/apiforge/semdiff/internal/simplelogger"
	"github.com/apiforge/semdiff/semdiff"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Version is the semdiff version. It is a var (not a const) so build tooling can override it (for example via `-ldflags "-X .../internal/cli.Version=1.2.3"`).
var Version = "0.1.0"

// Exit codes, following diff(1).
const (
	ExitSame    = 0
	ExitDiffers = 1
	ExitTrouble = 2
)

// In/Out/Err override standard I/O. If nil, defaults are used. Overriding is useful for testing.
type RunOptions struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Run runs the CLI with args (typically you'd use os.Args).
//
// It returns a recommended exit code and an error, if any:
//   - 0 -> err == nil, and the inputs have no differences (or only help/version was printed).
//   - 1 -> err == nil, and the inputs differ. The diff has been written to opts.Out.
//   - 2 -> err != nil: bad flags or arguments, unreadable input, invalid configuration, etc.
//
// Note that in cases of errors, Run has already displayed an error message to opts.Err || Stderr. Callers may use os.Exit with the exit code.
func Run(args []string, opts *RunOptions) (int, error) {
	argv := args
	if len(argv) > 0 {
		argv = argv[1:]
	}

	var in io.Reader = os.Stdin
	var out io.Writer = os.Stdout
	var errW io.Writer = os.Stderr
	if opts != nil {
		if opts.In != nil {
			in = opts.In
		}
		if opts.Out != nil {
			out = opts.Out
		}
		if opts.Err != nil {
			errW = opts.Err
		}
	}

	semdiff.InitPanicHook(nil)

	state := &runState{exitCode: ExitSame}
	root := newRootCommand(state)
	root.SetArgs(argv)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errW)

	if err := root.Execute(); err != nil {
		simplelogger.Log("cli: %v", err)
		fmt.Fprintf(errW, "semdiff: %v\n", err)
		return ExitTrouble, err
	}
	return state.exitCode, nil
}

type runState struct {
	exitCode int
}

func newRootCommand(state *runState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "semdiff [flags] OLD NEW",
		Short: "Line diff of two files, optionally after normalizing JSON or YAML",
		Long: `semdiff prints the line differences between OLD and NEW. Either may be "-" to read stdin.

With --semantic, both inputs are first parsed and re-printed in a canonical form (sorted keys, two-space indentation) so that
formatting and key order are not reported. An input that does not parse is diffed as-is.

Exit status is 0 if the inputs are the same, 1 if they differ, and 2 on trouble.

Examples:
  semdiff old.txt new.txt
  semdiff --semantic a.json b.json
  curl -s https://example.com/api | semdiff --semantic --style unified saved.json -
  semdiff --semantic --format yaml -U 1 deploy-old.yaml deploy-new.yaml`,
		Version:           Version,
		Args:              cobra.ExactArgs(2),
		SilenceUsage:      true,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := runDiff(cmd, args[0], args[1])
			if err != nil {
				return err
			}
			state.exitCode = code
			return nil
		},
	}

	flags := cmd.Flags()
	flags.SortFlags = false
	flags.Bool("semantic", false, "normalize both inputs before diffing")
	flags.String("format", defaultFormat, "document format for --semantic: json, yaml, or auto")
	flags.IntP("context", "U", semdiff.DefaultContext, "lines of context around each change")
	flags.String("algorithm", defaultAlgorithm, "diff algorithm: myers or difflib")
	flags.Duration("timeout", 0, "bound the myers search; 0 means exact")
	flags.String("style", defaultStyle, "output style: plain, unified, pretty, or auto (pretty on a terminal)")
	flags.Int("width", 0, "truncate pretty output to this many columns (default: terminal width)")
	flags.Int64("max-bytes", 0, "refuse inputs larger than this in total (0 means no limit)")
	flags.String("config", "", "config file (default $XDG_CONFIG_HOME/semdiff/config.yaml)")

	return cmd
}

func runDiff(cmd *cobra.Command, oldPath, newPath string) (int, error) {
	if oldPath == "-" && newPath == "-" {
		return ExitTrouble, errors.New("OLD and NEW cannot both be stdin")
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return ExitTrouble, err
	}
	cfg, err := loadConfig(configPath, cmd.Flags())
	if err != nil {
		return ExitTrouble, err
	}

	oldText, err := readInput(oldPath, cmd.InOrStdin())
	if err != nil {
		return ExitTrouble, fmt.Errorf("read old: %w", err)
	}
	newText, err := readInput(newPath, cmd.InOrStdin())
	if err != nil {
		return ExitTrouble, fmt.Errorf("read new: %w", err)
	}
	if cfg.MaxBytes > 0 && int64(len(oldText))+int64(len(newText)) > cfg.MaxBytes {
		return ExitTrouble, fmt.Errorf("inputs exceed max-bytes (%d)", cfg.MaxBytes)
	}

	out := cmd.OutOrStdout()
	opts, err := cfg.options(terminalOf(out))
	if err != nil {
		return ExitTrouble, err
	}
	opts.FromName, opts.ToName = displayName(oldPath), displayName(newPath)

	d := semdiff.New(opts)
	rendered, err := semdiff.CallSafely("semdiff", func() string {
		if cfg.Semantic {
			return d.SemanticDiff(oldText, newText)
		}
		return d.Diff(oldText, newText)
	})
	if err != nil {
		return ExitTrouble, err
	}
	if rendered == "" {
		return ExitSame, nil
	}

	if opts.Style == semdiff.StylePretty && !strings.HasSuffix(rendered, "\n") {
		rendered += "\n"
	}
	if _, err := io.WriteString(out, rendered); err != nil {
		return ExitTrouble, fmt.Errorf("write diff: %w", err)
	}
	return ExitDiffers, nil
}

func readInput(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func displayName(path string) string {
	if path == "-" {
		return "<stdin>"
	}
	return path
}

// terminal describes the output stream: whether it is a terminal, and if so its width in columns (0 if unknown).
type terminal struct {
	isTTY bool
	width int
}

func terminalOf(w io.Writer) terminal {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return terminal{}
	}
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return terminal{}
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		width = 0
	}
	return terminal{isTTY: true, width: width}
}
