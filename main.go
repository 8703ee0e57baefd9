package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mcncl/jsonshape/internal/config"
	"github.com/mcncl/jsonshape/internal/errors"
	"github.com/mcncl/jsonshape/internal/formatter"
	"github.com/mcncl/jsonshape/internal/generator"
	"github.com/mcncl/jsonshape/internal/inspector"
	"github.com/mcncl/jsonshape/internal/models"
	"github.com/mcncl/jsonshape/internal/parser"
	"github.com/mcncl/jsonshape/internal/render"
)

// CLI defines the command-line interface
var CLI struct {
	Input       string `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Output      string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Config      string `help:"Path to config file. Defaults to the nearest .jsonshape.yml." short:"c" type:"path"`
	Format      string `help:"Output format: tree, json, yaml or go." short:"F"`
	Package     string `help:"Package name for generated Go code." short:"p"`
	RootName    string `help:"Name for the root struct of generated Go code." short:"r"`
	MaxDepth    *int   `help:"Maximum object/array nesting depth. 0 disables the limit." name:"max-depth"`
	NoSamples   bool   `help:"Do not record example values on leaf fields." name:"no-samples"`
	Debug       bool   `help:"Enable debug logging." short:"d"`
	Version     bool   `help:"Show version information." short:"v"`
	Interactive bool   `help:"Run in interactive mode, allowing direct JSON input with Ctrl+D to process." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Config *config.Config
	Logger *slog.Logger
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	cli := kong.Must(&CLI,
		kong.Name("jsonshape"),
		kong.Description("Infer the field schema of an example JSON document"),
		kong.UsageOnError(),
	)

	// Check if no arguments provided and set interactive mode by default
	if len(os.Args) == 1 {
		CLI.Interactive = true
	}

	if _, err := cli.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}

	if CLI.Version {
		fmt.Printf("jsonshape version %s\n", Version)
		return
	}

	cfg, err := config.LoadConfigWithCLI(CLI.Config, overrides())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(errors.NewConfigError(err.Error(), err)))
		os.Exit(1)
	}

	ctx := &Context{
		Config: cfg,
		Logger: newLogger(cfg.Dev.Debug || cfg.Dev.Verbose),
	}
	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: jsonshape --help\n")
		os.Exit(1)
	}
}

// overrides collects the flags that take precedence over the config file
func overrides() config.Overrides {
	o := config.Overrides{
		Format:   CLI.Format,
		Package:  CLI.Package,
		RootName: CLI.RootName,
		MaxDepth: CLI.MaxDepth,
		Debug:    CLI.Debug,
	}
	if CLI.NoSamples {
		includeSamples := false
		o.IncludeSamples = &includeSamples
	}
	return o
}

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// run executes the main program logic
func run(ctx *Context) error {
	logger := ctx.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	// 1. Inspect the JSON input
	in := inspector.NewInspectorWithConfig(ctx.Config, func(d inspector.Diagnostic) {
		logger.Warn(d.Message, "code", d.Code, "path", d.Path)
	})
	result, err := inspect(in, ctx.Config)
	if err != nil {
		return err
	}
	logger.Debug("inspection complete",
		"fields", models.Count(result.Document),
		"diagnostics", len(result.Diagnostics),
	)

	// 2. Render it in the requested format
	out, err := renderOutput(result.Document, ctx.Config)
	if err != nil {
		return err
	}

	// 3. Output the result
	return writeOutput(out, logger)
}

// inspect builds the schema of the JSON read from file or stdin
func inspect(in *inspector.Inspector, cfg *config.Config) (*inspector.Result, error) {
	if CLI.Input != "" {
		root, err := parser.ParseFile(CLI.Input, parser.Options{
			BigIntegerForInts:   cfg.Numbers.BigIntegerForInts,
			BigDecimalForFloats: cfg.Numbers.BigDecimalForFloats,
		})
		if err != nil {
			return nil, err
		}
		return in.InspectValue(root)
	}

	instance, err := readInput()
	if err != nil {
		return nil, err
	}
	return in.Inspect(instance)
}

// readInput reads the JSON instance from stdin
func readInput() (string, error) {
	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return "", errors.NewInputError("failed to access stdin", err)
	}

	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		// Terminal is interactive (not piped)
		if CLI.Interactive {
			return readInteractiveInput()
		}
		return "", errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	jsonData, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", errors.NewInputError("failed to read from stdin", err)
	}
	if len(jsonData) == 0 {
		return "", errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}
	return string(jsonData), nil
}

// renderOutput encodes the schema document in the configured format
func renderOutput(doc *models.Document, cfg *config.Config) (string, error) {
	if cfg.Output.Format != config.FormatGo {
		data, err := render.Render(doc, cfg.Output.Format)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	code, err := generator.NewGenerator().GenerateStructs(doc, cfg.Output.Package, cfg.Output.RootName)
	if err != nil {
		return "", err
	}
	code, err = formatter.NewFormatter().Format(code)
	if err != nil {
		return "", errors.NewFormatError("failed to format Go code", err)
	}
	return code, nil
}

// writeOutput writes out to file or stdout
func writeOutput(out string, logger *slog.Logger) error {
	if CLI.Output != "" {
		err := os.WriteFile(CLI.Output, []byte(out), 0644)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		logger.Info("schema written", "path", CLI.Output)
		return nil
	}

	_, err := fmt.Println(strings.TrimSpace(out))
	if err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// readInteractiveInput provides an interactive mode for users to paste JSON
// and signal completion with Ctrl+D (EOF)
func readInteractiveInput() (string, error) {
	fmt.Fprintln(os.Stderr, "jsonshape Interactive Mode")
	fmt.Fprintln(os.Stderr, "Paste your JSON below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	reader := bufio.NewReader(os.Stdin)
	var jsonBuilder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		jsonBuilder.WriteString(line)
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", errors.NewInputError("error reading input", err)
		}
	}

	jsonData := jsonBuilder.String()
	if strings.TrimSpace(jsonData) == "" {
		return "", errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	fmt.Fprintln(os.Stderr, "\nInspecting JSON...")
	return jsonData, nil
}
