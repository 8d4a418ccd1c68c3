// Command jsonview renders a tabular JSON payload as HTML tables.
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rgonek/jsonview/jsonview"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"gopkg.in/yaml.v3"
)

const (
	presetDefault = "default"
	presetStrict  = "strict"
	presetPlain   = "plain"
)

type options struct {
	configPath string
	preset     string
	sanitize   bool
	page       bool
	outputPath string
	verbose    bool
}

func presetConfig(preset string) (jsonview.Config, error) {
	switch strings.ToLower(strings.TrimSpace(preset)) {
	case "", presetDefault:
		return jsonview.Config{}, nil
	case presetStrict:
		return jsonview.Config{
			MissingCells:   jsonview.MissingCellError,
			ResolutionMode: jsonview.ResolutionStrict,
			ListDetection:  jsonview.ListDetectArray,
		}, nil
	case presetPlain:
		return jsonview.Config{
			DateDetection: jsonview.DateDetectNone,
			ListDetection: jsonview.ListDetectNone,
		}, nil
	default:
		return jsonview.Config{}, fmt.Errorf("unknown preset %q (allowed: default, strict, plain)", preset)
	}
}

// resolveConfig layers the preset, then the YAML file, then flags.
func resolveConfig(opts options) (jsonview.Config, error) {
	cfg, err := presetConfig(opts.preset)
	if err != nil {
		return jsonview.Config{}, err
	}

	if opts.configPath != "" {
		data, err := os.ReadFile(opts.configPath)
		if err != nil {
			return jsonview.Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return jsonview.Config{}, fmt.Errorf("failed to parse config %s: %w", opts.configPath, err)
		}
	}

	if opts.sanitize {
		cfg.Sanitize = true
	}
	return cfg, nil
}

func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "jsonview [flags] <input.json>",
		Short: "Render a tabular JSON payload as HTML tables",
		Long: `jsonview reads a single-sheet or multi-sheet JSON payload and writes one
HTML table per sheet, classifying every cell as a date, image, link, list,
number or text. Use "-" to read the payload from stdin.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(stderr, opts.verbose)
			if err := run(cmd, args[0], opts, stdin, stdout, logger); err != nil {
				logger.Error().Err(err).Str("input", args[0]).Msg("render failed")
				return err
			}
			return nil
		},
	}

	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "YAML config file")
	flags.StringVar(&opts.preset, "preset", presetDefault, "Preset: default|strict|plain")
	flags.BoolVar(&opts.sanitize, "sanitize", false, "Sanitize the rendered markup")
	flags.BoolVar(&opts.page, "page", false, "Wrap the tables in a minimal HTML document")
	flags.StringVarP(&opts.outputPath, "output", "o", "", "Output file path (default: stdout)")
	flags.BoolVar(&opts.verbose, "verbose", false, "Log debug diagnostics")

	return cmd
}

func run(cmd *cobra.Command, input string, opts options, stdin io.Reader, stdout io.Writer, logger zerolog.Logger) error {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return err
	}
	renderer, err := jsonview.New(cfg)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	payload, err := readInput(input, stdin)
	if err != nil {
		return err
	}
	logger.Debug().Str("input", input).Int("bytes", len(payload)).Str("preset", opts.preset).Msg("payload loaded")

	result, err := renderer.RenderHTMLWithContext(cmd.Context(), payload, jsonview.RenderOptions{SourcePath: input})
	if err != nil {
		return err
	}
	for _, w := range result.Warnings {
		logger.Warn().
			Str("type", string(w.Type)).
			Str("sheet", w.Sheet).
			Int("row", w.Row).
			Str("column", w.Column).
			Msg(w.Message)
	}
	for _, s := range result.Sheets {
		logger.Debug().Str("sheet", s.Name).Int("rows", s.Rows).Int("columns", s.Columns).Msg("sheet rendered")
	}

	markup := result.HTML
	if opts.page {
		markup, err = wrapPage(markup, pageTitle(input))
		if err != nil {
			return fmt.Errorf("failed to build page: %w", err)
		}
	}

	if opts.outputPath != "" {
		if err := os.WriteFile(opts.outputPath, []byte(markup+"\n"), 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		logger.Info().Str("output", opts.outputPath).Int("sheets", len(result.Sheets)).Msg("wrote HTML")
		return nil
	}
	_, err = fmt.Fprintln(stdout, markup)
	return err
}

func readInput(input string, stdin io.Reader) ([]byte, error) {
	if input == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return data, nil
}

func pageTitle(input string) string {
	if input == "-" {
		return "jsonview"
	}
	return input
}

// wrapPage parses the rendered fragment into the body of a minimal document.
func wrapPage(fragment, title string) (string, error) {
	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return "", err
	}
	for _, n := range nodes {
		body.AppendChild(n)
	}

	titleNode := &html.Node{Type: html.ElementNode, DataAtom: atom.Title, Data: "title"}
	titleNode.AppendChild(&html.Node{Type: html.TextNode, Data: title})
	charset := &html.Node{
		Type: html.ElementNode, DataAtom: atom.Meta, Data: "meta",
		Attr: []html.Attribute{{Key: "charset", Val: "utf-8"}},
	}
	head := &html.Node{Type: html.ElementNode, DataAtom: atom.Head, Data: "head"}
	head.AppendChild(charset)
	head.AppendChild(titleNode)

	root := &html.Node{Type: html.ElementNode, DataAtom: atom.Html, Data: "html"}
	root.AppendChild(head)
	root.AppendChild(body)

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	doc.AppendChild(root)

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
