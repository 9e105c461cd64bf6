package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/phyten/taglight/internal/config"
	"github.com/phyten/taglight/internal/termcolor"
)

func main() {
	vars := termcolor.EnvMap(os.Environ())
	getenv := func(key string) string { return vars[key] }
	root := newRootCmd(os.Stdout, os.Stderr, os.Stdin, getenv)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// env carries the process surroundings so commands can be tested without
// touching the real terminal or environment.
type env struct {
	stdout io.Writer
	stderr io.Writer
	stdin  io.Reader
	getenv func(string) string
}

func newRootCmd(stdout, stderr io.Writer, stdin io.Reader, getenv func(string) string) *cobra.Command {
	e := &env{stdout: stdout, stderr: stderr, stdin: stdin, getenv: getenv}
	root := &cobra.Command{
		Use:   "taglight [flags] [file...]",
		Short: "Highlight TODO/FIXME style tags in source files",
		Long: `taglight scans source text for tags such as TODO and FIXME and paints
colour, glow, glass panel and font decorations around them. Without a
subcommand the files are printed in the configured output format.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.setup(cmd)
			if err != nil {
				return err
			}
			defer a.close()
			return a.runOutput(cmd, args, a.ui.Output)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetIn(stdin)

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (default: discovered .taglight.{yaml,toml,json})")
	pf.String("color", "", "colorize output (auto|always|never)")
	pf.String("theme", "", "colour theme (auto|light|dark)")
	pf.Bool("gutter", true, "show line numbers and gutter marks")
	pf.Bool("debug", false, "log engine passes to stderr")
	pf.Int("jobs", 0, "max files read in parallel (0 = GOMAXPROCS)")
	root.Flags().String("output", "", "output format (ansi|html|ndjson|csv|markdown)")
	root.Flags().String("fields", "", "fields for csv/markdown output")

	root.AddCommand(newRenderCmd(e))
	root.AddCommand(newHTMLCmd(e))
	root.AddCommand(newDecorationsCmd(e))
	root.AddCommand(newServeCmd(e))
	return root
}

type app struct {
	env       *env
	highlight config.HighlightSettings
	ui        config.UISettings
	logger    *zap.Logger
	term      termcolor.Terminal
	dark      bool
	colors    bool
	profile   termcolor.Profile
	jobs      int
}

// setup resolves settings from defaults, the config file, the environment
// and flags, in increasing precedence.
func (e *env) setup(cmd *cobra.Command) (*app, error) {
	flags := cmd.Flags()
	explicit, _ := flags.GetString("config")
	if explicit == "" {
		explicit = e.getenv("TAGLIGHT_CONFIG")
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	path, _, err := config.Find(cwd, explicit, e.getenv("XDG_CONFIG_HOME"), e.getenv("HOME"))
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	fileCfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	envCfg, err := config.FromEnv(e.getenv)
	if err != nil {
		return nil, err
	}

	var flagUI config.UIConfig
	if v, _ := flags.GetString("color"); v != "" {
		flagUI.Color = &v
	}
	if v, _ := flags.GetString("theme"); v != "" {
		flagUI.Theme = &v
	}
	if flags.Changed("gutter") {
		v, _ := flags.GetBool("gutter")
		flagUI.Gutter = &v
	}
	if f := flags.Lookup("output"); f != nil && f.Changed {
		v := f.Value.String()
		flagUI.Output = &v
	}

	hl, err := config.NormalizeHighlight(config.MergeHighlight(config.DefaultHighlightSettings(), fileCfg.Highlight, envCfg.Highlight))
	if err != nil {
		return nil, err
	}
	ui, err := config.NormalizeUI(config.MergeUI(config.DefaultUISettings(), fileCfg.UI, envCfg.UI, flagUI))
	if err != nil {
		return nil, err
	}

	debug, _ := flags.GetBool("debug")
	logger := newLogger(debug, e.stderr)
	if path != "" {
		logger.Debug("loaded config", zap.String("path", filepath.Clean(path)))
	}

	a := &app{env: e, highlight: hl, ui: ui, logger: logger}
	if f, ok := e.stdout.(*os.File); ok {
		a.term.Out = f
	}
	a.term.Env = make(map[string]string)
	for _, key := range terminalVars {
		if v := e.getenv(key); v != "" {
			a.term.Env[key] = v
		}
	}
	mode, err := termcolor.ParseMode(ui.Color)
	if err != nil {
		return nil, err
	}
	scheme, err := termcolor.ParseScheme(ui.Theme)
	if err != nil {
		return nil, err
	}
	a.colors = a.term.Colors(mode)
	a.profile = a.term.Profile()
	a.dark = a.term.Scheme(scheme) == termcolor.SchemeDark
	a.jobs, _ = flags.GetInt("jobs")
	return a, nil
}

func (a *app) close() {
	_ = a.logger.Sync()
}

var terminalVars = []string{"NO_COLOR", "CLICOLOR", "CLICOLOR_FORCE", "FORCE_COLOR", "TERM", "COLORTERM", "COLORFGBG"}

// newLogger writes console output at debug level under --debug and JSON
// warnings otherwise.
func newLogger(debug bool, w io.Writer) *zap.Logger {
	if debug {
		core := zapcore.NewCore(zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()), zapcore.AddSync(w), zap.DebugLevel)
		return zap.New(core, zap.Development())
	}
	core := zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), zapcore.AddSync(w), zap.WarnLevel)
	return zap.New(core)
}
