package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ippvm/internal/config"
	"ippvm/internal/logger"
	"ippvm/internal/runner"
	"ippvm/pkg/color"
	"ippvm/pkg/program"
)

type app struct {
	v    *viper.Viper
	cfg  config.Config
	code int // exit code requested by the program
}

func newApp() *app {
	return &app{v: viper.New()}
}

func badParams(format string, args ...any) error {
	return program.Errorf(program.ExitBadParams, 0, format, args...)
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return badParams("unexpected argument %q for %s", args[0], cmd.CommandPath())
	}
	return nil
}

func (a *app) command() *cobra.Command {
	root := &cobra.Command{
		Use:               "ippvm",
		Short:             "Interpreter for the IPPcode23 instructional language",
		Args:              noArgs,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE:              a.run,
	}

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return badParams("%v", err)
	})

	pf := root.PersistentFlags()
	pf.String("config", "", "Path to the configuration file (default ./"+config.FileName+" or ~/"+config.FileName+")")
	pf.BoolP(config.KeyVerbose, "v", false, "Verbose mode")
	pf.Bool(config.KeyNoColor, false, "No color")
	pf.StringP("source", "s", "", "Program file (XML or .IPPcode23 text), stdin when omitted")

	addRunFlags(root)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run a program",
		Args:  noArgs,
		RunE:  a.run,
	}
	addRunFlags(runCmd)

	parseCmd := &cobra.Command{
		Use:   "parse",
		Short: "Translate .IPPcode23 source text to the XML representation",
		Args:  noArgs,
		RunE:  a.parse,
	}

	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the loaded program as YAML",
		Args:  noArgs,
		RunE:  a.dump,
	}

	root.AddCommand(runCmd, parseCmd, dumpCmd)

	return root
}

func addRunFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("input", "i", "", "File with input for READ, stdin when omitted")
	f.Int(config.KeyMaxSteps, 0, "Maximum number of executed instructions (0 = unlimited)")
}

// setup layers the config file, environment and flags, then configures logging and colour
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := config.Bind(a.v, cmd.Flags()); err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	path, err := config.Find(a.v.GetString("config"), cwd)
	if err != nil {
		return badParams("%v", err)
	}
	if path != "" {
		file, err := config.Load(path)
		if err != nil {
			return badParams("%v", err)
		}
		file.Apply(a.v)
	}

	a.cfg = config.Resolve(a.v)
	a.cfg.Path = path

	logger.Init(a.cfg.Verbose, a.cfg.NoColor)
	color.EnableColor(!a.cfg.NoColor && color.IsTerminal(os.Stderr))

	if path != "" {
		log.Debug("Configuration loaded", "file", path)
	}

	if a.cfg.MaxSteps < 0 {
		return badParams("--%s must not be negative", config.KeyMaxSteps)
	}

	return nil
}

func (a *app) runner() *runner.Runner {
	return &runner.Runner{
		SourceFile: a.v.GetString("source"),
		InputFile:  a.v.GetString("input"),
		Verbose:    a.cfg.Verbose,
		MaxSteps:   a.cfg.MaxSteps,
		Stdin:      os.Stdin,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
	}
}

func (a *app) run(cmd *cobra.Command, _ []string) error {
	r := a.runner()
	if r.SourceFile == "" && r.InputFile == "" {
		return badParams("at least one of --source or --input must be given, see %s --help", cmd.CommandPath())
	}

	code, err := r.Run()
	if err != nil {
		return err
	}

	a.code = code
	if code != 0 {
		log.Info("Program exited", "code", code)
	}
	return nil
}

func (a *app) parse(_ *cobra.Command, _ []string) error {
	if err := a.runner().Assemble(); err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	return nil
}

func (a *app) dump(_ *cobra.Command, _ []string) error {
	if err := a.runner().Dump(); err != nil {
		return fmt.Errorf("dump: %w", err)
	}
	return nil
}
