package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/wordparse/config"
)

const version = "0.1.0"

// app holds the settings shared by all commands, filled in before any
// command runs.
type app struct {
	configPath   string
	logVerbosity int
	logFile      string

	cfg config.Config
	log commonlog.Logger
}

func main() {
	if err := newRootCmd(&app{}).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "wordparse:", err)
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "wordparse",
		Short:         "Tokenize and parse word based languages with declarative grammars",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default: .wordparse.toml, .wordparse.yaml or .wordparse.yml in the working directory or a parent)")
	flags.IntVar(&a.logVerbosity, "log-verbosity", 0, "log verbosity (-4 to 2, 2 enables parse tracing)")
	flags.StringVar(&a.logFile, "log-file", "", "write logs to this file instead of stderr")

	rootCmd.AddCommand(newTokenizeCmd(a))
	rootCmd.AddCommand(newParseCmd(a))
	rootCmd.AddCommand(newGrammarCmd(a))
	rootCmd.AddCommand(newLSPCmd(a))

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	var err error
	if a.configPath != "" {
		a.cfg, err = config.Load(a.configPath)
	} else {
		a.cfg, err = config.Discover(".")
	}
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-verbosity") {
		a.cfg.LogVerbosity = a.logVerbosity
	}
	if flags.Changed("log-file") {
		a.cfg.LogFile = a.logFile
	}

	var path *string
	if a.cfg.LogFile != "" {
		path = &a.cfg.LogFile
	}
	commonlog.Configure(a.cfg.LogVerbosity, path)
	a.log = commonlog.GetLogger("wordparse")
	if a.cfg.Path != "" {
		a.log.Debugf("using config %s", a.cfg.Path)
	}
	return nil
}

// grammarPath picks the grammar given on the command line, falling back to
// the configured one.
func (a *app) grammarPath(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if a.cfg.Grammar != "" {
		return a.cfg.Grammar, nil
	}
	return "", fmt.Errorf("no grammar: pass --grammar or set grammar in the config file")
}

// verbosity picks the -v count when given, the configured verbosity
// otherwise.
func (a *app) verbosity(cmd *cobra.Command, flag int) int {
	if cmd.Flags().Changed("verbose") {
		return flag
	}
	return a.cfg.Verbosity
}
