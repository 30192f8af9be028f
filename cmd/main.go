package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/brettbedarf/roottools/applets"
	"github.com/brettbedarf/roottools/config"
	"github.com/brettbedarf/roottools/internal/util"
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	argv := args
	var (
		configPath string
		verbose    int
	)

	// Flags are only accepted under the tool's own name; applet links pass
	// everything through untouched.
	if len(args) > 0 && filepath.Base(args[0]) == applets.BinaryName {
		flags := flag.NewFlagSet(applets.BinaryName, flag.ContinueOnError)
		flags.SetOutput(stderr)
		flags.StringVar(&configPath, "config", "", "Path to a YAML or JSON config file")
		flags.IntVar(&verbose, "verbose", 0, "Log verbosity level between 1 (error) and 5 (trace). Default is 1 (error).")
		flags.IntVar(&verbose, "v", 0, "--verbose (shorthand)")
		flags.Usage = func() {
			fmt.Fprintf(flags.Output(), "usage: %s [-v N] [-config file] <applet> <args...>\n", applets.BinaryName)
			flags.PrintDefaults()
			printApplets(flags.Output())
		}
		if err := flags.Parse(args[1:]); err != nil {
			return 1
		}
		argv = append([]string{args[0]}, flags.Args()...)
	}

	if configPath == "" {
		configPath = os.Getenv(config.EnvConfigFile)
	}
	cfg := config.NewDefaultConfig()
	if configPath != "" {
		fileCfg, err := config.NewConfigFromFile(configPath)
		if err != nil {
			fmt.Fprintf(stderr, "~ERR-loading config %s: %s\n", configPath, err)
			return 1
		}
		cfg = fileCfg
	}
	if verbose > 0 {
		cfg.Merge(&config.ConfigOverride{LogLvl: &verbose})
	}

	util.InitializeLoggerTo(stderr, cfg.LogLvl, cfg.LogFile)
	logger := util.GetLogger("main")
	logger.Debug().Str("config", configPath).Int("logLvl", cfg.LogLvl).Msg("Configuration loaded")

	registry := applets.NewRegistry()
	applets.RegisterBuiltins(registry)

	return applets.Run(registry, applets.NewEnv(cfg, stdout, stderr), argv)
}

func printApplets(w io.Writer) {
	registry := applets.NewRegistry()
	applets.RegisterBuiltins(registry)
	fmt.Fprintln(w, "applets:")
	for _, kw := range registry.Keywords() {
		applet, _ := registry.Get(kw)
		fmt.Fprintf(w, "  %s %s\n", applet.Keyword, applet.Usage)
	}
}
