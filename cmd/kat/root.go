package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/katcli/kat/internal/infrastructure/container"
	"github.com/katcli/kat/internal/infrastructure/system"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// globalOptions holds the root persistent flags.
type globalOptions struct {
	configPath  string
	profilesDir string
	verbose     bool
	debug       bool
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd, err := newRootCmd(ctx, args, stdout, stderr)
	if err != nil {
		slog.Error("failed to initialize", "error", err)
		return 1
	}

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("command failed", "error", err)
		return 1
	}
	return 0
}

// newRootCmd builds the command tree for args.
//
// Profiles become subcommands, so the profile directory has to be known
// before cobra parses anything. The global flags are therefore read from
// args once up front, used to load configuration and profiles, and parsed
// again by cobra as usual.
func newRootCmd(ctx context.Context, args []string, stdout, stderr io.Writer) (*cobra.Command, error) {
	globals := scanGlobalFlags(args)
	setupLogging(stderr, globals.verbose)

	opts := &globalOptions{}
	rootCmd := &cobra.Command{
		Use:   "kat",
		Short: "Concatenate files with metadata",
		Long: `kat selects files below a directory using named profiles and prints
them one after another, each preceded by a header line.

A profile is a YAML file in the profiles directory; its file name is the
subcommand name. Each profile lists glob patterns to include and exclude,
matched against paths relative to the starting directory.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			setupLogging(stderr, opts.verbose)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default is "+system.DefaultConfigPath()+")")
	flags.StringVar(&opts.profilesDir, "profiles-dir", "", "directory holding profile files (default is "+system.ConfigDir()+")")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	flags.BoolVarP(&opts.debug, "debug", "d", false, "print only the paths, not the contents")

	v := viper.New()
	if globals.profilesDir != "" {
		if err := flags.Set("profiles-dir", globals.profilesDir); err != nil {
			return nil, err
		}
	}
	if err := v.BindPFlag(system.KeyProfilesDir, flags.Lookup("profiles-dir")); err != nil {
		return nil, err
	}

	loader := system.NewConfigLoaderWithViper(v)
	cfg, err := loader.Load(globals.configPath)
	if err != nil {
		return nil, err
	}
	if used := loader.ConfigFileUsed(); used != "" {
		slog.Debug("using config file", "file", used)
	}

	c, err := container.New(ctx, container.Options{
		Logger: slog.Default(),
		Config: cfg,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize application: %w", err)
	}

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newProfilesCmd(c))
	for _, p := range c.Profiles(ctx) {
		rootCmd.AddCommand(newProfileCmd(c, p, opts))
	}

	return rootCmd, nil
}

// scanGlobalFlags picks the global flags out of args without knowing the
// rest of the command line. It accepts the same spellings pflag does:
// shorthand clusters such as -dv, and --verbose=false style booleans.
// Flags after "--" are ignored.
func scanGlobalFlags(args []string) globalOptions {
	var g globalOptions
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return g
		case arg == "--verbose" || arg == "--debug":
			g.setBool(arg[2:], true)
		case strings.HasPrefix(arg, "--verbose=") || strings.HasPrefix(arg, "--debug="):
			name, value, _ := strings.Cut(arg[2:], "=")
			if b, err := strconv.ParseBool(value); err == nil {
				g.setBool(name, b)
			}
		case arg == "--config" || arg == "--profiles-dir":
			if i+1 < len(args) {
				g.set(arg[2:], args[i+1])
				i++
			}
		case strings.HasPrefix(arg, "--config=") || strings.HasPrefix(arg, "--profiles-dir="):
			name, value, _ := strings.Cut(arg[2:], "=")
			g.set(name, value)
		case len(arg) > 1 && arg[0] == '-' && arg[1] != '-':
			g.setShorthands(arg[1:])
		}
	}
	return g
}

var globalShorthands = map[byte]string{
	'v': "verbose",
	'd': "debug",
}

// setShorthands applies a cluster like "dv" or "d=false". Scanning stops at
// the first letter that is not a global shorthand.
func (g *globalOptions) setShorthands(cluster string) {
	last := ""
	for i := 0; i < len(cluster); i++ {
		if cluster[i] == '=' {
			if b, err := strconv.ParseBool(cluster[i+1:]); err == nil && last != "" {
				g.setBool(last, b)
			}
			return
		}
		name, ok := globalShorthands[cluster[i]]
		if !ok {
			return
		}
		g.setBool(name, true)
		last = name
	}
}

func (g *globalOptions) setBool(name string, value bool) {
	switch name {
	case "verbose":
		g.verbose = value
	case "debug":
		g.debug = value
	}
}

func (g *globalOptions) set(name, value string) {
	switch name {
	case "config":
		g.configPath = value
	case "profiles-dir":
		g.profilesDir = value
	}
}

func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	// Using TextHandler for CLI friendliness
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
