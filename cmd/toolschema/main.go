package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const (
	envConfig            = "TOOLSCHEMA_CONFIG"
	envDebug             = "TOOLSCHEMA_DEBUG"
	envEnsureArrayItems  = "TOOLSCHEMA_ENSURE_ARRAY_ITEMS"
	envKeepPropertyNames = "TOOLSCHEMA_KEEP_PROPERTY_NAMES"
	envRepair            = "TOOLSCHEMA_REPAIR"
	envStrict            = "TOOLSCHEMA_STRICT"
	envIndent            = "TOOLSCHEMA_INDENT"
)

type options struct {
	configPath        string
	debug             bool
	ensureArrayItems  bool
	keepPropertyNames bool
	repair            bool
	strict            bool
	indent            bool
	toolSchemaPaths   []string
}

func main() {
	loadDotEnv(newLogger(os.Stderr, envBool(envDebug)))
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadDotEnv loads .env (or files) into the environment. A missing file is
// expected; any other failure is logged at debug level.
func loadDotEnv(logger *slog.Logger, files ...string) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Debug("load .env", "error", err)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cmd := newRootCmd(stdin, stdout, stderr)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "toolschema",
		Short:         "Normalize JSON Schemas for function-calling APIs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", envOrDefault(envConfig, ""), "path to config yaml")
	flags.BoolVar(&opts.debug, "debug", envBool(envDebug), "log input and output trees")
	flags.BoolVar(&opts.ensureArrayItems, "ensure-array-items", envBool(envEnsureArrayItems), "give array schemas without items an empty one")
	flags.BoolVar(&opts.keepPropertyNames, "keep-property-names", envBool(envKeepPropertyNames), "keep properties named like removed keywords")
	flags.BoolVar(&opts.repair, "repair", envBool(envRepair), "repair malformed json input")
	flags.BoolVar(&opts.strict, "strict", envBool(envStrict), "fail when a reference had to be dropped")
	flags.BoolVar(&opts.indent, "indent", envBool(envIndent), "indent json output")

	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		if opts.configPath == "" {
			return nil
		}
		cfg, err := loadConfig(opts.configPath)
		if err != nil {
			return err
		}
		cfg.apply(opts, cmd.Flags().Changed)
		return nil
	}

	root.AddCommand(newNormalizeCmd(opts), newBodyCmd(opts))
	return root
}

func newNormalizeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "normalize [file ...]",
		Short: "Normalize JSON or YAML schema files, or stdin",
		Example: `  toolschema normalize schema.json
  cat schema.yaml | toolschema normalize --indent -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNormalize(cmd, opts, args)
		},
	}
}

func newBodyCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "body [file]",
		Short: "Normalize the tool schemas inside a chat request body",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runBody(cmd, opts, path)
		},
	}
}
