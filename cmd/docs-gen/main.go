package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/blimu-dev/docs-gen/internal/cli"
	"github.com/blimu-dev/docs-gen/pkg/logging"
)

const envPrefix = "DOCSGEN"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logging.Default().Error().Err(err).Msg("docs-gen failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:           "docs-gen",
		Short:         "Generate API documentation that keeps manual edits",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			initConfig(v)
			logger := newLogger(v)
			logging.SetDefault(logger)
			cmd.SetContext(logging.WithLogger(cmd.Context(), &logger))
			return nil
		},
	}

	root.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().BoolP("quiet", "q", false, "Only log warnings and errors")
	root.PersistentFlags().Bool("no-color", false, "Disable colored log output")
	mustBind(v, root.PersistentFlags().Lookup("verbose"))
	mustBind(v, root.PersistentFlags().Lookup("quiet"))
	mustBind(v, root.PersistentFlags().Lookup("no-color"))

	root.AddCommand(newGenerateCmd(v))
	root.AddCommand(newValidateCmd())
	return root
}

func newGenerateCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate markdown documentation",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cli.RunGenerate(cmd.Context(), cli.RunGenerateParams{
				ConfigPath: v.GetString("config"),
				Overrides: cli.Overrides{
					OpenAPI:       v.GetString("input"),
					Routes:        v.GetString("routes"),
					Output:        v.GetString("out"),
					BaseURL:       v.GetString("base-url"),
					Title:         v.GetString("title"),
					Locale:        v.GetString("locale"),
					Languages:     v.GetStringSlice("languages"),
					IncludeGroups: v.GetStringSlice("include-groups"),
					ExcludeGroups: v.GetStringSlice("exclude-groups"),
					Force:         v.GetBool("force"),
				},
			})
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringP("config", "c", "", "Path to docs-gen.yaml config")
	flags.String("input", "", "OpenAPI document file or URL")
	flags.String("routes", "", "YAML route manifest")
	flags.String("out", "", "Output directory")
	flags.String("base-url", "", "Base URL used in example requests")
	flags.String("title", "", "Document title")
	flags.String("locale", "", "Locale used to order groups")
	flags.StringSlice("languages", nil, "Example request languages (e.g. bash,javascript)")
	flags.StringArray("include-groups", nil, "Regex patterns for groups to include")
	flags.StringArray("exclude-groups", nil, "Regex patterns for groups to exclude")
	flags.Bool("force", false, "Overwrite manually edited endpoint blocks")

	for _, name := range []string{"config", "input", "routes", "out", "base-url", "title", "locale", "languages", "include-groups", "exclude-groups", "force"} {
		mustBind(v, flags.Lookup(name))
	}
	return cmd
}

func newValidateCmd() *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate an OpenAPI document",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.RunValidate(cmd.Context(), input)
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "OpenAPI document file or URL")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

// initConfig loads .env files and maps DOCSGEN_* variables onto flags.
func initConfig(v *viper.Viper) {
	// .env.local overrides .env
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
}

func newLogger(v *viper.Viper) zerolog.Logger {
	cfg := logging.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		NoColor: v.GetBool("no-color") || os.Getenv("NO_COLOR") != "",
	}
	if cfg.Level == "" && os.Getenv("DEBUG") != "" {
		cfg.Level = "debug"
	}
	if cfg.Format == "" {
		cfg.Format = "auto"
	}
	if v.GetBool("verbose") {
		cfg.Level = "debug"
	}
	if v.GetBool("quiet") {
		cfg.Level = "warn"
	}
	return logging.NewFromConfig(cfg)
}

func mustBind(v *viper.Viper, flag *pflag.Flag) {
	if err := v.BindPFlag(flag.Name, flag); err != nil {
		panic(fmt.Sprintf("failed to bind %s flag: %v", flag.Name, err))
	}
}
