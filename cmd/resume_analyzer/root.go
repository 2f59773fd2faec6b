package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-analyzer/internal/api"
	"github.com/jonathan/resume-analyzer/internal/config"
	"github.com/jonathan/resume-analyzer/internal/guard"
	"github.com/jonathan/resume-analyzer/internal/observability"
	"github.com/jonathan/resume-analyzer/internal/session"
	"github.com/jonathan/resume-analyzer/internal/types"
	"github.com/spf13/cobra"
)

// accessAnnotation names the cobra annotation holding a command's guard.Access.
const accessAnnotation = "access"

var rootCmd = &cobra.Command{
	Use:   "resume_analyzer",
	Short: "Score resumes against job descriptions",
	Long: `resume_analyzer is the command line client of the resume analysis service.
Upload a resume, paste a job description and get a match score with strengths,
missing skills and suggestions. Browse job matches and manage your resume history.

Configuration can be loaded from a JSON file using --config. Flags override the config
file, which overrides RESUME_ANALYZER_* environment variables.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupApp,
}

var (
	rootConfigPath string
	rootAPIURL     string
	rootAPIPrefix  string
	rootTokenFile  string
	rootToken      string
	rootVerbose    bool
	rootColor      bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	rootCmd.PersistentFlags().StringVar(&rootAPIURL, "api-url", "", "Backend base URL (defaults to RESUME_ANALYZER_API_URL or "+config.DefaultAPIURL+")")
	rootCmd.PersistentFlags().StringVar(&rootAPIPrefix, "api-prefix", "", "Path prefix for resource endpoints, e.g. /api")
	rootCmd.PersistentFlags().StringVar(&rootTokenFile, "token-file", "", "Where the session token is stored")
	rootCmd.PersistentFlags().StringVar(&rootToken, "token", "", "Use this bearer token for one command without storing it")
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.PersistentFlags().BoolVar(&rootColor, "color", false, "Colour the match score badge")
}

// appState is what every command works with once the root has resolved configuration.
type appState struct {
	cfg     config.Config
	session *session.Session
	client  *api.Client
	printer *observability.Printer
}

var app *appState

func setupApp(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		log.Printf("[VERBOSE] API %s (prefix %q), token file %s", cfg.APIURL, cfg.APIPrefix, cfg.TokenFile)
	}

	var store session.TokenStore
	if rootToken != "" {
		store = session.NewMemoryStore(rootToken)
	} else {
		store = session.NewFileStore(cfg.TokenFile, cfg.TokenKey)
	}

	client, err := api.New(cfg.APIURL, store,
		api.WithAPIPrefix(cfg.APIPrefix),
		api.WithTimeout(cfg.Timeout()),
		api.WithVerbose(cfg.Verbose),
	)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	app = &appState{
		cfg:     cfg,
		session: session.New(store),
		client:  client,
		printer: observability.NewPrinter(cmd.OutOrStdout()).WithColor(rootColor),
	}

	access, err := guard.ParseAccess(cmd.Annotations[accessAnnotation])
	if err != nil {
		return err
	}
	return guard.Check(cmd.Name(), access, app.session.IsAuthenticated())
}

// resolveConfig layers flags over the config file, the file over the environment, and the
// environment over the built-in defaults.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if rootConfigPath != "" {
		loaded, err := config.LoadConfig(rootConfigPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return config.Config{}, err
		}
		cfg = *loaded
	}

	// Only override if the flag was explicitly set
	flags := cmd.Flags()
	if flags.Changed("api-url") {
		cfg.APIURL = rootAPIURL
		cfg.MarkSet(config.KeyAPIURL)
	}
	if flags.Changed("api-prefix") {
		cfg.APIPrefix = rootAPIPrefix
		cfg.MarkSet(config.KeyAPIPrefix)
	}
	if flags.Changed("token-file") {
		cfg.TokenFile = rootTokenFile
		cfg.MarkSet(config.KeyTokenFile)
	}
	if flags.Changed("verbose") {
		cfg.Verbose = rootVerbose
		cfg.MarkSet(config.KeyVerbose)
	}

	cfg = cfg.MergeWithDefaults(config.FromEnv())
	cfg = cfg.MergeWithDefaults(config.Defaults())
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// describeError renders err as the single line printed by main.
func describeError(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return types.FormatValidationError(validationErrors)
	}
	return api.UserMessage(err)
}

// withAccess sets the guard level of cmd.
func withAccess(cmd *cobra.Command, access guard.Access) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = make(map[string]string)
	}
	cmd.Annotations[accessAnnotation] = string(access)
	return cmd
}
