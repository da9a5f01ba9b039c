package app

import (
	"fmt"
	"os"
	"os/user"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from command-line
// flags, environment variables, .env files, and the config file.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Checkstate configuration
	Repo    string // shared settings/results repository locator
	NoStore bool   // skip storing results on exit

	// Logging configuration
	LogLevel  string
	LogFormat string
}

// LoadConfig loads configuration from all sources in order of
// precedence:
//  1. Command-line flags (handled by cobra)
//  2. Environment variables
//  3. .env files
//  4. Config file (~/.checkstate.yaml)
//  5. Local per-machine state (remembered repository)
//  6. Defaults
func LoadConfig() (*Config, error) {
	loadEnvFiles()

	viper.AutomaticEnv()
	viper.SetEnvPrefix("checkstate")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	configFile := viper.GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.AddConfigPath(".")
			viper.SetConfigType("yaml")
			viper.SetConfigName(".checkstate")
		}
	}

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()

	config := &Config{
		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),
		NoColor: viper.GetBool("no-color"),
		Format:  viper.GetString("format"),

		ConfigFile: viper.ConfigFileUsed(),

		Repo:    viper.GetString("repo"),
		NoStore: viper.GetBool("no_store"),

		LogLevel:  viper.GetString("log_level"),
		LogFormat: viper.GetString("log_format"),
	}

	if config.Repo == "" {
		if local, err := LoadLocalState(); err == nil && local.Repo != "" {
			config.Repo = local.Repo
		}
	}
	if config.Repo == "" {
		config.Repo = DefaultRepo()
	}
	config.Repo = normalizeRepo(config.Repo)

	return config, nil
}

// UpdateFromFlags updates configuration with values from parsed
// command-line flags, which take precedence over everything else.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	if verbose {
		c.Verbose = true
	}
	if quiet {
		c.Quiet = true
	}
	if noColor {
		c.NoColor = true
	}
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// DefaultRepo is the fallback settings repository locator, derived from
// the current username.
func DefaultRepo() string {
	name := "user"
	if u, err := user.Current(); err == nil && u.Username != "" {
		name = u.Username
		// Strip a Windows DOMAIN\ prefix.
		if i := strings.LastIndexByte(name, '\\'); i >= 0 {
			name = name[i+1:]
		}
	}
	return fmt.Sprintf("git@gitlab.com:%s/checkstate-info.git", name)
}

// normalizeRepo undoes MinGW-style shell mangling of repository URLs,
// where "scheme://" arrives as "scheme:/".
func normalizeRepo(repo string) string {
	repo = strings.ReplaceAll(repo, `\`, "/")
	if !strings.Contains(repo, "://") {
		repo = strings.Replace(repo, ":/", "://", 1)
	}
	return repo
}

// loadEnvFiles loads .env files from the current directory.
func loadEnvFiles() {
	for _, file := range []string{".env", ".env.local"} {
		if _, err := os.Stat(file); err == nil {
			_ = godotenv.Load(file)
		}
	}
}
