package cmd

import (
	"fmt"

	"github.com/Rana718/custseed/internal/config"
	"github.com/Rana718/custseed/internal/database"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	Version = "1.0.0"
)

// newAdapter is swapped out in tests.
var newAdapter = database.NewAdapter

func showBanner(cmd *cobra.Command) {
	greenColor := color.New(color.FgGreen, color.Bold)

	banner := []string{
		"╔══════════════════════════════════════════════╗",
		"║   ___ _   _ ___ _____ ___ ___ ___ ___        ║",
		"║  / __| | | / __|_   _/ __| __| __|   \\       ║",
		"║ | (__| |_| \\__ \\ | | \\__ \\ _|| _|| |) |      ║",
		"║  \\___|\\___/|___/ |_| |___/___|___|___/       ║",
		"║                                              ║",
		"║     🌱 Bulk customer seeding for SQL 🌱       ║",
		"╚══════════════════════════════════════════════╝",
	}

	out := cmd.OutOrStdout()
	for _, line := range banner {
		greenColor.Fprintln(out, line)
	}

	fmt.Fprint(out, "              ")
	color.New(color.FgCyan, color.Bold).Fprint(out, "Version: ")
	color.New(color.FgYellow, color.Bold).Fprintf(out, "%s\n", Version)
}

var rootCmd = &cobra.Command{
	Use:   "custseed",
	Short: "Seed a customers table with unique synthetic records",
	Long: `
custseed fills a pre-existing customers table with realistic synthetic
records. Every email is unique within a run; records are written in
batches, each batch as one multi-row INSERT inside its own transaction.

Database Support:
- PostgreSQL (pgx)
- MySQL
- SQLite
- SQL Server`,

	SilenceUsage: true,

	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Fprintf(cmd.OutOrStdout(), "custseed version %s\n", Version)
			return
		}

		showBanner(cmd)
		fmt.Fprintln(cmd.OutOrStdout())
		cmd.Help()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./custseed.config.json)")
	rootCmd.PersistentFlags().BoolP("force", "f", false, "Skip confirmations")
	rootCmd.PersistentFlags().String("provider", "", "database provider (postgresql, mysql, sqlite, sqlserver)")
	rootCmd.PersistentFlags().String("host", "", "database host")
	rootCmd.PersistentFlags().String("port", "", "database port")
	rootCmd.PersistentFlags().String("database", "", "database name (file path for sqlite)")
	rootCmd.PersistentFlags().String("user", "", "database user")

	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")

	bindFlags(rootCmd, map[string]string{
		"database.provider": "provider",
		"database.host":     "host",
		"database.port":     "port",
		"database.name":     "database",
		"database.user":     "user",
	}, true)

	config.SetDefaults(viper.GetViper())
}

// bindFlags binds each viper key to the named flag of cmd.
func bindFlags(cmd *cobra.Command, keys map[string]string, persistent bool) {
	flags := cmd.Flags()
	if persistent {
		flags = cmd.PersistentFlags()
	}
	for key, name := range keys {
		if err := viper.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", name, err))
		}
	}
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env")
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("json")
		viper.SetConfigName("custseed.config")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			color.Yellow("⚠️  Could not read config file %s: %v", cfgFile, err)
		}
	}
}
