package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sapliy/minibank/pkg/authn"
	"github.com/sapliy/minibank/pkg/observability"
)

var (
	cfgFile string

	// logger goes to stderr so structured output never interleaves with
	// the interactive prompts on stdout.
	logger = observability.NewLoggerTo(os.Stderr, "minibank", slog.LevelWarn)

	// auth is the credential capability; the core never sees plaintext.
	auth authn.Authenticator = authn.Bcrypt{}
)

var rootCmd = &cobra.Command{
	Use:   "minibank",
	Short: "Single-node account ledger",
	Long:  `minibank registers account holders, authenticates them, and lets them check balances and move money.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShell(cmd)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.minibank.yaml)")
	rootCmd.PersistentFlags().String("data", "database.json", "snapshot file path")
	rootCmd.PersistentFlags().Bool("fresh", false, "start with an empty ledger when the snapshot is missing or corrupt")
	_ = viper.BindPFlag("data_file", rootCmd.PersistentFlags().Lookup("data"))
	_ = viper.BindPFlag("fresh_start", rootCmd.PersistentFlags().Lookup("fresh"))
}

func initConfig() {
	viper.SetDefault("data_file", "database.json")
	viper.SetDefault("routing_number", 123456789)
	viper.SetDefault("lock_timeout", "3s")
	viper.SetDefault("fresh_start", false)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".minibank")
	}

	viper.SetEnvPrefix("minibank")
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}

func main() {
	Execute()
}
