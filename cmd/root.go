package cmd

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "recognarr",
	Short: "recognarr cli",
	Long:  `recognize season and episode numbers from media file names`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file")
}

func initConfig() {
	viper.SetConfigFile(cfgFile)

	viper.SetEnvPrefix("RECOGNARR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", ""))
	viper.AutomaticEnv()

	viper.SetDefault("cache.capacity", 10_000)
	viper.SetDefault("cache.ttl", time.Hour*24)

	viper.SetDefault("ai.enabled", false)
	viper.SetDefault("ai.endpoint", "")
	viper.SetDefault("ai.apiKey", "")
	viper.SetDefault("ai.threshold", 0.5)
	viper.SetDefault("ai.timeout", time.Second*15)
	viper.SetDefault("ai.maxRetries", 0)
	viper.SetDefault("ai.backoff", time.Millisecond*500)

	viper.SetDefault("server.port", 8080)

	viper.SetDefault("batch.workers", 2)
}
