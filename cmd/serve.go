package cmd

import (
	"github.com/recognarr/recognarr/config"
	"github.com/recognarr/recognarr/pkg/ai"
	"github.com/recognarr/recognarr/pkg/cache"
	mhttp "github.com/recognarr/recognarr/pkg/http"
	"github.com/recognarr/recognarr/pkg/logger"
	"github.com/recognarr/recognarr/pkg/recognize"
	"github.com/recognarr/recognarr/server"
	"go.uber.org/zap"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "start the recognition server",
	Long:  `start the recognition server`,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()

		cfg, err := config.New(viper.GetViper())
		if err != nil {
			log.Fatal("failed to read configurations", zap.Error(err))
		}

		resultCache := cache.New(
			cache.WithCapacity(cfg.Cache.Capacity),
			cache.WithTTL(cfg.Cache.TTL),
		)

		var recognizer ai.Recognizer
		if cfg.AI.Enabled {
			client := mhttp.NewRateLimitedHTTPClient(
				mhttp.WithMaxRetries(cfg.AI.MaxRetries),
				mhttp.WithBaseBackoff(cfg.AI.BaseBackoff),
			)
			recognizer = ai.NewHTTPRecognizer(cfg.AI.Endpoint,
				ai.WithClient(client),
				ai.WithAPIKey(cfg.AI.APIKey),
				ai.WithTimeout(cfg.AI.Timeout),
			)
		}

		coordinator := recognize.New(resultCache, recognizer,
			recognize.WithThreshold(cfg.AI.Threshold),
		)

		server := server.New(log, coordinator, resultCache)
		log.Error(server.Serve(cfg.Server.Port))
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
