package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/recognarr/recognarr/config"
	"github.com/recognarr/recognarr/pkg/ai"
	"github.com/recognarr/recognarr/pkg/cache"
	"github.com/recognarr/recognarr/pkg/episode"
	mhttp "github.com/recognarr/recognarr/pkg/http"
	"github.com/recognarr/recognarr/pkg/logger"
	"github.com/recognarr/recognarr/pkg/recognize"
	"go.uber.org/zap"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const maxWorkers = 3

var (
	recognizeShow    string
	recognizeUseAI   bool
	recognizeWorkers int
	recognizeStats   bool
)

type recognition struct {
	Path   string              `json:"path"`
	Result episode.MatchResult `json:"result"`
}

// recognizeCmd represents the recognize command
var recognizeCmd = &cobra.Command{
	Use:   "recognize [paths...]",
	Short: "recognize season and episode numbers for file paths",
	Long:  `recognize season and episode numbers for file paths, read from arguments or stdin`,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()

		cfg, err := config.New(viper.GetViper())
		if err != nil {
			log.Fatal("failed to read configurations", zap.Error(err))
		}

		paths := args
		if len(paths) == 0 {
			scanner := bufio.NewScanner(os.Stdin)
			for scanner.Scan() {
				if line := scanner.Text(); line != "" {
					paths = append(paths, line)
				}
			}
			if err := scanner.Err(); err != nil {
				log.Fatal("failed to read paths from stdin", zap.Error(err))
			}
		}
		if len(paths) == 0 {
			log.Fatal("no paths given")
		}

		workers := recognizeWorkers
		if workers < 1 {
			workers = cfg.Batch.Workers
		}
		if workers > maxWorkers {
			workers = maxWorkers
		}
		if workers > len(paths) {
			workers = len(paths)
		}

		resultCache := cache.New(
			cache.WithCapacity(cfg.Cache.Capacity),
			cache.WithTTL(cfg.Cache.TTL),
		)

		var recognizer ai.Recognizer
		useAI := recognizeUseAI && cfg.AI.Enabled
		if useAI {
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

		ctx := logger.WithCtx(context.Background(), logger.Get())
		start := time.Now()

		jobs := make(chan string)
		results := make([]recognition, len(paths))
		index := make(map[string]int, len(paths))
		for i, p := range paths {
			index[p] = i
		}

		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for p := range jobs {
					results[index[p]] = recognition{
						Path:   p,
						Result: coordinator.Recognize(ctx, p, recognizeShow, useAI),
					}
				}
			}()
		}

		for _, p := range paths {
			jobs <- p
		}
		close(jobs)
		wg.Wait()

		out := json.NewEncoder(os.Stdout)
		out.SetIndent("", "  ")
		for _, r := range results {
			if err := out.Encode(r); err != nil {
				log.Fatal("failed to encode result", zap.Error(err))
			}
		}

		if recognizeStats {
			stats := resultCache.Statistics()
			fmt.Fprintf(os.Stderr, "recognized %s paths in %s\n", humanize.Comma(int64(len(paths))), time.Since(start).Round(time.Millisecond))
			fmt.Fprintf(os.Stderr, "cache: %s hits, %s misses, %s hot hits, %s evictions\n",
				humanize.Comma(stats.Hits), humanize.Comma(stats.Misses), humanize.Comma(stats.HotHits), humanize.Comma(stats.Evictions))
		}
	},
}

func init() {
	rootCmd.AddCommand(recognizeCmd)
	recognizeCmd.Flags().StringVar(&recognizeShow, "show", "", "show title used to strip the series name from candidates")
	recognizeCmd.Flags().BoolVar(&recognizeUseAI, "ai", false, "allow the ai fallback when the parsers come up short")
	recognizeCmd.Flags().IntVar(&recognizeWorkers, "workers", 0, "number of concurrent workers (max 3, default from config)")
	recognizeCmd.Flags().BoolVar(&recognizeStats, "stats", false, "print cache statistics to stderr when done")
}
