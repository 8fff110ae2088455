package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/keagan/montagecannon/internal/channel"
	"github.com/keagan/montagecannon/internal/config"
	"github.com/keagan/montagecannon/internal/ffmpeg"
	"github.com/keagan/montagecannon/internal/logging"
	"github.com/keagan/montagecannon/internal/pipeline"
	"github.com/keagan/montagecannon/pkg/util"
)

var (
	cfgFile string
	verbose bool
	logFile string

	channelsFile string
	jobs         int
	testMode     bool
	keepTemp     bool
	cleanupDays  int
)

func main() {
	ctx := context.Background()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "montage [project folder]",
	Short: "montagecannon - batch montage builder",
	Long:  "Builds channel montages from numbered image/audio pairs: Ken Burns motion, transient effects, transitions and overlays, rendered through ffmpeg.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logging
		if logFile != "" {
			if err := logging.InitWithFile(verbose, logFile); err != nil {
				return err
			}
		} else {
			logging.Init(verbose)
		}

		// Load config
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		// Store config in context
		ctx := config.WithConfig(cmd.Context(), cfg)
		cmd.SetContext(ctx)

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.montagecannon/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write the JSON log stream to this file")

	renderCmd.Flags().StringVar(&channelsFile, "channels", "", "channels JSON file (default from config)")
	renderCmd.Flags().IntVar(&jobs, "jobs", 0, "concurrent channel renders (default from config)")
	renderCmd.Flags().BoolVar(&testMode, "test", false, "render only the first pair per channel")
	renderCmd.Flags().BoolVar(&keepTemp, "keep-temp", false, "keep session temp files")

	cleanupCmd.Flags().IntVar(&cleanupDays, "days", 0, "delete renders older than this many days (default from config)")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(capsCmd)
	rootCmd.AddCommand(cleanupCmd)
}

var scanCmd = &cobra.Command{
	Use:   "scan [project folder]",
	Short: "Scan a project folder and report media/audio pairs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		exec, err := newExecutor(cfg)
		if err != nil {
			return err
		}

		pipe, err := pipeline.New(log.Logger, exec, exec.Capabilities(cmd.Context()), pipeline.Options{
			ProjectDir:    args[0],
			IncludeVideos: cfg.Render.IncludeVideos,
		})
		if err != nil {
			return err
		}

		summary, err := pipe.Scan()
		if err != nil {
			return err
		}

		log.Info().
			Int("images", summary.Images).
			Int("videos", summary.Videos).
			Int("audio", summary.Audio).
			Int("pairs", summary.Pairs).
			Msg("scan complete")

		return nil
	},
}

var renderCmd = &cobra.Command{
	Use:   "render [project folder]",
	Short: "Render all channel montages for a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		chFile := channelsFile
		if chFile == "" {
			chFile = cfg.ChannelsFile
		}
		channels, err := channel.LoadFile(chFile)
		if err != nil {
			return err
		}

		exec, err := newExecutor(cfg)
		if err != nil {
			return err
		}
		caps := exec.Capabilities(cmd.Context())

		jobCount := jobs
		if jobCount == 0 {
			jobCount = cfg.Render.Jobs
		}

		pipe, err := pipeline.New(log.Logger, exec, caps, pipeline.Options{
			ProjectDir:    args[0],
			TempDir:       cfg.TempDir,
			Jobs:          jobCount,
			TestMode:      testMode,
			KeepTemp:      keepTemp || cfg.Render.KeepTemp,
			IncludeVideos: cfg.Render.IncludeVideos,
			Progress: func(percent float64, stage string) {
				log.Info().Str("progress", fmt.Sprintf("%.0f%%", percent)).Msg(stage)
			},
		})
		if err != nil {
			return err
		}

		results, err := pipe.Run(cmd.Context(), channels)
		for _, res := range results {
			log.Info().
				Str("channel", res.ChannelName).
				Str("output", res.OutputPath).
				Int("clips", res.ClipCount).
				Str("duration", util.FormatSeconds(res.Duration)).
				Msg("montage rendered")
		}
		if err != nil {
			return err
		}

		log.Info().Int("channels", len(results)).Msg("render complete")
		return nil
	},
}

var capsCmd = &cobra.Command{
	Use:   "caps",
	Short: "Probe ffmpeg filter and encoder availability",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		exec, err := newExecutor(cfg)
		if err != nil {
			return err
		}
		caps := exec.Capabilities(cmd.Context())

		names := make([]string, 0, len(caps))
		for name := range caps {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			status := "missing"
			if caps[name] {
				status = "available"
			}
			fmt.Printf("%-22s %s\n", name, status)
		}
		return nil
	},
}

var cleanupCmd = &cobra.Command{
	Use:   "cleanup [project folder]",
	Short: "Delete old renders from a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		exec, err := newExecutor(cfg)
		if err != nil {
			return err
		}

		pipe, err := pipeline.New(log.Logger, exec, exec.Capabilities(cmd.Context()), pipeline.Options{
			ProjectDir: args[0],
		})
		if err != nil {
			return err
		}

		days := cleanupDays
		if days == 0 {
			days = cfg.Render.CleanupDays
		}
		removed := pipe.CleanupOldRenders(days)

		log.Info().Int("removed", removed).Int("days", days).Msg("cleanup complete")
		return nil
	},
}

func newExecutor(cfg *config.Config) (*ffmpeg.Executor, error) {
	return ffmpeg.New(log.Logger, cfg.FFmpeg.BinaryPath, cfg.FFmpeg.ProbePath, cfg.FFmpeg.Threads)
}
