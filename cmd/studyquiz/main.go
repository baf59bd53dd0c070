package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"studyquiz/internal/chunker"
	"studyquiz/internal/config"
	"studyquiz/internal/domain"
	"studyquiz/internal/keywords"
	"studyquiz/internal/logger"
	"studyquiz/internal/metrics"
	"studyquiz/internal/quiz"
	"studyquiz/internal/server"
	"studyquiz/internal/service"
	"studyquiz/internal/store"
	"studyquiz/internal/store/memory"
	"studyquiz/internal/store/redis"
	"studyquiz/internal/summarizer"
	"studyquiz/internal/tui"
)

type app struct {
	cfg     *config.AppConfig
	log     *logger.Logger
	store   store.QuizStore
	metrics *metrics.Recorder
	svc     *service.StudyService
}

func newRootCmd() *cobra.Command {
	var (
		cfgPath string
		a       = &app{}
	)
	root := &cobra.Command{
		Use:           "studyquiz",
		Short:         "Summarize study text and quiz yourself on it.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			_ = godotenv.Load()
			return a.setup(cfgPath)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			a.close()
		},
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/studyquiz/config.yaml if not provided)")
	root.AddCommand(newSummarizeCmd(a), newKeywordsCmd(a), newQuizCmd(a), newServeCmd(a))
	return root
}

func (a *app) setup(path string) error {
	var (
		cfg *config.AppConfig
		err error
	)
	if path == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(path)
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	var st store.QuizStore
	switch cfg.Store.Type {
	case "memory", "":
		st = memory.NewStorage()
	case "redis":
		rc := cfg.Store.Redis
		if rc == nil {
			return fmt.Errorf("redis store config missing")
		}
		st, err = redis.NewStorage(redis.Config{
			Addr:      rc.Addr,
			Password:  rc.Password,
			DB:        rc.DB,
			KeyPrefix: rc.KeyPrefix,
			TTL:       time.Duration(rc.TTLSecs) * time.Second,
		}, log)
		if err != nil {
			return fmt.Errorf("redis store init failed: %w", err)
		}
	default:
		return fmt.Errorf("unknown store: %s", cfg.Store.Type)
	}

	rec := metrics.New(nil)
	sum := summarizer.NewFrequencySummarizer(
		summarizer.WithChunker(chunker.NewSentenceChunker(cfg.Summarizer.ChunkSentences, cfg.Summarizer.ChunkOverlap)),
		summarizer.WithErrorHandler(func(err error) {
			log.Warn("sentence splitting failed, using naive fallback", "error", err)
		}),
	)
	svc := service.NewStudyService(sum, keywords.NewExtractor(), quiz.NewGenerator(nil), st, rec, log, service.Config{
		Style:         domain.ParseStyle(cfg.Summarizer.Style),
		Length:        domain.ParseLength(cfg.Summarizer.Length),
		QuestionCount: cfg.Quiz.QuestionCount,
		KeywordCount:  cfg.Keywords.Count,
		MinRawChars:   cfg.Input.MinRawChars,
		MinCleanChars: cfg.Input.MinCleanChars,
		MaxChars:      cfg.Input.MaxChars,
	})

	*a = app{cfg: cfg, log: log, store: st, metrics: rec, svc: svc}
	return nil
}

func (a *app) close() {
	if a.store != nil {
		_ = a.store.Close()
	}
	if a.log != nil {
		a.log.Sync()
	}
}

// readText reads .txt files named by args, or stdin when there are none.
func readText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return service.ReadInputs(args)
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func newSummarizeCmd(a *app) *cobra.Command {
	var style, length string
	cmd := &cobra.Command{
		Use:   "summarize [file.txt ...]",
		Short: "Print an extractive summary of the input",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(cmd, args)
			if err != nil {
				return err
			}
			sum, err := a.svc.Summarize(text, style, length)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), sum.Rendered)
			return nil
		},
	}
	cmd.Flags().StringVar(&style, "style", "", "paragraphs, bullets, numbered, very_short or detailed")
	cmd.Flags().StringVar(&length, "length", "", "short, medium or long")
	return cmd
}

func newKeywordsCmd(a *app) *cobra.Command {
	var k int
	cmd := &cobra.Command{
		Use:   "keywords [file.txt ...]",
		Short: "Print the most frequent content words of the input",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(cmd, args)
			if err != nil {
				return err
			}
			for _, kw := range a.svc.Keywords(text, k) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", kw.Term, kw.Frequency)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&k, "count", "k", 0, "number of keywords (defaults to config)")
	return cmd
}

func newQuizCmd(a *app) *cobra.Command {
	var (
		style, length string
		count         int
	)
	cmd := &cobra.Command{
		Use:   "quiz [file.txt ...]",
		Short: "Summarize the input and run an interactive quiz on it",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(cmd, args)
			if err != nil {
				return err
			}
			sess, err := a.svc.Process(cmd.Context(), service.ProcessRequest{
				Text:          text,
				Style:         style,
				Length:        length,
				QuestionCount: count,
			})
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(tui.New(a.svc, sess), tea.WithAltScreen()).Run()
			return err
		},
	}
	cmd.Flags().StringVar(&style, "style", "", "summary style")
	cmd.Flags().StringVar(&length, "length", "", "summary length")
	cmd.Flags().IntVarP(&count, "count", "n", 0, "number of questions (defaults to config)")
	return cmd
}

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = a.cfg.Server.Addr
			}
			srv := server.New(a.svc, a.log, a.metrics.Handler(), server.Config{
				Addr:         addr,
				ReadTimeout:  time.Duration(a.cfg.Server.ReadTimeoutSecs) * time.Second,
				WriteTimeout: time.Duration(a.cfg.Server.WriteTimeoutSecs) * time.Second,
			})
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to config)")
	return cmd
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
