package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/dmelton/quill/internal/config"
	"github.com/dmelton/quill/internal/domain"
	"github.com/dmelton/quill/internal/feedserver"
	"github.com/dmelton/quill/internal/log"
	"github.com/dmelton/quill/internal/reader"
	"github.com/dmelton/quill/internal/store"
	syncer "github.com/dmelton/quill/internal/sync"
	"github.com/dmelton/quill/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var showVersion bool
	var clearCache bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.BoolVar(&clearCache, "clear-cache", false, "remove the local article cache and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("quill %s\n", Version)
		return
	}

	if clearCache {
		if err := config.ClearCache(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Cache cleared.")
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting quill", "version", Version)

	if !cfg.IsConfigured() {
		return runSetupFlow(cfg)
	}

	client := feedserver.NewClient(cfg.Server.URL, cfg.Server.Token, logger)

	articleStore, err := store.NewArticleStore(config.GetCachePath(), cfg.Server.URL)
	if err != nil {
		logger.Warn("cache unavailable, running without persistence", "error", err)
		articleStore, _ = store.NewArticleStore("", cfg.Server.URL)
	}
	defer articleStore.Close()

	readerSvc := reader.NewService(client, articleStore, logger)

	updates := tui.NewUpdates()
	orch := syncer.New(syncer.Config{
		Trigger:  client,
		Articles: client,
		SetArticles: func(articles []domain.Article) {
			readerSvc.SaveArticles(articles)
			updates.SetArticles(articles)
		},
		RefreshVisible: updates.RefreshVisible,
		Logger:         logger,
	})

	model := tui.NewModel(readerSvc, orch, updates,
		time.Duration(cfg.Sync.IntervalMinutes)*time.Minute)
	model.UnreadOnly = !cfg.UI.ShowReadArticles

	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI")
	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// runSetupFlow handles the initial setup when not configured
func runSetupFlow(cfg *config.Config) error {
	fmt.Println()
	fmt.Println("Welcome to Quill!")
	fmt.Println()

	stdin := bufio.NewReader(os.Stdin)

	var serverURL string
	for {
		fmt.Print("Enter your feed server URL (e.g., http://192.168.1.100:8080): ")
		input, err := stdin.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		serverURL = strings.TrimSpace(input)
		if serverURL == "" {
			fmt.Println("Server URL cannot be empty. Please try again.")
			continue
		}
		if !strings.HasPrefix(serverURL, "http://") && !strings.HasPrefix(serverURL, "https://") {
			serverURL = "http://" + serverURL
		}
		break
	}

	fmt.Print("Enter your API token (input hidden): ")
	tokenBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read token: %w", err)
	}
	token := strings.TrimSpace(string(tokenBytes))
	if token == "" {
		return fmt.Errorf("token cannot be empty")
	}

	cfg.Server.URL = serverURL
	cfg.Server.Token = token

	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	fmt.Println("Run quill again to start the application.")

	return nil
}
