package tui

import (
	"context"
	"os/exec"
	"runtime"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dmelton/quill/internal/domain"
	"github.com/dmelton/quill/internal/reader"
	"github.com/dmelton/quill/internal/sync"
)

const requestTimeout = 30 * time.Second

// Command factories for async operations

// LoadArticlesCmd loads an article view from the server
func LoadArticlesCmd(svc *reader.Service, filter domain.ArticleFilter) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		articles, err := svc.Articles(ctx, filter)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading articles"}
		}
		return ArticlesLoadedMsg{Articles: articles, Filter: filter}
	}
}

// LoadFeedsCmd loads the subscription list
func LoadFeedsCmd(svc *reader.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		feeds, err := svc.Feeds(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading feeds"}
		}
		return FeedsLoadedMsg{Feeds: feeds}
	}
}

// SyncCmd runs a full feed sync. The orchestrator never fails; progressive
// snapshots arrive separately through the Updates bridge.
func SyncCmd(o *sync.Orchestrator, userInitiated bool) tea.Cmd {
	return func() tea.Msg {
		o.SyncAll(context.Background(), userInitiated)
		return SyncFinishedMsg{UserInitiated: userInitiated}
	}
}

// SyncTickCmd schedules the next background sync
func SyncTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return SyncTickMsg{}
	})
}

// WaitForArticlesCmd blocks until the orchestrator pushes a snapshot
func WaitForArticlesCmd(u *Updates) tea.Cmd {
	return func() tea.Msg {
		return ArticlesReplacedMsg{Articles: <-u.articles}
	}
}

// WaitForRefreshCmd blocks until the orchestrator requests a visible reload
func WaitForRefreshCmd(u *Updates) tea.Cmd {
	return func() tea.Msg {
		<-u.refresh
		return RefreshVisibleMsg{}
	}
}

// MarkReadCmd flips an article's read flag
func MarkReadCmd(svc *reader.Service, articleID string, read bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := svc.MarkRead(ctx, articleID, read); err != nil {
			return ErrMsg{Err: err, Context: "marking read"}
		}
		return ArticleStateChangedMsg{ArticleID: articleID}
	}
}

// ToggleStarCmd flips an article's starred flag
func ToggleStarCmd(svc *reader.Service, articleID string, starred bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := svc.SetStarred(ctx, articleID, starred); err != nil {
			return ErrMsg{Err: err, Context: "starring"}
		}
		return ArticleStateChangedMsg{ArticleID: articleID}
	}
}

// OpenInBrowserCmd hands the article URL to the OS browser and marks it read
func OpenInBrowserCmd(svc *reader.Service, article domain.Article) tea.Cmd {
	return func() tea.Msg {
		if err := openURL(article.URL); err != nil {
			return ErrMsg{Err: err, Context: "opening browser"}
		}

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if !article.Read {
			if err := svc.MarkRead(ctx, article.ID, true); err != nil {
				return ErrMsg{Err: err, Context: "marking read"}
			}
		}
		return OpenedMsg{ArticleID: article.ID}
	}
}

func openURL(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
