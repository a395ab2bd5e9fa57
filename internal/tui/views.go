package tui

import (
	"fmt"
	"strings"

	"github.com/dmelton/quill/internal/domain"
	"github.com/dmelton/quill/internal/tui/styles"
)

const chromeHeight = 4 // header, blank line, status bar, help line

// listHeight is the number of article rows that fit in the current window.
func (m Model) listHeight() int {
	h := m.Height - chromeHeight
	if m.Filtering || m.Jumping {
		h--
	}
	if h < 1 {
		h = 1
	}
	return h
}

// View renders the UI
func (m Model) View() string {
	if m.Width == 0 {
		return "loading..."
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")
	if m.Filtering {
		b.WriteString(m.FilterInput.View())
		b.WriteString("\n")
	}
	if m.Jumping {
		b.WriteString(m.JumpInput.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.listView())
	b.WriteString(m.statusBarView())
	b.WriteString("\n")
	b.WriteString(m.helpView())
	return b.String()
}

func (m Model) headerView() string {
	scope := "All Feeds"
	if m.FeedIndex >= 0 && m.FeedIndex < len(m.Feeds) {
		scope = m.Feeds[m.FeedIndex].Title
	}

	header := styles.TitleStyle.Render("Quill") + "  " + styles.SubtitleStyle.Render(scope)
	if m.UnreadOnly {
		header += "  " + styles.AccentStyle.Render("[unread]")
	}
	if m.FilterQuery != "" && !m.Filtering {
		header += "  " + styles.DimStyle.Render("/"+m.FilterQuery)
	}
	return header
}

func (m Model) listView() string {
	rows := m.listHeight()

	if len(m.Visible) == 0 {
		var b strings.Builder
		b.WriteString("  " + styles.DimStyle.Render(m.emptyMessage()) + "\n")
		for i := 1; i < rows; i++ {
			b.WriteString("\n")
		}
		return b.String()
	}

	var b strings.Builder
	end := m.Offset + rows
	if end > len(m.Visible) {
		end = len(m.Visible)
	}
	for i := m.Offset; i < end; i++ {
		b.WriteString(m.rowView(m.Visible[i], i == m.Cursor))
		b.WriteString("\n")
	}
	for i := end - m.Offset; i < rows; i++ {
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) emptyMessage() string {
	switch {
	case m.FilterQuery != "":
		return "no articles match the filter"
	case m.UnreadOnly:
		return "no unread articles"
	case len(m.Articles) == 0:
		return "no articles yet; press r to sync"
	default:
		return "no articles in this feed"
	}
}

func (m Model) rowView(a domain.Article, selected bool) string {
	unread := " "
	if !a.Read {
		unread = styles.AccentStyle.Render(styles.UnreadIndicator)
	}
	star := " "
	if a.Starred {
		star = styles.StarStyle.Render(styles.StarIndicator)
	}

	age := styles.DimStyle.Render(fmt.Sprintf("%8s", a.Age()))

	// cursor(2) + indicators(4) + age(9) + margins
	titleWidth := m.Width - 18
	feedWidth := 0
	if m.FeedIndex < 0 && titleWidth > 40 {
		feedWidth = titleWidth / 3
		titleWidth -= feedWidth + 2
	}
	title := truncate(a.Title, titleWidth)
	if selected {
		title = styles.SelectedStyle.Render(title)
	} else if !a.Read {
		title = styles.TitleStyle.Render(title)
	}

	cursor := "  "
	if selected {
		cursor = styles.AccentStyle.Render("> ")
	}

	row := fmt.Sprintf("%s%s %s %s", cursor, unread, star, title)
	if feedWidth > 0 {
		row += "  " + styles.DimStyle.Render(truncate(a.FeedTitle, feedWidth))
	}
	return row + " " + age
}

func (m Model) statusBarView() string {
	var left string
	switch {
	case m.Sync.Syncing():
		left = m.Spinner.View() + " syncing..."
	case m.StatusIsErr:
		left = styles.ErrorStyle.Render(m.StatusMsg)
	case m.StatusMsg != "":
		left = styles.SuccessStyle.Render(m.StatusMsg)
	}

	unread := 0
	for _, a := range m.Articles {
		if !a.Read {
			unread++
		}
	}
	right := fmt.Sprintf("%d/%d articles, %d unread", len(m.Visible), len(m.Articles), unread)

	gap := m.Width - len([]rune(stripForCount(left))) - len(right) - 2
	if gap < 1 {
		gap = 1
	}
	return styles.StatusBarStyle.Render(" ") + left + strings.Repeat(" ", gap) + styles.StatusBarStyle.Render(right)
}

func (m Model) helpView() string {
	hints := "j/k move  enter open  m read  s star  u unread  tab feed  f jump  / filter  r sync  q quit"
	return styles.DimStyle.Render(" " + truncate(hints, m.Width-1))
}

// stripForCount approximates the printable width of a styled string by
// counting it without ANSI sequences. Good enough for status bar padding.
func stripForCount(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}
