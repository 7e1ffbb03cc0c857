// Package render draws the lookup session for a terminal.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Kamar-Folarin/git-search/internal/lookup"
	"github.com/Kamar-Folarin/git-search/internal/models"
)

// RepositoryDisplayLimit is how many repositories the list shows.
const RepositoryDisplayLimit = 5

// Palette is the set of colors for one theme.
type Palette struct {
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Accent lipgloss.Color
	Border lipgloss.Color
	Error  lipgloss.Color
}

var (
	lightPalette = Palette{
		Text:   lipgloss.Color("0"),
		Muted:  lipgloss.Color("244"),
		Accent: lipgloss.Color("25"),
		Border: lipgloss.Color("250"),
		Error:  lipgloss.Color("160"),
	}
	darkPalette = Palette{
		Text:   lipgloss.Color("15"),
		Muted:  lipgloss.Color("248"),
		Accent: lipgloss.Color("86"),
		Border: lipgloss.Color("238"),
		Error:  lipgloss.Color("196"),
	}
)

// PaletteFor returns the palette of a theme.
func PaletteFor(theme models.Theme) Palette {
	if theme == models.ThemeDark {
		return darkPalette
	}
	return lightPalette
}

// Renderer turns session data into styled terminal text.
type Renderer struct {
	palette Palette

	box     lipgloss.Style
	title   lipgloss.Style
	heading lipgloss.Style
	label   lipgloss.Style
	muted   lipgloss.Style
	errText lipgloss.Style
	success lipgloss.Style
}

// New creates a renderer for theme.
func New(theme models.Theme) *Renderer {
	p := PaletteFor(theme)
	return &Renderer{
		palette: p,
		box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),
		title:   lipgloss.NewStyle().Bold(true).Foreground(p.Muted),
		heading: lipgloss.NewStyle().Bold(true).Foreground(p.Text),
		label:   lipgloss.NewStyle().Bold(true).Foreground(p.Muted),
		muted:   lipgloss.NewStyle().Foreground(p.Muted),
		errText: lipgloss.NewStyle().Bold(true).Foreground(p.Error),
		success: lipgloss.NewStyle().Foreground(p.Accent),
	}
}

// Palette returns the colors in use.
func (r *Renderer) Palette() Palette {
	return r.palette
}

// Profile draws the profile card.
func (r *Renderer) Profile(p models.Profile) string {
	lines := []string{
		r.title.Render("CANDIDATE INFO"),
		r.heading.Render(p.Username),
	}
	if p.Name != nil {
		lines = append(lines, r.heading.Render("Name: "+*p.Name))
	}
	if p.Bio != nil && *p.Bio != "" {
		lines = append(lines, r.muted.Render("Bio: "+*p.Bio))
	}
	if p.Location != nil && *p.Location != "" {
		lines = append(lines, r.muted.Render("Location: "+*p.Location))
	}
	if p.ProfileURL != "" {
		lines = append(lines, r.muted.Render(p.ProfileURL))
	}
	lines = append(lines, fmt.Sprintf("Followers: %d Following: %d", p.Followers, p.Following))
	return r.box.Render(strings.Join(lines, "\n"))
}

// Repositories draws the first RepositoryDisplayLimit repositories in the given order.
func (r *Renderer) Repositories(repos []models.Repository) string {
	var b strings.Builder
	b.WriteString(r.heading.Render("Repository List"))
	if len(repos) == 0 {
		b.WriteString("\n")
		b.WriteString(r.muted.Render("No repositories"))
		return b.String()
	}
	if len(repos) > RepositoryDisplayLimit {
		repos = repos[:RepositoryDisplayLimit]
	}
	for _, repo := range repos {
		lines := []string{r.heading.Render(repo.Name)}
		if repo.Description != nil {
			lines = append(lines, r.label.Render("Description:")+" "+*repo.Description)
		}
		lines = append(lines, fmt.Sprintf("%s %d  %s %d",
			r.label.Render("Stars:"), repo.StarsCount,
			r.label.Render("Forks:"), repo.ForksCount))
		if repo.Language != nil && *repo.Language != "" {
			lines = append(lines, r.label.Render("Primary Language:")+" "+*repo.Language)
		}
		b.WriteString("\n")
		b.WriteString(r.box.Render(strings.Join(lines, "\n")))
	}
	return b.String()
}

// History draws the recent searches, already ordered newest first.
func (r *Renderer) History(entries []models.HistoryEntry) string {
	var b strings.Builder
	b.WriteString(r.heading.Render("History"))
	if len(entries) == 0 {
		b.WriteString("\n")
		b.WriteString(r.muted.Render("No history found"))
		b.WriteString("\n")
		b.WriteString(r.muted.Render("Search for a user to see their history"))
		return b.String()
	}
	for _, e := range entries {
		lines := []string{r.heading.Render(e.Username)}
		if e.Name != nil {
			lines = append(lines, "Name: "+*e.Name)
		}
		if e.Location != nil && *e.Location != "" {
			lines = append(lines, r.muted.Render("Location: "+*e.Location))
		}
		if e.ProfileURL != "" {
			lines = append(lines, r.muted.Render(e.ProfileURL))
		}
		b.WriteString("\n")
		b.WriteString(r.box.Render(strings.Join(lines, "\n")))
	}
	return b.String()
}

// View draws a whole session: the result when one is resident, the error
// message on failure, the history otherwise.
func (r *Renderer) View(v lookup.View) string {
	switch v.State.Status {
	case models.StatusSuccess:
		header := ""
		if v.SortKey != "" {
			header = r.muted.Render("Sorted by "+string(v.SortKey)) + "\n"
		}
		return header + lipgloss.JoinVertical(lipgloss.Left,
			r.Profile(v.State.Result.Profile),
			r.Repositories(v.State.Result.Repositories),
		)
	case models.StatusError:
		return r.errText.Render(v.State.Err)
	case models.StatusLoading:
		return r.muted.Render("Loading...")
	default:
		return r.History(v.History)
	}
}

// Notification draws a one-line banner.
func (r *Renderer) Notification(n models.Notification) string {
	if n.Level == models.NotificationError {
		return r.errText.Render("✗ " + n.Message)
	}
	return r.success.Render("✓ " + n.Message)
}
