package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophblog/internal/client/content"
	"github.com/dmitrijs2005/gophblog/internal/client/models"
	"github.com/dmitrijs2005/gophblog/internal/client/views"
)

const dateLayout = "02/01/2006 15:04"

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(dateLayout)
}

func (a *App) printList(s views.PostListState) {
	a.println(formatList(s))
}

// formatList renders one page of the listing as a table with a
// pagination footer.
func formatList(s views.PostListState) string {
	var b strings.Builder
	if s.SearchTitle != "" {
		fmt.Fprintf(&b, "Results for %q\n", s.SearchTitle)
	}
	if len(s.Posts) == 0 {
		b.WriteString("No posts found.")
		return b.String()
	}

	fmt.Fprintf(&b, "%-6s %-40s %-20s %s\n", "ID", "TITLE", "AUTHOR", "CREATED")
	for _, p := range s.Posts {
		fmt.Fprintf(&b, "%-6d %-40s %-20s %s\n", p.ID, truncate(p.Title, 40), truncate(p.Author.Name, 20), formatDate(p.CreatedAt))
	}

	if s.ShowPagination() {
		var hints []string
		if s.HasPrev() {
			hints = append(hints, "prev")
		}
		if s.HasNext() {
			hints = append(hints, "next")
		}
		fmt.Fprintf(&b, "Page %d of %d (%s)", s.Page, s.TotalPages, strings.Join(hints, ", "))
	} else {
		b.WriteString("Page 1 of 1")
	}
	return b.String()
}

// formatPost renders a post as plain text. Style marks from the editor
// are listed under the body.
func formatPost(p *models.Post, canMutate bool) string {
	if p == nil {
		return "Post not found."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "#%d %s\n", p.ID, p.Title)
	fmt.Fprintf(&b, "by %s, %s", p.Author.Name, formatDate(p.CreatedAt))
	if !p.UpdatedAt.IsZero() && !p.UpdatedAt.Equal(p.CreatedAt) {
		fmt.Fprintf(&b, " (updated %s)", formatDate(p.UpdatedAt))
	}
	b.WriteString("\n\n")
	b.WriteString(content.PlainText(p.Content.String()))

	if marks := content.Marks(p.Content.String()); len(marks) > 0 {
		b.WriteString("\n\nStyles:")
		for _, m := range marks {
			var attrs []string
			if m.FontFamily != "" {
				attrs = append(attrs, "font "+m.FontFamily)
			}
			if m.FontSize != "" {
				attrs = append(attrs, "size "+m.FontSize)
			}
			fmt.Fprintf(&b, "\n  %q: %s", m.Text, strings.Join(attrs, ", "))
		}
	}

	if canMutate {
		fmt.Fprintf(&b, "\n\nedit %d | delete %d", p.ID, p.ID)
	}
	return b.String()
}

func formatToast(t views.Toast) string {
	prefix := "*"
	if t.Variant == views.VariantDestructive {
		prefix = "!"
	}
	if t.Description == "" {
		return fmt.Sprintf("%s %s", prefix, t.Title)
	}
	return fmt.Sprintf("%s %s: %s", prefix, t.Title, t.Description)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
