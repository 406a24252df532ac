// Package render writes search results as terminal tables.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/donaldgifford/price-scout/pkg/platform"
	domain "github.com/donaldgifford/price-scout/pkg/types"
)

// Printer renders results to W. With Plain set no ANSI styling is emitted
// and unavailable prices are marked in text instead of struck through.
type Printer struct {
	W     io.Writer
	Plain bool
}

// Analysis renders the item identification block.
func (p Printer) Analysis(a *domain.ItemAnalysis) error {
	if a == nil {
		return nil
	}

	t := p.table()
	t.SetTitle(a.Name)
	t.AppendRow(table.Row{"Category", a.Category})
	t.AppendRow(table.Row{"Estimated value", a.EstimatedValue})
	t.AppendRow(table.Row{"Description", a.Description})
	if len(a.SearchTips) > 0 {
		t.AppendRow(table.Row{"Search tips", strings.Join(a.SearchTips, "\n")})
	}

	if _, err := fmt.Fprintln(p.W, t.Render()); err != nil {
		return err
	}

	if len(a.Versions) > 0 {
		vt := p.table()
		vt.SetTitle("Regional versions")
		vt.AppendHeader(table.Row{"Region", "Languages", "Source"})
		for _, v := range a.Versions {
			vt.AppendRow(table.Row{v.Region, v.Languages, v.SourceURL})
		}
		if _, err := fmt.Fprintln(p.W, vt.Render()); err != nil {
			return err
		}
	}

	return p.Sources(a.Sources)
}

// Prices renders one row per platform link with its matched price.
// Platforms without a matching row show the placeholder price.
func (p Printer) Prices(insight *domain.PriceInsight, links []platform.Link) error {
	if insight == nil {
		return nil
	}

	t := p.table()
	t.SetTitle("Prices")
	t.AppendHeader(table.Row{"Platform", "Price", "Status", "Search"})
	for _, l := range links {
		row := domain.PlatformPrice{Platform: l.Name, Price: domain.PlaceholderPrice, Status: string(domain.StatusNotFound)}
		if l.Price != nil {
			row = *l.Price
		}
		t.AppendRow(table.Row{l.Name, p.price(row), row.Status, l.URL})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d/%d available", insight.AvailableCount(), len(links)), "", ""})

	if _, err := fmt.Fprintln(p.W, t.Render()); err != nil {
		return err
	}

	if insight.Overview != "" {
		if _, err := fmt.Fprintf(p.W, "%s\n\n", insight.Overview); err != nil {
			return err
		}
	}

	return p.Sources(insight.Sources)
}

// Sources renders the citation list, if any.
func (p Printer) Sources(sources []domain.WebSource) error {
	if len(sources) == 0 {
		return nil
	}

	t := p.table()
	t.SetTitle("Sources")
	for i, s := range sources {
		title := s.Title
		if title == "" {
			title = s.URI
		}
		t.AppendRow(table.Row{i + 1, title, s.URI})
	}
	_, err := fmt.Fprintln(p.W, t.Render())
	return err
}

// Suggestions renders autocomplete results as a numbered list.
func (p Printer) Suggestions(suggestions []string) error {
	if len(suggestions) == 0 {
		_, err := fmt.Fprintln(p.W, "no suggestions")
		return err
	}
	for i, s := range suggestions {
		if _, err := fmt.Fprintf(p.W, "%d. %s\n", i+1, s); err != nil {
			return err
		}
	}
	return nil
}

// Platforms renders the marketplace registry.
func (p Printer) Platforms(links []platform.Link) error {
	t := p.table()
	t.AppendHeader(table.Row{"ID", "Name", "Description", "Search"})
	for _, l := range links {
		t.AppendRow(table.Row{l.ID, l.Name, l.Description, l.URL})
	}
	_, err := fmt.Fprintln(p.W, t.Render())
	return err
}

// Error renders a user-facing search error with an optional hint.
func (p Printer) Error(msg, hint string) error {
	if !p.Plain {
		msg = text.FgRed.Sprint(msg)
	}
	if _, err := fmt.Fprintln(p.W, msg); err != nil {
		return err
	}
	if hint != "" {
		_, err := fmt.Fprintln(p.W, hint)
		return err
	}
	return nil
}

func (p Printer) price(row domain.PlatformPrice) string {
	if row.Available() {
		return row.Price
	}
	if p.Plain {
		return row.Price + " (unavailable)"
	}
	return text.CrossedOut.Sprint(row.Price)
}

func (p Printer) table() table.Writer {
	t := table.NewWriter()
	if p.Plain {
		t.SetStyle(table.StyleLight)
	} else {
		t.SetStyle(table.StyleRounded)
	}
	return t
}
