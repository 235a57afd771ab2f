// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/taibuivan/dexview/internal/catalog"
)

//go:embed templates/*.html
var templateFS embed.FS

// pageTemplate is the parsed page layout.
type pageTemplate struct {
	template *template.Template
}

func parsePage() (*pageTemplate, error) {
	parsed, err := template.New("page.html").ParseFS(templateFS, "templates/page.html")
	if err != nil {
		return nil, fmt.Errorf("view: failed to parse page template: %w", err)
	}
	return &pageTemplate{template: parsed}, nil
}

// # Page Model

// Option is one entry of a selector.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// SortTrigger is one of the four sort buttons.
type SortTrigger struct {
	Key    string
	Label  string
	Active bool
}

// PageData is everything the page template renders.
type PageData struct {
	Generations []Option
	Categories  []Option
	Sorts       []SortTrigger
	Query       string

	// Loading is set while a pipeline runs; the page refreshes itself until it clears.
	Loading bool
	// Notice is a pending failure notification, shown once.
	Notice string
	// ShowConsent is set until the visitor acknowledges the consent notice.
	ShowConsent bool

	Total  int
	List   ListView
	Detail *DetailView
}

// sortLabels are the button captions per sort key.
var sortLabels = map[catalog.SortKey]string{
	catalog.SortIndexAsc:  "# ↑",
	catalog.SortIndexDesc: "# ↓",
	catalog.SortNameAsc:   "A-Z",
	catalog.SortNameDesc:  "Z-A",
}

// GenerationOptions builds the generation selector, "all" first.
func GenerationOptions(generations []catalog.Generation, selected string) []Option {
	options := []Option{{Value: catalog.ScopeAll, Label: "All entries", Selected: selected == catalog.ScopeAll}}
	for _, generation := range generations {
		options = append(options, Option{
			Value:    generation.Locator,
			Label:    generation.Label,
			Selected: generation.Locator == selected,
		})
	}
	return options
}

// CategoryOptions builds the category selector, "all" first.
func CategoryOptions(categories []catalog.Category, selected string) []Option {
	options := []Option{{Value: catalog.CategoryAll, Label: "All categories", Selected: selected == catalog.CategoryAll}}
	for _, category := range categories {
		options = append(options, Option{
			Value:    category.Name,
			Label:    Capitalize(category.Name),
			Selected: category.Name == selected,
		})
	}
	return options
}

// SortTriggers builds the four sort buttons with the active one marked.
func SortTriggers(active catalog.SortKey) []SortTrigger {
	triggers := make([]SortTrigger, 0, len(catalog.SortKeys))
	for _, key := range catalog.SortKeys {
		triggers = append(triggers, SortTrigger{
			Key:    string(key),
			Label:  sortLabels[key],
			Active: key == active,
		})
	}
	return triggers
}

// Page executes the page template into writer.
func (renderer *Renderer) Page(writer io.Writer, data PageData) error {
	if err := renderer.page.template.Execute(writer, data); err != nil {
		return fmt.Errorf("view: failed to render page: %w", err)
	}
	return nil
}
