// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package view turns catalog data into presentation models.

It is the pure part of the presentation layer: list and detail models are
plain structs that the HTML page template and the JSON API both consume.
Nothing here performs I/O except [Renderer.Page], which executes the
embedded template.
*/
package view

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/taibuivan/dexview/internal/catalog"
	"github.com/taibuivan/dexview/pkg/slice"
)

// Placeholder image sizes for cards and the detail overlay.
const (
	CardImageSize   = "150x150"
	DetailImageSize = "200x200"
)

// maxBaseStat is the upper bound of a base stat value.
const maxBaseStat = 255

// # Presentation Models

// ListView is the rendered visible list.
type ListView struct {
	// NoResults is set exactly when there are no cards.
	NoResults bool   `json:"no_results"`
	Cards     []Card `json:"cards"`
}

// Card is the summary of one entry.
type Card struct {
	ID          int     `json:"id"`
	PaddedID    string  `json:"padded_id"`
	Name        string  `json:"name"`
	DisplayName string  `json:"display_name"`
	ImageURL    string  `json:"image_url"`
	FallbackURL string  `json:"fallback_url"`
	Categories  []Badge `json:"categories"`
}

// Badge is a rendered category tag.
type Badge struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Class string `json:"class"`
}

// DetailView is the rendered detail overlay of one entry.
type DetailView struct {
	ID          int       `json:"id"`
	PaddedID    string    `json:"padded_id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"display_name"`
	ImageURL    string    `json:"image_url"`
	FallbackURL string    `json:"fallback_url"`
	Categories  []Badge   `json:"categories"`
	Mass        string    `json:"mass"`
	Height      string    `json:"height"`
	Abilities   string    `json:"abilities"`
	Description string    `json:"description"`
	Stats       []StatBar `json:"stats"`
}

// StatBar is one stat row with its bar width in percent.
type StatBar struct {
	Name    string  `json:"name"`
	Label   string  `json:"label"`
	Value   int     `json:"value"`
	Percent float64 `json:"percent"`
}

// # Renderer

// Renderer builds presentation models and pages.
type Renderer struct {
	spriteBaseURL string
	page          *pageTemplate
}

// NewRenderer creates a [Renderer] loading sprites from spriteBaseURL.
func NewRenderer(spriteBaseURL string) (*Renderer, error) {
	page, err := parsePage()
	if err != nil {
		return nil, err
	}

	if spriteBaseURL != "" && !strings.HasSuffix(spriteBaseURL, "/") {
		spriteBaseURL += "/"
	}

	return &Renderer{spriteBaseURL: spriteBaseURL, page: page}, nil
}

// RenderList renders the visible list. An empty list yields the no-results state.
func (renderer *Renderer) RenderList(entries []catalog.Entry) ListView {
	if len(entries) == 0 {
		return ListView{NoResults: true, Cards: []Card{}}
	}

	cards := slice.Map(entries, func(entry catalog.Entry) Card {
		return Card{
			ID:          entry.ID,
			PaddedID:    "#" + catalog.PaddedID(entry.ID),
			Name:        entry.Name,
			DisplayName: Capitalize(entry.Name),
			ImageURL:    renderer.ImageURL(entry.ID),
			FallbackURL: PlaceholderURL(CardImageSize, entry.ID),
			Categories:  badges(entry.Categories),
		}
	})

	return ListView{Cards: cards}
}

// RenderDetail renders the detail overlay. Callers must not render a detail
// whose fetch failed.
func (renderer *Renderer) RenderDetail(detail catalog.Detail) DetailView {
	abilities := slice.Map(detail.Abilities, Capitalize)

	stats := slice.Map(detail.Stats, func(stat catalog.Stat) StatBar {
		return StatBar{
			Name:    stat.Name,
			Label:   Capitalize(strings.Replace(stat.Name, "-", " ", 1)),
			Value:   stat.BaseValue,
			Percent: StatPercent(stat.BaseValue),
		}
	})

	return DetailView{
		ID:          detail.ID,
		PaddedID:    "#" + catalog.PaddedID(detail.ID),
		Name:        detail.Name,
		DisplayName: Capitalize(detail.Name),
		ImageURL:    renderer.ImageURL(detail.ID),
		FallbackURL: PlaceholderURL(DetailImageSize, detail.ID),
		Categories:  badges(detail.Categories),
		Mass:        tenths(detail.Mass) + " kg",
		Height:      tenths(detail.Height) + " m",
		Abilities:   strings.Join(abilities, ", "),
		Description: detail.Description,
		Stats:       stats,
	}
}

// ImageURL returns the sprite locator of an entry.
func (renderer *Renderer) ImageURL(id int) string {
	return renderer.spriteBaseURL + strconv.Itoa(id) + ".png"
}

// # Formatting Helpers

// PlaceholderURL returns the generated image shown when a sprite fails to load.
func PlaceholderURL(size string, id int) string {
	return fmt.Sprintf("https://placehold.co/%s/EEEEEE/333333?text=%d", size, id)
}

// StatPercent maps a base stat to a bar width capped at 100.
func StatPercent(base int) float64 {
	return min(100, float64(base)/maxBaseStat*100)
}

// Capitalize upper-cases the first letter and keeps the rest unchanged.
func Capitalize(text string) string {
	first, size := utf8.DecodeRuneInString(text)
	if size == 0 {
		return text
	}
	return cases.Upper(language.Und).String(string(first)) + text[size:]
}

// tenths formats a value given in tenths of a unit without trailing zeros.
func tenths(value int) string {
	return strconv.FormatFloat(float64(value)/10, 'f', -1, 64)
}

func badges(categories []catalog.Category) []Badge {
	rendered := slice.Map(categories, func(category catalog.Category) Badge {
		return Badge{
			Name:  category.Name,
			Label: Capitalize(category.Name),
			Class: "type-" + strings.ToLower(category.Name),
		}
	})

	if rendered == nil {
		rendered = []Badge{}
	}

	return rendered
}
