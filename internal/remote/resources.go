// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package remote

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/taibuivan/dexview/internal/catalog"
	"github.com/taibuivan/dexview/pkg/slice"
)

// # Wire Documents

// namedResource is the {name, url} pair used by every listing document.
type namedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// listDocument is a paginated listing (generation/, type/, pokemon?limit=).
type listDocument struct {
	Count   int             `json:"count"`
	Results []namedResource `json:"results"`
}

// generationDocument is a single generation resource.
type generationDocument struct {
	ID             int             `json:"id"`
	Name           string          `json:"name"`
	PokemonSpecies []namedResource `json:"pokemon_species"`
}

// Creature is the detail resource of one entry.
type Creature struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Weight int    `json:"weight"`
	Height int    `json:"height"`
	Types  []struct {
		Slot int           `json:"slot"`
		Type namedResource `json:"type"`
	} `json:"types"`
	Abilities []struct {
		Ability  namedResource `json:"ability"`
		IsHidden bool          `json:"is_hidden"`
	} `json:"abilities"`
	Stats []struct {
		BaseStat int           `json:"base_stat"`
		Stat     namedResource `json:"stat"`
	} `json:"stats"`
}

// Species is the species resource of one entry, carrying localized flavor text.
type Species struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	FlavorTextEntries []struct {
		FlavorText string        `json:"flavor_text"`
		Language   namedResource `json:"language"`
	} `json:"flavor_text_entries"`
}

// # Mapping

// Categories returns the creature's category tags in slot order.
func (creature *Creature) Categories() []catalog.Category {
	categories := make([]catalog.Category, 0, len(creature.Types))
	for _, typ := range creature.Types {
		categories = append(categories, catalog.Category{Name: typ.Type.Name})
	}
	return categories
}

// Detail assembles the transient detail view from the creature and a resolved description.
func (creature *Creature) Detail(description string) catalog.Detail {
	abilities := make([]string, 0, len(creature.Abilities))
	for _, ability := range creature.Abilities {
		abilities = append(abilities, ability.Ability.Name)
	}

	stats := make([]catalog.Stat, 0, len(creature.Stats))
	for _, stat := range creature.Stats {
		stats = append(stats, catalog.Stat{Name: stat.Stat.Name, BaseValue: stat.BaseStat})
	}

	return catalog.Detail{
		ID:          creature.ID,
		Name:        creature.Name,
		Mass:        creature.Weight,
		Height:      creature.Height,
		Categories:  creature.Categories(),
		Abilities:   abilities,
		Stats:       stats,
		Description: description,
	}
}

// flavorReplacer flattens the hard line breaks and form feeds embedded in flavor text.
var flavorReplacer = strings.NewReplacer("\n", " ", "\f", " ")

// Description resolves the flavor text chain: the first entry in the preferred
// language, then the first in the fallback language, then the placeholder.
// A missing localized text is never an error.
func (species *Species) Description(preferred, fallback, placeholder string) string {
	for _, language := range []string{preferred, fallback} {
		for _, entry := range species.FlavorTextEntries {
			if entry.Language.Name == language {
				return flavorReplacer.Replace(entry.FlavorText)
			}
		}
	}
	return placeholder
}

// IDFromLocator extracts the numeric id of a resource locator. The id is the
// second-to-last path segment, since locators end with a slash.
func IDFromLocator(locator string) (int, error) {
	parts := strings.Split(locator, "/")
	if len(parts) < 2 {
		return 0, fmt.Errorf("remote: locator %q has no id segment", locator)
	}

	id, err := strconv.Atoi(parts[len(parts)-2])
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("remote: locator %q has no positive id", locator)
	}

	return id, nil
}

// generationLabels turns the generation listing into selectable scopes,
// labelled by their 1-based position in the listing.
func generationLabels(results []namedResource) []catalog.Generation {
	generations := make([]catalog.Generation, 0, len(results))
	for index, result := range results {
		generations = append(generations, catalog.Generation{
			Name:    result.Name,
			Locator: result.URL,
			Label:   fmt.Sprintf("Generation %d", index+1),
		})
	}
	return generations
}

// excludedCategories are category tags that no entry carries in practice.
var excludedCategories = map[string]bool{"unknown": true, "shadow": true}

// selectableCategories maps the category listing, dropping excluded tags.
func selectableCategories(results []namedResource) []catalog.Category {
	kept := slice.Filter(results, func(result namedResource) bool {
		return !excludedCategories[result.Name]
	})

	categories := slice.Map(kept, func(result namedResource) catalog.Category {
		return catalog.Category{Name: result.Name}
	})

	if categories == nil {
		categories = []catalog.Category{}
	}

	return categories
}
