// Package batch resolves lists of titles read from CSV or YAML files.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lepinkainen/marquee/internal/csvutil"
	"github.com/lepinkainen/marquee/internal/media"
	"github.com/lepinkainen/marquee/internal/resolve"
)

// Item is one title to resolve.
type Item struct {
	Title       string `yaml:"title" json:"title,omitempty"`
	Year        int    `yaml:"year,omitempty" json:"year,omitempty"`
	IMDbID      string `yaml:"imdb_id,omitempty" json:"imdb_id,omitempty"`
	Kind        string `yaml:"kind,omitempty" json:"kind,omitempty"`
	Types       string `yaml:"types,omitempty" json:"types,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Tags        string `yaml:"tags,omitempty" json:"tags,omitempty"`
}

// Label identifies the item in logs and the selection UI.
func (i Item) Label() string {
	switch {
	case i.Title != "" && i.Year > 0:
		return fmt.Sprintf("%s (%d)", i.Title, i.Year)
	case i.Title != "":
		return i.Title
	default:
		return i.IMDbID
	}
}

// Query converts the item into a resolution query. defaults supplies the
// gate and locale shared by every item.
func (i Item) Query(defaults resolve.Query) resolve.Query {
	q := defaults
	q.Text = i.Title
	q.ExternalID = i.IMDbID
	q.Description = i.Description
	q.Tags = i.Tags
	q.Allowed = media.ParseKindSet(i.Types)
	q.PreferredKind = nil
	q.Year = nil
	if kind, err := media.ParseKind(i.Kind); err == nil {
		q.PreferredKind = &kind
	}
	if i.Year > 0 {
		year := i.Year
		q.Year = &year
	}
	return q
}

// LoadFile reads items from a .csv, .yaml or .yml file.
func LoadFile(path string) ([]Item, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return csvutil.ProcessCSV(path, parseRow, csvutil.ProcessorOptions{SkipInvalid: true})
	case ".yaml", ".yml":
		return loadYAML(path)
	default:
		return nil, fmt.Errorf("unsupported input format %q (want .csv, .yaml or .yml)", filepath.Ext(path))
	}
}

func parseRow(row csvutil.Row) (Item, error) {
	item := Item{
		Title:       row.Get("title", "name"),
		IMDbID:      row.Get("imdb_id", "imdbid", "const"),
		Kind:        row.Get("kind", "type"),
		Types:       row.Get("types"),
		Description: row.Get("description", "desc"),
		Tags:        row.Get("tags", "genres"),
	}
	if raw := row.Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return Item{}, fmt.Errorf("invalid year %q", raw)
		}
		item.Year = year
	}
	if item.Title == "" && item.IMDbID == "" {
		return Item{}, fmt.Errorf("row has neither title nor imdb_id")
	}
	return item, nil
}

type yamlFile struct {
	Items []Item `yaml:"items"`
}

// loadYAML accepts either a top-level list or a mapping with an items key.
func loadYAML(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read YAML file: %w", err)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("failed to parse YAML file: %w", err)
	}
	if len(node.Content) == 0 {
		return nil, nil
	}

	var items []Item
	switch node.Content[0].Kind {
	case yaml.SequenceNode:
		err = node.Content[0].Decode(&items)
	default:
		var file yamlFile
		err = node.Content[0].Decode(&file)
		items = file.Items
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode YAML items: %w", err)
	}
	return items, nil
}
