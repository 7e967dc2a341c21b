// Package deck loads study decks from YAML or JSON files.
package deck

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"github.com/LMDG1/LotteThesisMindSortCode/internal/item"
)

// Deck is a named list of items in file order.
type Deck struct {
	Name  string
	Items []*item.Item
}

// ErrInvalidDeck wraps every validation failure.
var ErrInvalidDeck = errors.New("invalid deck")

type fileDeck struct {
	Name  string     `json:"name" yaml:"name"`
	Items []fileItem `json:"items" yaml:"items"`
}

type fileItem struct {
	ID     string  `json:"id" yaml:"id"`
	Prompt string  `json:"prompt" yaml:"prompt"`
	Answer string  `json:"answer" yaml:"answer"`
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
}

// Load reads a deck from path. Files ending in .json are parsed as JSON;
// everything else is parsed as YAML.
func Load(path string) (*Deck, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck: %w", err)
	}
	d, err := Parse(raw, strings.EqualFold(filepath.Ext(path), ".json"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if d.Name == "" {
		d.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return d, nil
}

// Parse decodes and validates deck content. Item indices follow file order.
func Parse(raw []byte, isJSON bool) (*Deck, error) {
	var doc any
	if isJSON {
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("%w: parse json: %v", ErrInvalidDeck, err)
		}
	} else {
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("%w: parse yaml: %v", ErrInvalidDeck, err)
		}
	}

	// The schema validator expects plain JSON values (float64 numbers,
	// map[string]any objects), so round-trip YAML documents through JSON.
	normalized, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDeck, err)
	}
	var parsed any
	if err := json.Unmarshal(normalized, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDeck, err)
	}

	sch, err := compiledSchema()
	if err != nil {
		return nil, err
	}
	if err := sch.Validate(parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDeck, err)
	}

	var fd fileDeck
	if err := json.Unmarshal(normalized, &fd); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDeck, err)
	}

	d := &Deck{Name: fd.Name, Items: make([]*item.Item, 0, len(fd.Items))}
	seen := make(map[string]int, len(fd.Items))
	for i, fi := range fd.Items {
		if prev, dup := seen[fi.ID]; dup {
			return nil, fmt.Errorf("%w: item id %q used by items %d and %d", ErrInvalidDeck, fi.ID, prev, i)
		}
		seen[fi.ID] = i
		d.Items = append(d.Items, item.New(i, fi.ID, fi.Prompt, fi.Answer, item.Point{X: fi.X, Y: fi.Y}))
	}
	return d, nil
}

var (
	schemaOnce     sync.Once
	schemaCompiled *jsonschema.Schema
	schemaErr      error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		// The compiler wants a parsed JSON value, not Go ints and slices.
		defBytes, err := json.Marshal(deckSchema)
		if err != nil {
			schemaErr = fmt.Errorf("marshal deck schema: %w", err)
			return
		}
		var def any
		if err := json.Unmarshal(defBytes, &def); err != nil {
			schemaErr = fmt.Errorf("parse deck schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const url = "schema://mindsort-deck.json"
		if err := c.AddResource(url, def); err != nil {
			schemaErr = fmt.Errorf("add deck schema: %w", err)
			return
		}
		schemaCompiled, schemaErr = c.Compile(url)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("compile deck schema: %w", schemaErr)
		}
	})
	return schemaCompiled, schemaErr
}
