// Package catalog serves the rental property listings.
package catalog

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"aura/backend/internal/config"
	"aura/backend/internal/models"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed properties.yaml
var defaultCatalog []byte

// ErrNotFound is returned by Get for an unknown property id.
var ErrNotFound = errors.New("property not found")

// Price ranges accepted by Filter.PriceRange.
const (
	PriceAll     = "all"
	PriceBudget  = "budget"
	PriceMid     = "mid"
	PricePremium = "premium"
)

// MaxBedroomsFilter matches properties with this many bedrooms or more.
const MaxBedroomsFilter = 5

type catalogFile struct {
	Properties []models.Property `yaml:"properties"`
}

// Catalog is a concurrency-safe, reloadable list of properties.
type Catalog struct {
	mu         sync.RWMutex
	properties []models.Property
	path       string
	log        *zap.SugaredLogger
}

// Filter narrows Search results. Zero values match everything.
type Filter struct {
	Query      string `form:"q"`
	Bedrooms   int    `form:"bedrooms" binding:"omitempty,min=1,max=5"`
	PriceRange string `form:"price" binding:"omitempty,oneof=all budget mid premium"`
}

// New loads the catalog from path, or from the embedded default when path is empty.
func New(path string, log *zap.SugaredLogger) (*Catalog, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	c := &Catalog{path: path, log: log}

	data := defaultCatalog
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
	}
	if err := c.load(data); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) load(data []byte) error {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse catalog: %w", err)
	}
	if len(file.Properties) == 0 {
		return errors.New("parse catalog: no properties")
	}

	seen := make(map[string]bool, len(file.Properties))
	for _, p := range file.Properties {
		if p.ID == "" {
			return fmt.Errorf("parse catalog: property %q has no id", p.Name)
		}
		if seen[p.ID] {
			return fmt.Errorf("parse catalog: duplicate property id %q", p.ID)
		}
		seen[p.ID] = true
	}

	c.mu.Lock()
	c.properties = file.Properties
	c.mu.Unlock()
	return nil
}

// All returns every property in catalog order.
func (c *Catalog) All() []models.Property {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Property(nil), c.properties...)
}

func (c *Catalog) Get(id string) (models.Property, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.properties {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Property{}, ErrNotFound
}

// Search filters by location substring, bedroom count and price range.
func (c *Catalog) Search(f Filter) []models.Property {
	query := strings.ToLower(strings.TrimSpace(f.Query))

	out := []models.Property{}
	for _, p := range c.All() {
		if query != "" && !strings.Contains(strings.ToLower(p.Location), query) {
			continue
		}
		if !matchBedrooms(p.Bedrooms, f.Bedrooms) || !matchPrice(p.Price, f.PriceRange) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchBedrooms(have, want int) bool {
	switch {
	case want <= 0:
		return true
	case want >= MaxBedroomsFilter:
		return have >= MaxBedroomsFilter
	}
	return have == want
}

func matchPrice(price int, band string) bool {
	switch band {
	case PriceBudget:
		return price < config.BudgetPriceCeiling
	case PriceMid:
		return price >= config.BudgetPriceCeiling && price <= config.MidPriceCeiling
	case PricePremium:
		return price > config.MidPriceCeiling
	}
	return true
}

// Watch reloads the catalog file whenever it changes, until ctx is done.
// It is a no-op for the embedded catalog.
func (c *Catalog) Watch(ctx context.Context) error {
	if c.path == "" {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// Editors replace files by rename, so watch the directory.
	if err := watcher.Add(filepath.Dir(c.path)); err != nil {
		watcher.Close()
		return err
	}

	target := filepath.Clean(c.path)
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(evt.Name) != target || evt.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				c.reload()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				c.log.Warnw("Catalog watcher error", "error", err)
			}
		}
	}()
	return nil
}

func (c *Catalog) reload() {
	data, err := os.ReadFile(c.path)
	if err != nil {
		c.log.Warnw("Catalog reload failed", "path", c.path, "error", err)
		return
	}
	if err := c.load(data); err != nil {
		c.log.Warnw("Catalog reload rejected, keeping previous listings", "path", c.path, "error", err)
		return
	}
	c.log.Infow("Catalog reloaded", "path", c.path, "properties", len(c.All()))
}
