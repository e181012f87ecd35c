// Package catalog loads the product list the generator is driven from.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"
)

// ErrEmpty is returned when the catalog file holds no products.
var ErrEmpty = errors.New("no products found")

// Catalog is the set of products read from data/products.json.
type Catalog struct {
	path     string
	products []Product
}

type catalogFile struct {
	Products []Product `json:"products"`
}

// New returns a catalog rooted at dataDir. Call Load before querying it.
func New(dataDir string) *Catalog {
	return &Catalog{path: filepath.Join(dataDir, "data", "products.json")}
}

// Path is the catalog file location.
func (c *Catalog) Path() string {
	return c.path
}

// Load reads the catalog file. A missing file is treated as an empty catalog
// and reported as ErrEmpty.
func (c *Catalog) Load() ([]Product, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w in %s", ErrEmpty, c.path)
		}
		return nil, err
	}

	var f catalogFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", c.path, err)
	}
	if len(f.Products) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrEmpty, c.path)
	}

	c.products = f.Products
	return c.products, nil
}

// Products returns everything loaded so far.
func (c *Catalog) Products() []Product {
	if c == nil {
		return nil
	}
	return c.products
}

// Clients returns the distinct client names, sorted.
func (c *Catalog) Clients() []string {
	set := map[string]bool{}
	for _, p := range c.Products() {
		set[p.Client] = true
	}
	return sortedKeys(set)
}

// Categories returns the distinct categories of one client, sorted.
func (c *Catalog) Categories(client string) []string {
	set := map[string]bool{}
	for _, p := range c.Products() {
		if p.Client == client {
			set[p.Category] = true
		}
	}
	return sortedKeys(set)
}

// Find returns a copy of the first product of client in category.
func (c *Catalog) Find(client, category string) (*Product, bool) {
	for i := range c.Products() {
		p := &c.products[i]
		if p.Client == client && p.Category == category {
			return p.Clone(), true
		}
	}
	return nil, false
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// TitleCase upper-cases the first letter of every word, the way categories
// are shown.
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(strings.ToLower(w))
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
