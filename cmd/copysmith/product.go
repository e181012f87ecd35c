package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sant0-9/copysmith/internal/catalog"
	"github.com/sant0-9/copysmith/internal/schema"
	"github.com/sant0-9/copysmith/internal/store"
)

// productFlags selects one catalog product and the session edits applied to
// it before a prompt is built.
type productFlags struct {
	client   string
	category string
	language string
	tags     []string
	limits   map[string]int
}

func (f *productFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.client, "client", "", "Client name as it appears in the catalog (required)")
	cmd.Flags().StringVar(&f.category, "category", "", "Product category (required)")
	cmd.Flags().StringVar(&f.language, "language", "", "Output language (default: the product's own)")
	cmd.Flags().StringSliceVar(&f.tags, "tags", nil, "Replace the product tags")
	cmd.Flags().StringToIntVar(&f.limits, "limit", nil, "Override word limits for this run, e.g. --limit title=6,subtitle=0")
	_ = cmd.MarkFlagRequired("client")
	_ = cmd.MarkFlagRequired("category")
}

// selection is a product with its client config and example, ready for the
// prompt builder.
type selection struct {
	product *catalog.Product
	config  *schema.ClientConfig
	example json.RawMessage
}

func (o *options) selectProduct(f *productFlags) (*selection, error) {
	cat := catalog.New(o.settings.DataDir)
	if _, err := cat.Load(); err != nil {
		return nil, err
	}

	client, ok := matchFold(cat.Clients(), f.client)
	if !ok {
		return nil, fmt.Errorf("client %q is not in %s", f.client, cat.Path())
	}
	category, ok := matchFold(cat.Categories(client), f.category)
	if !ok {
		return nil, fmt.Errorf("client %s has no %q products (have %s)", client, f.category, strings.Join(cat.Categories(client), ", "))
	}
	product, _ := cat.Find(client, category)

	cfg, err := o.configStore().LoadClientConfig(client)
	if err != nil {
		return nil, err
	}
	cfg = cfg.Clone()

	if f.language != "" {
		product.Language = f.language
	}
	if f.tags != nil {
		product.Tags = catalog.NormalizeTags(f.tags)
	}
	keys := make([]string, 0, len(f.limits))
	for k := range f.limits {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := cfg.SetLimit(k, f.limits[k]); err != nil {
			return nil, err
		}
	}

	examples := store.NewExampleStore(o.settings.DataDir, o.log).LoadClientExamples(client)
	example, _ := examples.Lookup(category)

	return &selection{product: product, config: cfg, example: example}, nil
}

// matchFold returns the entry of names equal to want, ignoring case.
func matchFold(names []string, want string) (string, bool) {
	want = strings.TrimSpace(want)
	for _, n := range names {
		if n == want {
			return n, true
		}
	}
	for _, n := range names {
		if strings.EqualFold(n, want) {
			return n, true
		}
	}
	return "", false
}
