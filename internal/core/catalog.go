package core

import (
	"context"
	"fmt"
	"sort"

	"github.com/nerrad567/gray-logic-textinput/internal/schema"
	"github.com/nerrad567/gray-logic-textinput/internal/textinput"
)

// Descriptor describes one manifest component.
type Descriptor struct {
	// Domain is the manifest key, e.g. "text_input".
	Domain string

	// Schema returns the schema one entry of the domain list must match.
	Schema func() schema.Schema

	// Setup instantiates a validated entry.
	Setup func(ctx context.Context, cfg schema.Config) error
}

// Catalog is the fixed set of components this node supports.
type Catalog struct {
	byDomain map[string]Descriptor
}

// NewCatalog returns the catalog of built-in components, with text
// inputs created through textInputs.
func NewCatalog(textInputs *textinput.Setup) *Catalog {
	return newCatalog(
		Descriptor{
			Domain: textinput.Domain,
			Schema: textinput.Schema,
			Setup: func(ctx context.Context, cfg schema.Config) error {
				_, err := textInputs.New(ctx, cfg)
				return err
			},
		},
	)
}

func newCatalog(descs ...Descriptor) *Catalog {
	c := &Catalog{byDomain: make(map[string]Descriptor, len(descs))}
	for _, d := range descs {
		c.byDomain[d.Domain] = d
	}
	return c
}

// Lookup returns the descriptor for domain.
func (c *Catalog) Lookup(domain string) (Descriptor, error) {
	d, ok := c.byDomain[domain]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %s", ErrUnknownDomain, domain)
	}
	return d, nil
}

// Domains returns the supported domains, sorted.
func (c *Catalog) Domains() []string {
	out := make([]string, 0, len(c.byDomain))
	for d := range c.byDomain {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
