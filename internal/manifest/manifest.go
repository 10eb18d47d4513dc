package manifest

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nerrad567/gray-logic-textinput/internal/core"
	"github.com/nerrad567/gray-logic-textinput/internal/schema"
)

// Logger defines the logging interface used by the Loader.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}

// Entry is one validated manifest entry.
type Entry struct {
	Domain string
	Index  int
	Config schema.Config
}

// Manifest is a validated manifest in document order.
type Manifest struct {
	Entries []Entry
}

// Resolved returns the validated configuration grouped by domain, with
// generated ids and defaults filled in.
func (m *Manifest) Resolved() map[string][]schema.Config {
	out := make(map[string][]schema.Config)
	for _, e := range m.Entries {
		out[e.Domain] = append(out[e.Domain], e.Config)
	}
	return out
}

// Count returns the number of entries of domain.
func (m *Manifest) Count(domain string) int {
	n := 0
	for _, e := range m.Entries {
		if e.Domain == domain {
			n++
		}
	}
	return n
}

// Loader validates manifests against a catalog.
type Loader struct {
	catalog  *core.Catalog
	features []string
	logger   Logger
}

// NewLoader returns a Loader for catalog with the given build features
// enabled (e.g. "mqtt").
func NewLoader(catalog *core.Catalog, features ...string) *Loader {
	return &Loader{catalog: catalog, features: features, logger: noopLogger{}}
}

// SetLogger sets the logger.
func (l *Loader) SetLogger(logger Logger) {
	l.logger = logger
}

// LoadFile reads and validates the manifest at path.
func (l *Loader) LoadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	return l.Parse(data)
}

// Parse validates a manifest document. All entries share one validation
// context, so generated ids are unique across the document and explicit
// ids may be declared only once. Explicit ids are collected in a first
// pass and reserved, so a generated id never takes a name the document
// declares further down. Every referenced id must be declared somewhere
// in the document.
//
// Returns:
//   - *Manifest: Validated entries in document order
//   - error: ErrInvalidManifest, core.ErrUnknownDomain or schema.Errors
func (l *Loader) Parse(data []byte) (*Manifest, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}

	if len(doc.Content) == 0 {
		return &Manifest{}, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level must be a mapping", ErrInvalidManifest)
	}

	scan := schema.NewContext(l.features...)
	if _, _, err := l.validate(root, scan); err != nil {
		return nil, err
	}

	ctx := schema.NewContext(l.features...)
	ctx.Reserve(scan.Explicit()...)
	m, errs, err := l.validate(root, ctx)
	if err != nil {
		return nil, err
	}

	for _, id := range ctx.Unresolved() {
		errs = append(errs, &schema.Error{Message: fmt.Sprintf("couldn't find ID %q", id)})
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return m, nil
}

// validate runs every entry under root through its domain schema with
// ctx. Schema failures are collected; structural problems abort.
func (l *Loader) validate(root *yaml.Node, ctx *schema.Context) (*Manifest, schema.Errors, error) {
	m := &Manifest{}
	var errs schema.Errors

	for i := 0; i+1 < len(root.Content); i += 2 {
		domain := root.Content[i].Value
		desc, err := l.catalog.Lookup(domain)
		if err != nil {
			return nil, nil, err
		}

		var items []map[string]any
		if err := root.Content[i+1].Decode(&items); err != nil {
			return nil, nil, fmt.Errorf("%w: %s must be a list of mappings (line %d)",
				ErrInvalidManifest, domain, root.Content[i+1].Line)
		}

		s := desc.Schema()
		for j, raw := range items {
			cfg, err := s.Validate(raw, ctx)
			if err != nil {
				var es schema.Errors
				if errors.As(schema.Prefix(fmt.Sprintf("%s[%d]", domain, j), err), &es) {
					errs = append(errs, es...)
				}
				continue
			}
			m.Entries = append(m.Entries, Entry{Domain: domain, Index: j, Config: cfg})
		}
	}
	return m, errs, nil
}

// Apply creates every entry of m in document order and stops at the
// first failure.
func (l *Loader) Apply(ctx context.Context, m *Manifest) error {
	for _, e := range m.Entries {
		desc, err := l.catalog.Lookup(e.Domain)
		if err != nil {
			return err
		}
		if err := desc.Setup(ctx, e.Config); err != nil {
			return fmt.Errorf("%s[%d]: %w", e.Domain, e.Index, err)
		}
		l.logger.Debug("manifest entry applied", "domain", e.Domain, "index", e.Index)
	}
	l.logger.Info("manifest applied", "entries", len(m.Entries))
	return nil
}
