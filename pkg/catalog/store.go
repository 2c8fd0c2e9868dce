// Package catalog provides the component catalog surface: the storage
// interface the dispatch core calls through, a static in-memory store, and
// the tool, resource and prompt handlers registered at startup.
package catalog

import (
	"context"
	"sort"
	"strings"
)

// Category labels form a closed set; anything else is a validation failure.
const (
	CategoryComponents     = "Components"
	CategoryTextAnimations = "Text Animations"
	CategorySpecialEffects = "Special Effects"
	CategoryDeviceMocks    = "Device Mocks"
)

// Categories returns the closed set of category labels.
func Categories() []string {
	return []string{
		CategoryComponents,
		CategoryTextAnimations,
		CategorySpecialEffects,
		CategoryDeviceMocks,
	}
}

// ValidCategory reports whether label is one of the allowed categories.
func ValidCategory(label string) bool {
	for _, c := range Categories() {
		if c == label {
			return true
		}
	}
	return false
}

// PropMetadata documents one property accepted by a component.
type PropMetadata struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Default     string `json:"default,omitempty"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required,omitempty"`
}

// ComponentMetadata is the structured record behind get_component_metadata.
type ComponentMetadata struct {
	Name         string         `json:"name"`
	Category     string         `json:"category"`
	Description  string         `json:"description,omitempty"`
	Dependencies []string       `json:"dependencies,omitempty"`
	Props        []PropMetadata `json:"props,omitempty"`
}

// ComponentSummary is the listing/search row shape.
type ComponentSummary struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
}

// Component is one catalog entry as held by the static store.
type Component struct {
	Name         string
	Category     string
	Description  string
	Source       string
	Demo         string
	Dependencies []string
	Props        []PropMetadata
}

// Store is the read-only boundary the dispatch core calls through. Every
// method is a pure, idempotent read; absence is not an error at this layer
// and is signaled by the boolean or an empty slice.
type Store interface {
	GetComponentSource(ctx context.Context, name string) (string, bool, error)
	GetComponentDemo(ctx context.Context, name string) (string, bool, error)
	GetComponentMetadata(ctx context.Context, name string) (*ComponentMetadata, bool, error)
	ListComponents(ctx context.Context, category string) ([]ComponentSummary, error)
	SearchComponents(ctx context.Context, query, category string) ([]ComponentSummary, error)
}

// StaticStore serves a fixed component set from process memory.
type StaticStore struct {
	byName map[string]*Component
	order  []string
}

// NewStaticStore builds a store over the given components. Listing order is
// category-grouped and name-sorted within each category.
func NewStaticStore(components []Component) *StaticStore {
	s := &StaticStore{byName: make(map[string]*Component, len(components))}
	sorted := make([]Component, len(components))
	copy(sorted, components)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Category != sorted[j].Category {
			return sorted[i].Category < sorted[j].Category
		}
		return sorted[i].Name < sorted[j].Name
	})
	for i := range sorted {
		c := sorted[i]
		s.byName[c.Name] = &c
		s.order = append(s.order, c.Name)
	}
	return s
}

// GetComponentSource returns the component's source text.
func (s *StaticStore) GetComponentSource(ctx context.Context, name string) (string, bool, error) {
	c, ok := s.byName[name]
	if !ok {
		return "", false, nil
	}
	return c.Source, true, nil
}

// GetComponentDemo returns the component's demo text.
func (s *StaticStore) GetComponentDemo(ctx context.Context, name string) (string, bool, error) {
	c, ok := s.byName[name]
	if !ok || c.Demo == "" {
		return "", false, nil
	}
	return c.Demo, true, nil
}

// GetComponentMetadata returns the component's structured record.
func (s *StaticStore) GetComponentMetadata(ctx context.Context, name string) (*ComponentMetadata, bool, error) {
	c, ok := s.byName[name]
	if !ok {
		return nil, false, nil
	}
	return &ComponentMetadata{
		Name:         c.Name,
		Category:     c.Category,
		Description:  c.Description,
		Dependencies: append([]string(nil), c.Dependencies...),
		Props:        append([]PropMetadata(nil), c.Props...),
	}, true, nil
}

// ListComponents enumerates summaries, optionally filtered by category.
func (s *StaticStore) ListComponents(ctx context.Context, category string) ([]ComponentSummary, error) {
	var out []ComponentSummary
	for _, name := range s.order {
		c := s.byName[name]
		if category != "" && c.Category != category {
			continue
		}
		out = append(out, ComponentSummary{Name: c.Name, Category: c.Category, Description: c.Description})
	}
	return out, nil
}

// SearchComponents matches query case-insensitively against name and
// description, optionally filtered by category. Results come back grouped
// by category and sorted by name within each category.
func (s *StaticStore) SearchComponents(ctx context.Context, query, category string) ([]ComponentSummary, error) {
	needle := strings.ToLower(query)
	var out []ComponentSummary
	for _, name := range s.order {
		c := s.byName[name]
		if category != "" && c.Category != category {
			continue
		}
		if !strings.Contains(strings.ToLower(c.Name), needle) &&
			!strings.Contains(strings.ToLower(c.Description), needle) {
			continue
		}
		out = append(out, ComponentSummary{Name: c.Name, Category: c.Category, Description: c.Description})
	}
	return out, nil
}
