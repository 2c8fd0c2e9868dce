package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticStoreGetComponentSource(t *testing.T) {
	store := NewStaticStore(DefaultComponents())

	source, ok, err := store.GetComponentSource(context.Background(), "AnimatedList")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, source, "AnimatedList")

	_, ok, err = store.GetComponentSource(context.Background(), "NoSuchThing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStaticStoreListOrdering(t *testing.T) {
	store := NewStaticStore([]Component{
		{Name: "Zeta", Category: CategoryComponents},
		{Name: "Alpha", Category: CategoryTextAnimations},
		{Name: "Beta", Category: CategoryComponents},
	})

	rows, err := store.ListComponents(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Sorted by category, then name within a category.
	assert.Equal(t, "Beta", rows[0].Name)
	assert.Equal(t, "Zeta", rows[1].Name)
	assert.Equal(t, "Alpha", rows[2].Name)
}

func TestStaticStoreListCategoryFilter(t *testing.T) {
	store := NewStaticStore(DefaultComponents())

	rows, err := store.ListComponents(context.Background(), CategoryDeviceMocks)
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	for _, row := range rows {
		assert.Equal(t, CategoryDeviceMocks, row.Category)
	}

	rows, err = store.ListComponents(context.Background(), "Nonexistent")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestStaticStoreSearch(t *testing.T) {
	store := NewStaticStore(DefaultComponents())

	// Case-insensitive match on name or description, scoped to a category.
	rows, err := store.SearchComponents(context.Background(), "card", CategoryComponents)
	require.NoError(t, err)

	names := make([]string, 0, len(rows))
	for _, row := range rows {
		names = append(names, row.Name)
	}
	assert.Equal(t, []string{"MagicCard", "NeonGradientCard"}, names)
}

func TestStaticStoreSearchDescriptionMatch(t *testing.T) {
	store := NewStaticStore([]Component{
		{
			Name:        "Meteors",
			Category:    CategorySpecialEffects,
			Description: "A shower of falling meteors across the container",
		},
	})

	rows, err := store.SearchComponents(context.Background(), "FALLING", "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Meteors", rows[0].Name)
}

func TestStaticStoreSearchEmptyQueryListsAll(t *testing.T) {
	store := NewStaticStore(DefaultComponents())

	all, err := store.ListComponents(context.Background(), "")
	require.NoError(t, err)

	rows, err := store.SearchComponents(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, len(all), len(rows))
}

func TestValidCategory(t *testing.T) {
	for _, c := range Categories() {
		assert.True(t, ValidCategory(c))
	}
	assert.False(t, ValidCategory("Widgets"))
	assert.False(t, ValidCategory(""))
}

func TestDefaultComponentsWellFormed(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range DefaultComponents() {
		require.NotEmpty(t, c.Name)
		assert.False(t, seen[c.Name], "duplicate component %s", c.Name)
		seen[c.Name] = true
		assert.True(t, ValidCategory(c.Category), "component %s has unknown category %q", c.Name, c.Category)
		assert.NotEmpty(t, c.Source, "component %s has no source", c.Name)
	}
}
