package uritemplate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchExtractsPlaceholder(t *testing.T) {
	tmpl, err := Compile("resource:component/{name}")
	require.NoError(t, err)

	captures, ok := tmpl.Match("resource:component/AnimatedList")
	require.True(t, ok)
	assert.Equal(t, []string{"AnimatedList"}, captures)
	assert.Equal(t, []string{"name"}, tmpl.Names())
}

func TestEmptyCaptureDoesNotMatch(t *testing.T) {
	tmpl := MustCompile("resource:component/{name}")

	_, ok := tmpl.Match("resource:component/")
	assert.False(t, ok)
}

func TestAnchoredOnBothEnds(t *testing.T) {
	tmpl := MustCompile("resource:component/{name}")

	_, ok := tmpl.Match("prefix-resource:component/AnimatedList")
	assert.False(t, ok, "prefixed URI must not match")

	_, ok = tmpl.Match("resource:components/list")
	assert.False(t, ok, "different literal segment must not match")
}

func TestTrailingLiteralConstrainsCapture(t *testing.T) {
	tmpl := MustCompile("resource:component/{name}/demo")

	captures, ok := tmpl.Match("resource:component/Marquee/demo")
	require.True(t, ok)
	assert.Equal(t, []string{"Marquee"}, captures)

	_, ok = tmpl.Match("resource:component/Marquee")
	assert.False(t, ok, "missing trailing literal must not match")
}

func TestMultiplePlaceholdersCaptureInOrder(t *testing.T) {
	tmpl := MustCompile("resource:catalog/{category}/{name}")

	captures, ok := tmpl.Match("resource:catalog/Components/BentoGrid")
	require.True(t, ok)
	assert.Equal(t, []string{"Components", "BentoGrid"}, captures)
	assert.Equal(t, map[string]string{"category": "Components", "name": "BentoGrid"}, tmpl.Params(captures))
}

func TestGreedyCaptureWithAnchors(t *testing.T) {
	// Greedy capture may span delimiters, but the trailing literal still
	// anchors the match.
	tmpl := MustCompile("resource:component/{name}/demo")

	captures, ok := tmpl.Match("resource:component/nested/path/demo")
	require.True(t, ok)
	assert.Equal(t, []string{"nested/path"}, captures)
}

func TestDeterministicAcrossCalls(t *testing.T) {
	tmpl := MustCompile("resource:component/{name}")

	first, ok1 := tmpl.Match("resource:component/Globe")
	second, ok2 := tmpl.Match("resource:component/Globe")
	assert.True(t, ok1)
	assert.True(t, ok2)
	assert.Equal(t, first, second)
}

func TestCompileRejectsLiteralOnlyTemplate(t *testing.T) {
	_, err := Compile("resource:components/list")
	assert.Error(t, err)
}

func TestCompileRejectsRepeatedPlaceholder(t *testing.T) {
	_, err := Compile("resource:{name}/{name}")
	assert.Error(t, err)
}

func TestLiteralRegexMetacharactersAreQuoted(t *testing.T) {
	tmpl := MustCompile("resource:component.v2/{name}")

	_, ok := tmpl.Match("resource:componentXv2/Globe")
	assert.False(t, ok, "dot must be literal, not a wildcard")

	captures, ok := tmpl.Match("resource:component.v2/Globe")
	require.True(t, ok)
	assert.Equal(t, []string{"Globe"}, captures)
}
