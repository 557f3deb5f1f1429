package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T) *Bundle {
	t.Helper()
	b, err := Load("../../locales", French, Supported)
	require.NoError(t, err)
	return b
}

func TestResolveHonorsQValues(t *testing.T) {
	b := load(t)
	assert.Equal(t, "en", b.Resolve("fr;q=0.8, en;q=0.9"))
	assert.Equal(t, "fr", b.Resolve("fr-CA,en;q=0.5"))
	assert.Equal(t, "en", b.Resolve("en-GB"))
}

func TestResolveFallsBackToFrench(t *testing.T) {
	b := load(t)
	assert.Equal(t, "fr", b.Resolve(""))
	assert.Equal(t, "fr", b.Resolve("ja"))
	assert.Equal(t, "fr", b.Resolve(";;garbage"))
}

func TestTFallsBack(t *testing.T) {
	b := load(t)
	assert.Equal(t, "News", b.T("en", "nav.news"))
	assert.Equal(t, "Actualités", b.T("fr", "nav.news"))
	assert.Equal(t, "Actualités", b.T("de", "nav.news"))
	assert.Equal(t, "missing.key", b.T("en", "missing.key"))
}

func TestCopy(t *testing.T) {
	assert.Equal(t, "Bonjour", Copy("fr", "Bonjour", "Hello"))
	assert.Equal(t, "Hello", Copy("en", "Bonjour", "Hello"))
	assert.Equal(t, "Bonjour", Copy("de", "Bonjour", "Hello"))
	assert.Equal(t, "Bonjour", Copy("", "Bonjour", "Hello"))
}

func TestNormalizeAndOther(t *testing.T) {
	assert.Equal(t, "en", Normalize("EN"))
	assert.Equal(t, "fr", Normalize("de"))
	assert.Equal(t, "fr", Other("en"))
	assert.Equal(t, "en", Other("xx"))
}

func TestLoadRequiresFallback(t *testing.T) {
	_, err := Load(t.TempDir(), French, Supported)
	assert.Error(t, err)
}
