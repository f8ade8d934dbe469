package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	assert.True(t, c.HasService("ferfi-hajvagas"))
	assert.False(t, c.HasService("manikur"))
	assert.True(t, c.HasTime("09:00"))
	assert.False(t, c.HasTime("09:30"))
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
services:
  - id: borotvalas
    name: Borotválás
time_slots: ["08:30", "09:30"]
`), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"08:30", "09:30"}, c.TimeSlots)
	assert.Equal(t, "Borotválás", c.Services[0].Name)
}

func TestParseRejectsBadCatalogs(t *testing.T) {
	cases := map[string]string{
		"no services":    `time_slots: ["09:00"]`,
		"no slots":       "services: [{id: a, name: A}]",
		"duplicate":      `{services: [{id: a}, {id: a}], time_slots: ["09:00"]}`,
		"bad time":       `{services: [{id: a}], time_slots: ["9:00"]}`,
		"duplicate time": `{services: [{id: a}], time_slots: ["09:00", "09:00"]}`,
		"not yaml":       "services: [",
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(raw))
			assert.Error(t, err)
		})
	}
}
