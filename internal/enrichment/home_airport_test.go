package enrichment

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "airport.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileHomeAirportSource(t *testing.T) {
	src := NewFileHomeAirportSource(writeDoc(t, `{"airport": "sea"}`))

	airport, err := src.Airport(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "SEA", airport)
}

func TestFileHomeAirportSource_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed document", `{"airport": `},
		{"missing field", `{"city": "Seattle"}`},
		{"blank value", `{"airport": "  "}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := NewFileHomeAirportSource(writeDoc(t, tt.content))
			_, err := src.Airport(context.Background())
			require.Error(t, err)
		})
	}
}

func TestFileHomeAirportSource_MissingFile(t *testing.T) {
	src := NewFileHomeAirportSource(filepath.Join(t.TempDir(), "absent.json"))
	_, err := src.Airport(context.Background())
	require.Error(t, err)
}

func TestStaticHomeAirportSource(t *testing.T) {
	airport, err := StaticHomeAirportSource("sfo").Airport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "SFO", airport)

	_, err = StaticHomeAirportSource("").Airport(context.Background())
	require.Error(t, err)
}
