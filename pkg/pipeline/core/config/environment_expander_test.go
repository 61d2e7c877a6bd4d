package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOsEnvironmentExpander(t *testing.T) {
	t.Setenv("TRIPWIND_TEST_VALUE", "metadata")

	expander := NewOsEnvironmentExpander()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"set variable", "ref: ${TRIPWIND_TEST_VALUE}", "ref: metadata"},
		{"unset variable", "ref: ${TRIPWIND_TEST_UNSET}", "ref: "},
		{"default used when unset", "ref: ${TRIPWIND_TEST_UNSET:-workload}", "ref: workload"},
		{"default ignored when set", "ref: ${TRIPWIND_TEST_VALUE:-workload}", "ref: metadata"},
		{"empty default", "ref: ${TRIPWIND_TEST_UNSET:-}", "ref: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expander.Expand([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}
