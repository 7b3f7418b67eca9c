package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name    string `json:"name" validate:"required"`
	Timeout int    `mapstructure:"read_timeout" validate:"min=1"`
	Plain   string `validate:"required"`
}

func TestNew_ReportsTagKeys(t *testing.T) {
	t.Parallel()

	err := New().Struct(&payload{})
	require.Error(t, err)

	ve, ok := err.(ValidationErrors)
	require.True(t, ok)

	var namespaces []string
	for _, fe := range ve {
		namespaces = append(namespaces, fe.Namespace())
	}
	assert.ElementsMatch(t, []string{"payload.name", "payload.read_timeout", "payload.Plain"}, namespaces)
}

func TestNew_Valid(t *testing.T) {
	t.Parallel()

	assert.NoError(t, New().Struct(&payload{Name: "x", Timeout: 1, Plain: "y"}))
}
