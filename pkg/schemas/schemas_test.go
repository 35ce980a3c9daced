package schemas_test

import (
	"encoding/json"
	"testing"

	"github.com/dukex/projecthub/pkg/schemas"
	"github.com/dukex/projecthub/pkg/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry(t *testing.T) *schemas.Registry {
	t.Helper()

	registry, err := schemas.NewRegistry()
	require.NoError(t, err)

	return registry
}

func TestRegistry_Raw(t *testing.T) {
	t.Parallel()

	registry := newRegistry(t)

	for _, name := range schemas.Names {
		data, ok := registry.Raw(name)
		require.True(t, ok, name)
		assert.True(t, json.Valid(data), name)
	}

	_, ok := registry.Raw("weather")
	assert.False(t, ok)
}

func TestRegistry_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		schema  string
		body    string
		wantErr bool
	}{
		{"login", schemas.Login, `{"identity":"a@b.c","credential":"x"}`, false},
		{"login missing credential", schemas.Login, `{"identity":"a@b.c"}`, true},
		{"empty transcript uses defaults", schemas.Transcript, `{}`, false},
		{"transcript age range is left to the validator", schemas.Transcript, `{"age": 90}`, false},
		{"transcript age as string", schemas.Transcript, `{"age": "ninety"}`, true},
		{"transcript unknown field", schemas.Transcript, `{"mood": "happy"}`, true},
		{"prompt", schemas.PromptTest, `{"prompt":"Summarize this consult","temperature":0.2}`, false},
		{"prompt temperature as string", schemas.PromptTest, `{"temperature":"hot"}`, true},
		{"prompt upload without name", schemas.PromptTest, `{"uploads":[{"size":3}]}`, true},
		{"bulk files", schemas.BulkAnalysis, `{"files":["Medspa_001.txt"],"config":{"max_results":5}}`, false},
		{"bulk date format is left to the validator", schemas.BulkAnalysis, `{"config":{"date_from":"yesterday"}}`, false},
		{"bulk date as number", schemas.BulkAnalysis, `{"config":{"date_from":20240101}}`, true},
		{"not json", schemas.BulkAnalysis, `{"files":`, true},
	}

	registry := newRegistry(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := registry.Validate(tt.schema, []byte(tt.body))
			if tt.wantErr {
				require.ErrorIs(t, err, services.ErrSchemaViolation)

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestRegistry_UnknownSchema(t *testing.T) {
	t.Parallel()

	err := newRegistry(t).Validate("weather", []byte(`{}`))
	require.ErrorIs(t, err, services.ErrUnknownKind)
}
