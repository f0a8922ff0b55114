package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
	"type": "object",
	"required": ["name"],
	"properties": {
		"name": {"type": "string", "minLength": 1},
		"count": {"type": "integer"}
	}
}`

func TestValidateString_Valid(t *testing.T) {
	err := ValidateString(testSchema, `{"name": "x", "count": 3}`)
	assert.NoError(t, err)
}

func TestValidateString_MissingRequired(t *testing.T) {
	err := ValidateString(testSchema, `{"count": 3}`)
	require.Error(t, err)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	require.NotEmpty(t, ve.Errors)
	assert.Contains(t, ve.Summary(), "name")
}

func TestValidateString_WrongType(t *testing.T) {
	err := ValidateString(testSchema, `{"name": "x", "count": "three"}`)
	require.Error(t, err)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Error(), "count")
}

func TestValidateString_MalformedDocument(t *testing.T) {
	err := ValidateString(testSchema, `{ not json }`)
	require.Error(t, err)

	var le *SchemaLoadError
	assert.True(t, errors.As(err, &le))
}

func TestValidateString_MalformedSchema(t *testing.T) {
	err := ValidateString(`{ not a schema }`, `{"name": "x"}`)
	require.Error(t, err)

	var le *SchemaLoadError
	assert.True(t, errors.As(err, &le))
}
