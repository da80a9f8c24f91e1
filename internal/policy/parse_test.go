package policy

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestValues_JSON(t *testing.T) {
	data, err := json.Marshal(Values{"*"})
	require.NoError(t, err)
	assert.Equal(t, `"*"`, string(data))

	data, err = json.Marshal(Values{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, `["a","b"]`, string(data))

	data, err = json.Marshal(Values(nil))
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))

	var v Values
	require.NoError(t, json.Unmarshal([]byte(`"s3:GetObject"`), &v))
	assert.Equal(t, Values{"s3:GetObject"}, v)
	require.NoError(t, json.Unmarshal([]byte(`["a","b"]`), &v))
	assert.Equal(t, Values{"a", "b"}, v)
	require.Error(t, json.Unmarshal([]byte(`42`), &v))
}

func TestValues_YAML(t *testing.T) {
	out, err := yaml.Marshal(Statement{Effect: EffectAllow, Action: Values{"sqs:SendMessage"}, Resource: Values{"a", "b"}})
	require.NoError(t, err)
	assert.Contains(t, string(out), "Resource:\n    - a\n    - b\n")
	assert.NotContains(t, string(out), "Sid")

	var stmt Statement
	require.NoError(t, yaml.Unmarshal(out, &stmt))
	assert.Equal(t, Values{"sqs:SendMessage"}, stmt.Action)
	assert.Equal(t, Values{"a", "b"}, stmt.Resource)

	require.Error(t, yaml.Unmarshal([]byte("Action: {a: b}\n"), &stmt))
}

func TestParseDocument_YAML(t *testing.T) {
	doc, err := ParseDocument([]byte(`
Version: "2012-10-17"
Statement:
  - Effect: Allow
    Action: [s3:GetObject]
    Resource: "*"
`))
	require.NoError(t, err)
	require.Len(t, doc.Statement, 1)
	assert.Equal(t, Values{"*"}, doc.Statement[0].Resource)
}

func TestParseDocument_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{name: "empty", input: "  ", wantErr: "empty input"},
		{name: "bad json", input: `{"Version":`, wantErr: "invalid policy document"},
		{name: "bad version", input: `{"Version":"2020-01-01","Statement":[]}`, wantErr: "unsupported version"},
		{name: "no statements", input: `{"Version":"2012-10-17","Statement":[]}`, wantErr: "no statements"},
		{
			name:    "deny",
			input:   `{"Version":"2012-10-17","Statement":[{"Effect":"Deny","Action":"s3:*","Resource":"*"}]}`,
			wantErr: "effect must be Allow",
		},
		{
			name:    "no action",
			input:   `{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Action":[],"Resource":"*"}]}`,
			wantErr: "action is required",
		},
		{
			name:    "no resource",
			input:   `{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Action":"s3:GetObject"}]}`,
			wantErr: "resource is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDocument([]byte(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidDocument)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
