package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iam-policy-generator/internal/policy"
)

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRun_Usage(t *testing.T) {
	stdout, _, err := runCLI(t)
	require.NoError(t, err)
	assert.Contains(t, stdout, "generate")
	assert.Contains(t, stdout, "simulate")

	_, stderr, err := runCLI(t, "frobnicate")
	assert.Error(t, err)
	assert.Contains(t, stderr, "Usage")
}

func TestGenerate_ToFile(t *testing.T) {
	selection := writeFile(t, "selection.yaml", `
resources:
  - id: s3
    identifier: arn:aws:s3:::my-bucket
    actions: [s3-read-objects]
`)
	out := filepath.Join(t.TempDir(), "policy.json")

	_, _, err := runCLI(t, "generate", "--selection", selection, "--out", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	doc, err := policy.ParseDocument(data)
	require.NoError(t, err)
	require.Len(t, doc.Statement, 1)
	assert.Equal(t, policy.Values{"arn:aws:s3:::my-bucket", "arn:aws:s3:::my-bucket/*"}, doc.Statement[0].Resource)
}

func TestGenerate_Stdout(t *testing.T) {
	selection := writeFile(t, "selection.json", `{"resources":[{"id":"sqs","categories":["write"]}]}`)

	stdout, stderr, err := runCLI(t, "generate", "-s", selection, "--format", "yaml", "--summary")
	require.NoError(t, err)
	assert.Contains(t, stderr, "resources: all")
	assert.Contains(t, stdout, "sqs:SendMessage")

	doc, err := policy.ParseDocument([]byte(stdout))
	require.NoError(t, err)
	assert.True(t, doc.Statement[0].IsWildcard())
}

func TestGenerate_NothingSelected(t *testing.T) {
	selection := writeFile(t, "selection.yaml", "resources:\n  - id: ec2\n")

	stdout, stderr, err := runCLI(t, "generate", "--selection", selection)
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "nothing to grant")
}

func TestGenerate_Errors(t *testing.T) {
	_, _, err := runCLI(t, "generate")
	assert.ErrorContains(t, err, "--selection")

	unknown := writeFile(t, "selection.yaml", "resources:\n  - id: rds\n")
	_, _, err = runCLI(t, "generate", "--selection", unknown)
	assert.ErrorContains(t, err, "unknown resource")

	valid := writeFile(t, "valid.yaml", "resources:\n  - id: s3\n    actions: [s3-list-objects]\n")
	_, _, err = runCLI(t, "generate", "--selection", valid, "--out", "s3://bucket-only")
	assert.Error(t, err)
}

func TestCatalog(t *testing.T) {
	stdout, _, err := runCLI(t, "catalog")
	require.NoError(t, err)
	assert.Contains(t, stdout, "dynamodb")

	stdout, _, err = runCLI(t, "catalog", "--resource", "sns", "--json")
	require.NoError(t, err)
	var actions []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &actions))
	assert.NotEmpty(t, actions)

	_, _, err = runCLI(t, "catalog", "-r", "rds")
	assert.Error(t, err)
}

func TestSchema(t *testing.T) {
	stdout, _, err := runCLI(t, "schema")
	require.NoError(t, err)
	assert.Contains(t, stdout, "resources")
}

func TestExpand(t *testing.T) {
	stdout, _, err := runCLI(t, "expand", "--resource", "dynamodb",
		"--identifier", "arn:aws:dynamodb:us-east-1:123456789012:table/Orders")
	require.NoError(t, err)
	assert.Equal(t, "arn:aws:dynamodb:us-east-1:123456789012:table/Orders\n"+
		"arn:aws:dynamodb:us-east-1:123456789012:table/Orders/*\n", stdout)

	_, _, err = runCLI(t, "expand", "--resource", "s3", "--identifier", "my-bucket")
	assert.Error(t, err)
}

func TestSimulate(t *testing.T) {
	doc := writeFile(t, "policy.json", `{"Version":"2012-10-17","Statement":[
		{"Effect":"Allow","Action":["sqs:SendMessage"],"Resource":"*"}]}`)

	stdout, _, err := runCLI(t, "simulate", "--policy", doc, "--action", "sqs:SendMessage", "--resource", "arn:aws:sqs:us-east-1:1:q")
	require.NoError(t, err)
	assert.Contains(t, stdout, "allowed by statement 0")

	stdout, _, err = runCLI(t, "simulate", "-p", doc, "-a", "sqs:DeleteQueue", "--resource", "arn:aws:sqs:us-east-1:1:q")
	require.NoError(t, err)
	assert.Contains(t, stdout, "denied")
}

func TestHelpFlag(t *testing.T) {
	_, stderr, err := runCLI(t, "generate", "--help")
	require.NoError(t, err)
	assert.Contains(t, stderr, "--selection")
}
