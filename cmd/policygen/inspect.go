package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/iam-policy-generator/internal/arn"
	"github.com/iam-policy-generator/internal/config"
	"github.com/iam-policy-generator/internal/policy"
)

func runSchema(_ context.Context, args []string, stdout, stderr io.Writer) error {
	flags := newFlagSet("schema", stderr)
	if err := flags.Parse(args); err != nil {
		return err
	}

	schema, err := config.SelectionSchema()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, string(schema))
	return err
}

func runExpand(_ context.Context, args []string, stdout, stderr io.Writer) error {
	flags := newFlagSet("expand", stderr)
	flags.StringP("resource", "r", "", "catalog resource id, e.g. s3")
	flags.StringP("identifier", "i", "", "ARN to expand")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if err := requireFlags(flags, "resource", "identifier"); err != nil {
		return err
	}
	resourceID, _ := flags.GetString("resource")
	identifier, _ := flags.GetString("identifier")

	if !arn.IsValid(identifier) {
		return fmt.Errorf("%q is not a valid ARN", identifier)
	}
	for _, pattern := range arn.Expand(resourceID, strings.TrimSpace(identifier)) {
		fmt.Fprintln(stdout, pattern)
	}
	return nil
}

func runSimulate(_ context.Context, args []string, stdout, stderr io.Writer) error {
	flags := newFlagSet("simulate", stderr)
	flags.StringP("policy", "p", "", "policy document (JSON or YAML)")
	flags.StringP("action", "a", "", "IAM action code, e.g. s3:GetObject")
	flags.String("resource", "", "resource ARN")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if err := requireFlags(flags, "policy", "action", "resource"); err != nil {
		return err
	}
	policyPath, _ := flags.GetString("policy")
	action, _ := flags.GetString("action")
	resource, _ := flags.GetString("resource")

	data, err := os.ReadFile(policyPath)
	if err != nil {
		return fmt.Errorf("failed to read policy file: %w", err)
	}
	doc, err := policy.ParseDocument(data)
	if err != nil {
		return err
	}

	decision := doc.Evaluate(action, resource)
	if decision.Allowed {
		fmt.Fprintf(stdout, "allowed by statement %d\n", decision.Statement)
	} else {
		fmt.Fprintln(stdout, "denied: no statement matches")
	}
	return nil
}
