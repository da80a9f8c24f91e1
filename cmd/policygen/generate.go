package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/iam-policy-generator/internal/audit"
	"github.com/iam-policy-generator/internal/catalog"
	"github.com/iam-policy-generator/internal/config"
	"github.com/iam-policy-generator/internal/output"
	"github.com/iam-policy-generator/internal/policy"
)

func runGenerate(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	flags := newFlagSet("generate", stderr)
	selectionPath := flags.StringP("selection", "s", "", "selection file (YAML or JSON)")
	configPath := flags.StringP("config", "c", "", "generator configuration file")
	format := flags.StringP("format", "f", "", "output format: json or yaml")
	indent := flags.Int("indent", -1, "spaces per indentation level (0 for compact JSON)")
	out := flags.StringP("out", "o", "", "destination: '-' for stdout, a file path, or s3://bucket/key")
	summary := flags.Bool("summary", false, "print a policy summary to stderr")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if err := requireFlags(flags, "selection"); err != nil {
		return err
	}

	cfg := config.DefaultGeneratorConfig()
	if *configPath != "" {
		loaded, err := config.LoadGeneratorConfig(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if *format != "" {
		cfg.Output.Format = *format
	}
	if *indent >= 0 {
		cfg.Output.Indent = *indent
	}
	if err := output.ApplyDestination(&cfg.Output, *out); err != nil {
		return err
	}

	auditLogger, err := audit.NewLogger(&cfg.Audit)
	if err != nil {
		return err
	}
	defer auditLogger.Close()

	startTime := time.Now()
	requestID := uuid.New().String()
	cat := catalog.Default()

	fail := func(err error) error {
		auditLogger.Log(audit.NewErrorEntry(requestID, "", "cli", err.Error(), time.Since(startTime), 0))
		return err
	}

	file, err := config.LoadSelection(*selectionPath)
	if err != nil {
		return fail(err)
	}
	sel, err := policy.SelectionFromConfig(cat, file)
	if err != nil {
		return fail(err)
	}

	doc := policy.Generate(cat, sel)
	var statements []policy.Statement
	if doc != nil {
		statements = doc.Statement
	}
	sum := policy.Summarize(cat, sel, statements)

	var actionIDs []string
	for _, resourceID := range sel.SelectedResources() {
		actionIDs = append(actionIDs, sel.SelectedActionIDs(resourceID)...)
	}
	auditLogger.Log(audit.NewGenerationEntry(requestID, "", "cli", sel.SelectedResources(), actionIDs,
		sum.Statements, sum.PermissionCodes, string(sum.Scope), time.Since(startTime)))

	if *summary {
		fmt.Fprintf(stderr, "actions: %d  permissions: %d  statements: %d  resources: %s\n",
			sum.SelectedActions, sum.PermissionCodes, sum.Statements, sum.Scope)
	}

	if doc == nil {
		fmt.Fprintln(stderr, "no actions selected, nothing to grant")
		return nil
	}

	body, err := output.Encode(doc, cfg.Output.Format, cfg.Output.Indent)
	if err != nil {
		return err
	}

	var sink output.Sink = output.NewStdoutSink(stdout)
	if cfg.Output.Destination != "stdout" {
		sink, err = output.NewSink(ctx, cfg)
		if err != nil {
			return err
		}
	}
	if err := sink.Write(ctx, "", body); err != nil {
		return err
	}

	switch cfg.Output.Destination {
	case "file":
		log.Printf("Wrote policy to %s", cfg.Output.FilePath)
	case "s3":
		log.Printf("Uploaded policy to s3://%s/%s", cfg.Output.Bucket, cfg.Output.Key)
	}
	return nil
}
