package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/iam-policy-generator/internal/catalog"
)

func runCatalog(_ context.Context, args []string, stdout, stderr io.Writer) error {
	flags := newFlagSet("catalog", stderr)
	resourceID := flags.StringP("resource", "r", "", "list the actions of this resource")
	asJSON := flags.Bool("json", false, "print JSON instead of a table")
	if err := flags.Parse(args); err != nil {
		return err
	}

	cat := catalog.Default()

	if *resourceID == "" {
		resources := cat.Resources()
		if *asJSON {
			return writeJSON(stdout, resources)
		}
		tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tACTIONS")
		for _, r := range resources {
			fmt.Fprintf(tw, "%s\t%s\t%d\n", r.ID, r.Name, len(cat.ActionsFor(r.ID)))
		}
		return tw.Flush()
	}

	if _, ok := cat.Resource(*resourceID); !ok {
		return fmt.Errorf("unknown resource %q", *resourceID)
	}

	actions := cat.ActionsFor(*resourceID)
	if *asJSON {
		return writeJSON(stdout, actions)
	}
	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCATEGORY\tPERMISSIONS\tDEPENDS ON")
	for _, a := range actions {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", a.ID, a.Category,
			strings.Join(a.Permissions, ","), strings.Join(a.DependsOn, ","))
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
