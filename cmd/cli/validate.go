package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hamed0406/endpointwatch/internal/endpoint"
)

var validateOpts struct {
	minItems int
}

var validateCmd = &cobra.Command{
	Use:   "validate [endpoints file]",
	Short: "Parse an endpoints file and list its tree",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file := cfg.EndpointsFile
		if len(args) == 1 {
			file = args[0]
		}
		return runValidate(cmd.OutOrStdout(), file)
	},
}

func init() {
	validateCmd.Flags().IntVar(&validateOpts.minItems, "min-items", cfg.MinItems, "minimum number of top-level endpoints")
}

func runValidate(out io.Writer, file string) error {
	specs, err := endpoint.Load(file)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tFORMAT\tRULE\tPATH")
	printTree(w, specs, 0)
	w.Flush()

	_, problems, enough := endpoint.Screen(specs, validateOpts.minItems)
	fmt.Fprintf(out, "\n%d endpoints, %d top-level\n", endpoint.Count(specs), len(specs))
	for _, p := range problems {
		fmt.Fprintln(out, p)
	}
	if len(problems) > 0 || !enough {
		return fmt.Errorf("%s is not usable: %d problems, %d top-level endpoints (min %d)",
			file, len(problems), len(specs)-len(problems), validateOpts.minItems)
	}
	return nil
}

func printTree(w io.Writer, specs []endpoint.Spec, depth int) {
	for _, s := range specs {
		fmt.Fprintf(w, "%s%s\t%s\t%s\t%s\n", strings.Repeat("  ", depth), s.Name, s.Format, ruleText(s.Rule), s.Path)
		printTree(w, s.More, depth+1)
	}
}

func ruleText(r endpoint.Rule) string {
	switch r := r.(type) {
	case endpoint.MatchPattern:
		return "regx " + r.Pattern
	case endpoint.HasKey:
		return "keys " + r.Key
	default:
		return "-"
	}
}
