package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/specialistvlad/codeshape/internal/fsutil"
)

func newPlanCmd(rt *runtime) *cobra.Command {
	var in sourceFlags
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the instructions that would reconcile the source",
		Long: `The plan command generates the instruction list for every definition and
prints it as JSON without touching the source file. Definitions from a
directory are applied in lexical order, each against the result of the
previous ones.`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			plans, err := rt.app.Plan(cmd.Context(), in.source, in.definition)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(plans)
		},
	}
	in.register(cmd)
	return cmd
}

func newApplyCmd(rt *runtime) *cobra.Command {
	var (
		in    sourceFlags
		write bool
	)
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Reconcile the source and print or write the result",
		Long: `The apply command generates and applies the instructions for every
definition. The reconciled source is printed to stdout, or written back to
the source file with --write.`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := rt.app.Reconcile(cmd.Context(), in.source, in.definition)
			if err != nil {
				return err
			}
			out := res.Source
			if out != "" && !strings.HasSuffix(out, "\n") {
				out += "\n"
			}
			if !write {
				_, err := fmt.Fprint(cmd.OutOrStdout(), out)
				return err
			}
			if !res.Changed() {
				rt.app.Logger().Info("Source already satisfies every definition.", "source", in.source)
				return nil
			}
			if err := fsutil.WriteFileAtomic(in.source, []byte(out), 0o644); err != nil {
				return errors.Wrapf(err, "write %s", in.source)
			}
			rt.app.Logger().Info("Source written.", "source", in.source)
			return nil
		},
	}
	in.register(cmd)
	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the result back to the source file instead of printing it.")
	return cmd
}
