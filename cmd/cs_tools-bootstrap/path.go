package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoughtspot/cs-tools-bootstrap/internal/messages"
	"github.com/thoughtspot/cs-tools-bootstrap/internal/pathreg"
)

// previewer is implemented by registrars that can show their edits first.
type previewer interface {
	Preview(op pathreg.Op) ([]pathreg.ProfileDiff, error)
}

func newPathCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   messages.PathUse,
		Short: messages.PathShort,
	}
	cmd.AddCommand(
		newPathOpCmd(flags, messages.PathAddUse, messages.PathAddShort, pathreg.OpAdd),
		newPathOpCmd(flags, messages.PathUnsetUse, messages.PathUnsetShort, pathreg.OpUnset),
	)
	return cmd
}

func newPathOpCmd(flags *globalFlags, use string, short string, op pathreg.Op) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(ctx context.Context, a *app) error {
				out := cmd.OutOrStdout()
				if dryRun {
					return previewPath(out, a.path, op)
				}
				if op == pathreg.OpAdd {
					if err := a.ops.AddPath(ctx); err != nil {
						return err
					}
					_, _ = fmt.Fprintf(out, messages.PathDoneFmt, messages.PathDoneAdded, a.path.BinDir())
					return nil
				}
				if err := a.ops.UnsetPath(ctx); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(out, messages.PathDoneFmt, messages.PathDoneRemoved, a.path.BinDir())
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, messages.PathDryRunUsage)
	return cmd
}

// previewPath prints the unified diff of every profile op would touch.
func previewPath(out io.Writer, reg pathreg.Registrar, op pathreg.Op) error {
	p, ok := reg.(previewer)
	if !ok {
		return fmt.Errorf(messages.PathDryRunUnsupportedFmt, fmt.Sprintf("%T", reg))
	}
	diffs, err := p.Preview(op)
	if err != nil {
		return err
	}
	if len(diffs) == 0 {
		_, _ = fmt.Fprintln(out, messages.PathDryRunNone)
		return nil
	}
	for _, d := range diffs {
		if d.Created {
			_, _ = fmt.Fprintf(out, messages.PathDryRunCreatedFmt, d.Path)
		}
		if d.Diff == "" {
			_, _ = fmt.Fprintf(out, messages.PathDryRunNoChangesFmt, d.Path)
			continue
		}
		_, _ = fmt.Fprint(out, colorizeDiff(d.Diff))
	}
	return nil
}

// colorizeDiff tints added and removed lines of a unified diff.
func colorizeDiff(diff string) string {
	lines := strings.Split(diff, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		case strings.HasPrefix(line, "+"):
			lines[i] = color.GreenString("%s", line)
		case strings.HasPrefix(line, "-"):
			lines[i] = color.RedString("%s", line)
		}
	}
	return strings.Join(lines, "\n")
}
