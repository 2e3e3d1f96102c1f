package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoughtspot/cs-tools-bootstrap/internal/doctor"
	"github.com/thoughtspot/cs-tools-bootstrap/internal/messages"
)

var runChecks = doctor.Run

func newDoctorCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   messages.DoctorUse,
		Short: messages.DoctorShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(ctx context.Context, a *app) error {
				out := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(out, messages.DoctorHealthCheckFmt, a.cfg.App.DisplayName, a.env.VenvDir)

				results := runChecks(ctx, doctor.Options{
					Config:    a.cfg,
					Env:       a.env,
					Inspector: a.inspector,
					PathList:  getenv("PATH"),
					Offline:   a.offline,
					Command:   messages.RootUse,
				})
				for _, r := range results {
					printResult(out, r)
				}

				if doctor.HasFailure(results) {
					_, _ = fmt.Fprintln(out, color.RedString(messages.DoctorFailureSummary))
					return &SilentExitError{Code: 1}
				}
				_, _ = fmt.Fprintln(out, color.GreenString(messages.DoctorSuccessSummary))
				return nil
			})
		},
	}
}

func printResult(out io.Writer, r doctor.Result) {
	var status string
	switch r.Status {
	case doctor.StatusOK:
		status = color.GreenString(messages.DoctorStatusOKLabel)
	case doctor.StatusWarn:
		status = color.YellowString(messages.DoctorStatusWarnLabel)
	case doctor.StatusFail:
		status = color.RedString(messages.DoctorStatusFailLabel)
	}

	_, _ = fmt.Fprintf(out, messages.DoctorResultLineFmt, status, r.CheckName, r.Message)
	if r.Recommendation != "" {
		printRecommendation(out, r.Recommendation)
	}
}

// printRecommendation renders a multi-line recommendation with consistent indentation.
func printRecommendation(out io.Writer, recommendation string) {
	lines := strings.Split(recommendation, "\n")
	for i, line := range lines {
		if i == 0 {
			_, _ = fmt.Fprintf(out, "%s%s\n", messages.DoctorRecommendationPrefix, line)
			continue
		}
		if line == "" {
			_, _ = fmt.Fprintf(out, "%s\n", messages.DoctorRecommendationIndent)
			continue
		}
		_, _ = fmt.Fprintf(out, "%s%s\n", messages.DoctorRecommendationIndent, line)
	}
}
