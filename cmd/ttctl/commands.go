package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/arnavshah/lecturebot-api-go/pkg/auth"
	"github.com/arnavshah/lecturebot-api-go/pkg/catalog"
	"github.com/arnavshah/lecturebot-api-go/pkg/config"
	"github.com/arnavshah/lecturebot-api-go/pkg/models"
	"github.com/arnavshah/lecturebot-api-go/pkg/scheduler"
)

func newScheduleCommand(opts *rootOptions) *cobra.Command {
	var day, section string

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "List lectures for a day and section",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := opts.format()
			if err != nil {
				return err
			}
			s, err := opts.scheduler()
			if err != nil {
				return err
			}
			occs, err := s.Day(day, section)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			return render(out, format, occs, func() error {
				return printOccurrences(out, occs)
			})
		},
	}
	cmd.Flags().StringVarP(&day, "day", "d", "", "Weekday (default: whole week)")
	cmd.Flags().StringVarP(&section, "section", "s", "", "Section A or B")
	return cmd
}

func newNextCommand(opts *rootOptions) *cobra.Command {
	var day, at, section string

	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show the next lecture from a given time today",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := opts.format()
			if err != nil {
				return err
			}
			minutes, err := scheduler.ParseClock(at)
			if err != nil {
				return err
			}
			now, err := scheduler.CheckNow(models.NowContext{Weekday: day, Minutes: minutes})
			if err != nil {
				return err
			}
			s, err := opts.scheduler()
			if err != nil {
				return err
			}
			next, err := s.Next(now, section)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			return render(out, format, next, func() error {
				if next == nil {
					_, err := fmt.Fprintln(out, "No more lectures today")
					return err
				}
				o := next.Occurrence
				_, err := fmt.Fprintf(out, "%s (%s) at %s in %s with %s, %s\n",
					o.Title, o.CourseCode, next.Start, o.Room, orDash(o.Professor), next.TimeLeft)
				return err
			})
		},
	}
	cmd.Flags().StringVarP(&day, "day", "d", "", "Weekday")
	cmd.Flags().StringVar(&at, "at", "", "Time of day as HH:MM (24h)")
	cmd.Flags().StringVarP(&section, "section", "s", "", "Section A or B")
	_ = cmd.MarkFlagRequired("day")
	_ = cmd.MarkFlagRequired("at")
	return cmd
}

func newResolveCommand(opts *rootOptions) *cobra.Command {
	var cur, prev models.QueryCriteria

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve a conversational lookup against the timetable",
		Long: `Resolve a conversational lookup against the timetable.

Pass the current turn with --course, --professor, --section and --day. A
reply that only names a section is merged into the previous turn given
with the --prev-* flags.`,
		Example: `  ttctl resolve --course MCA-3003
  ttctl resolve --section A --prev-course MCA-3003`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := opts.format()
			if err != nil {
				return err
			}
			s, err := opts.scheduler()
			if err != nil {
				return err
			}
			criteria, res, err := s.Resolve(prev, cur)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			resp := models.ResolveResponse{Criteria: criteria, Resolution: res}
			return render(out, format, resp, func() error {
				if res.NeedsClarification {
					fmt.Fprintf(out, "%d matches across sections; which %s?\n", len(res.Matches), res.ClarifyOn)
				}
				return printOccurrences(out, res.Matches)
			})
		},
	}
	cmd.Flags().StringVar(&cur.CourseCode, "course", "", "Course code or title")
	cmd.Flags().StringVar(&cur.Professor, "professor", "", "Professor name or initials")
	cmd.Flags().StringVarP(&cur.Section, "section", "s", "", "Section A or B")
	cmd.Flags().StringVarP(&cur.Day, "day", "d", "", "Weekday")
	cmd.Flags().StringVar(&prev.CourseCode, "prev-course", "", "Previous turn's course")
	cmd.Flags().StringVar(&prev.Professor, "prev-professor", "", "Previous turn's professor")
	cmd.Flags().StringVar(&prev.Section, "prev-section", "", "Previous turn's section")
	cmd.Flags().StringVar(&prev.Day, "prev-day", "", "Previous turn's day")
	return cmd
}

func newValidateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check that a timetable document compiles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := opts.format()
			if err != nil {
				return err
			}
			doc, err := catalog.LoadFile(args[0])
			if err != nil {
				return err
			}
			s, err := scheduler.NewScheduler(doc)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			stats := map[string]int{
				"professor_count":  len(doc.Professors),
				"course_count":     len(doc.Courses),
				"rule_count":       len(doc.Rules),
				"occurrence_count": len(s.Occurrences),
			}
			return render(out, format, stats, func() error {
				_, err := fmt.Fprintf(out, "%s: ok (%d rules, %d occurrences)\n",
					args[0], len(doc.Rules), len(s.Occurrences))
				return err
			})
		},
	}
}

func newKeygenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen <userID>",
		Short: "Sign an API key with API_MASTER_SECRET",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()
			secret := os.Getenv("API_MASTER_SECRET")
			if secret == "" {
				return fmt.Errorf("API_MASTER_SECRET is not set")
			}
			if strings.Contains(args[0], ".") {
				return fmt.Errorf("user id must not contain '.'")
			}

			key := auth.New("", secret).GenerateKey(args[0])
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Generated Key for %s:\n%s\n", args[0], key)
			return err
		},
	}
}

func printOccurrences(w io.Writer, occs []models.Occurrence) error {
	if len(occs) == 0 {
		_, err := fmt.Fprintln(w, "No lectures found.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DAY\tSECTION\tTIME\tROOM\tCOURSE\tTITLE\tPROFESSOR")
	for _, o := range occs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			o.Day, o.Section, o.Time, o.Room, o.CourseCode, o.Title, orDash(o.Professor))
	}
	return tw.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
