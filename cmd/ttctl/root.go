package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/arnavshah/lecturebot-api-go/pkg/catalog"
	"github.com/arnavshah/lecturebot-api-go/pkg/scheduler"
)

// OutputFormat selects how results are printed
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

type rootOptions struct {
	timetable string
	output    string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "ttctl",
		Short: "Query the MCA lecture timetable",
		Long: `Query the MCA lecture timetable.

ttctl compiles the built-in term timetable, or a YAML document passed with
--timetable, and answers the same questions the API does: a day's lectures,
the next lecture from a given time, and conversational lookups by course,
professor, section and day.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.timetable, "timetable", "", "Timetable YAML file (default: built-in term)")
	cmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "text", "Output format: text, json, yaml")

	cmd.AddCommand(
		newScheduleCommand(opts),
		newNextCommand(opts),
		newResolveCommand(opts),
		newValidateCommand(opts),
		newKeygenCommand(),
	)
	return cmd
}

func (o *rootOptions) format() (OutputFormat, error) {
	switch f := OutputFormat(o.output); f {
	case OutputFormatText, OutputFormatJSON, OutputFormatYAML:
		return f, nil
	case "":
		return OutputFormatText, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", o.output)
	}
}

func (o *rootOptions) scheduler() (*scheduler.Scheduler, error) {
	doc, err := catalog.Load(o.timetable)
	if err != nil {
		return nil, err
	}
	return scheduler.NewScheduler(doc)
}

// render prints data as JSON or YAML, or calls text for the default format
func render(w io.Writer, format OutputFormat, data any, text func() error) error {
	switch format {
	case OutputFormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case OutputFormatYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(data)
	default:
		return text()
	}
}
