package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"go.yaml.in/yaml/v3"

	"github.com/ShayCichocki/agentbuilder/internal/orchestrator"
	"github.com/ShayCichocki/agentbuilder/pkg/models"
)

const (
	formatText = "text"
	formatYAML = "yaml"
)

// resolveFormat lets a --format flag override the configured output format.
func resolveFormat(flagValue, configured string) (string, error) {
	format := configured
	if flagValue != "" {
		format = flagValue
	}
	switch strings.ToLower(format) {
	case "", formatText:
		return formatText, nil
	case formatYAML:
		return formatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text or yaml)", format)
	}
}

// writeResult prints a finished run.
func writeResult(w io.Writer, res *orchestrator.Result, format string) error {
	if format == formatYAML {
		return writeYAML(w, res)
	}

	bold := color.New(color.Bold)
	fmt.Fprintln(w, bold.Sprint(res.Title))
	fmt.Fprintln(w, res.Summary)
	fmt.Fprintln(w)
	printStatus(w, "🎯", res.Decision, color.FgCyan)
	printStatus(w, "🔎", res.Scope, color.FgCyan)
	printStatus(w, "🤖", "Newly created agents: "+res.CreatedAgents, color.FgCyan)
	fmt.Fprintln(w)
	fmt.Fprintln(w, bold.Sprint("Chat log"))
	fmt.Fprintln(w, res.Transcript())
	fmt.Fprintln(w)
	fmt.Fprintln(w, bold.Sprint(res.ProposalTitle))
	fmt.Fprintln(w)
	fmt.Fprintln(w, res.ProposalBody)
	return nil
}

// backlogReport is the yaml shape of the feedback command's output.
type backlogReport struct {
	Suggestions []string `yaml:"suggestions"`
	Backlog     []string `yaml:"backlog"`
	History     []string `yaml:"history,omitempty"`
}

func newBacklogReport(suggestions []string, items []models.BacklogItem, history []models.LogEntry) backlogReport {
	r := backlogReport{Suggestions: suggestions}
	for _, item := range items {
		r.Backlog = append(r.Backlog, item.Line())
	}
	for _, h := range history {
		r.History = append(r.History, h.String())
	}
	return r
}

// writeBacklog prints triage suggestions and the prioritized backlog.
func writeBacklog(w io.Writer, r backlogReport, format string) error {
	if format == formatYAML {
		return writeYAML(w, r)
	}

	for _, s := range r.Suggestions {
		printStatus(w, "✓", s, color.FgGreen)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, color.New(color.Bold).Sprint("Backlog"))
	if len(r.Backlog) == 0 {
		fmt.Fprintln(w, "  (empty)")
	}
	for _, line := range r.Backlog {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if len(r.History) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, color.New(color.Bold).Sprint("History"))
		for _, line := range r.History {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
	return nil
}

// writeRoster prints the agent registry roster.
func writeRoster(w io.Writer, roster []models.AgentStatus, format string) error {
	if format == formatYAML {
		return writeYAML(w, roster)
	}
	for _, s := range roster {
		attr := color.FgYellow
		if s.Active {
			attr = color.FgGreen
		}
		printStatus(w, "●", fmt.Sprintf("%-10s %-6s %s", s.Name, s.State(), s.Description), attr)
	}
	return nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
