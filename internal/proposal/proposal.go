// Package proposal renders a blueprint as a pull-request style change proposal.
package proposal

import (
	"fmt"
	"strings"

	"github.com/ShayCichocki/agentbuilder/pkg/models"
)

// DefaultAmendmentSlice is the number of backlog tickets one proposal carries.
const DefaultAmendmentSlice = 2

// NoFeedbackTicketsNote follows the amendment slice header when the slice
// holds only baseline FEAT-NNN items. Feedback tickets use the TKT-NNN
// series, so a run with no recorded feedback shows no TKT lines.
const NoFeedbackTicketsNote = "_No feedback tickets yet: baseline FEAT items fill this slice. Recorded feedback is tracked as TKT-NNN and takes precedence._"

// Renderer drafts proposals. It holds no per-draft state.
type Renderer struct {
	sliceSize int
}

// New creates a Renderer whose amendment slice holds at most sliceSize tickets.
// Non-positive sizes fall back to DefaultAmendmentSlice.
func New(sliceSize int) *Renderer {
	if sliceSize <= 0 {
		sliceSize = DefaultAmendmentSlice
	}
	return &Renderer{sliceSize: sliceSize}
}

// Draft renders the blueprint. The title is returned separately and never
// appears in the body.
func (r *Renderer) Draft(bp *models.Blueprint) *models.Proposal {
	var body strings.Builder

	body.WriteString("## Objective\n")
	body.WriteString(bp.Summary + "\n")

	writeSection(&body, "## Scope", bp.Capabilities)
	writeSection(&body, "## Architecture", bp.Architecture)
	writeSection(&body, "## Prioritized Backlog (Important Features)", bp.Backlog)

	slice := bp.Backlog
	if len(slice) > r.sliceSize {
		slice = slice[:r.sliceSize]
	}
	sliceHeader := fmt.Sprintf("## Amendment Ticket Slice (Max %d per PR)", r.sliceSize)
	if !hasFeedbackTicket(slice) {
		sliceHeader += "\n" + NoFeedbackTicketsNote
	}
	writeSection(&body, sliceHeader, slice)
	writeSection(&body, "## Validation", bp.Tests)

	return &models.Proposal{
		Title: "feat: bootstrap " + strings.ToLower(bp.Title),
		Body:  strings.TrimRight(body.String(), "\n"),
	}
}

func hasFeedbackTicket(lines []string) bool {
	for _, l := range lines {
		if strings.HasPrefix(l, models.TicketPrefix) {
			return true
		}
	}
	return false
}

// writeSection appends a blank separator line, the header, and one bullet per item.
func writeSection(b *strings.Builder, header string, items []string) {
	b.WriteString("\n" + header + "\n")
	if len(items) == 0 {
		b.WriteString("- none\n")
		return
	}
	for _, item := range items {
		b.WriteString("- " + item + "\n")
	}
}
