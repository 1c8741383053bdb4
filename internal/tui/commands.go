package tui

import "strings"

// CommandKind identifies what a submitted chat line asks for.
type CommandKind int

const (
	// CmdFeedback records the line as feedback.
	CmdFeedback CommandKind = iota
	CmdRun
	CmdAgents
	CmdBacklog
	CmdHistory
	CmdHelp
	CmdQuit
	// CmdUnknown is a slash command that is not recognized.
	CmdUnknown
)

// Command is a parsed chat line.
type Command struct {
	Kind CommandKind
	// Arg is the remainder after the command word, or the whole line for feedback.
	Arg string
}

var slashCommands = map[string]CommandKind{
	"/run":     CmdRun,
	"/agents":  CmdAgents,
	"/backlog": CmdBacklog,
	"/history": CmdHistory,
	"/help":    CmdHelp,
	"/quit":    CmdQuit,
	"/exit":    CmdQuit,
}

// ParseCommand routes a chat line. Lines not starting with "/" are feedback.
func ParseCommand(line string) Command {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "/") {
		return Command{Kind: CmdFeedback, Arg: line}
	}

	word, rest, _ := strings.Cut(line, " ")
	kind, ok := slashCommands[strings.ToLower(word)]
	if !ok {
		return Command{Kind: CmdUnknown, Arg: word}
	}
	return Command{Kind: kind, Arg: strings.TrimSpace(rest)}
}

const helpText = `Commands:
  /run <path>   scan a folder and stream the plan
  /agents       show the agent roster
  /backlog      show the prioritized backlog
  /history      show the evolution log
  /quit         leave the chat
Anything else is recorded as feedback.`
