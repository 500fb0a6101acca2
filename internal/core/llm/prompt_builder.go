package llm

import (
	"fmt"
	"strings"
)

// DashboardContext is what the assistant knows about the screen in front of
// the user.
type DashboardContext struct {
	UserName string
	Role     string
	Overview string
	Headline string
	Cards    []string
	Metrics  []string
}

// BuildSystemPrompt renders the assistant instructions for ctx
func BuildSystemPrompt(ctx DashboardContext) string {
	var sb strings.Builder

	sb.WriteString("You are the analytics assistant of the Clarity insights dashboard.\n")
	if ctx.Role != "" {
		sb.WriteString(fmt.Sprintf("You are talking to %s, who is viewing the dashboard as %s.\n\n", ctx.UserName, ctx.Role))
	}

	if ctx.Overview != "" {
		sb.WriteString("=== OVERVIEW ===\n")
		sb.WriteString(ctx.Overview + "\n\n")
	}
	if ctx.Headline != "" {
		sb.WriteString("=== HEADLINE ===\n")
		sb.WriteString(ctx.Headline + "\n\n")
	}
	if len(ctx.Cards) > 0 {
		sb.WriteString("=== INSIGHTS ===\n")
		for _, c := range ctx.Cards {
			sb.WriteString("- " + c + "\n")
		}
		sb.WriteString("\n")
	}
	if len(ctx.Metrics) > 0 {
		sb.WriteString("=== KEY METRICS ===\n")
		for _, m := range ctx.Metrics {
			sb.WriteString("- " + m + "\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Instructions:\n")
	sb.WriteString("- Answer briefly and professionally\n")
	sb.WriteString("- Use only the information above\n")
	sb.WriteString("- If you do not know, say so\n")

	return sb.String()
}
