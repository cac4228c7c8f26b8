package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/samber/lo"
)

type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeAlreadyExists
	OutcomeInactive
	OutcomeNotFound
	OutcomeMalformed
	OutcomeFailure
)

// Outcome is the tagged result of a mutating command. Status keeps the
// raw provider code so generic failures can surface it verbatim.
type Outcome struct {
	Kind   OutcomeKind
	Status int
}

// classifyAdd maps the status code produced by the add flow onto a
// tagged outcome. This is the only place add status codes are
// interpreted.
func classifyAdd(status int) Outcome {
	switch status {
	case http.StatusOK:
		return Outcome{OutcomeSuccess, status}
	case http.StatusConflict:
		return Outcome{OutcomeAlreadyExists, status}
	case statusHostInactive:
		return Outcome{OutcomeInactive, status}
	case http.StatusBadRequest:
		return Outcome{OutcomeMalformed, status}
	default:
		return Outcome{OutcomeFailure, status}
	}
}

func classifyDelete(status int) Outcome {
	switch status {
	case http.StatusOK:
		return Outcome{OutcomeSuccess, status}
	case http.StatusNotFound:
		return Outcome{OutcomeNotFound, status}
	default:
		return Outcome{OutcomeFailure, status}
	}
}

// mdV2Escaper escapes every character MarkdownV2 reserves.
var mdV2Escaper = strings.NewReplacer(
	"_", "\\_", "*", "\\*", "[", "\\[", "]", "\\]",
	"(", "\\(", ")", "\\)", "~", "\\~", "`", "\\`",
	">", "\\>", "#", "\\#", "+", "\\+", "=", "\\=",
	"|", "\\|", "{", "\\{", "}", "\\}", ".", "\\.",
	"!", "\\!", "\\", "\\\\", "-", "\\-",
)

func escapeMarkdownV2(text string) string {
	return mdV2Escaper.Replace(text)
}

func renderAddOutcome(o Outcome, fullDomain string) string {
	switch o.Kind {
	case OutcomeSuccess:
		return "```Wildcard\n" + escapeMarkdownV2(fullDomain) + " added successfully```"
	case OutcomeAlreadyExists:
		return "⚠️ Subdomain *" + escapeMarkdownV2(fullDomain) + "* already exists."
	case OutcomeInactive:
		return "❌ Subdomain *" + escapeMarkdownV2(fullDomain) + "* not active (error 530)."
	default:
		return fmt.Sprintf("❌ Failed to add *%s*, status: `%d`", escapeMarkdownV2(fullDomain), o.Status)
	}
}

func renderDeleteOutcome(o Outcome, fullDomain string) string {
	switch o.Kind {
	case OutcomeSuccess:
		return "```Wildcard\n" + escapeMarkdownV2(fullDomain) + " deleted successfully.```"
	case OutcomeNotFound:
		return "⚠️ Subdomain *" + escapeMarkdownV2(fullDomain) + "* not found."
	default:
		return fmt.Sprintf("❌ Failed to delete *%s*, status: `%d`", escapeMarkdownV2(fullDomain), o.Status)
	}
}

func renderListPreview(domains []string) string {
	lines := lo.Map(domains, func(d string, i int) string {
		return fmt.Sprintf("%d\\. %s", i+1, escapeMarkdownV2(d))
	})

	plural := "subdomain"
	if len(domains) > 1 {
		plural = "subdomains"
	}
	return "```List-Wildcard\n" + strings.Join(lines, "\n") + "```" +
		fmt.Sprintf("\n\nTotal: *%d* %s", len(domains), plural)
}

func renderListFile(domains []string) string {
	lines := lo.Map(domains, func(d string, i int) string {
		return fmt.Sprintf("%d. %s", i+1, d)
	})
	return strings.Join(lines, "\n")
}
