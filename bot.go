package main

import (
	"log"
	"net/http"
	"strings"

	"github.com/samber/lo"
	tele "gopkg.in/telebot.v4"
)

// DomainRegistry is the remote, authoritative domain list. All three
// operations hit the provider directly; status codes come back raw.
type DomainRegistry interface {
	List() []string
	Register(hostname string) int
	Deregister(hostname string) int
}

type HostProber interface {
	Probe(hostname string) ProbeResult
}

var mdV2 = &tele.SendOptions{ParseMode: tele.ModeMarkdownV2}

const helpText = "Wildcard subdomain bot.\n\n" +
	"/add [subdomain]\n" +
	"Register subdomain." + rootDomain + " as a wildcard domain\n\n" +
	"/del [subdomain]\n" +
	"Remove a registered wildcard subdomain\n\n" +
	"/list\n" +
	"List all registered wildcard subdomains\n"

// WildcardBot wires Telegram command handlers to the domain registry
// and the liveness prober. It keeps no per-chat state; authorization is
// re-evaluated on every message.
type WildcardBot struct {
	bot      *tele.Bot
	registry DomainRegistry
	prober   HostProber
	ownerID  int64
}

func NewWildcardBot(bot *tele.Bot, registry DomainRegistry, prober HostProber, ownerID int64) *WildcardBot {
	w := &WildcardBot{
		bot:      bot,
		registry: registry,
		prober:   prober,
		ownerID:  ownerID,
	}

	bot.Handle("/start", w.sendHelp)
	bot.Handle("/help", w.sendHelp)
	bot.Handle("/add", w.processAddCommand)
	bot.Handle("/del", w.processDeleteCommand)
	bot.Handle("/list", w.processListCommand)

	return w
}

// ProcessUpdate dispatches one inbound update through the registered
// handlers, synchronously.
func (w *WildcardBot) ProcessUpdate(u tele.Update) {
	w.bot.ProcessUpdate(u)
}

func (w *WildcardBot) sendHelp(ctx tele.Context) error {
	return ctx.Send(helpText)
}

// authorize gates mutating commands on the configured owner chat. On
// mismatch it sends the denial message and the caller must stop before
// any registry call.
func (w *WildcardBot) authorize(ctx tele.Context) bool {
	if ctx.Chat().ID == w.ownerID {
		return true
	}
	if err := ctx.Send("⛔ You are not authorized to use this command."); err != nil {
		log.Println("[w] failed to send denial message: " + err.Error())
	}
	return false
}

func (w *WildcardBot) processAddCommand(ctx tele.Context) error {
	if !w.authorize(ctx) {
		return nil
	}

	args := ctx.Args()
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return nil
	}
	label := strings.TrimSpace(args[0])
	chat := tele.ChatID(ctx.Chat().ID)

	// Best effort: losing the loading message never aborts the flow.
	loading, err := w.bot.Send(chat, "⏳ Adding subdomain, please wait...")
	if err != nil {
		log.Println("[w] failed to send loading message: " + err.Error())
	}

	outcome := w.addSubdomain(label)

	if loading != nil {
		if err := w.bot.Delete(loading); err != nil {
			log.Println("[w] failed to delete loading message: " + err.Error())
		}
	}

	fullDomain := label + "." + rootDomain
	return ctx.Send(renderAddOutcome(outcome, fullDomain), mdV2)
}

// addSubdomain runs the duplicate check, the liveness probe and the
// registration in strict order; each step can short-circuit the rest.
// A failed probe deliberately maps to 400, same as malformed input.
func (w *WildcardBot) addSubdomain(label string) Outcome {
	domain := strings.ToLower(label + "." + rootDomain)
	if !strings.HasSuffix(domain, rootDomain) {
		return classifyAdd(http.StatusBadRequest)
	}

	if lo.Contains(w.registry.List(), domain) {
		return classifyAdd(http.StatusConflict)
	}

	switch w.prober.Probe(domain) {
	case ProbeInactive:
		return classifyAdd(statusHostInactive)
	case ProbeFailed:
		return classifyAdd(http.StatusBadRequest)
	}

	return classifyAdd(w.registry.Register(domain))
}

func (w *WildcardBot) processDeleteCommand(ctx tele.Context) error {
	if !w.authorize(ctx) {
		return nil
	}

	args := ctx.Args()
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return nil
	}
	label := strings.TrimSpace(args[0])

	domain := strings.ToLower(label + "." + rootDomain)
	outcome := classifyDelete(w.registry.Deregister(domain))

	fullDomain := label + "." + rootDomain
	return ctx.Send(renderDeleteOutcome(outcome, fullDomain), mdV2)
}

func (w *WildcardBot) processListCommand(ctx tele.Context) error {
	domains := w.registry.List()
	if len(domains) == 0 {
		return ctx.Send("*No subdomains registered yet.*", mdV2)
	}

	// The preview and the file are independent sends; a failure in one
	// must not block the other.
	if err := ctx.Send(renderListPreview(domains), mdV2); err != nil {
		log.Println("[e] failed to send subdomain list preview: " + err.Error())
	}

	doc := &tele.Document{
		File:     tele.FromReader(strings.NewReader(renderListFile(domains))),
		FileName: "wildcard-list.txt",
		MIME:     "text/plain",
	}
	return ctx.Send(doc)
}
