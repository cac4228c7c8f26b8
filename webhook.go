package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	tele "gopkg.in/telebot.v4"
)

// WebhookHandler is the single inbound endpoint. It accepts Telegram
// update payloads over POST and always answers 200 "OK" once the
// update reaches the bot, whatever the bot decided to do with it.
type WebhookHandler struct {
	bot *WildcardBot
}

func NewWebhookHandler(bot *WildcardBot) *WebhookHandler {
	return &WebhookHandler{bot: bot}
}

func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Println("[e] panic while handling update: " + fmt.Sprint(rec))
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
	}()

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var update tele.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	h.bot.ProcessUpdate(update)

	w.Write([]byte("OK"))
}
