package handlers

import (
	"net/http"

	"artgallery/pkg/prompts"
)

// PromptRandom serves a surprise-me prompt, avoiding the one passed as ?current=.
func (a *App) PromptRandom(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{"prompt": prompts.Random(r.URL.Query().Get("current"))})
}
