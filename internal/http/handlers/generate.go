package handlers

import (
	"net/http"

	"artgallery/internal/middleware"
)

type generateRequest struct {
	Prompt string `json:"prompt"`
}

// Generate proxies a prompt to the image provider. Status and body come
// straight from the proxy so provider rejections keep their status code.
func (a *App) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := a.decode(w, r, &req); err != nil {
		code, msg := decodeFailure(err)
		a.json(w, code, map[string]string{"error": msg})
		return
	}
	a.Logger.Info().
		Str("request_id", middleware.RequestIDFromContext(r.Context())).
		Int("prompt_len", len(req.Prompt)).
		Msg("generate: request received")
	resp := a.Proxy.Handle(r.Context(), req.Prompt)
	a.json(w, resp.Status, resp.Body)
}
