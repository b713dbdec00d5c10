package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"artgallery/internal/domain"
	"artgallery/internal/generation"
	"artgallery/internal/infra"
)

// GenerateProxy turns a prompt into a transport response.
type GenerateProxy interface {
	Handle(ctx context.Context, prompt string) generation.Response
}

// Gallery is the query service behind the post endpoints.
type Gallery interface {
	Create(ctx context.Context, draft domain.PostDraft) (*domain.Post, error)
	List(ctx context.Context) ([]domain.Post, error)
}

// App bundles the dependencies shared by all handlers.
type App struct {
	Proxy     GenerateProxy
	Gallery   Gallery
	Logger    infra.Logger
	BodyLimit int64
}

func NewApp(proxy GenerateProxy, gallery Gallery, logger infra.Logger, bodyLimit int64) *App {
	return &App{Proxy: proxy, Gallery: gallery, Logger: logger, BodyLimit: bodyLimit}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, msg string) {
	a.json(w, code, map[string]any{"success": false, "error": msg})
}

// decode reads a JSON body capped at BodyLimit.
func (a *App) decode(w http.ResponseWriter, r *http.Request, v any) error {
	body := r.Body
	if a.BodyLimit > 0 {
		body = http.MaxBytesReader(w, r.Body, a.BodyLimit)
	}
	return json.NewDecoder(body).Decode(v)
}

func decodeFailure(err error) (int, string) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge, "payload too large"
	}
	return http.StatusBadRequest, "invalid payload"
}
