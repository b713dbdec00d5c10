package handlers

import (
	"net/http"
)

const helloMessage = "Hello from Stability AI Image Generator!"

func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) Hello(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{"message": helloMessage})
}
