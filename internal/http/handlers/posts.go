package handlers

import (
	"errors"
	"net/http"

	"artgallery/internal/domain"
)

func (a *App) PostsCreate(w http.ResponseWriter, r *http.Request) {
	var draft domain.PostDraft
	if err := a.decode(w, r, &draft); err != nil {
		code, msg := decodeFailure(err)
		a.error(w, code, msg)
		return
	}
	post, err := a.Gallery.Create(r.Context(), draft)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			a.error(w, http.StatusBadRequest, domain.ValidationMessage(err))
			return
		}
		a.error(w, http.StatusInternalServerError, "Unable to create a post, please try again")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"success": true, "data": post})
}

func (a *App) PostsList(w http.ResponseWriter, r *http.Request) {
	posts, err := a.Gallery.List(r.Context())
	if err != nil {
		a.error(w, http.StatusInternalServerError, "Fetching posts failed, please try again")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"success": true, "data": posts})
}
