package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/blaze/backend/internal/middleware"
	"github.com/blaze/backend/internal/models"
	"github.com/blaze/backend/internal/paging"
	"github.com/blaze/backend/internal/services"
	"github.com/blaze/backend/internal/web"
)

type VideoService interface {
	Create(ownerID string, fields models.VideoFields) (*models.Video, error)
	GetOwned(id, ownerID string) (*models.Video, error)
	List(req paging.Request) (*services.VideoList, error)
	UpdateFields(id, ownerID string, fields models.VideoFields) (*models.Video, error)
	Delete(id, ownerID string) error
}

type VideoHandler struct {
	videos VideoService
	render *web.Renderer
}

func NewVideoHandler(videos VideoService, render *web.Renderer) *VideoHandler {
	return &VideoHandler{videos: videos, render: render}
}

type videoListPage struct {
	*services.VideoList
	Pages []int
}

func (h *VideoHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	if err := r.ParseForm(); err != nil {
		web.FlashError(w, "Something went wrong!")
		http.Redirect(w, r, "/adminPanel", http.StatusSeeOther)
		return
	}

	fields := models.VideoFields{
		Title:   r.PostFormValue("title"),
		VideoID: r.PostFormValue("videoID"),
	}
	if errs := fields.Validate(); len(errs) > 0 {
		web.FlashError(w, firstError(errs))
		http.Redirect(w, r, "/adminPanel", http.StatusSeeOther)
		return
	}

	if _, err := h.videos.Create(user.ID, fields); err != nil {
		web.FlashError(w, "Something went wrong!")
		http.Redirect(w, r, "/adminPanel", http.StatusSeeOther)
		return
	}

	web.FlashSuccess(w, "Successfully added video.")
	http.Redirect(w, r, "/adminPanel", http.StatusSeeOther)
}

func (h *VideoHandler) Edit(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	video, err := h.videos.GetOwned(chi.URLParam(r, "id"), user.ID)
	if err != nil {
		if errors.Is(err, services.ErrVideoNotFound) {
			web.FlashError(w, "Video not found!")
		} else {
			web.FlashError(w, "Something went wrong!")
		}
		http.Redirect(w, r, "/gallery/videos", http.StatusSeeOther)
		return
	}

	h.render.Render(w, r, http.StatusOK, "admin-editVideo", currentUserView(r), video)
}

func (h *VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	req, err := paging.Parse(r.URL.Query(), paging.DefaultVideos)
	if err != nil {
		web.FlashError(w, err.Error())
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	list, err := h.videos.List(req)
	if err != nil {
		web.FlashError(w, "Something went wrong!")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.render.Render(w, r, http.StatusOK, "video", currentUserView(r), videoListPage{
		VideoList: list,
		Pages:     paging.Pages(list.TotalPages),
	})
}

func (h *VideoHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	if err := r.ParseForm(); err != nil {
		web.FlashError(w, "Something went wrong!")
		http.Redirect(w, r, "/gallery/videos", http.StatusSeeOther)
		return
	}
	if !models.VideoUpdates.Allows(formKeys(r.PostForm)) {
		web.FlashError(w, "Invalid updates!")
		http.Redirect(w, r, "/gallery/videos", http.StatusSeeOther)
		return
	}

	video, err := h.videos.GetOwned(chi.URLParam(r, "id"), user.ID)
	if err != nil {
		if errors.Is(err, services.ErrVideoNotFound) {
			web.FlashError(w, "Video not found!")
		} else {
			web.FlashError(w, "Something went wrong!")
		}
		http.Redirect(w, r, "/gallery/videos", http.StatusSeeOther)
		return
	}

	fields := models.VideoFields{Title: video.Title, VideoID: video.VideoID}
	if r.PostForm.Has("title") {
		fields.Title = r.PostFormValue("title")
	}
	if r.PostForm.Has("videoID") {
		fields.VideoID = r.PostFormValue("videoID")
	}
	if errs := fields.Validate(); len(errs) > 0 {
		web.FlashError(w, firstError(errs))
		http.Redirect(w, r, "/gallery/videos", http.StatusSeeOther)
		return
	}

	if _, err := h.videos.UpdateFields(video.ID, user.ID, fields); err != nil {
		if errors.Is(err, services.ErrVideoNotFound) {
			web.FlashError(w, "Video not found!")
		} else {
			web.FlashError(w, "Something went wrong!")
		}
		http.Redirect(w, r, "/gallery/videos", http.StatusSeeOther)
		return
	}

	web.FlashSuccess(w, "Successfully updated video.")
	http.Redirect(w, r, "/gallery/videos", http.StatusSeeOther)
}

func (h *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	if err := h.videos.Delete(chi.URLParam(r, "id"), user.ID); err != nil {
		if errors.Is(err, services.ErrVideoNotFound) {
			web.FlashError(w, "Video not found!")
		} else {
			web.FlashError(w, "Something went wrong!")
		}
		http.Redirect(w, r, "/gallery/videos", http.StatusSeeOther)
		return
	}

	web.FlashSuccess(w, "Successfully deleted video.")
	http.Redirect(w, r, "/gallery/videos", http.StatusSeeOther)
}
