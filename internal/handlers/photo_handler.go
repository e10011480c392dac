package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/blaze/backend/internal/middleware"
	"github.com/blaze/backend/internal/models"
	"github.com/blaze/backend/internal/paging"
	"github.com/blaze/backend/internal/services"
	"github.com/blaze/backend/internal/upload"
	"github.com/blaze/backend/internal/web"
)

type PhotoService interface {
	CreateMany(ownerID string, pics [][]byte) ([]models.Photo, error)
	GetOwned(id, ownerID string) (*models.Photo, error)
	List(req paging.Request) (*services.PhotoList, error)
	UpdatePic(id, ownerID string, pic []byte) error
	Delete(id, ownerID string) error
	GetPic(id string) ([]byte, error)
}

type PhotoHandler struct {
	photos  PhotoService
	uploads *upload.Processor
	render  *web.Renderer
}

func NewPhotoHandler(photos PhotoService, uploads *upload.Processor, render *web.Renderer) *PhotoHandler {
	return &PhotoHandler{photos: photos, uploads: uploads, render: render}
}

type photoListPage struct {
	*services.PhotoList
	Pages []int
}

// Create accepts up to ten gallery images in one request. All files are
// validated before any is transformed or persisted.
func (h *PhotoHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)
	if err := r.ParseMultipartForm(maxUploadBody); err != nil {
		web.FlashError(w, "File too large or invalid form data")
		http.Redirect(w, r, "/adminPanel", http.StatusSeeOther)
		return
	}

	files := r.MultipartForm.File["pic"]
	if len(files) == 0 {
		web.FlashError(w, "Please upload a image.")
		http.Redirect(w, r, "/adminPanel", http.StatusSeeOther)
		return
	}

	pics, err := h.uploads.ProcessAll(files, upload.PhotoTarget)
	if err != nil {
		web.FlashError(w, uploadErrorMessage(err))
		http.Redirect(w, r, "/adminPanel", http.StatusSeeOther)
		return
	}

	if _, err := h.photos.CreateMany(user.ID, pics); err != nil {
		web.FlashError(w, "Something went wrong!")
		http.Redirect(w, r, "/adminPanel", http.StatusSeeOther)
		return
	}

	web.FlashSuccess(w, "Successfully added.")
	http.Redirect(w, r, "/adminPanel", http.StatusSeeOther)
}

func (h *PhotoHandler) Edit(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	photo, err := h.photos.GetOwned(chi.URLParam(r, "id"), user.ID)
	if err != nil {
		if errors.Is(err, services.ErrPhotoNotFound) {
			web.FlashError(w, "Photo not found!")
		} else {
			web.FlashError(w, "Something went wrong!")
		}
		http.Redirect(w, r, "/gallery/photos", http.StatusSeeOther)
		return
	}

	h.render.Render(w, r, http.StatusOK, "admin-editPhoto", currentUserView(r), photo)
}

func (h *PhotoHandler) List(w http.ResponseWriter, r *http.Request) {
	req, err := paging.Parse(r.URL.Query(), paging.DefaultPhotos)
	if err != nil {
		web.FlashError(w, err.Error())
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	list, err := h.photos.List(req)
	if err != nil {
		web.FlashError(w, "Something went wrong!")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.render.Render(w, r, http.StatusOK, "photo", currentUserView(r), photoListPage{
		PhotoList: list,
		Pages:     paging.Pages(list.TotalPages),
	})
}

func (h *PhotoHandler) UpdatePic(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	fh, ok := singleUpload(w, r, "pic", "/gallery/photos")
	if !ok {
		return
	}

	pic, err := h.uploads.Process(fh, upload.PhotoTarget)
	if err != nil {
		web.FlashError(w, uploadErrorMessage(err))
		http.Redirect(w, r, "/gallery/photos", http.StatusSeeOther)
		return
	}

	if err := h.photos.UpdatePic(chi.URLParam(r, "id"), user.ID, pic); err != nil {
		if errors.Is(err, services.ErrPhotoNotFound) {
			web.FlashError(w, "Photo not found!")
		} else {
			web.FlashError(w, "Something went wrong!")
		}
		http.Redirect(w, r, "/gallery/photos", http.StatusSeeOther)
		return
	}

	web.FlashSuccess(w, "Successfully updated photo.")
	http.Redirect(w, r, "/gallery/photos", http.StatusSeeOther)
}

func (h *PhotoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	if err := h.photos.Delete(chi.URLParam(r, "id"), user.ID); err != nil {
		if errors.Is(err, services.ErrPhotoNotFound) {
			web.FlashError(w, "Photo not found!")
		} else {
			web.FlashError(w, "Something went wrong!")
		}
		http.Redirect(w, r, "/gallery/photos", http.StatusSeeOther)
		return
	}

	web.FlashSuccess(w, "Successfully deleted photo.")
	http.Redirect(w, r, "/gallery/photos", http.StatusSeeOther)
}

func (h *PhotoHandler) Pic(w http.ResponseWriter, r *http.Request) {
	pic, err := h.photos.GetPic(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, services.ErrPhotoNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(pic)
}
