package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/blaze/backend/internal/middleware"
	"github.com/blaze/backend/internal/models"
	"github.com/blaze/backend/internal/services"
	"github.com/blaze/backend/internal/upload"
	"github.com/blaze/backend/internal/web"
)

type CarouselService interface {
	Create(ownerID string, pic []byte) (*models.Carousel, error)
	GetOwned(id, ownerID string) (*models.Carousel, error)
	UpdatePic(id, ownerID string, pic []byte) error
	GetPic(id string) ([]byte, error)
}

type CarouselHandler struct {
	carousels CarouselService
	uploads   *upload.Processor
	render    *web.Renderer
}

func NewCarouselHandler(carousels CarouselService, uploads *upload.Processor, render *web.Renderer) *CarouselHandler {
	return &CarouselHandler{carousels: carousels, uploads: uploads, render: render}
}

// Create is a JSON route: the admin panel posts the form and gets the new
// record's public view back.
func (h *CarouselHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)
	if err := r.ParseMultipartForm(maxUploadBody); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("File too large or invalid form data"))
		return
	}

	files := r.MultipartForm.File["carouselPic"]
	if len(files) != 1 {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Please upload a image."))
		return
	}

	pic, err := h.uploads.Process(files[0], upload.CarouselTarget)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse(uploadErrorMessage(err)))
		return
	}

	carousel, err := h.carousels.Create(user.ID, pic)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to create carousel"))
		return
	}

	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(carousel.Public()))
}

func (h *CarouselHandler) Edit(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	carousel, err := h.carousels.GetOwned(chi.URLParam(r, "id"), user.ID)
	if err != nil {
		if errors.Is(err, services.ErrCarouselNotFound) {
			web.FlashError(w, "Carousel not found!")
		} else {
			web.FlashError(w, "Something went wrong!")
		}
		http.Redirect(w, r, "/adminPanel", http.StatusSeeOther)
		return
	}

	h.render.Render(w, r, http.StatusOK, "admin-editCarousel", currentUserView(r), carousel)
}

func (h *CarouselHandler) UpdatePic(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	id := chi.URLParam(r, "id")

	fh, ok := singleUpload(w, r, "carouselPic", "/carousels/"+id)
	if !ok {
		return
	}

	pic, err := h.uploads.Process(fh, upload.CarouselTarget)
	if err != nil {
		web.FlashError(w, uploadErrorMessage(err))
		http.Redirect(w, r, "/carousels/"+id, http.StatusSeeOther)
		return
	}

	if err := h.carousels.UpdatePic(id, user.ID, pic); err != nil {
		if errors.Is(err, services.ErrCarouselNotFound) {
			web.FlashError(w, "Carousel not found!")
		} else {
			web.FlashError(w, "Something went wrong!")
		}
		http.Redirect(w, r, "/adminPanel", http.StatusSeeOther)
		return
	}

	web.FlashSuccess(w, "Successfully updated carousel")
	http.Redirect(w, r, "/adminPanel", http.StatusSeeOther)
}

func (h *CarouselHandler) Pic(w http.ResponseWriter, r *http.Request) {
	pic, err := h.carousels.GetPic(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, services.ErrCarouselNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(pic)
}
