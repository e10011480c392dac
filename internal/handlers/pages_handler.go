package handlers

import (
	"log"
	"net/http"

	"github.com/blaze/backend/internal/models"
	"github.com/blaze/backend/internal/web"
)

// PagesHandler serves the anonymous site pages.
type PagesHandler struct {
	carousels CarouselLister
	render    *web.Renderer
}

func NewPagesHandler(carousels CarouselLister, render *web.Renderer) *PagesHandler {
	return &PagesHandler{carousels: carousels, render: render}
}

// Home renders the landing page with up to three carousel images.
func (h *PagesHandler) Home(w http.ResponseWriter, r *http.Request) {
	carousels, err := h.carousels.ListAll()
	if err != nil {
		log.Printf("[Pages] carousel list err=%v", err)
		carousels = []models.Carousel{}
	}
	if len(carousels) > 3 {
		carousels = carousels[:3]
	}

	h.render.Render(w, r, http.StatusOK, "index", currentUserView(r), carousels)
}

func (h *PagesHandler) Achievements(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, r, http.StatusOK, "achievements", currentUserView(r), nil)
}

// ContactUs preselects the service type from the ?st= query parameter.
func (h *PagesHandler) ContactUs(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, r, http.StatusOK, "contact-us", currentUserView(r), r.URL.Query().Get("st"))
}
