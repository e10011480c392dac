package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/blaze/backend/internal/middleware"
	"github.com/blaze/backend/internal/models"
	"github.com/blaze/backend/internal/paging"
	"github.com/blaze/backend/internal/services"
	"github.com/blaze/backend/internal/upload"
	"github.com/blaze/backend/internal/web"
)

type ItemService interface {
	Create(ownerID string, fields models.ItemFields, pic []byte) (*models.Item, error)
	GetOwned(id, ownerID string) (*models.Item, error)
	List(req paging.Request, category string) (*services.ItemList, error)
	UpdateFields(id, ownerID string, fields models.ItemFields) (*models.Item, error)
	UpdatePic(id, ownerID string, pic []byte) error
	Delete(id, ownerID string) error
	GetPic(id string) ([]byte, error)
}

type ItemHandler struct {
	items   ItemService
	uploads *upload.Processor
	render  *web.Renderer
}

func NewItemHandler(items ItemService, uploads *upload.Processor, render *web.Renderer) *ItemHandler {
	return &ItemHandler{items: items, uploads: uploads, render: render}
}

// itemListPage is the items template payload.
type itemListPage struct {
	*services.ItemList
	Pages []int
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	fh, ok := singleUpload(w, r, "itemPic", "/adminPanel")
	if !ok {
		return
	}

	fields, errs := itemFieldsFromForm(r)
	if len(errs) > 0 {
		web.FlashError(w, firstError(errs))
		http.Redirect(w, r, "/adminPanel", http.StatusSeeOther)
		return
	}

	pic, err := h.uploads.Process(fh, upload.ItemTarget)
	if err != nil {
		web.FlashError(w, uploadErrorMessage(err))
		http.Redirect(w, r, "/adminPanel", http.StatusSeeOther)
		return
	}

	if _, err := h.items.Create(user.ID, fields, pic); err != nil {
		web.FlashError(w, "Something went wrong!")
		http.Redirect(w, r, "/adminPanel", http.StatusSeeOther)
		return
	}

	web.FlashSuccess(w, "Successfully added item.")
	http.Redirect(w, r, "/adminPanel", http.StatusSeeOther)
}

// Edit renders the owner's edit page for one item.
func (h *ItemHandler) Edit(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	item, err := h.items.GetOwned(chi.URLParam(r, "id"), user.ID)
	if err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			web.FlashError(w, "Item not found!")
			http.Redirect(w, r, "/adminPanel", http.StatusSeeOther)
			return
		}
		web.FlashError(w, "Something went wrong!")
		http.Redirect(w, r, "/items", http.StatusSeeOther)
		return
	}

	h.render.Render(w, r, http.StatusOK, "admin-editItem", currentUserView(r), item)
}

// List is the public catalogue page with pagination and the category facet.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	req, err := paging.Parse(r.URL.Query(), paging.DefaultItems)
	if err != nil {
		web.FlashError(w, err.Error())
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	list, err := h.items.List(req, r.URL.Query().Get("category"))
	if err != nil {
		web.FlashError(w, "Something went wrong!")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.render.Render(w, r, http.StatusOK, "items", currentUserView(r), itemListPage{
		ItemList: list,
		Pages:    paging.Pages(list.TotalPages),
	})
}

// Update applies the closed {name, price, category} schema on top of the
// current record, so partial form posts keep their other fields.
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	if err := r.ParseForm(); err != nil {
		web.FlashError(w, "Something went wrong!")
		http.Redirect(w, r, "/items", http.StatusSeeOther)
		return
	}
	if !models.ItemUpdates.Allows(formKeys(r.PostForm)) {
		web.FlashError(w, "Invalid updates!")
		http.Redirect(w, r, "/items", http.StatusSeeOther)
		return
	}

	item, err := h.items.GetOwned(chi.URLParam(r, "id"), user.ID)
	if err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			web.FlashError(w, "Item not found!")
		} else {
			web.FlashError(w, "Something went wrong!")
		}
		http.Redirect(w, r, "/items", http.StatusSeeOther)
		return
	}

	fields := models.ItemFields{Name: item.Name, Category: item.Category, Price: item.Price}
	if r.PostForm.Has("name") {
		fields.Name = r.PostFormValue("name")
	}
	if r.PostForm.Has("category") {
		fields.Category = r.PostFormValue("category")
	}
	if r.PostForm.Has("price") {
		price, err := strconv.ParseFloat(r.PostFormValue("price"), 64)
		if err != nil {
			web.FlashError(w, "price must be a positive number")
			http.Redirect(w, r, "/items", http.StatusSeeOther)
			return
		}
		fields.Price = price
	}
	if errs := fields.Validate(); len(errs) > 0 {
		web.FlashError(w, firstError(errs))
		http.Redirect(w, r, "/items", http.StatusSeeOther)
		return
	}

	if _, err := h.items.UpdateFields(item.ID, user.ID, fields); err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			web.FlashError(w, "Item not found!")
		} else {
			web.FlashError(w, "Something went wrong!")
		}
		http.Redirect(w, r, "/items", http.StatusSeeOther)
		return
	}

	web.FlashSuccess(w, "Successfully updated item.")
	http.Redirect(w, r, "/items", http.StatusSeeOther)
}

func (h *ItemHandler) UpdatePic(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	id := chi.URLParam(r, "id")

	fh, ok := singleUpload(w, r, "itemPic", "/items")
	if !ok {
		return
	}

	pic, err := h.uploads.Process(fh, upload.ItemTarget)
	if err != nil {
		web.FlashError(w, uploadErrorMessage(err))
		http.Redirect(w, r, "/items/"+id, http.StatusSeeOther)
		return
	}

	if err := h.items.UpdatePic(id, user.ID, pic); err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			web.FlashError(w, "Item not found!")
		} else {
			web.FlashError(w, "Something went wrong!")
		}
		http.Redirect(w, r, "/items", http.StatusSeeOther)
		return
	}

	web.FlashSuccess(w, "Successfully updated item image")
	http.Redirect(w, r, "/items/"+id, http.StatusSeeOther)
}

func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	if err := h.items.Delete(chi.URLParam(r, "id"), user.ID); err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			web.FlashError(w, "Item not found!")
		} else {
			web.FlashError(w, "Something went wrong!")
		}
		http.Redirect(w, r, "/items", http.StatusSeeOther)
		return
	}

	web.FlashSuccess(w, "Successfully deleted item!")
	http.Redirect(w, r, "/items", http.StatusSeeOther)
}

// Pic streams the stored PNG; it is the only place the image bytes leave
// the store.
func (h *ItemHandler) Pic(w http.ResponseWriter, r *http.Request) {
	pic, err := h.items.GetPic(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(pic)
}

func itemFieldsFromForm(r *http.Request) (models.ItemFields, map[string]string) {
	fields := models.ItemFields{
		Name:     r.FormValue("name"),
		Category: r.FormValue("category"),
	}
	if raw := r.FormValue("price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fields, map[string]string{"price": "price must be a positive number"}
		}
		fields.Price = price
	}
	return fields, fields.Validate()
}

// singleUpload parses the multipart form and pulls out exactly one file,
// flashing and redirecting on failure.
func singleUpload(w http.ResponseWriter, r *http.Request, field, redirect string) (*multipart.FileHeader, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)
	if err := r.ParseMultipartForm(maxUploadBody); err != nil {
		web.FlashError(w, "File too large or invalid form data")
		http.Redirect(w, r, redirect, http.StatusSeeOther)
		return nil, false
	}

	files := r.MultipartForm.File[field]
	if len(files) != 1 {
		web.FlashError(w, "Please upload a image.")
		http.Redirect(w, r, redirect, http.StatusSeeOther)
		return nil, false
	}
	return files[0], true
}

func uploadErrorMessage(err error) string {
	switch {
	case errors.Is(err, upload.ErrInvalidFileType):
		return "Please upload a image."
	case errors.Is(err, upload.ErrFileTooLarge):
		return "Image is too large, maximum size is 1MB."
	case errors.Is(err, upload.ErrTooManyFiles):
		return "Maximum 10 images please!"
	case errors.Is(err, upload.ErrTransform):
		return "Could not process that image."
	}
	return "Something went wrong!"
}
