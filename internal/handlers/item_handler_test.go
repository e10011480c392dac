package handlers

import (
	"bytes"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appMiddleware "github.com/blaze/backend/internal/middleware"
	"github.com/blaze/backend/internal/models"
	"github.com/blaze/backend/internal/paging"
	"github.com/blaze/backend/internal/services"
	"github.com/blaze/backend/internal/upload"
	"github.com/blaze/backend/internal/web"
)

type stubItemService struct {
	item *models.Item
	list *services.ItemList

	getErr    error
	updateErr error
	deleteErr error

	createdFields models.ItemFields
	createdPic    []byte
	updatedFields *models.ItemFields
	updatedPic    []byte
	deletedID     string

	listReq      paging.Request
	listCategory string
}

func (s *stubItemService) Create(ownerID string, fields models.ItemFields, pic []byte) (*models.Item, error) {
	s.createdFields = fields
	s.createdPic = pic
	return &models.Item{ID: "i1", Name: fields.Name, OwnerID: ownerID}, nil
}

func (s *stubItemService) GetOwned(id, ownerID string) (*models.Item, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.item, nil
}

func (s *stubItemService) List(req paging.Request, category string) (*services.ItemList, error) {
	s.listReq = req
	s.listCategory = category
	return s.list, nil
}

func (s *stubItemService) UpdateFields(id, ownerID string, fields models.ItemFields) (*models.Item, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	s.updatedFields = &fields
	return s.item, nil
}

func (s *stubItemService) UpdatePic(id, ownerID string, pic []byte) error {
	s.updatedPic = pic
	return nil
}

func (s *stubItemService) Delete(id, ownerID string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deletedID = id
	return nil
}

func (s *stubItemService) GetPic(id string) ([]byte, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.item.Pic, nil
}

// itemRig mirrors the server's item routes, guard included.
func itemRig(t *testing.T, items *stubItemService) (chi.Router, string) {
	t.Helper()

	render, err := web.NewRenderer()
	require.NoError(t, err)

	users := &stubUserService{user: &models.User{ID: "u1", Email: "owner@example.com"}}
	h := NewItemHandler(items, upload.NewProcessor(), render)

	r := chi.NewRouter()
	r.Get("/items", h.List)
	r.Get("/items/{id}/itemPic", h.Pic)
	r.Group(func(r chi.Router) {
		r.Use(appMiddleware.Auth(users, testJWTSecret))
		r.Post("/items", h.Create)
		r.Get("/items/{id}", h.Edit)
		r.Patch("/items/{id}", h.Update)
		r.Patch("/items/itemPic/{id}", h.UpdatePic)
		r.Delete("/items/{id}", h.Delete)
	})
	return r, sessionToken(t, users)
}

func itemPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 32, 32))))
	return buf.Bytes()
}

func multipartRequest(t *testing.T, target, field, filename string, content []byte, form map[string]string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range form {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		part, err := mw.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestItemCreate(t *testing.T) {
	items := &stubItemService{}
	router, token := itemRig(t, items)

	req := multipartRequest(t, "/items", "itemPic", "mower.jpg", itemPNG(t), map[string]string{
		"name":     "Lawn mower",
		"category": "garden",
		"price":    "120.50",
	})
	req.AddCookie(&http.Cookie{Name: web.AuthCookie, Value: token})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/adminPanel", rec.Header().Get("Location"))
	assert.Equal(t, "Successfully added item.", flashCookie(t, rec, "flash_success"))

	assert.Equal(t, "Lawn mower", items.createdFields.Name)
	assert.Equal(t, 120.50, items.createdFields.Price)

	// The stored bytes are the resized PNG, never the original upload.
	require.True(t, bytes.HasPrefix(items.createdPic, []byte{0x89, 'P', 'N', 'G'}))
	img, _, err := image.Decode(bytes.NewReader(items.createdPic))
	require.NoError(t, err)
	assert.Equal(t, 250, img.Bounds().Dx())
	assert.Equal(t, 250, img.Bounds().Dy())
}

func TestItemCreateRejectsBadExtension(t *testing.T) {
	items := &stubItemService{}
	router, token := itemRig(t, items)

	req := multipartRequest(t, "/items", "itemPic", "mower.gif", itemPNG(t), map[string]string{
		"name":     "Lawn mower",
		"category": "garden",
	})
	req.AddCookie(&http.Cookie{Name: web.AuthCookie, Value: token})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "Please upload a image.", flashCookie(t, rec, "flash_error"))
	assert.Nil(t, items.createdPic)
}

func TestItemCreateRequiresFile(t *testing.T) {
	items := &stubItemService{}
	router, token := itemRig(t, items)

	req := multipartRequest(t, "/items", "itemPic", "", nil, map[string]string{
		"name":     "Lawn mower",
		"category": "garden",
	})
	req.AddCookie(&http.Cookie{Name: web.AuthCookie, Value: token})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "Please upload a image.", flashCookie(t, rec, "flash_error"))
}

func TestItemList(t *testing.T) {
	items := &stubItemService{list: &services.ItemList{
		Items: []models.Item{
			{ID: "i1", Name: "Lawn mower", Category: "garden", CreatedAt: time.Now()},
		},
		Page:       2,
		TotalPages: 3,
		Categories: []string{"garden", "tools"},
		Category:   "garden",
	}}
	router, _ := itemRig(t, items)

	req := httptest.NewRequest("GET", "/items?page=2&category=garden", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, items.listReq.Page)
	assert.Equal(t, 9, items.listReq.PerPage)
	assert.Equal(t, "garden", items.listCategory)

	body := rec.Body.String()
	assert.Contains(t, body, "Lawn mower")
	assert.Contains(t, body, "garden")
}

func TestItemListRejectsBadPage(t *testing.T) {
	router, _ := itemRig(t, &stubItemService{})

	req := httptest.NewRequest("GET", "/items?page=0", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Equal(t, "page must be a positive number", flashCookie(t, rec, "flash_error"))
}

func TestItemUpdatePartial(t *testing.T) {
	items := &stubItemService{item: &models.Item{
		ID: "i1", Name: "Lawn mower", Category: "garden", Price: 120.50, OwnerID: "u1",
	}}
	router, token := itemRig(t, items)

	req := postForm("/items/i1", url.Values{"price": {"99.99"}})
	req.Method = "PATCH"
	req.AddCookie(&http.Cookie{Name: web.AuthCookie, Value: token})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "Successfully updated item.", flashCookie(t, rec, "flash_success"))

	// Untouched fields keep their current values.
	require.NotNil(t, items.updatedFields)
	assert.Equal(t, "Lawn mower", items.updatedFields.Name)
	assert.Equal(t, "garden", items.updatedFields.Category)
	assert.Equal(t, 99.99, items.updatedFields.Price)
}

func TestItemUpdateRejectsUnknownFields(t *testing.T) {
	items := &stubItemService{item: &models.Item{ID: "i1", OwnerID: "u1"}}
	router, token := itemRig(t, items)

	req := postForm("/items/i1", url.Values{"name": {"x"}, "owner": {"u2"}})
	req.Method = "PATCH"
	req.AddCookie(&http.Cookie{Name: web.AuthCookie, Value: token})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "Invalid updates!", flashCookie(t, rec, "flash_error"))
	assert.Nil(t, items.updatedFields)
}

func TestItemUpdateNotFound(t *testing.T) {
	items := &stubItemService{getErr: services.ErrItemNotFound}
	router, token := itemRig(t, items)

	req := postForm("/items/missing", url.Values{"name": {"x"}})
	req.Method = "PATCH"
	req.AddCookie(&http.Cookie{Name: web.AuthCookie, Value: token})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "Item not found!", flashCookie(t, rec, "flash_error"))
}

func TestItemDelete(t *testing.T) {
	items := &stubItemService{}
	router, token := itemRig(t, items)

	req := httptest.NewRequest("DELETE", "/items/i1", nil)
	req.AddCookie(&http.Cookie{Name: web.AuthCookie, Value: token})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "Successfully deleted item!", flashCookie(t, rec, "flash_success"))
	assert.Equal(t, "i1", items.deletedID)
}

func TestItemPic(t *testing.T) {
	pic := itemPNG(t)
	items := &stubItemService{item: &models.Item{ID: "i1", Pic: pic}}
	router, _ := itemRig(t, items)

	req := httptest.NewRequest("GET", "/items/i1/itemPic", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, pic, rec.Body.Bytes())
}

func TestItemPicNotFound(t *testing.T) {
	items := &stubItemService{getErr: services.ErrItemNotFound}
	router, _ := itemRig(t, items)

	req := httptest.NewRequest("GET", "/items/missing/itemPic", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
