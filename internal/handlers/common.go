package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"sort"

	"github.com/blaze/backend/internal/middleware"
	"github.com/blaze/backend/internal/models"
)

// maxUploadBody caps a whole multipart request: ten gallery files plus
// form overhead.
const maxUploadBody = 12 << 20

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// firstError picks a stable single message out of a validation map for the
// flash banner.
func firstError(errs map[string]string) string {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return errs[keys[0]]
}

func formKeys(form url.Values) []string {
	keys := make([]string, 0, len(form))
	for k := range form {
		keys = append(keys, k)
	}
	return keys
}

// currentUserView returns the logged-in user's public projection for
// templates, or nil on anonymous requests.
func currentUserView(r *http.Request) *models.UserView {
	if u := middleware.GetUser(r.Context()); u != nil {
		v := u.Public()
		return &v
	}
	return nil
}
