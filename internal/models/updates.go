package models

// UpdateSchema is the closed set of field names a PATCH may touch for an
// entity. Any key outside the schema fails the whole request.
type UpdateSchema []string

func (s UpdateSchema) Allows(keys []string) bool {
	for _, k := range keys {
		ok := false
		for _, allowed := range s {
			if k == allowed {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

var (
	ItemUpdates     = UpdateSchema{"name", "price", "category"}
	VideoUpdates    = UpdateSchema{"title", "videoID"}
	PasswordUpdates = UpdateSchema{"password", "newPassword", "conNewPassword"}
)
