package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"talenthub/internal/common"
)

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return common.NewError(common.CodeValidation, "invalid json body", err)
	}
	return nil
}

// idFromPath reads path segment `index` of the request path as a UUID; the
// leading slash makes segment 0 empty, so /jobs/{id} resolves at index 2.
func idFromPath(r *http.Request, index int) (common.UUID, error) {
	parts := strings.Split(r.URL.Path, "/")
	if index < 0 || index >= len(parts) {
		return "", common.NewError(common.CodeValidation, "missing id in path", nil)
	}
	parsed, err := common.ParseUUID(parts[index])
	if err != nil {
		return "", common.NewValidationError("invalid id", map[string]string{"id": "invalid uuid"})
	}
	return parsed, nil
}

func errUnauthorized() error {
	return common.NewError(common.CodeUnauthorized, "unauthorized", nil)
}
