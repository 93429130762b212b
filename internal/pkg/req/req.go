/*
Package req provides helpers for HTTP request parsing and data binding.

It covers JSON body binding and multipart form setup, with size limits
enforced before any business logic runs.
*/
package req

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/TaiefArnob/InstaVista/internal/pkg/errs"
)

const (
	// MaxFormMemory is the memory ceiling (32 MB) for non-file multipart fields.
	// File parts beyond it spill to temporary files.
	MaxFormMemory int64 = 32 << 20

	// MaxRequestFileSize caps the entire multipart request body (20 MB),
	// enforced via http.MaxBytesReader.
	MaxRequestFileSize int64 = 20 << 20
)

// BindJSON binds the JSON request body to dst. Unknown fields and trailing
// content are rejected.
func BindJSON(r *http.Request, dst any) *errs.CustomError {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/json") {
		return errs.NewError(errs.ErrUnsupportedMediaType)
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return errs.NewError(errs.ErrInvalidJSONFormat)
	}

	if decoder.More() {
		return errs.NewError(errs.ErrExtraContentInBody)
	}

	return nil
}

// SetupMultipart wraps the body in a MaxBytesReader and parses the
// multipart or URL-encoded form.
func SetupMultipart(w http.ResponseWriter, r *http.Request) *errs.CustomError {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestFileSize)

	err := r.ParseMultipartForm(MaxFormMemory)

	if err != nil {
		if strings.Contains(err.Error(), "request body too large") {
			return errs.NewError(errs.ErrRequestEntityTooLarge)
		}

		return errs.NewError(errs.ErrFormParseFailed)
	}

	return nil
}
