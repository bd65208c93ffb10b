// internal/app/features/uploads/upload.go
package uploads

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/dalemusser/contesthub/internal/app/system/apperr"
	"github.com/dalemusser/contesthub/internal/app/system/httpjson"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxUploadBytes caps a single upload. Proof images and submission archives
// are the expected payloads.
const maxUploadBytes = 100 << 20

// uploadResponse mirrors the upload endpoint's wire shape: the URL rides at
// the top level next to the message.
type uploadResponse struct {
	Message string `json:"message"`
	URL     string `json:"url"`
}

// HandleUpload stores a multipart file under the requested folder and
// returns its URL. Mounted on POST /.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		httpjson.Error(w, h.Log, apperr.New(apperr.Invalid,
			"Bad request. Missing file or folderName."))
		return
	}

	folder := r.FormValue("folderName")
	file, header, err := r.FormFile("file")
	if folder == "" || err != nil {
		httpjson.Error(w, h.Log, apperr.New(apperr.Invalid,
			"Bad request. Missing file or folderName."))
		return
	}
	defer file.Close()

	// folderName/timestamp-uuid-name keeps concurrent uploads of the same
	// file from colliding.
	name := fmt.Sprintf("%d-%s-%s",
		time.Now().UnixMilli(), uuid.New().String()[:8], sanitizeFilename(header.Filename))
	path := filepath.ToSlash(filepath.Join(sanitizeFilename(folder), name))

	opts := &storage.PutOptions{ContentType: header.Header.Get("Content-Type")}
	if err := h.Storage.Put(r.Context(), path, file, opts); err != nil {
		httpjson.Error(w, h.Log, fmt.Errorf("store upload: %w", err))
		return
	}

	url := h.Storage.URL(path)
	h.Log.Info("file uploaded",
		zap.String("path", path),
		zap.Int64("size", header.Size))

	httpjson.Write(w, http.StatusOK, uploadResponse{
		Message: "Success upload file",
		URL:     url,
	})
}

// sanitizeFilename strips path components and characters that could be
// problematic in storage keys.
func sanitizeFilename(filename string) string {
	filename = filepath.Base(filename)
	// Base maps "" to "." and keeps "..": neither is a usable name.
	if filename == "." || filename == ".." {
		filename = ""
	}

	result := make([]byte, 0, len(filename))
	for i := 0; i < len(filename); i++ {
		c := filename[i]
		if isAllowedFilenameChar(c) {
			result = append(result, c)
		} else {
			result = append(result, '_')
		}
	}

	if len(result) == 0 {
		return "file"
	}
	if len(result) > 100 {
		ext := filepath.Ext(string(result))
		if len(ext) > 0 && len(ext) < 10 {
			result = append(result[:100-len(ext)], ext...)
		} else {
			result = result[:100]
		}
	}
	return string(result)
}

func isAllowedFilenameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c == '-' || c == '_' || c == '.'
}
