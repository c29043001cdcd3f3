package handlers

import (
	"io"
	"net/http"
	"os"

	"github.com/devfolio/devfolio-api/internal/models"
)

// maxMultipartMemory bounds how much of a multipart body stays in memory;
// the rest spills to disk.
const maxMultipartMemory = 8 << 20

// formImage spools the "image" part of a multipart request to a temp file.
// A request without a file yields nil; the services turn that into a
// validation error where an image is required.
func formImage(r *http.Request) (*models.ImageUpload, error) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return nil, nil
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		return nil, nil
	}
	defer file.Close()

	tmp, err := os.CreateTemp("", "devfolio-upload-*")
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return nil, err
	}

	return &models.ImageUpload{
		TempPath:    tmp.Name(),
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
	}, nil
}
