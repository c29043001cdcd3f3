package models

// ImageUpload describes an uploaded file spooled to a local temp path.
// The owning service removes TempPath on every exit path.
type ImageUpload struct {
	TempPath    string // Local temp file holding the upload
	ContentType string // MIME type reported by the client
	Size        int64  // Size in bytes
}
