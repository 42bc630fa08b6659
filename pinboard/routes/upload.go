package routes

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"

	"pinboard/pinboard/controllers"
)

// parseForm reads a multipart (or url-encoded) body capped at maxBytes.
func parseForm(w http.ResponseWriter, r *http.Request, maxBytes int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	err := r.ParseMultipartForm(maxBytes)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	if err == nil {
		return nil
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return &requestError{status: http.StatusRequestEntityTooLarge, msg: "upload too large"}
	}
	return badRequest("invalid form body")
}

// readImage returns the uploaded image in field, or nil when none was sent.
// The content type is sniffed from the bytes, not trusted from the client.
func readImage(r *http.Request, field string) (*controllers.ImageUpload, io.Closer, error) {
	if r.MultipartForm == nil {
		return nil, nil, nil
	}
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, badRequest("invalid " + field + " upload")
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		file.Close()
		return nil, nil, badRequest("invalid " + field + " upload")
	}
	head = head[:n]
	contentType := http.DetectContentType(head)
	if !strings.HasPrefix(contentType, "image/") {
		file.Close()
		return nil, nil, controllers.ErrUnsupportedImage
	}

	return &controllers.ImageUpload{
		Filename:    header.Filename,
		ContentType: contentType,
		Body:        io.MultiReader(bytes.NewReader(head), file),
		Size:        header.Size,
	}, file, nil
}

func closeFile(f io.Closer) {
	if f != nil {
		f.Close()
	}
}
