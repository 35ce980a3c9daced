package web

import (
	"mime/multipart"
	"net/url"
	"strings"

	"github.com/dukex/projecthub/pkg/models"
	"github.com/gofiber/fiber/v3"
)

// formValues returns the submitted form fields together with the uploaded file headers.
// Both url-encoded and multipart bodies are accepted.
func formValues(c fiber.Ctx) (url.Values, []*multipart.FileHeader, error) {
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		form, err := c.MultipartForm()
		if err != nil {
			return nil, nil, err
		}

		return url.Values(form.Value), form.File["uploads"], nil
	}

	values, err := url.ParseQuery(string(c.Body()))
	if err != nil {
		return nil, nil, err
	}

	return values, nil, nil
}

func queryValues(c fiber.Ctx) url.Values {
	values, err := url.ParseQuery(string(c.Request().URI().QueryString()))
	if err != nil {
		return url.Values{}
	}

	return values
}

// uploadedFiles keeps the name and size of each upload; the content is never opened.
func uploadedFiles(headers []*multipart.FileHeader) []models.UploadedFile {
	files := make([]models.UploadedFile, 0, len(headers))

	for _, header := range headers {
		if header.Filename == "" {
			continue
		}

		files = append(files, models.UploadedFile{Name: header.Filename, Size: header.Size})
	}

	return files
}
