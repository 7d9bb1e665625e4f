package transport

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"catalog-api/internal/domain"
	"catalog-api/internal/service"
)

// imagesField is the multipart field carrying product images.
const imagesField = "images"

// productPayload is the JSON form of a product write. Price accepts a number
// or a numeric string; colors accept a comma separated string or a list.
type productPayload struct {
	Name        string          `json:"name"`
	Price       json.Number     `json:"price"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Colors      json.RawMessage `json:"colors"`
}

// parseProductInput reads a product write from a multipart, urlencoded or JSON body.
func parseProductInput(r *http.Request, maxMemory int64) (service.ProductInput, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxMemory); err != nil {
			return service.ProductInput{}, domain.BadRequest("invalid multipart body: %v", err)
		}
		defer r.MultipartForm.RemoveAll()
		return formInput(r, r.MultipartForm.File[imagesField])
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return service.ProductInput{}, domain.BadRequest("invalid form body: %v", err)
		}
		return formInput(r, nil)
	default:
		return jsonInput(r.Body)
	}
}

func formInput(r *http.Request, files []*multipart.FileHeader) (service.ProductInput, error) {
	price, err := parsePrice(r.FormValue("price"))
	if err != nil {
		return service.ProductInput{}, err
	}

	if len(files) > service.MaxImagesPerProduct {
		return service.ProductInput{}, domain.BadRequest("at most %d images are allowed", service.MaxImagesPerProduct)
	}

	images := make([]service.ImageFile, 0, len(files))
	for _, header := range files {
		image, err := readImage(header)
		if err != nil {
			return service.ProductInput{}, err
		}
		images = append(images, image)
	}

	return service.ProductInput{
		Name:        r.FormValue("name"),
		Price:       price,
		Category:    r.FormValue("category"),
		Description: r.FormValue("description"),
		Colors:      r.FormValue("colors"),
		Images:      images,
	}, nil
}

func readImage(header *multipart.FileHeader) (service.ImageFile, error) {
	file, err := header.Open()
	if err != nil {
		return service.ImageFile{}, domain.BadRequest("unreadable file %q: %v", header.Filename, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return service.ImageFile{}, domain.BadRequest("unreadable file %q: %v", header.Filename, err)
	}
	return service.ImageFile{Filename: header.Filename, Data: data}, nil
}

func jsonInput(body io.Reader) (service.ProductInput, error) {
	var payload productPayload
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return service.ProductInput{}, domain.BadRequest("invalid request body")
	}

	price, err := parsePrice(payload.Price.String())
	if err != nil {
		return service.ProductInput{}, err
	}

	colors, err := decodeColors(payload.Colors)
	if err != nil {
		return service.ProductInput{}, err
	}

	return service.ProductInput{
		Name:        payload.Name,
		Price:       price,
		Category:    payload.Category,
		Description: payload.Description,
		Colors:      colors,
	}, nil
}

// parsePrice treats an absent price as zero.
func parsePrice(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, domain.BadRequest("price %q is not a number", raw)
	}
	return price, nil
}

// decodeColors flattens a JSON string or string list into the comma separated form.
func decodeColors(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}

	var joined string
	if err := json.Unmarshal(raw, &joined); err == nil {
		return joined, nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return "", domain.BadRequest("colors must be a string or a list of strings")
	}
	for _, color := range list {
		if strings.Contains(color, ",") {
			return "", domain.BadRequest("color %q contains a comma", color)
		}
	}
	return strings.Join(list, ","), nil
}
