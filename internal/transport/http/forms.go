package http

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/njprem/Lombok_Tourism_BackEnd/internal/service"
)

const maxMultipartMemory = 32 << 20

var errInvalidForm = errors.New("invalid form payload")

// readForm parses urlencoded or multipart bodies and returns only the body fields.
func readForm(c echo.Context) (url.Values, error) {
	req := c.Request()
	if strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		if err := req.ParseMultipartForm(maxMultipartMemory); err != nil {
			return nil, errInvalidForm
		}
	} else if err := req.ParseForm(); err != nil {
		return nil, errInvalidForm
	}
	if req.PostForm == nil {
		return url.Values{}, nil
	}
	return req.PostForm, nil
}

// formString returns nil when key is absent so partial updates leave the field alone.
func formString(form url.Values, key string) *string {
	values, ok := form[key]
	if !ok || len(values) == 0 {
		return nil
	}
	v := values[0]
	return &v
}

// formUUID treats a present but blank value as uuid.Nil, which clears the reference.
func formUUID(form url.Values, key string) (*uuid.UUID, error) {
	raw := formString(form, key)
	if raw == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		id := uuid.Nil
		return &id, nil
	}
	id, err := uuid.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%s must be a valid UUID", key)
	}
	return &id, nil
}

// uploadSet keeps opened multipart files so a handler can close them in one defer.
type uploadSet struct {
	closers []io.Closer
}

func (u *uploadSet) Close() {
	for _, c := range u.closers {
		_ = c.Close()
	}
	u.closers = nil
}

func (u *uploadSet) open(header *multipart.FileHeader) (*service.ImageUpload, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	u.closers = append(u.closers, file)
	return &service.ImageUpload{
		Reader:      file,
		Size:        header.Size,
		FileName:    header.Filename,
		ContentType: header.Header.Get(echo.HeaderContentType),
	}, nil
}

// optional opens the named file field, returning nil when the request has none.
func (u *uploadSet) optional(c echo.Context, field string) (*service.ImageUpload, error) {
	header, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, errInvalidForm
	}
	return u.open(header)
}

func multipartFiles(c echo.Context, fields ...string) []*multipart.FileHeader {
	form := c.Request().MultipartForm
	if form == nil {
		return nil
	}
	var headers []*multipart.FileHeader
	for _, field := range fields {
		headers = append(headers, form.File[field]...)
	}
	return headers
}
