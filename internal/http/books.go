package http

import (
	"errors"
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/mrlokans/ebookshelf/internal/library"
	"github.com/mrlokans/ebookshelf/internal/logger"
)

// Multipart field names carrying the uploaded blobs.
const (
	coverImageField = "coverImage"
	bookFileField   = "file"
)

type BooksController struct {
	service *library.Service
}

func NewBooksController(service *library.Service) *BooksController {
	return &BooksController{service: service}
}

// Create handles POST /books.
func (bc *BooksController) Create(c *gin.Context) {
	input, uploads, closeUploads, ok := bc.readBookRequest(c)
	defer closeUploads()
	if !ok {
		return
	}

	book, err := bc.service.Create(c.Request.Context(), input, uploads)
	if err != nil {
		respondServiceError(c, err, "create book")
		return
	}
	respondCreated(c, book)
}

// List handles GET /books.
func (bc *BooksController) List(c *gin.Context) {
	books, err := bc.service.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "list books")
		return
	}
	c.JSON(http.StatusOK, books)
}

// Get handles GET /books/:id.
func (bc *BooksController) Get(c *gin.Context) {
	book, err := bc.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "get book")
		return
	}
	c.JSON(http.StatusOK, book)
}

// Update handles PUT /books/:id. Blobs missing from the request clear the
// stored references.
func (bc *BooksController) Update(c *gin.Context) {
	input, uploads, closeUploads, ok := bc.readBookRequest(c)
	defer closeUploads()
	if !ok {
		return
	}

	book, err := bc.service.Update(c.Request.Context(), c.Param("id"), input, uploads)
	if err != nil {
		respondServiceError(c, err, "update book")
		return
	}
	c.JSON(http.StatusOK, book)
}

// Delete handles DELETE /books/:id.
func (bc *BooksController) Delete(c *gin.Context) {
	if err := bc.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err, "delete book")
		return
	}
	respondSuccess(c, "Book deleted successfully")
}

// Download handles GET /books/:id/download.
func (bc *BooksController) Download(c *gin.Context) {
	file, err := bc.service.Download(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "download book")
		return
	}
	defer file.Content.Close()

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": file.Name}))
	http.ServeContent(c.Writer, c.Request, file.Name, file.ModTime, file.Content)
}

// readBookRequest binds the text fields and opens the optional uploads.
// On failure the response has already been written. The returned func
// releases the request's files and must always be called.
func (bc *BooksController) readBookRequest(c *gin.Context) (library.BookInput, library.Uploads, func(), bool) {
	var input library.BookInput
	var uploads library.Uploads
	var opened []multipart.File
	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
		if form := c.Request.MultipartForm; form != nil {
			form.RemoveAll()
		}
	}

	// Parse with the engine's memory limit before binding does it with its own
	if c.ContentType() == binding.MIMEMultipartPOSTForm {
		if _, err := c.MultipartForm(); err != nil {
			respondBadRequest(c, "invalid request body")
			return input, uploads, closeAll, false
		}
	}
	if err := c.ShouldBind(&input); err != nil {
		respondBadRequest(c, "invalid request body")
		return input, uploads, closeAll, false
	}

	for _, field := range []string{coverImageField, bookFileField} {
		upload, f, err := openUpload(c, field)
		if err != nil {
			respondInternalError(c, err, "read upload "+field)
			return input, uploads, closeAll, false
		}
		if upload == nil {
			continue
		}
		opened = append(opened, f)
		if field == coverImageField {
			uploads.CoverImage = upload
		} else {
			uploads.File = upload
		}
	}
	return input, uploads, closeAll, true
}

// openUpload returns nil when the request carries no file under field.
func openUpload(c *gin.Context, field string) (*library.Upload, multipart.File, error) {
	header, err := c.FormFile(field)
	if err != nil {
		if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
			logger.Get().Debug().Err(err).Str("field", field).Msg("upload ignored")
		}
		return nil, nil, nil
	}
	f, err := header.Open()
	if err != nil {
		return nil, nil, err
	}
	return &library.Upload{Filename: header.Filename, Content: f}, f, nil
}
