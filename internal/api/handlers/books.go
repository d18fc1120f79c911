package handlers

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/obi/bookshelf-api/internal/api/middleware"
	"github.com/obi/bookshelf-api/internal/api/respond"
	"github.com/obi/bookshelf-api/internal/imagehost"
	"github.com/obi/bookshelf-api/internal/service"
)

const maxMultipartMemory = 32 << 20

type BookHandler struct {
	bookService  *service.BookService
	imageService *service.ImageService
}

func NewBookHandler(bookService *service.BookService, imageService *service.ImageService) *BookHandler {
	return &BookHandler{
		bookService:  bookService,
		imageService: imageService,
	}
}

type createBookRequest struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
	Year        int    `json:"year"`
}

type updateBookRequest struct {
	Title       *string `json:"title"`
	Author      *string `json:"author"`
	Description *string `json:"description"`
	Year        *int    `json:"year"`
}

func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req createBookRequest
	var cover *imagehost.UploadResult

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			respond.Error(w, http.StatusBadRequest, "Invalid multipart form")
			return
		}
		req.Title = r.FormValue("title")
		req.Author = r.FormValue("author")
		req.Description = r.FormValue("description")
		if yearStr := r.FormValue("year"); yearStr != "" {
			year, err := strconv.Atoi(yearStr)
			if err != nil {
				respond.Error(w, http.StatusBadRequest, "Year must be a number")
				return
			}
			req.Year = year
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	if req.Title == "" || req.Author == "" || req.Year == 0 {
		respond.Error(w, http.StatusBadRequest, "Title, author and year are required")
		return
	}

	if isMultipart(r) {
		uploaded, err := h.uploadCoverIfPresent(w, r)
		if err != nil {
			return // response already written
		}
		cover = uploaded
	}

	book, err := h.bookService.Create(r.Context(), service.CreateBookInput{
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		Year:        req.Year,
		CoverImage:  cover,
	}, user)
	if err != nil {
		respond.DomainError(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, book)
}

func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	books, err := h.bookService.FindAll(r.Context(), user)
	if err != nil {
		respond.DomainError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, books)
}

func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid book ID")
		return
	}

	book, err := h.bookService.FindOne(r.Context(), id, user)
	if err != nil {
		respond.DomainError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, book)
}

func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid book ID")
		return
	}

	var req updateBookRequest
	var cover *imagehost.UploadResult

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			respond.Error(w, http.StatusBadRequest, "Invalid multipart form")
			return
		}
		req.Title = formValue(r, "title")
		req.Author = formValue(r, "author")
		req.Description = formValue(r, "description")
		if yearStr := formValue(r, "year"); yearStr != nil {
			year, err := strconv.Atoi(*yearStr)
			if err != nil {
				respond.Error(w, http.StatusBadRequest, "Year must be a number")
				return
			}
			req.Year = &year
		}

		uploaded, err := h.uploadCoverIfPresent(w, r)
		if err != nil {
			return
		}
		cover = uploaded
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	book, err := h.bookService.Update(r.Context(), id, service.UpdateBookInput{
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		Year:        req.Year,
		CoverImage:  cover,
	}, user)
	if err != nil {
		respond.DomainError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, book)
}

func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid book ID")
		return
	}

	if err := h.bookService.Remove(r.Context(), id, user); err != nil {
		respond.DomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// uploadCoverIfPresent reads the optional coverImage part and pushes it
// through the image service. A nil result with nil error means no file was
// attached. On failure the HTTP response has already been written.
func (h *BookHandler) uploadCoverIfPresent(w http.ResponseWriter, r *http.Request) (*imagehost.UploadResult, error) {
	file, header, err := r.FormFile("coverImage")
	if err == http.ErrMissingFile {
		return nil, nil
	}
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid cover image")
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Failed to read cover image")
		return nil, err
	}

	result, err := h.imageService.Upload(r.Context(), data, header.Header.Get("Content-Type"), header.Filename)
	if err != nil {
		respond.DomainError(w, err)
		return nil, err
	}
	return result, nil
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}

// formValue distinguishes an absent field from an empty one, which matters
// for partial updates.
func formValue(r *http.Request, key string) *string {
	values, ok := r.MultipartForm.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}
