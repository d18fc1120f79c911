package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/obi/bookshelf-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	email    string
	username string
	password string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		email:    fmt.Sprintf("user_%s@example.com", suffix),
		username: fmt.Sprintf("testuser_%s", suffix),
		password: "testpassword123",
	}
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithUsername sets the username
func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.username = username
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        b.email,
		Username:     b.username,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// AuthResponse matches the API auth response
type AuthResponse struct {
	Token string `json:"token"`
	User  struct {
		ID       string `json:"id"`
		Email    string `json:"email"`
		Username string `json:"username"`
	} `json:"user"`
}

// BuildAndAuthenticate creates a user via API and returns the user and token
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	reqBody := map[string]string{
		"email":           b.email,
		"username":        b.username,
		"password":        b.password,
		"confirmPassword": b.password,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.APIURL("/auth/sign-up"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to sign up user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var authResp AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	userID, _ := uuid.Parse(authResp.User.ID)
	user := &domain.User{
		ID:       userID,
		Email:    authResp.User.Email,
		Username: authResp.User.Username,
	}

	return user, authResp.Token
}

// BookBuilder creates test books with a builder pattern
type BookBuilder struct {
	owner       *domain.User
	title       string
	author      string
	description string
	year        int
	coverURL    string
	coverMeta   *domain.CoverImageMeta
}

// NewBookBuilder creates a new BookBuilder with default values
func NewBookBuilder(owner *domain.User) *BookBuilder {
	return &BookBuilder{
		owner:  owner,
		title:  "Test Book",
		author: "Test Author",
		year:   2001,
	}
}

// WithTitle sets the title
func (b *BookBuilder) WithTitle(title string) *BookBuilder {
	b.title = title
	return b
}

// WithAuthor sets the author
func (b *BookBuilder) WithAuthor(author string) *BookBuilder {
	b.author = author
	return b
}

// WithDescription sets the description
func (b *BookBuilder) WithDescription(description string) *BookBuilder {
	b.description = description
	return b
}

// WithYear sets the publication year
func (b *BookBuilder) WithYear(year int) *BookBuilder {
	b.year = year
	return b
}

// WithCover attaches a cover image URL and host metadata
func (b *BookBuilder) WithCover(url string, meta domain.CoverImageMeta) *BookBuilder {
	b.coverURL = url
	b.coverMeta = &meta
	return b
}

// Build creates the book in the database
func (b *BookBuilder) Build(t *testing.T, db *gorm.DB) *domain.Book {
	t.Helper()

	book := &domain.Book{
		ID:          uuid.New(),
		Title:       b.title,
		Author:      b.author,
		Description: b.description,
		Year:        b.year,
		UserID:      b.owner.ID,
	}
	if b.coverMeta != nil {
		if err := book.SetCoverImage(b.coverURL, *b.coverMeta); err != nil {
			t.Fatalf("failed to set cover image: %v", err)
		}
	}

	if err := db.Create(book).Error; err != nil {
		t.Fatalf("failed to create book: %v", err)
	}

	return book
}
