package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Book struct {
	ID            uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title         string         `json:"title" gorm:"not null"`
	Author        string         `json:"author" gorm:"not null"`
	Description   string         `json:"description,omitempty"`
	Year          int            `json:"year" gorm:"not null"`
	CoverImageURL string         `json:"coverImageUrl,omitempty"`
	CoverImage    datatypes.JSON `json:"-"`
	UserID        uuid.UUID      `json:"userId" gorm:"type:uuid;not null;index"`
	User          *User          `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// CoverImageMeta is what the image host reported for the current cover.
// The public ID is needed to destroy the image when the book is deleted
// or the cover replaced.
type CoverImageMeta struct {
	PublicID string `json:"publicId"`
	Format   string `json:"format,omitempty"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	Bytes    int64  `json:"bytes,omitempty"`
}

func (b *Book) SetCoverImage(url string, meta CoverImageMeta) error {
	raw, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	b.CoverImageURL = url
	b.CoverImage = datatypes.JSON(raw)
	return nil
}

// CoverImagePublicID returns the host public ID of the current cover, or
// empty when the book has no cover.
func (b *Book) CoverImagePublicID() string {
	if len(b.CoverImage) == 0 {
		return ""
	}
	var meta CoverImageMeta
	if err := json.Unmarshal(b.CoverImage, &meta); err != nil {
		return ""
	}
	return meta.PublicID
}
