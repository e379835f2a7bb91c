package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Book is a single e-book metadata record. CoverImage and File hold the
// stored names of blobs in the upload directory.
type Book struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	Title      string    `gorm:"not null;size:512" json:"title"`
	Author     string    `gorm:"not null;size:256" json:"author"`
	ISBN       *string   `gorm:"uniqueIndex;size:20" json:"isbn"`
	CoverImage *string   `gorm:"size:1024" json:"coverImage"`
	File       *string   `gorm:"size:1024" json:"file"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}

func (Book) TableName() string {
	return "books"
}

// BeforeCreate assigns a random UUID when the caller did not set one.
func (b *Book) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// HasFile reports whether a book content blob is attached.
func (b *Book) HasFile() bool {
	return b.File != nil && *b.File != ""
}
