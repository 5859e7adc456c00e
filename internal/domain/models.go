package domain

import (
	"time"

	"github.com/google/uuid"
)

// AdminUser represents a directory administrator.
type AdminUser struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Gem represents a curated point-of-interest listing.
type Gem struct {
	ID          uuid.UUID         `db:"id" json:"id"`
	Name        string            `db:"name" json:"name"`
	Slug        string            `db:"slug" json:"slug"`
	Description string            `db:"description" json:"description"`
	Category    string            `db:"category" json:"category"`
	City        string            `db:"city" json:"city"`
	Latitude    float64           `db:"latitude" json:"latitude"`
	Longitude   float64           `db:"longitude" json:"longitude"`
	ImageID     *uuid.UUID        `db:"image_id" json:"image_id,omitempty"`
	ImageURLs   map[string]string `db:"-" json:"image_urls,omitempty"`
	Status      GemStatus         `db:"status" json:"status"`
	CreatedAt   time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time         `db:"updated_at" json:"updated_at"`
}

// Submission represents a visitor-submitted listing awaiting moderation.
type Submission struct {
	ID             uuid.UUID        `db:"id" json:"id"`
	Name           string           `db:"name" json:"name"`
	Description    string           `db:"description" json:"description"`
	Category       string           `db:"category" json:"category"`
	City           string           `db:"city" json:"city"`
	Latitude       float64          `db:"latitude" json:"latitude"`
	Longitude      float64          `db:"longitude" json:"longitude"`
	SubmitterEmail string           `db:"submitter_email" json:"submitter_email"`
	Status         SubmissionStatus `db:"status" json:"status"`
	ReviewNote     string           `db:"review_note" json:"review_note"`
	ReviewedBy     *uuid.UUID       `db:"reviewed_by" json:"reviewed_by,omitempty"`
	ReviewedAt     *time.Time       `db:"reviewed_at" json:"reviewed_at,omitempty"`
	CreatedAt      time.Time        `db:"created_at" json:"created_at"`
}

// UploadResult is returned once every variant of an upload has been stored.
type UploadResult struct {
	ID           string            `json:"id"`
	URLs         map[string]string `json:"urls"`
	OriginalName string            `json:"originalName"`
	MimeType     string            `json:"mimeType"`
	UploadedAt   time.Time         `json:"uploadedAt"`
}

// StoredImage holds the bytes and headers of a proxied image read.
type StoredImage struct {
	Data          []byte
	ContentType   string
	ContentLength int64
	ETag          string
}

// ImageInfo is the result of a metadata probe; nothing is stored.
type ImageInfo struct {
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Format   string `json:"format"`
	Size     int    `json:"size"`
	HasAlpha bool   `json:"hasAlpha"`
	Channels int    `json:"channels"`
}

// MediaHealth is the structured status of the media subsystem.
type MediaHealth struct {
	Status           string   `json:"status"`
	Initialized      bool     `json:"initialized"`
	Bucket           string   `json:"bucket,omitempty"`
	SupportedFormats []string `json:"supported_formats,omitempty"`
	MaxSizeBytes     int64    `json:"max_size_bytes,omitempty"`
	Variants         []string `json:"variants,omitempty"`
	Error            string   `json:"error,omitempty"`
}
