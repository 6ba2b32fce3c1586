package model

import "time"

// Note is a shared study note backed by an uploaded file. IsPublic carries
// no column default: GORM drops zero-valued fields with a default tag from
// the INSERT, which would turn a private upload public.
type Note struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"not null" json:"title"`
	Subject    string    `json:"subject"`
	FileUrl    string    `gorm:"not null" json:"fileUrl"`
	FileSize   int64     `json:"fileSize"`
	FileType   string    `json:"fileType"`
	IsPublic   bool      `gorm:"not null" json:"isPublic"`
	UserID     uint      `gorm:"not null;index" json:"userId"`
	CreatedAt  time.Time `json:"createdAt"`
	UploadedBy User      `gorm:"foreignKey:UserID" json:"-"`
}

// Paper is a past exam paper. Same file handling as Note plus exam metadata.
type Paper struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"not null" json:"title"`
	Subject    string    `json:"subject"`
	Year       int       `json:"year"`
	ExamType   string    `json:"examType"`
	FileUrl    string    `gorm:"not null" json:"fileUrl"`
	FileSize   int64     `json:"fileSize"`
	FileType   string    `json:"fileType"`
	IsPublic   bool      `gorm:"not null" json:"isPublic"`
	UserID     uint      `gorm:"not null;index" json:"userId"`
	CreatedAt  time.Time `json:"createdAt"`
	UploadedBy User      `gorm:"foreignKey:UserID" json:"-"`
}

// Skill is a curated learning track. Only admins may mutate skills.
type Skill struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"not null" json:"title"`
	Category      string    `json:"category"`
	Description   string    `json:"description"`
	Level         string    `json:"level"`
	EstimatedTime string    `json:"estimatedTime"`
	ImageUrl      string    `json:"imageUrl"`
	Popularity    int       `gorm:"not null;default:0" json:"popularity"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ForumPost is a plain text post on the community board.
type ForumPost struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"not null" json:"content"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	Author    User      `gorm:"foreignKey:UserID" json:"-"`
}
