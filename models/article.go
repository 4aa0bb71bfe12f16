package models

import "time"

// Article represents the articles table. Status values live in
// utils/status.go and are only ever written by the workflow engine.
type Article struct {
	ArticleID      int        `gorm:"primaryKey;column:article_id" json:"article_id"`
	Title          string     `gorm:"column:title" json:"title"`
	Abstract       string     `gorm:"column:abstract" json:"abstract"`
	Body           string     `gorm:"column:body" json:"body"`
	Keywords       string     `gorm:"column:keywords" json:"keywords"` // comma separated
	Language       string     `gorm:"column:language" json:"language"`
	Status         string     `gorm:"column:status" json:"status"`
	AuthorID       int        `gorm:"column:author_id" json:"author_id"`
	CategoryID     *int       `gorm:"column:category_id" json:"category_id,omitempty"`
	IssueID        *int       `gorm:"column:issue_id" json:"issue_id,omitempty"`
	DOI            *string    `gorm:"column:doi" json:"doi,omitempty"`
	ManuscriptFile *string    `gorm:"column:manuscript_file" json:"manuscript_file,omitempty"`
	CreatedAt      time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at" json:"updated_at"`
	SubmittedAt    *time.Time `gorm:"column:submitted_at" json:"submitted_at,omitempty"`
	PublishedAt    *time.Time `gorm:"column:published_at" json:"published_at,omitempty"`
	DeleteAt       *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Author   *User           `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Category *Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Coauthor []ArticleAuthor `gorm:"foreignKey:ArticleID" json:"coauthors,omitempty"`
}

// ArticleAuthor represents the article_authors table (co-author list).
// The primary author stays on Article.author_id; these rows are the
// additional authors in display order.
type ArticleAuthor struct {
	ID              int       `gorm:"primaryKey;column:id" json:"id"`
	ArticleID       int       `gorm:"column:article_id;uniqueIndex:idx_article_user" json:"article_id"`
	UserID          int       `gorm:"column:user_id;uniqueIndex:idx_article_user" json:"user_id"`
	AuthorOrder     int       `gorm:"column:author_order" json:"author_order"`
	IsCorresponding bool      `gorm:"column:is_corresponding" json:"is_corresponding"`
	CreatedAt       time.Time `gorm:"column:created_at" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// Category represents the categories table (read-only catalog).
type Category struct {
	CategoryID   int        `gorm:"primaryKey;column:category_id" json:"category_id"`
	CategoryName string     `gorm:"column:category_name" json:"category_name"`
	CreateAt     *time.Time `gorm:"column:create_at" json:"create_at"`
	DeleteAt     *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// TableName overrides
func (Article) TableName() string {
	return "articles"
}

func (ArticleAuthor) TableName() string {
	return "article_authors"
}

func (Category) TableName() string {
	return "categories"
}
