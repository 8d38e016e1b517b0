package model

import "time"

// Document 社区文档，正文存在版本表，head 指向当前版本号
type Document struct {
	ID             string `gorm:"primaryKey;type:varchar(36)"`
	CommunityID    string `gorm:"type:varchar(36);index:idx_doc_community;not null"`
	Title          string `gorm:"type:varchar(256);not null"`
	CurrentVersion int    `gorm:"not null;default:0"`
	CreatedBy      string `gorm:"type:varchar(36)"`
	UpdatedBy      string `gorm:"type:varchar(36)"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Document) TableName() string { return "documents" }

// DocumentVersion 不可变历史版本
type DocumentVersion struct {
	ID         string `gorm:"primaryKey;type:varchar(36)"`
	DocumentID string `gorm:"type:varchar(36);index:idx_docver_pair,unique;not null"`
	Version    int    `gorm:"not null;index:idx_docver_pair,unique"`
	// idx_docver_pair = (document_id, version)
	Body      string `gorm:"type:text"`
	EditorID  string `gorm:"type:varchar(36)"`
	CreatedAt time.Time
}

func (DocumentVersion) TableName() string { return "document_versions" }
