package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/community-hub/internal/model"
)

type DocumentRepository interface {
	GetByID(ctx context.Context, id string) (*model.Document, error)
	ListByCommunity(ctx context.Context, communityID string, offset, limit int) ([]*model.Document, error)
	GetVersion(ctx context.Context, documentID string, version int) (*model.DocumentVersion, error)
	// ListVersions 版本号降序
	ListVersions(ctx context.Context, documentID string, offset, limit int) ([]*model.DocumentVersion, error)
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository { return &documentRepository{db: db} }

func (r *documentRepository) GetByID(ctx context.Context, id string) (*model.Document, error) {
	var d model.Document
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *documentRepository) ListByCommunity(ctx context.Context, communityID string, offset, limit int) ([]*model.Document, error) {
	var res []*model.Document
	err := r.db.WithContext(ctx).
		Where("community_id = ?", communityID).
		Order("updated_at DESC").
		Offset(offset).Limit(limit).
		Find(&res).Error
	return res, err
}

func (r *documentRepository) GetVersion(ctx context.Context, documentID string, version int) (*model.DocumentVersion, error) {
	var v model.DocumentVersion
	if err := r.db.WithContext(ctx).
		Where("document_id = ? AND version = ?", documentID, version).
		First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *documentRepository) ListVersions(ctx context.Context, documentID string, offset, limit int) ([]*model.DocumentVersion, error) {
	var res []*model.DocumentVersion
	err := r.db.WithContext(ctx).
		Where("document_id = ?", documentID).
		Order("version DESC").
		Offset(offset).Limit(limit).
		Find(&res).Error
	return res, err
}
