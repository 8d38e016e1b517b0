package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/community-hub/internal/model"
	"github.com/d60-Lab/community-hub/internal/repository"
)

// DocumentService 社区文档：每次更新追加不可变版本
type DocumentService interface {
	Create(ctx context.Context, communityID, authorID, title, body string) (*model.Document, error)
	// Update 追加版本 n+1 并推进 head，同事务
	Update(ctx context.Context, documentID, editorID, body string) (*model.Document, error)
	Get(ctx context.Context, id string) (*model.Document, *model.DocumentVersion, error)
	GetVersion(ctx context.Context, id string, version int) (*model.DocumentVersion, error)
	ListVersions(ctx context.Context, id string, page, pageSize int) ([]*model.DocumentVersion, error)
	List(ctx context.Context, communityID string, page, pageSize int) ([]*model.Document, error)
}

type documentService struct {
	db        *gorm.DB
	docRepo   repository.DocumentRepository
	community CommunityService
}

func NewDocumentService(db *gorm.DB, docRepo repository.DocumentRepository, community CommunityService) DocumentService {
	return &documentService{db: db, docRepo: docRepo, community: community}
}

func (s *documentService) Create(ctx context.Context, communityID, authorID, title, body string) (*model.Document, error) {
	if _, err := s.community.RoleOf(ctx, communityID, authorID); err != nil {
		return nil, err
	}
	now := time.Now()
	doc := &model.Document{
		ID:             uuid.New().String(),
		CommunityID:    communityID,
		Title:          title,
		CurrentVersion: 1,
		CreatedBy:      authorID,
		UpdatedBy:      authorID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(doc).Error; err != nil {
			return err
		}
		return tx.Create(&model.DocumentVersion{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			Version:    1,
			Body:       body,
			EditorID:   authorID,
			CreatedAt:  now,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *documentService) Update(ctx context.Context, documentID, editorID, body string) (*model.Document, error) {
	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if _, err := s.community.RoleOf(ctx, doc.CommunityID, editorID); err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 锁 head 行防并发写出重复版本号
		var head model.Document
		if err := lockForUpdate(tx).Where("id = ?", documentID).First(&head).Error; err != nil {
			return err
		}
		next := head.CurrentVersion + 1
		if err := tx.Create(&model.DocumentVersion{
			ID:         uuid.New().String(),
			DocumentID: documentID,
			Version:    next,
			Body:       body,
			EditorID:   editorID,
			CreatedAt:  time.Now(),
		}).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Document{}).Where("id = ?", documentID).
			Updates(map[string]any{"current_version": next, "updated_by": editorID}).Error; err != nil {
			return err
		}
		doc.CurrentVersion = next
		doc.UpdatedBy = editorID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *documentService) Get(ctx context.Context, id string) (*model.Document, *model.DocumentVersion, error) {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	head, err := s.docRepo.GetVersion(ctx, id, doc.CurrentVersion)
	if err != nil {
		return nil, nil, err
	}
	return doc, head, nil
}

func (s *documentService) GetVersion(ctx context.Context, id string, version int) (*model.DocumentVersion, error) {
	v, err := s.docRepo.GetVersion(ctx, id, version)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return v, err
}

func (s *documentService) ListVersions(ctx context.Context, id string, page, pageSize int) ([]*model.DocumentVersion, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	return s.docRepo.ListVersions(ctx, id, (page-1)*pageSize, pageSize)
}

func (s *documentService) List(ctx context.Context, communityID string, page, pageSize int) ([]*model.Document, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	return s.docRepo.ListByCommunity(ctx, communityID, (page-1)*pageSize, pageSize)
}
