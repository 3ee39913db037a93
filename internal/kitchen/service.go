package kitchen

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/radixdt3305/ghar-ka-kitchen/internal/apperror"
	"github.com/radixdt3305/ghar-ka-kitchen/internal/geo"
)

type Storage interface {
	UploadFileHeader(ctx context.Context, key string, header *multipart.FileHeader) (string, error)
}

type Service struct {
	repo    Repository
	storage Storage
}

func NewService(repo Repository, storage Storage) *Service {
	return &Service{repo: repo, storage: storage}
}

type RegisterInput struct {
	Name         string
	Description  string
	Address      Address
	Lng          float64
	Lat          float64
	Cuisines     []string
	FSSAILicense string
}

// --------------------------------------------------
// Register a kitchen (one per cook, starts pending)
// --------------------------------------------------
func (s *Service) Register(ctx context.Context, cookID string, in RegisterInput) (*Kitchen, error) {
	if in.Name == "" {
		return nil, apperror.Validation("kitchen name is required")
	}
	if in.Lng < -180 || in.Lng > 180 || in.Lat < -90 || in.Lat > 90 {
		return nil, apperror.Validation("invalid coordinates")
	}
	for _, cuisine := range in.Cuisines {
		if !ValidCuisines[cuisine] {
			return nil, apperror.Validation("unknown cuisine: " + cuisine)
		}
	}

	k := &Kitchen{
		ID:           uuid.New().String(),
		CookID:       cookID,
		Name:         in.Name,
		Description:  in.Description,
		Photos:       []string{},
		Address:      in.Address,
		Location:     geo.NewPoint(in.Lng, in.Lat),
		Cuisines:     in.Cuisines,
		Status:       StatusPending,
		FSSAILicense: in.FSSAILicense,
	}

	if err := s.repo.Create(ctx, k); err != nil {
		return nil, err
	}
	return k, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Kitchen, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) GetMine(ctx context.Context, cookID string) (*Kitchen, error) {
	return s.repo.FindByCook(ctx, cookID)
}

// --------------------------------------------------
// Update profile fields (owner only, re-verified)
// --------------------------------------------------
func (s *Service) Update(ctx context.Context, kitchenID, cookID string, in RegisterInput) (*Kitchen, error) {
	k, err := s.repo.FindByID(ctx, kitchenID)
	if err != nil {
		return nil, err
	}
	if k.CookID != cookID {
		return nil, apperror.Forbidden("not the kitchen owner")
	}

	if in.Name == "" {
		return nil, apperror.Validation("kitchen name is required")
	}
	if in.Lng < -180 || in.Lng > 180 || in.Lat < -90 || in.Lat > 90 {
		return nil, apperror.Validation("invalid coordinates")
	}
	for _, cuisine := range in.Cuisines {
		if !ValidCuisines[cuisine] {
			return nil, apperror.Validation("unknown cuisine: " + cuisine)
		}
	}

	k.Name = in.Name
	k.Description = in.Description
	k.Address = in.Address
	k.Location = geo.NewPoint(in.Lng, in.Lat)
	k.Cuisines = in.Cuisines
	k.FSSAILicense = in.FSSAILicense

	if err := s.repo.Update(ctx, k); err != nil {
		return nil, err
	}
	return k, nil
}

// --------------------------------------------------
// Photo uploads (owner only)
// --------------------------------------------------
func (s *Service) UploadPhotos(
	ctx context.Context,
	kitchenID string,
	cookID string,
	files []*multipart.FileHeader,
) ([]string, error) {

	k, err := s.repo.FindByID(ctx, kitchenID)
	if err != nil {
		return nil, err
	}
	if k.CookID != cookID {
		return nil, apperror.Forbidden("not the kitchen owner")
	}

	var urls []string
	for _, file := range files {
		ext := strings.ToLower(filepath.Ext(file.Filename))
		if ext == "" {
			return nil, apperror.Validation("invalid file: " + file.Filename)
		}

		key := fmt.Sprintf("kitchens/%s/%s%s", kitchenID, uuid.New().String(), ext)
		url, err := s.storage.UploadFileHeader(ctx, key, file)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}

	if err := s.repo.AddPhotos(ctx, kitchenID, urls); err != nil {
		return nil, err
	}
	return urls, nil
}

// --------------------------------------------------
// Admin status transitions
// --------------------------------------------------
func (s *Service) Approve(ctx context.Context, kitchenID string) (*Kitchen, error) {
	return s.repo.UpdateStatus(ctx, kitchenID, StatusApproved)
}

func (s *Service) Reject(ctx context.Context, kitchenID string) (*Kitchen, error) {
	return s.repo.UpdateStatus(ctx, kitchenID, StatusRejected)
}

func (s *Service) Suspend(ctx context.Context, kitchenID string) (*Kitchen, error) {
	return s.repo.UpdateStatus(ctx, kitchenID, StatusSuspended)
}

// Deactivate soft-deletes; kitchens are never hard-deleted.
func (s *Service) Deactivate(ctx context.Context, kitchenID, cookID string) error {
	k, err := s.repo.FindByID(ctx, kitchenID)
	if err != nil {
		return err
	}
	if k.CookID != cookID {
		return apperror.Forbidden("not the kitchen owner")
	}
	return s.repo.Deactivate(ctx, kitchenID)
}
