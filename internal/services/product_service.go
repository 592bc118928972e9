package services

import (
	"context"
	"fmt"

	"feedback_backend/internal/auth"
	"feedback_backend/internal/models"
	"feedback_backend/internal/repositories"
	"feedback_backend/internal/services/dto"
	"feedback_backend/internal/validator"
	"feedback_backend/pkg/apperrors"
)

type ProductService interface {
	Get(ctx context.Context, id string) (*models.Product, error)
	List(ctx context.Context, limit, offset int) ([]models.Product, int64, error)
	Add(ctx context.Context, caller *auth.Identity, req *dto.AddProductRequest) (*models.Product, error)
	Update(ctx context.Context, caller *auth.Identity, productID string, req *dto.UpdateProductRequest) (*models.Product, error)
	Delete(ctx context.Context, caller *auth.Identity, productID string) error
}

type ProductServiceImpl struct {
	productRepo  repositories.ProductRepository
	feedbackRepo repositories.FeedbackRepository
	audit        AuditRecorder
	validate     *validator.Validator
}

func NewProductService(
	productRepo repositories.ProductRepository,
	feedbackRepo repositories.FeedbackRepository,
	audit AuditRecorder,
	validate *validator.Validator,
) ProductService {
	return &ProductServiceImpl{
		productRepo:  productRepo,
		feedbackRepo: feedbackRepo,
		audit:        audit,
		validate:     validate,
	}
}

func (s *ProductServiceImpl) Get(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProductNotFound) {
			return nil, apperrors.ErrProductNotFound()
		}
		return nil, apperrors.InternalError(err)
	}
	return product, nil
}

func (s *ProductServiceImpl) List(ctx context.Context, limit, offset int) ([]models.Product, int64, error) {
	products, err := s.productRepo.FindAll(limit, offset)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	total, err := s.productRepo.CountAll()
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	return products, total, nil
}

func (s *ProductServiceImpl) Add(ctx context.Context, caller *auth.Identity, req *dto.AddProductRequest) (*models.Product, error) {
	if err := auth.Require(caller, auth.ActionAddProduct, ""); err != nil {
		return nil, err
	}

	if err := s.validate.Validate(req); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			return nil, apperrors.ValidationError(vErr.Errors)
		}
		return nil, apperrors.InternalError(err)
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := s.productRepo.Create(product); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.audit.Record(ctx, &caller.UserID, AuditProductAdded,
		fmt.Sprintf("product %q (%s) created", product.Name, product.ID))

	return product, nil
}

func (s *ProductServiceImpl) Update(ctx context.Context, caller *auth.Identity, productID string, req *dto.UpdateProductRequest) (*models.Product, error) {
	if err := auth.Require(caller, auth.ActionUpdateProduct, ""); err != nil {
		return nil, err
	}

	if err := s.validate.Validate(req); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			return nil, apperrors.ValidationError(vErr.Errors)
		}
		return nil, apperrors.InternalError(err)
	}

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProductNotFound) {
			return nil, apperrors.ErrProductNotFound()
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.audit.Record(ctx, &caller.UserID, AuditProductUpdated,
		fmt.Sprintf("product %q (%s) updated", product.Name, product.ID))

	return product, nil
}

// Delete removes the product and all of its feedback rows.
func (s *ProductServiceImpl) Delete(ctx context.Context, caller *auth.Identity, productID string) error {
	if err := auth.Require(caller, auth.ActionDeleteProduct, ""); err != nil {
		return err
	}

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProductNotFound) {
			return apperrors.ErrProductNotFound()
		}
		return apperrors.InternalError(err)
	}

	removed, err := s.feedbackRepo.DeleteByProduct(productID)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.productRepo.Delete(productID); err != nil {
		return apperrors.InternalError(err)
	}

	s.audit.Record(ctx, &caller.UserID, AuditProductDeleted,
		fmt.Sprintf("product %q (%s) deleted with %d feedback entries", product.Name, product.ID, removed))

	return nil
}
