package service

import (
	"context"

	"github.com/NaMinhyeok/order-practice/internal/core/domain"
	"github.com/NaMinhyeok/order-practice/internal/core/dto"
	"github.com/NaMinhyeok/order-practice/internal/core/logger"
	"github.com/NaMinhyeok/order-practice/internal/core/port"
	"github.com/NaMinhyeok/order-practice/internal/core/serviceerrors"
)

type ProductService struct {
	productRepository port.ProductPort
	txManager         port.TransactionManager
}

func NewProductService(productRepository port.ProductPort, txManager port.TransactionManager) *ProductService {
	return &ProductService{productRepository: productRepository, txManager: txManager}
}

func productNotFound(err error, id domain.ID) error {
	if serviceerrors.IsOfKind(err, serviceerrors.KindNotFound) {
		return serviceerrors.NewNotFoundError("product with id %d not found", id)
	}
	return err
}

func (s *ProductService) CreateProduct(ctx context.Context, request *dto.CreateProductRequest) (*domain.Product, error) {
	product := domain.NewProduct(request.Name, request.Category, domain.Amount(request.Price), request.Description)

	err := s.txManager.WithTransaction(ctx, port.IntentCommand, func(txCtx context.Context) error {
		return s.productRepository.Create(txCtx, product)
	})
	if err != nil {
		logger.Error(ctx, "product: create failed", err, map[string]any{
			"name":     request.Name,
			"category": request.Category,
			"price":    request.Price,
		})
		return nil, err
	}

	logger.Info(ctx, "Product created", map[string]any{"product_id": product.ID})
	return product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id domain.ID, request *dto.UpdateProductRequest) (*domain.Product, error) {
	var product *domain.Product
	err := s.txManager.WithTransaction(ctx, port.IntentCommand, func(txCtx context.Context) error {
		existing, err := s.productRepository.GetByID(txCtx, id)
		if err != nil {
			return productNotFound(err, id)
		}
		existing.Update(request.Name, request.Category, domain.Amount(request.Price), request.Description)
		if err := s.productRepository.Update(txCtx, existing); err != nil {
			return productNotFound(err, id)
		}
		product = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "Product updated", map[string]any{"product_id": id})
	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id domain.ID) (domain.ID, error) {
	err := s.txManager.WithTransaction(ctx, port.IntentCommand, func(txCtx context.Context) error {
		if _, err := s.productRepository.GetByID(txCtx, id); err != nil {
			return productNotFound(err, id)
		}
		return productNotFound(s.productRepository.Delete(txCtx, id), id)
	})
	if err != nil {
		return 0, err
	}

	logger.Info(ctx, "Product deleted", map[string]any{"product_id": id})
	return id, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id domain.ID) (*domain.Product, error) {
	var product *domain.Product
	err := s.txManager.WithTransaction(ctx, port.IntentQuery, func(txCtx context.Context) error {
		found, err := s.productRepository.GetByID(txCtx, id)
		if err != nil {
			return productNotFound(err, id)
		}
		product = found
		return nil
	})
	return product, err
}

func (s *ProductService) GetAll(ctx context.Context) ([]*domain.Product, error) {
	var products []*domain.Product
	err := s.txManager.WithTransaction(ctx, port.IntentQuery, func(txCtx context.Context) error {
		found, err := s.productRepository.GetAll(txCtx)
		products = found
		return err
	})
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []*domain.Product{}
	}
	return products, nil
}

// GetByIDs runs inside the caller's transaction. Missing ids are simply absent
// from the result.
func (s *ProductService) GetByIDs(ctx context.Context, ids []domain.ID) ([]*domain.Product, error) {
	return s.productRepository.GetByIDs(ctx, ids)
}
