package service

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/vbonduro/nichevendor/internal/domain"
	"github.com/vbonduro/nichevendor/internal/store"
	"github.com/vbonduro/nichevendor/internal/validate"
)

// productRepository is the subset of store.Store that InventoryService requires.
type productRepository interface {
	AddProduct(ctx context.Context, p domain.Product) error
	UpdateProduct(ctx context.Context, p domain.Product) error
	DeleteProduct(ctx context.Context, id string) error
	GetProduct(id string) (domain.Product, bool)
	Products() []domain.Product
}

// ProductInput is what the product form submits.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Stock       int
	Category    string
	ImageURL    string
	// Variants with a nil Attributes map keep the stored attributes of the
	// variant with the same ID.
	Variants    []domain.ProductVariant
}

type InventoryService struct {
	products productRepository
	now      Clock
	logger   *slog.Logger
}

func NewInventoryService(products productRepository, now Clock, logger *slog.Logger) *InventoryService {
	return &InventoryService{products: products, now: now, logger: logger}
}

func (s *InventoryService) CreateProduct(ctx context.Context, in ProductInput) (*domain.Product, error) {
	now := s.now()
	p := buildProduct(in)
	p.ID = newID()
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := validate.Product(p); err != nil {
		return nil, err
	}
	if err := s.products.AddProduct(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to add product: %w", err)
	}
	s.logger.Info("product created", "product_id", p.ID, "category", p.Category)
	return &p, nil
}

// UpdateProduct replaces every editable field of the product; CreatedAt is
// kept.
// CheckProduct validates in without storing anything.
func (s *InventoryService) CheckProduct(in ProductInput) error {
	return validate.Product(buildProduct(in))
}

func (s *InventoryService) UpdateProduct(ctx context.Context, id string, in ProductInput) (*domain.Product, error) {
	existing, ok := s.products.GetProduct(id)
	if !ok {
		return nil, fmt.Errorf("product %s: %w", id, store.ErrNotFound)
	}

	in.Variants = keepVariantAttributes(in.Variants, existing.Variants)
	p := buildProduct(in)
	p.ID = existing.ID
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = s.now()

	if err := validate.Product(p); err != nil {
		return nil, err
	}
	if err := s.products.UpdateProduct(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	s.logger.Info("product updated", "product_id", p.ID)
	return &p, nil
}

func (s *InventoryService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.products.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	s.logger.Info("product deleted", "product_id", id)
	return nil
}

func (s *InventoryService) GetProduct(id string) (*domain.Product, error) {
	p, ok := s.products.GetProduct(id)
	if !ok {
		return nil, fmt.Errorf("product %s: %w", id, store.ErrNotFound)
	}
	return &p, nil
}

func (s *InventoryService) ListProducts(filter store.ProductFilter) []domain.Product {
	return store.FilterProducts(s.products.Products(), filter)
}

func (s *InventoryService) Categories() []string {
	return store.Categories(s.products.Products())
}

func keepVariantAttributes(variants, stored []domain.ProductVariant) []domain.ProductVariant {
	out := slices.Clone(variants)
	for i, v := range out {
		if v.ID == "" || v.Attributes != nil {
			continue
		}
		j := slices.IndexFunc(stored, func(sv domain.ProductVariant) bool { return sv.ID == v.ID })
		if j >= 0 {
			out[i].Attributes = maps.Clone(stored[j].Attributes)
		}
	}
	return out
}

func buildProduct(in ProductInput) domain.Product {
	variants := make([]domain.ProductVariant, 0, len(in.Variants))
	for _, v := range in.Variants {
		if v.ID == "" {
			v.ID = newID()
		}
		v.Name = strings.TrimSpace(v.Name)
		if v.Attributes == nil {
			v.Attributes = map[string]string{}
		}
		variants = append(variants, v)
	}
	if len(variants) == 0 {
		variants = nil
	}

	return domain.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		Stock:       in.Stock,
		Category:    strings.TrimSpace(in.Category),
		ImageURL:    strings.TrimSpace(in.ImageURL),
		Variants:    variants,
	}
}
