package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"super-control/internal/domain"
	"super-control/internal/repository"
)

// ReceiptScraper extracts products from a published receipt page.
type ReceiptScraper interface {
	Fetch(ctx context.Context, receiptURL string) ([]domain.Product, error)
}

// SuperListInput creates a list from explicit products.
type SuperListInput struct {
	Order     string
	IssueDate string
	Products  []domain.Product
}

// SuperListURLInput creates a list from a receipt page.
type SuperListURLInput struct {
	URL       string
	Order     string
	IssueDate string
}

// SuperListService coordinates supermarket list operations. Every operation is
// scoped to the owner; lists of other users behave as missing.
type SuperListService interface {
	List(ctx context.Context, owner string) ([]domain.SuperList, error)
	Get(ctx context.Context, owner, id string) (*domain.SuperList, error)
	Create(ctx context.Context, owner string, input SuperListInput) (*domain.SuperList, error)
	CreateFromURL(ctx context.Context, owner string, input SuperListURLInput) (*domain.SuperList, error)
	Update(ctx context.Context, owner, id string, update domain.SuperListUpdate) (*domain.SuperList, error)
	Delete(ctx context.Context, owner, id string) (*domain.SuperList, error)
}

type superListService struct {
	lists   repository.SuperListRepository
	scraper ReceiptScraper
}

func NewSuperListService(lists repository.SuperListRepository, scraper ReceiptScraper) SuperListService {
	return &superListService{
		lists:   lists,
		scraper: scraper,
	}
}

func (s *superListService) List(ctx context.Context, owner string) ([]domain.SuperList, error) {
	lists, err := s.lists.ListActiveByUser(ctx, owner)
	if err != nil {
		return nil, err
	}
	if lists == nil {
		lists = []domain.SuperList{}
	}
	return lists, nil
}

func (s *superListService) Get(ctx context.Context, owner, id string) (*domain.SuperList, error) {
	list, err := s.lists.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrListNotFound
		}
		return nil, err
	}
	if list.Username != owner || list.Disabled {
		return nil, ErrListNotFound
	}
	return list, nil
}

func (s *superListService) Create(ctx context.Context, owner string, input SuperListInput) (*domain.SuperList, error) {
	order := strings.TrimSpace(input.Order)
	if order == "" {
		return nil, fmt.Errorf("%w: order is required", ErrInvalidInput)
	}
	if err := validateProducts(input.Products); err != nil {
		return nil, err
	}

	list := &domain.SuperList{
		ID:        uuid.NewString(),
		Username:  owner,
		Order:     order,
		IssueDate: strings.TrimSpace(input.IssueDate),
		Products:  input.Products,
	}
	if list.Products == nil {
		list.Products = []domain.Product{}
	}
	if err := s.lists.Create(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *superListService) CreateFromURL(ctx context.Context, owner string, input SuperListURLInput) (*domain.SuperList, error) {
	receiptURL := strings.TrimSpace(input.URL)
	if receiptURL == "" || strings.TrimSpace(input.Order) == "" || strings.TrimSpace(input.IssueDate) == "" {
		return nil, fmt.Errorf("%w: url, order and issue_date are required", ErrInvalidInput)
	}
	parsed, err := url.Parse(receiptURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, fmt.Errorf("%w: url must be an absolute http(s) address", ErrInvalidInput)
	}
	if s.scraper == nil {
		return nil, fmt.Errorf("%w: no receipt scraper configured", ErrScrapeFailed)
	}

	products, err := s.scraper.Fetch(ctx, receiptURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScrapeFailed, err)
	}

	return s.Create(ctx, owner, SuperListInput{
		Order:     input.Order,
		IssueDate: input.IssueDate,
		Products:  products,
	})
}

func (s *superListService) Update(ctx context.Context, owner, id string, update domain.SuperListUpdate) (*domain.SuperList, error) {
	if update.Empty() {
		return nil, fmt.Errorf("%w: no updatable fields supplied", ErrInvalidInput)
	}
	if update.Order != nil {
		order := strings.TrimSpace(*update.Order)
		if order == "" {
			return nil, fmt.Errorf("%w: order must not be empty", ErrInvalidInput)
		}
		update.Order = &order
	}
	if update.Products != nil {
		if err := validateProducts(update.Products); err != nil {
			return nil, err
		}
	}

	if _, err := s.Get(ctx, owner, id); err != nil {
		return nil, err
	}
	if err := s.lists.Update(ctx, id, update); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrListNotFound
		}
		return nil, err
	}
	return s.Get(ctx, owner, id)
}

func (s *superListService) Delete(ctx context.Context, owner, id string) (*domain.SuperList, error) {
	list, err := s.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if err := s.lists.SetDisabled(ctx, id, true); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrListNotFound
		}
		return nil, err
	}
	list.Disabled = true
	return list, nil
}
