package menu

import (
	"context"
	"errors"
	"strings"
	"time"

	"canteen-backend/domain"
	"canteen-backend/entities"
	"canteen-backend/internal/utils/storage"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const imageFolder = "menu-items"

type (
	MenuService interface {
		ListCategories(ctx context.Context, session domain.Session) ([]domain.CategoryResponse, error)
		CreateCategory(ctx context.Context, session domain.Session, req domain.CategoryRequest) (domain.CategoryResponse, error)
		UpdateCategory(ctx context.Context, session domain.Session, id string, req domain.CategoryRequest) (domain.CategoryResponse, error)
		DeleteCategory(ctx context.Context, session domain.Session, id string) error

		ListMenuItems(ctx context.Context, session domain.Session, filter domain.MenuItemFilter) ([]domain.MenuItemResponse, error)
		CreateMenuItem(ctx context.Context, session domain.Session, req domain.MenuItemRequest) (domain.MenuItemResponse, error)
		UpdateMenuItem(ctx context.Context, session domain.Session, id string, req domain.MenuItemRequest) (domain.MenuItemResponse, error)
		DeleteMenuItem(ctx context.Context, session domain.Session, id string) error
		UploadMenuItemImage(ctx context.Context, session domain.Session, req domain.UploadMenuItemImageRequest) (domain.MenuItemResponse, error)
	}

	menuService struct {
		menuRepository MenuRepository
		s3             storage.AwsS3
		now            func() time.Time
	}
)

func NewMenuService(menuRepository MenuRepository, s3 storage.AwsS3) MenuService {
	return &menuService{
		menuRepository: menuRepository,
		s3:             s3,
		now:            time.Now,
	}
}

func parseID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrParseUUID
	}
	return nil
}

func (s *menuService) ListCategories(ctx context.Context, session domain.Session) ([]domain.CategoryResponse, error) {
	if !session.HasCanteen() {
		return nil, domain.ErrCanteenNotSetUp
	}
	categories, err := s.menuRepository.GetCategories(ctx, session.CanteenID)
	if err != nil {
		return nil, err
	}
	counts, err := s.menuRepository.CountItemsByCategory(ctx, session.CanteenID)
	if err != nil {
		return nil, err
	}

	res := make([]domain.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		c := toCategoryResponse(category)
		c.ItemCount = counts[category.ID.String()]
		res = append(res, c)
	}
	return res, nil
}

func (s *menuService) CreateCategory(ctx context.Context, session domain.Session, req domain.CategoryRequest) (domain.CategoryResponse, error) {
	if !session.HasCanteen() {
		return domain.CategoryResponse{}, domain.ErrCanteenNotSetUp
	}
	canteenID, err := uuid.Parse(session.CanteenID)
	if err != nil {
		return domain.CategoryResponse{}, domain.ErrParseUUID
	}

	category := &entities.Category{
		ID:          uuid.New(),
		CanteenID:   canteenID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		IsActive:    req.IsActive == nil || *req.IsActive,
	}
	if category.Name == "" {
		return domain.CategoryResponse{}, domain.ErrValidation
	}
	if err := s.menuRepository.CreateCategory(ctx, category); err != nil {
		return domain.CategoryResponse{}, err
	}
	return toCategoryResponse(category), nil
}

func (s *menuService) getCategory(ctx context.Context, session domain.Session, id string) (*entities.Category, error) {
	if err := parseID(id); err != nil {
		return nil, domain.ErrCategoryNotFound
	}
	category, err := s.menuRepository.GetCategoryByID(ctx, session.CanteenID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *menuService) UpdateCategory(ctx context.Context, session domain.Session, id string, req domain.CategoryRequest) (domain.CategoryResponse, error) {
	if !session.HasCanteen() {
		return domain.CategoryResponse{}, domain.ErrCanteenNotSetUp
	}
	category, err := s.getCategory(ctx, session, id)
	if err != nil {
		return domain.CategoryResponse{}, err
	}

	category.Name = strings.TrimSpace(req.Name)
	category.Description = req.Description
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	if category.Name == "" {
		return domain.CategoryResponse{}, domain.ErrValidation
	}
	if err := s.menuRepository.UpdateCategory(ctx, category); err != nil {
		return domain.CategoryResponse{}, err
	}
	return toCategoryResponse(category), nil
}

func (s *menuService) DeleteCategory(ctx context.Context, session domain.Session, id string) error {
	if !session.HasCanteen() {
		return domain.ErrCanteenNotSetUp
	}
	if err := parseID(id); err != nil {
		return domain.ErrCategoryNotFound
	}
	sold, err := s.menuRepository.CountOrderLinesByCategory(ctx, session.CanteenID, id)
	if err != nil {
		return err
	}
	if sold > 0 {
		return domain.ErrCategoryInUse
	}
	if err := s.menuRepository.DeleteCategory(ctx, session.CanteenID, id); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return domain.ErrCategoryNotFound
		case errors.Is(err, gorm.ErrForeignKeyViolated):
			// an order landed on one of its items after the check
			return domain.ErrCategoryInUse
		}
		return err
	}
	return nil
}

func (s *menuService) ListMenuItems(ctx context.Context, session domain.Session, filter domain.MenuItemFilter) ([]domain.MenuItemResponse, error) {
	if !session.HasCanteen() {
		return nil, domain.ErrCanteenNotSetUp
	}
	filter.Search = strings.TrimSpace(filter.Search)
	if filter.CategoryID != "" {
		if err := parseID(filter.CategoryID); err != nil {
			return nil, err
		}
	}

	items, err := s.menuRepository.GetMenuItems(ctx, session.CanteenID, filter)
	if err != nil {
		return nil, err
	}
	res := make([]domain.MenuItemResponse, 0, len(items))
	for _, item := range items {
		res = append(res, toMenuItemResponse(item))
	}
	return res, nil
}

// validateMenuItem runs before any store call.
func validateMenuItem(req domain.MenuItemRequest) error {
	if strings.TrimSpace(req.Name) == "" || req.CategoryID == "" || req.Price == nil {
		return domain.ErrValidation
	}
	if *req.Price < 0 {
		return domain.ErrInvalidPrice
	}
	if req.PreparationTime < 0 {
		return domain.ErrInvalidPrepTime
	}
	return nil
}

func (s *menuService) CreateMenuItem(ctx context.Context, session domain.Session, req domain.MenuItemRequest) (domain.MenuItemResponse, error) {
	if !session.HasCanteen() {
		return domain.MenuItemResponse{}, domain.ErrCanteenNotSetUp
	}
	if err := validateMenuItem(req); err != nil {
		return domain.MenuItemResponse{}, err
	}
	category, err := s.getCategory(ctx, session, req.CategoryID)
	if err != nil {
		return domain.MenuItemResponse{}, err
	}

	item := &entities.MenuItem{
		ID:              uuid.New(),
		CanteenID:       category.CanteenID,
		CategoryID:      category.ID,
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		Price:           *req.Price,
		PreparationTime: req.PreparationTime,
		IsActive:        req.IsActive == nil || *req.IsActive,
		IsAvailable:     req.IsAvailable == nil || *req.IsAvailable,
	}
	if err := s.menuRepository.CreateMenuItem(ctx, item); err != nil {
		return domain.MenuItemResponse{}, err
	}
	item.Category = category
	return toMenuItemResponse(item), nil
}

func (s *menuService) getMenuItem(ctx context.Context, session domain.Session, id string) (*entities.MenuItem, error) {
	if err := parseID(id); err != nil {
		return nil, domain.ErrMenuItemNotFound
	}
	item, err := s.menuRepository.GetMenuItemByID(ctx, session.CanteenID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMenuItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *menuService) UpdateMenuItem(ctx context.Context, session domain.Session, id string, req domain.MenuItemRequest) (domain.MenuItemResponse, error) {
	if !session.HasCanteen() {
		return domain.MenuItemResponse{}, domain.ErrCanteenNotSetUp
	}
	if err := validateMenuItem(req); err != nil {
		return domain.MenuItemResponse{}, err
	}
	item, err := s.getMenuItem(ctx, session, id)
	if err != nil {
		return domain.MenuItemResponse{}, err
	}
	category, err := s.getCategory(ctx, session, req.CategoryID)
	if err != nil {
		return domain.MenuItemResponse{}, err
	}

	item.CategoryID = category.ID
	item.Category = category
	item.Name = strings.TrimSpace(req.Name)
	item.Description = req.Description
	item.Price = *req.Price
	item.PreparationTime = req.PreparationTime
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}
	if err := s.menuRepository.UpdateMenuItem(ctx, item); err != nil {
		return domain.MenuItemResponse{}, err
	}
	return toMenuItemResponse(item), nil
}

func (s *menuService) DeleteMenuItem(ctx context.Context, session domain.Session, id string) error {
	if !session.HasCanteen() {
		return domain.ErrCanteenNotSetUp
	}
	item, err := s.getMenuItem(ctx, session, id)
	if err != nil {
		return err
	}

	// Sold items stay in place so past order lines keep their menu item.
	sold, err := s.menuRepository.CountOrderLinesByMenuItem(ctx, id)
	if err != nil {
		return err
	}
	if sold > 0 {
		return s.archiveMenuItem(ctx, session, id)
	}

	if err := s.menuRepository.DeleteMenuItem(ctx, session.CanteenID, id); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return domain.ErrMenuItemNotFound
		case errors.Is(err, gorm.ErrForeignKeyViolated):
			return s.archiveMenuItem(ctx, session, id)
		}
		return err
	}

	if item.ImageURL != "" {
		if key := s.s3.GetObjectKeyFromLink(item.ImageURL); key != "" {
			if err := s.s3.DeleteFile(key); err != nil {
				log.Warnf("failed to delete image %s of menu item %s: %v", key, id, err)
			}
		}
	}
	return nil
}

func (s *menuService) archiveMenuItem(ctx context.Context, session domain.Session, id string) error {
	if err := s.menuRepository.ArchiveMenuItem(ctx, session.CanteenID, id, s.now()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrMenuItemNotFound
		}
		return err
	}
	log.Infof("menu item %s has order history, archived instead of deleted", id)
	return nil
}

func (s *menuService) UploadMenuItemImage(ctx context.Context, session domain.Session, req domain.UploadMenuItemImageRequest) (domain.MenuItemResponse, error) {
	if !session.HasCanteen() {
		return domain.MenuItemResponse{}, domain.ErrCanteenNotSetUp
	}
	if req.Image == nil {
		return domain.MenuItemResponse{}, domain.ErrValidation
	}
	item, err := s.getMenuItem(ctx, session, req.MenuItemID)
	if err != nil {
		return domain.MenuItemResponse{}, err
	}

	var key string
	if existing := s.s3.GetObjectKeyFromLink(item.ImageURL); existing != "" {
		key, err = s.s3.UpdateFile(existing, req.Image, storage.AllowImage...)
	} else {
		key, err = s.s3.UploadFile(item.ID.String(), req.Image, imageFolder+"/"+session.CanteenID, storage.AllowImage...)
	}
	if err != nil {
		return domain.MenuItemResponse{}, err
	}

	item.ImageURL = s.s3.GetPublicLinkKey(key)
	if err := s.menuRepository.UpdateMenuItemImage(ctx, item.ID.String(), item.ImageURL); err != nil {
		return domain.MenuItemResponse{}, err
	}
	return toMenuItemResponse(item), nil
}

func toCategoryResponse(category *entities.Category) domain.CategoryResponse {
	return domain.CategoryResponse{
		ID:          category.ID.String(),
		CanteenID:   category.CanteenID.String(),
		Name:        category.Name,
		Description: category.Description,
		IsActive:    category.IsActive,
		CreatedAt:   category.CreatedAt,
	}
}

func toMenuItemResponse(item *entities.MenuItem) domain.MenuItemResponse {
	res := domain.MenuItemResponse{
		ID:              item.ID.String(),
		CanteenID:       item.CanteenID.String(),
		CategoryID:      item.CategoryID.String(),
		Name:            item.Name,
		Description:     item.Description,
		Price:           item.Price,
		PreparationTime: item.PreparationTime,
		ImageURL:        item.ImageURL,
		IsActive:        item.IsActive,
		IsAvailable:     item.IsAvailable,
		CreatedAt:       item.CreatedAt,
	}
	if item.Category != nil {
		res.CategoryName = item.Category.Name
	}
	return res
}
