package service

import (
	"strings"

	"github.com/aqua-next/internal/constants"
	"github.com/aqua-next/internal/geo"
	"github.com/aqua-next/internal/loyalty"
	"github.com/aqua-next/internal/models"
	"github.com/aqua-next/internal/repository"
)

// StoreService 门店业务服务
type StoreService struct {
	repo repository.StoreRepository
}

// NewStoreService 创建门店服务
func NewStoreService(repo repository.StoreRepository) *StoreService {
	return &StoreService{repo: repo}
}

// StoreInput 门店写入参数
type StoreInput struct {
	Name      string
	City      string
	Address   string
	Phone     string
	Lat       float64
	Lng       float64
	Status    string
	SortOrder int
}

// Create 创建门店
func (s *StoreService) Create(input StoreInput) (*models.Store, error) {
	store := &models.Store{}
	if err := applyStoreInput(store, input); err != nil {
		return nil, err
	}
	if err := s.repo.Create(store); err != nil {
		return nil, err
	}
	return store, nil
}

// Update 更新门店
func (s *StoreService) Update(id uint, input StoreInput) (*models.Store, error) {
	store, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrNotFound
	}
	if err := applyStoreInput(store, input); err != nil {
		return nil, err
	}
	if err := s.repo.Update(store); err != nil {
		return nil, err
	}
	return store, nil
}

// Delete 删除门店
func (s *StoreService) Delete(id uint) error {
	store, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if store == nil {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}

// Get 获取门店详情
func (s *StoreService) Get(id uint) (*models.Store, error) {
	store, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrNotFound
	}
	return store, nil
}

// List 查询门店列表（管理端）
func (s *StoreService) List(filter repository.StoreListFilter) ([]models.Store, int64, error) {
	return s.repo.List(filter)
}

// Search 按关键词与参考点检索门店
// 维护中/停用门店同样返回，前端按状态展示可用性。
func (s *StoreService) Search(origin *geo.Coordinate, query string) ([]loyalty.RankedStore, error) {
	stores, err := s.repo.ListAll()
	if err != nil {
		return nil, err
	}
	locations := make([]loyalty.StoreLocation, 0, len(stores))
	for _, store := range stores {
		locations = append(locations, loyalty.StoreLocation{
			ID:         store.ID,
			Name:       store.Name,
			City:       store.City,
			Address:    store.Address,
			Status:     store.Status,
			Coordinate: geo.Coordinate{Lat: store.Lat, Lng: store.Lng},
		})
	}
	ranked, err := loyalty.RankStores(locations, origin, query)
	if err != nil {
		return nil, ErrInvalidInput
	}
	return ranked, nil
}

func applyStoreInput(store *models.Store, input StoreInput) error {
	name := strings.TrimSpace(input.Name)
	city := strings.TrimSpace(input.City)
	address := strings.TrimSpace(input.Address)
	if name == "" || city == "" || address == "" {
		return ErrInvalidInput
	}
	coord := geo.Coordinate{Lat: input.Lat, Lng: input.Lng}
	if err := coord.Validate(); err != nil {
		return ErrInvalidInput
	}
	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = constants.StoreStatusActive
	}
	switch status {
	case constants.StoreStatusActive, constants.StoreStatusInactive, constants.StoreStatusMaintenance:
	default:
		return ErrInvalidInput
	}

	store.Name = name
	store.City = city
	store.Address = address
	store.Phone = strings.TrimSpace(input.Phone)
	store.Lat = input.Lat
	store.Lng = input.Lng
	store.Status = status
	store.SortOrder = input.SortOrder
	return nil
}
