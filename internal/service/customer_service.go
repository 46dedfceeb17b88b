package service

import (
	"strings"
	"time"

	"github.com/aqua-next/internal/constants"
	"github.com/aqua-next/internal/models"
	"github.com/aqua-next/internal/repository"

	"gorm.io/gorm"
)

// CustomerService 客户业务服务
type CustomerService struct {
	repo           repository.CustomerRepository
	influencerRepo repository.InfluencerRepository
}

// NewCustomerService 创建客户服务
func NewCustomerService(repo repository.CustomerRepository, influencerRepo repository.InfluencerRepository) *CustomerService {
	return &CustomerService{repo: repo, influencerRepo: influencerRepo}
}

// CustomerCreateInput 创建客户输入
type CustomerCreateInput struct {
	Name         string
	Phone        string
	Email        string
	ReferralCode string
}

// Create 创建客户，可携带大使推荐码完成归因
// 归因与推荐计数在同一事务内完成，推荐码无效直接拒绝。
func (s *CustomerService) Create(input CustomerCreateInput) (*models.Customer, error) {
	name := strings.TrimSpace(input.Name)
	phone := strings.TrimSpace(input.Phone)
	if name == "" || phone == "" {
		return nil, ErrInvalidInput
	}

	existing, err := s.repo.GetByPhone(phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrPhoneTaken
	}

	customer := &models.Customer{
		Name:     name,
		Phone:    phone,
		Email:    strings.TrimSpace(input.Email),
		TierCode: constants.TierCodeLead,
		Status:   constants.CustomerStatusActive,
	}

	code := strings.TrimSpace(input.ReferralCode)
	if code == "" {
		if err := s.repo.Create(customer); err != nil {
			return nil, err
		}
		return customer, nil
	}

	err = s.repo.Transaction(func(tx *gorm.DB) error {
		influencerRepo := s.influencerRepo.WithTx(tx)
		influencer, err := influencerRepo.GetByReferralCode(code)
		if err != nil {
			return err
		}
		if influencer == nil {
			return ErrReferralCodeInvalid
		}
		if influencer.Status != constants.InfluencerStatusActive {
			return ErrInfluencerInactive
		}

		customer.InfluencerID = &influencer.ID
		if err := s.repo.WithTx(tx).Create(customer); err != nil {
			return err
		}

		influencer.ReferralCount++
		return influencerRepo.Update(influencer)
	})
	if err != nil {
		return nil, err
	}
	return customer, nil
}

// Get 获取客户详情
func (s *CustomerService) Get(id uint) (*models.Customer, error) {
	customer, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrNotFound
	}
	return customer, nil
}

// List 查询客户列表
func (s *CustomerService) List(filter repository.CustomerListFilter) ([]models.Customer, int64, error) {
	return s.repo.List(filter)
}

// CustomerUpdateInput 更新客户输入
type CustomerUpdateInput struct {
	Name   *string
	Email  *string
	Status *string
}

// Update 更新客户基础信息
func (s *CustomerService) Update(id uint, input CustomerUpdateInput) (*models.Customer, error) {
	customer, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrNotFound
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrInvalidInput
		}
		customer.Name = name
	}
	if input.Email != nil {
		customer.Email = strings.TrimSpace(*input.Email)
	}
	if input.Status != nil {
		status := strings.TrimSpace(*input.Status)
		if status != constants.CustomerStatusActive && status != constants.CustomerStatusDisabled {
			return nil, ErrInvalidInput
		}
		customer.Status = status
	}

	if err := s.repo.Update(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// CountActiveByInfluencer 统计大使名下活跃客户数
// 活跃窗口为最近 90 天内有购买记录。
func (s *CustomerService) CountActiveByInfluencer(influencerID uint, now time.Time) (int64, error) {
	return s.repo.CountActiveByInfluencer(influencerID, now.AddDate(0, 0, -activeClientWindowDays))
}

const activeClientWindowDays = 90
