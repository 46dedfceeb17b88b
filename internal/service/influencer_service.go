package service

import (
	"crypto/rand"
	"math/big"
	"strings"
	"time"

	"github.com/aqua-next/internal/constants"
	"github.com/aqua-next/internal/models"
	"github.com/aqua-next/internal/repository"
)

const (
	referralCodeLength     = 8
	referralCodeMaxRetries = 5
)

// InfluencerService 推广大使业务服务
type InfluencerService struct {
	repo         repository.InfluencerRepository
	customerRepo repository.CustomerRepository
}

// NewInfluencerService 创建大使服务
func NewInfluencerService(repo repository.InfluencerRepository, customerRepo repository.CustomerRepository) *InfluencerService {
	return &InfluencerService{repo: repo, customerRepo: customerRepo}
}

// InfluencerCreateInput 创建大使输入
type InfluencerCreateInput struct {
	Name  string
	Phone string
	Email string
}

// Create 创建大使并分配推荐码
func (s *InfluencerService) Create(input InfluencerCreateInput) (*models.Influencer, error) {
	name := strings.TrimSpace(input.Name)
	phone := strings.TrimSpace(input.Phone)
	if name == "" || phone == "" {
		return nil, ErrInvalidInput
	}

	influencer := &models.Influencer{
		Name:            name,
		Phone:           phone,
		Email:           strings.TrimSpace(input.Email),
		TierCode:        constants.TierCodeLead,
		CommissionMonth: time.Now().Format("2006-01"),
		Status:          constants.InfluencerStatusActive,
	}

	for attempt := 0; attempt < referralCodeMaxRetries; attempt++ {
		code, err := generateReferralCode()
		if err != nil {
			return nil, err
		}
		influencer.ReferralCode = code
		err = s.repo.Create(influencer)
		if err == nil {
			return influencer, nil
		}
		if !isUniqueViolation(err) {
			return nil, err
		}
		// 推荐码撞库重试，手机号冲突无法通过重试恢复
		if strings.Contains(strings.ToLower(err.Error()), "phone") {
			return nil, ErrPhoneTaken
		}
	}
	return nil, ErrInvalidInput
}

// Get 获取大使详情
func (s *InfluencerService) Get(id uint) (*models.Influencer, error) {
	influencer, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if influencer == nil {
		return nil, ErrNotFound
	}
	return influencer, nil
}

// GetByReferralCode 按推荐码获取大使
func (s *InfluencerService) GetByReferralCode(code string) (*models.Influencer, error) {
	influencer, err := s.repo.GetByReferralCode(code)
	if err != nil {
		return nil, err
	}
	if influencer == nil {
		return nil, ErrReferralCodeInvalid
	}
	return influencer, nil
}

// List 查询大使列表
func (s *InfluencerService) List(filter repository.InfluencerListFilter) ([]models.Influencer, int64, error) {
	return s.repo.List(filter)
}

// UpdateStatus 启用/停用大使
// 停用只阻止新的归因与佣金，既有余额与申请不受影响。
func (s *InfluencerService) UpdateStatus(id uint, status string) error {
	status = strings.TrimSpace(status)
	if status != constants.InfluencerStatusActive && status != constants.InfluencerStatusInactive {
		return ErrInvalidInput
	}
	influencer, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if influencer == nil {
		return ErrNotFound
	}
	return s.repo.UpdateStatus(id, status, time.Now())
}

// RefreshActiveClients 重算大使的活跃客户数
func (s *InfluencerService) RefreshActiveClients(id uint, now time.Time) (*models.Influencer, error) {
	influencer, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if influencer == nil {
		return nil, ErrNotFound
	}

	count, err := s.customerRepo.CountActiveByInfluencer(id, now.AddDate(0, 0, -activeClientWindowDays))
	if err != nil {
		return nil, err
	}
	if int(count) == influencer.ActiveClientCount {
		return influencer, nil
	}
	influencer.ActiveClientCount = int(count)
	if err := s.repo.Update(influencer); err != nil {
		return nil, err
	}
	return influencer, nil
}

// RolloverMonthlyCommission 将账期落后的大使月度佣金清零
// 由后台周期任务调用，month 取当前自然月。
func (s *InfluencerService) RolloverMonthlyCommission(now time.Time) (int64, error) {
	return s.repo.ResetMonthlyCommission(now.Format("2006-01"), now)
}

func generateReferralCode() (string, error) {
	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	var builder strings.Builder
	builder.Grow(referralCodeLength)
	max := big.NewInt(int64(len(alphabet)))
	for i := 0; i < referralCodeLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		builder.WriteByte(alphabet[n.Int64()])
	}
	return builder.String(), nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
