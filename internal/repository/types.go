package repository

import "time"

// CustomerListFilter 查询客户列表的过滤条件
type CustomerListFilter struct {
	Page         int
	PageSize     int
	Keyword      string
	TierCode     string
	Status       string
	InfluencerID uint
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
}

// InfluencerListFilter 查询大使列表的过滤条件
type InfluencerListFilter struct {
	Page        int
	PageSize    int
	Keyword     string
	TierCode    string
	Status      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// SaleListFilter 查询销售记录列表的过滤条件
type SaleListFilter struct {
	Page         int
	PageSize     int
	SaleNo       string
	CustomerID   uint
	InfluencerID uint
	StoreID      uint
	Status       string
	SoldFrom     *time.Time
	SoldTo       *time.Time
}

// StoreListFilter 查询门店列表的过滤条件
type StoreListFilter struct {
	Page     int
	PageSize int
	Keyword  string
	City     string
	Status   string
}

// PayoutListFilter 查询提现申请列表的过滤条件
type PayoutListFilter struct {
	Page         int
	PageSize     int
	InfluencerID uint
	Status       string
	AutoApproved *bool
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
}

// AuthzAuditLogListFilter 查询权限审计日志列表的过滤条件
type AuthzAuditLogListFilter struct {
	Page            int
	PageSize        int
	OperatorAdminID uint
	TargetAdminID   uint
	Action          string
	Role            string
	Object          string
	Method          string
	CreatedFrom     *time.Time
	CreatedTo       *time.Time
}
