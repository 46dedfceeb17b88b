package main

import (
	"github.com/aqua-next/internal/config"
	"github.com/aqua-next/internal/logger"
	"github.com/aqua-next/internal/models"
	"github.com/aqua-next/internal/repository"
	"github.com/aqua-next/internal/service"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	settingService := service.NewSettingService(repository.NewSettingRepository(models.DB))
	tierService := service.NewTierService(repository.NewTierRepository(models.DB), settingService)

	// 写入默认等级阶梯
	if err := tierService.EnsureDefaultLadders(); err != nil {
		stdLog.Fatalf("Failed to seed tier ladders: %v", err)
	}
	stdLog.Printf("Seeded default tier ladders")

	// 写入默认佣金配置
	if _, err := settingService.UpdateCommissionSetting(service.CommissionDefaultSetting()); err != nil {
		stdLog.Fatalf("Failed to seed commission settings: %v", err)
	}
	stdLog.Printf("Seeded default commission settings")

	// 添加门店
	stores := []models.Store{
		{Name: "Aqua Luanda Centro", City: "Luanda", Address: "Rua Amílcar Cabral 12", Phone: "+244 923 000 101", Lat: -8.8383, Lng: 13.2344, Status: "active", SortOrder: 10},
		{Name: "Aqua Luanda Talatona", City: "Luanda", Address: "Via AL-16, Talatona", Phone: "+244 923 000 102", Lat: -8.9183, Lng: 13.1836, Status: "active", SortOrder: 9},
		{Name: "Aqua Benguela", City: "Benguela", Address: "Av. Norton de Matos 45", Phone: "+244 923 000 103", Lat: -12.5778, Lng: 13.4077, Status: "active", SortOrder: 8},
		{Name: "Aqua Lobito", City: "Lobito", Address: "Rua Robert Williams 8", Phone: "+244 923 000 104", Lat: -12.3644, Lng: 13.5361, Status: "active", SortOrder: 7},
		{Name: "Aqua Huambo", City: "Huambo", Address: "Rua 5 de Outubro 23", Phone: "+244 923 000 105", Lat: -12.7761, Lng: 15.7392, Status: "active", SortOrder: 6},
	}

	for _, store := range stores {
		var existing models.Store
		if err := models.DB.Where("name = ?", store.Name).First(&existing).Error; err != nil {
			// 不存在则创建
			if err := models.DB.Create(&store).Error; err != nil {
				stdLog.Printf("Failed to create store %s: %v", store.Name, err)
			} else {
				stdLog.Printf("Created store: %s", store.Name)
			}
		} else {
			stdLog.Printf("Store already exists: %s", store.Name)
		}
	}

	stdLog.Printf("Seed completed")
}
