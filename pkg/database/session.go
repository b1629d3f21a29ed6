package database

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"etsy_bulk_v1_202608/internal/model"
)

// OpenSessionDB 打开会话级缓存库
// dsn 留空时使用内存库：会话结束即销毁，满足“未保存草稿不跨会话持久化”的约束
func OpenSessionDB(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		dsn = "file::memory:?cache=shared"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("打开会话数据库失败: %v", err)
	}

	if err := db.AutoMigrate(
		&model.Preset{},
		&model.DescriptionTemplate{},
		&model.UploadJob{},
	); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %v", err)
	}

	return db, nil
}
