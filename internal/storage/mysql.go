package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"resume-match-go/internal/config"
	"resume-match-go/internal/storage/models"
	"resume-match-go/internal/types"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// MySQL 关系型存储，保存分析结果
type MySQL struct {
	db *gorm.DB
}

// NewMySQL 建立MySQL连接并自动迁移表结构
func NewMySQL(cfg *config.MySQLConfig) (*MySQL, error) {
	if cfg == nil {
		return nil, fmt.Errorf("MySQL配置不能为空")
	}

	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("连接MySQL失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层连接池失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&models.MatchAnalysis{}); err != nil {
		return nil, fmt.Errorf("迁移表结构失败: %w", err)
	}
	return &MySQL{db: db}, nil
}

// DB 暴露底层gorm实例
func (m *MySQL) DB() *gorm.DB {
	return m.db
}

// CreateAnalysis 新建分析记录（初始状态pending）
func (m *MySQL) CreateAnalysis(ctx context.Context, record *models.MatchAnalysis) error {
	if record.Status == "" {
		record.Status = types.StatusPending
	}
	if err := m.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("创建分析记录失败: %w", err)
	}
	return nil
}

// GetAnalysisByUUID 按提交UUID查询分析记录，
// 未找到时返回gorm.ErrRecordNotFound
func (m *MySQL) GetAnalysisByUUID(ctx context.Context, submissionUUID string) (*models.MatchAnalysis, error) {
	var record models.MatchAnalysis
	err := m.db.WithContext(ctx).
		Where("submission_uuid = ?", submissionUUID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// UpdateAnalysisStatus 更新任务状态，失败时带上原因
func (m *MySQL) UpdateAnalysisStatus(ctx context.Context, submissionUUID, status, errorDetail string) error {
	updates := map[string]interface{}{
		"status":       status,
		"error_detail": errorDetail,
	}
	err := m.db.WithContext(ctx).
		Model(&models.MatchAnalysis{}).
		Where("submission_uuid = ?", submissionUUID).
		Updates(updates).Error
	if err != nil {
		return fmt.Errorf("更新分析状态失败 (UUID:%s): %w", submissionUUID, err)
	}
	return nil
}

// CompleteAnalysis 写入完整分析结果并置为completed
func (m *MySQL) CompleteAnalysis(ctx context.Context, submissionUUID string, result *types.MatchResult) error {
	profileJSON, err := json.Marshal(result.Profile)
	if err != nil {
		return fmt.Errorf("序列化解析信息失败: %w", err)
	}
	keywordsJSON, err := json.Marshal(result.Keywords)
	if err != nil {
		return fmt.Errorf("序列化关键词失败: %w", err)
	}
	gapJSON, err := json.Marshal(result.GapReport)
	if err != nil {
		return fmt.Errorf("序列化差距报告失败: %w", err)
	}

	updates := map[string]interface{}{
		"status":          types.StatusCompleted,
		"similarity_mode": string(result.SimilarityMode),
		"score":           result.Score,
		"profile":         profileJSON,
		"keywords":        keywordsJSON,
		"gap_report":      gapJSON,
		"error_detail":    "",
	}
	err = m.db.WithContext(ctx).
		Model(&models.MatchAnalysis{}).
		Where("submission_uuid = ?", submissionUUID).
		Updates(updates).Error
	if err != nil {
		return fmt.Errorf("写入分析结果失败 (UUID:%s): %w", submissionUUID, err)
	}
	return nil
}

// Close 关闭连接池
func (m *MySQL) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
