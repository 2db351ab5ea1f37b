package storage

import (
	"context"
	"fmt"

	"resume-match-go/internal/config"

	"github.com/rs/zerolog"
)

// Storage 存储管理器，聚合所有存储相关依赖。
// 各后端按配置可选：未配置的后端为nil，只会关闭异步分析路径，
// 同步分析流水线不依赖任何后端
type Storage struct {
	// 对象存储
	MinIO *MinIO

	// 键值存储
	Redis *Redis

	// 关系型数据库
	MySQL *MySQL

	// 消息队列
	RabbitMQ *RabbitMQ
}

// NewStorage 按配置初始化各存储后端。已配置的后端初始化失败视为错误
func NewStorage(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*Storage, error) {
	if cfg == nil {
		return nil, fmt.Errorf("配置不能为空")
	}

	s := &Storage{}
	var err error

	if cfg.MinIO.Endpoint != "" {
		s.MinIO, err = NewMinIO(ctx, &cfg.MinIO, logger)
		if err != nil {
			return nil, fmt.Errorf("初始化MinIO失败: %w", err)
		}
		logger.Info().Str("endpoint", cfg.MinIO.Endpoint).Msg("MinIO客户端初始化成功")
	}

	if cfg.Redis.Address != "" {
		s.Redis, err = NewRedis(&cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("初始化Redis失败: %w", err)
		}
		logger.Info().Str("address", cfg.Redis.Address).Msg("Redis客户端初始化成功")
	}

	if cfg.MySQL.Host != "" {
		s.MySQL, err = NewMySQL(&cfg.MySQL)
		if err != nil {
			return nil, fmt.Errorf("初始化MySQL失败: %w", err)
		}
		logger.Info().Str("host", cfg.MySQL.Host).Msg("MySQL连接初始化成功")
	}

	if cfg.RabbitMQ.URL != "" {
		s.RabbitMQ, err = NewRabbitMQ(&cfg.RabbitMQ, logger)
		if err != nil {
			return nil, fmt.Errorf("初始化RabbitMQ失败: %w", err)
		}
		logger.Info().Msg("RabbitMQ客户端初始化成功")
	}

	return s, nil
}

// AsyncEnabled 异步分析路径要求对象存储、数据库和消息队列同时可用
func (s *Storage) AsyncEnabled() bool {
	return s != nil && s.MinIO != nil && s.MySQL != nil && s.RabbitMQ != nil
}

// Close 释放所有后端连接
func (s *Storage) Close() {
	if s.Redis != nil {
		_ = s.Redis.Close()
	}
	if s.MySQL != nil {
		_ = s.MySQL.Close()
	}
	if s.RabbitMQ != nil {
		_ = s.RabbitMQ.Close()
	}
}
