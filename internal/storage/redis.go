package storage

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"resume-match-go/internal/config"
	"resume-match-go/internal/constants"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound 键不存在。包装redis.Nil以隔离底层实现
var ErrNotFound = redis.Nil

// Redis 键值存储：向量缓存 + 原始文件MD5去重集合
type Redis struct {
	client *redis.Client
}

// NewRedis 创建Redis客户端并探活
func NewRedis(cfg *config.RedisConfig) (*Redis, error) {
	if cfg == nil {
		return nil, fmt.Errorf("Redis配置不能为空")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("连接Redis (%s) 失败: %w", cfg.Address, err)
	}
	return &Redis{client: client}, nil
}

// embeddingCacheKey 缓存键 embedding:<model>:<md5(text)>，
// 同一模型同一文本的缓存命中必须与重算逐字节一致
func embeddingCacheKey(model, text string) string {
	sum := md5.Sum([]byte(text))
	return constants.EmbeddingCachePrefix + model + ":" + hex.EncodeToString(sum[:])
}

// GetCachedEmbedding 取缓存向量，未命中返回ErrNotFound
func (r *Redis) GetCachedEmbedding(ctx context.Context, model, text string) ([]float32, error) {
	data, err := r.client.Get(ctx, embeddingCacheKey(model, text)).Bytes()
	if err != nil {
		return nil, err
	}
	var vec []float32
	if err := json.Unmarshal(data, &vec); err != nil {
		return nil, fmt.Errorf("反序列化缓存向量失败: %w", err)
	}
	return vec, nil
}

// CacheEmbedding 写入向量缓存
func (r *Redis) CacheEmbedding(ctx context.Context, model, text string, vector []float32) error {
	data, err := json.Marshal(vector)
	if err != nil {
		return fmt.Errorf("序列化向量失败: %w", err)
	}
	return r.client.Set(ctx, embeddingCacheKey(model, text), data,
		constants.EmbeddingCacheDuration).Err()
}

// CheckRawFileMD5Exists 查询原始文件MD5是否已上传过
func (r *Redis) CheckRawFileMD5Exists(ctx context.Context, fileMD5 string) (bool, error) {
	return r.client.SIsMember(ctx, constants.RawFileMD5SetKey, fileMD5).Result()
}

// AddRawFileMD5 记录新上传文件的MD5
func (r *Redis) AddRawFileMD5(ctx context.Context, fileMD5 string) error {
	return r.client.SAdd(ctx, constants.RawFileMD5SetKey, fileMD5).Err()
}

// Close 关闭客户端
func (r *Redis) Close() error {
	return r.client.Close()
}
