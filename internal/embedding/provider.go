package embedding

import (
	"context"
	"errors"
)

// ErrModelUnavailable 嵌入模型初始化失败。对进程是致命的：
// 每次调用都会返回同一个锁存的错误，不会静默重试下载
var ErrModelUnavailable = errors.New("嵌入模型不可用")

// Provider 文本向量化接口
type Provider interface {
	// Embed 批量将文本映射为固定维度向量。
	// 空串/纯空白输入约定返回零向量，不调用模型
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions 返回该提供者的固定向量维度
	Dimensions() int
}
