package constants

import "time"

const (
	// RabbitMQ 分析任务相关
	AnalysisExchange   = "resume.analysis"
	AnalysisQueue      = "resume.analysis.tasks"
	AnalysisRoutingKey = "analysis.task"

	// Redis键前缀与有效期
	EmbeddingCachePrefix   = "embedding:"        // 向量缓存，key为 embedding:<model>:<text_md5>
	EmbeddingCacheDuration = 7 * 24 * time.Hour  // 向量缓存有效期
	RawFileMD5SetKey       = "resumes:file_md5s" // 原始文件MD5去重集合

	// MinIO对象命名
	OriginalObjectFmt = "originals/%s%s" // originals/<uuid><ext>
	ParsedTextFmt     = "parsed/%s.txt"  // parsed/<uuid>.txt
)
