package processor

import (
	"errors"
	"fmt"
)

// 分析流水线各阶段的标志性错误，供errors.Is判断
var (
	// ErrExtractTextFailed 文本提取阶段失败
	ErrExtractTextFailed = errors.New("提取简历文本失败")

	// ErrEmbeddingFailed 向量计算阶段失败
	ErrEmbeddingFailed = errors.New("计算文本向量失败")

	// ErrScoreFailed 相似度计算阶段失败
	ErrScoreFailed = errors.New("计算匹配分数失败")

	// ErrDownloadFileFailed 从对象存储下载简历失败
	ErrDownloadFileFailed = errors.New("下载简历文件失败")

	// ErrStoreResultFailed 结果落库失败
	ErrStoreResultFailed = errors.New("保存分析结果失败")

	// ErrInvalidMessage 队列消息格式非法
	ErrInvalidMessage = errors.New("分析任务消息格式非法")
)

// AnalysisError 流水线错误，携带阶段与任务上下文信息
type AnalysisError struct {
	// SubmissionUUID 关联的提交UUID，同步路径可能为空
	SubmissionUUID string
	// Stage 出错的流水线阶段
	Stage string
	// BaseErr 阶段哨兵错误，用于errors.Is匹配
	BaseErr error
	// Cause 底层原因，保留原错误链（如提取器/嵌入模型的错误类型）
	Cause error
}

// Error 实现error接口
func (e *AnalysisError) Error() string {
	if e.SubmissionUUID != "" {
		return fmt.Sprintf("[%s] %v (UUID:%s): %v", e.Stage, e.BaseErr, e.SubmissionUUID, e.Cause)
	}
	return fmt.Sprintf("[%s] %v: %v", e.Stage, e.BaseErr, e.Cause)
}

// Unwrap 同时暴露阶段哨兵和底层原因，errors.Is沿两条链都能匹配
func (e *AnalysisError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.BaseErr}
	}
	return []error{e.BaseErr, e.Cause}
}

// NewStageError 创建带阶段信息的流水线错误，cause保留底层错误链
func NewStageError(stage string, baseErr error, submissionUUID string, cause error) *AnalysisError {
	return &AnalysisError{
		SubmissionUUID: submissionUUID,
		Stage:          stage,
		BaseErr:        baseErr,
		Cause:          cause,
	}
}
