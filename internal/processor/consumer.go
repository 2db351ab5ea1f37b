package processor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"resume-match-go/internal/constants"
	"resume-match-go/internal/storage"
	"resume-match-go/internal/tracing"
	"resume-match-go/internal/types"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
)

// Consumer 消费分析队列，驱动异步分析任务
type Consumer struct {
	pipeline *Pipeline
	storage  *storage.Storage
	logger   zerolog.Logger
}

// NewConsumer 创建队列消费者。要求异步路径的存储后端齐备
func NewConsumer(pipeline *Pipeline, store *storage.Storage, logger zerolog.Logger) (*Consumer, error) {
	if pipeline == nil {
		return nil, fmt.Errorf("分析流水线不能为空")
	}
	if !store.AsyncEnabled() {
		return nil, fmt.Errorf("异步分析需要MinIO、MySQL和RabbitMQ同时可用")
	}
	return &Consumer{
		pipeline: pipeline,
		storage:  store,
		logger:   logger,
	}, nil
}

// Run 声明拓扑后阻塞消费，直到ctx取消或消费通道关闭
func (c *Consumer) Run(ctx context.Context) error {
	err := c.storage.RabbitMQ.EnsureTopology(
		constants.AnalysisExchange, constants.AnalysisQueue, constants.AnalysisRoutingKey)
	if err != nil {
		return fmt.Errorf("初始化分析队列拓扑失败: %w", err)
	}

	c.logger.Info().Str("queue", constants.AnalysisQueue).Msg("开始消费分析任务")
	return c.storage.RabbitMQ.Consume(ctx, constants.AnalysisQueue, c.handleMessage)
}

// handleMessage 处理单条分析任务。
// 返回非nil时消息被丢弃（不重投），分析失败会先落库failed状态
func (c *Consumer) handleMessage(ctx context.Context, body []byte) error {
	ctx, span := pipelineTracer.Start(ctx, "consumer.handleMessage")
	defer span.End()

	var msg types.ResumeUploadMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeInternal)
		return NewStageError("decode", ErrInvalidMessage, "", err)
	}
	if msg.SubmissionUUID == "" || msg.ObjectKey == "" {
		err := NewStageError("decode", ErrInvalidMessage, msg.SubmissionUUID,
			errors.New("缺少submission_uuid或object_key"))
		tracing.RecordError(span, err, tracing.ErrorTypeInternal)
		return err
	}
	span.SetAttributes(attribute.String("submission_uuid", msg.SubmissionUUID))
	log := c.logger.With().Str("submission_uuid", msg.SubmissionUUID).Logger()
	log.Info().Str("object_key", msg.ObjectKey).Msg("收到分析任务")

	if err := c.storage.MySQL.UpdateAnalysisStatus(ctx, msg.SubmissionUUID, types.StatusProcessing, ""); err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeDB)
		return err
	}

	fileData, err := c.storage.MinIO.GetResumeFile(ctx, msg.ObjectKey)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeInternal)
		c.markFailed(ctx, msg.SubmissionUUID, NewStageError("download", ErrDownloadFileFailed, msg.SubmissionUUID, err))
		return nil
	}

	result, err := c.pipeline.Analyze(ctx, msg.SubmissionUUID, fileData, msg.FileName, msg.JobDescription)
	if err != nil {
		// 分析失败是确定性的，重投无意义，落库后ack
		c.markFailed(ctx, msg.SubmissionUUID, err)
		return nil
	}

	if err := c.storage.MySQL.CompleteAnalysis(ctx, msg.SubmissionUUID, result); err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeDB)
		return NewStageError("store", ErrStoreResultFailed, msg.SubmissionUUID, err)
	}

	// 原始文件服务完本次分析即告废弃，删除失败只记日志
	if err := c.storage.MinIO.DeleteFile(ctx, msg.ObjectKey); err != nil {
		log.Warn().Err(err).Str("object_key", msg.ObjectKey).Msg("删除原始简历文件失败")
	}

	log.Info().
		Float64("score", result.Score).
		Str("mode", string(result.SimilarityMode)).
		Msg("分析任务完成")
	return nil
}

// markFailed 将任务置为failed并记录原因
func (c *Consumer) markFailed(ctx context.Context, submissionUUID string, cause error) {
	c.logger.Error().Err(cause).Str("submission_uuid", submissionUUID).Msg("分析任务失败")
	if err := c.storage.MySQL.UpdateAnalysisStatus(ctx, submissionUUID, types.StatusFailed, cause.Error()); err != nil {
		c.logger.Error().Err(err).Str("submission_uuid", submissionUUID).Msg("更新失败状态失败")
	}
}
