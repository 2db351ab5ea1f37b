package handler

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"resume-match-go/internal/constants"
	"resume-match-go/internal/processor"
	"resume-match-go/internal/storage"
	"resume-match-go/internal/storage/models"
	"resume-match-go/internal/types"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog"
)

// AnalyzeHandler 分析处理器，协调同步分析与异步上传两条路径
type AnalyzeHandler struct {
	storage  *storage.Storage
	pipeline *processor.Pipeline
	logger   zerolog.Logger
}

// NewAnalyzeHandler 创建分析处理器
func NewAnalyzeHandler(store *storage.Storage, pipeline *processor.Pipeline, logger zerolog.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		storage:  store,
		pipeline: pipeline,
		logger:   logger,
	}
}

// UploadResponse 异步上传响应
type UploadResponse struct {
	SubmissionUUID string `json:"submission_uuid"`
	Status         string `json:"status"`
}

// AnalysisResponse 分析结果查询响应。
// 结果字段在completed前为null
type AnalysisResponse struct {
	SubmissionUUID string          `json:"submission_uuid"`
	Status         string          `json:"status"`
	Score          *float64        `json:"score,omitempty"`
	SimilarityMode string          `json:"similarity_mode,omitempty"`
	Profile        json.RawMessage `json:"profile,omitempty"`
	Keywords       json.RawMessage `json:"keywords,omitempty"`
	GapReport      json.RawMessage `json:"gap_report,omitempty"`
	ErrorDetail    string          `json:"error_detail,omitempty"`
}

// HandleAnalyze 同步分析：直接在请求内完成整条流水线
func (h *AnalyzeHandler) HandleAnalyze(ctx context.Context, fileData []byte, fileName, jdText string) (*types.MatchResult, error) {
	return h.pipeline.Analyze(ctx, "", fileData, fileName, jdText)
}

// HandleResumeUpload 异步分析入口：
// MD5去重 -> 上传MinIO -> 建pending记录 -> 发布分析任务
func (h *AnalyzeHandler) HandleResumeUpload(ctx context.Context, reader io.Reader, fileName, jdText string) (*UploadResponse, error) {
	if !h.storage.AsyncEnabled() {
		return nil, fmt.Errorf("异步分析未启用：需要配置MinIO、MySQL和RabbitMQ")
	}

	// reader只能读一次，先整体读入再算MD5
	fileBytes, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("读取上传文件内容失败: %w", err)
	}
	sum := md5.Sum(fileBytes)
	fileMD5 := hex.EncodeToString(sum[:])

	// Redis可用时做原始文件去重
	if h.storage.Redis != nil {
		exists, err := h.storage.Redis.CheckRawFileMD5Exists(ctx, fileMD5)
		if err != nil {
			h.logger.Error().Err(err).Str("md5", fileMD5).Msg("查询文件MD5去重集合失败")
			return nil, fmt.Errorf("检查文件重复性失败: %w", err)
		}
		if exists {
			h.logger.Info().Str("md5", fileMD5).Str("file_name", fileName).Msg("检测到重复文件，跳过处理")
			return &UploadResponse{Status: "duplicate"}, nil
		}
	}

	uuidV7, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("生成提交UUID失败: %w", err)
	}
	submissionUUID := uuidV7.String()

	ext := filepath.Ext(fileName)
	if ext == "" {
		ext = ".pdf"
	}

	objectKey, err := h.storage.MinIO.UploadResumeFile(ctx, submissionUUID, ext,
		bytes.NewReader(fileBytes), int64(len(fileBytes)))
	if err != nil {
		return nil, fmt.Errorf("上传简历到对象存储失败: %w", err)
	}

	record := &models.MatchAnalysis{
		SubmissionUUID: submissionUUID,
		FileName:       fileName,
		ObjectKey:      objectKey,
		JobDescription: jdText,
		Status:         types.StatusPending,
	}
	if err := h.storage.MySQL.CreateAnalysis(ctx, record); err != nil {
		return nil, fmt.Errorf("创建分析记录失败: %w", err)
	}

	msg := types.ResumeUploadMessage{
		SubmissionUUID: submissionUUID,
		ObjectKey:      objectKey,
		FileName:       fileName,
		JobDescription: jdText,
	}
	if err := h.storage.RabbitMQ.PublishJSON(ctx,
		constants.AnalysisExchange, constants.AnalysisRoutingKey, msg); err != nil {
		// 消息发不出去任务不会被消费，直接置为failed避免永久pending
		_ = h.storage.MySQL.UpdateAnalysisStatus(ctx, submissionUUID, types.StatusFailed, err.Error())
		return nil, fmt.Errorf("发布分析任务失败: %w", err)
	}

	// 去重集合写入失败只影响下次去重，不阻塞本次上传
	if h.storage.Redis != nil {
		if err := h.storage.Redis.AddRawFileMD5(ctx, fileMD5); err != nil {
			h.logger.Warn().Err(err).Str("md5", fileMD5).Msg("记录文件MD5失败")
		}
	}

	h.logger.Info().
		Str("submission_uuid", submissionUUID).
		Str("object_key", objectKey).
		Msg("简历上传成功，分析任务已入队")
	return &UploadResponse{
		SubmissionUUID: submissionUUID,
		Status:         types.StatusPending,
	}, nil
}

// HandleGetAnalysis 按提交UUID查询分析结果。
// 未找到时透传gorm.ErrRecordNotFound，由路由层映射为404
func (h *AnalyzeHandler) HandleGetAnalysis(ctx context.Context, submissionUUID string) (*AnalysisResponse, error) {
	if h.storage == nil || h.storage.MySQL == nil {
		return nil, fmt.Errorf("结果查询未启用：需要配置MySQL")
	}

	record, err := h.storage.MySQL.GetAnalysisByUUID(ctx, submissionUUID)
	if err != nil {
		return nil, err
	}

	resp := &AnalysisResponse{
		SubmissionUUID: record.SubmissionUUID,
		Status:         record.Status,
		ErrorDetail:    record.ErrorDetail,
	}
	if record.Status == types.StatusCompleted {
		score := record.Score
		resp.Score = &score
		resp.SimilarityMode = record.SimilarityMode
		resp.Profile = json.RawMessage(record.Profile)
		resp.Keywords = json.RawMessage(record.Keywords)
		resp.GapReport = json.RawMessage(record.GapReport)
	}
	return resp, nil
}
