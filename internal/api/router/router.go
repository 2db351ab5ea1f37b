package router

import (
	"context"
	"errors"
	"io"
	"strings"

	"resume-match-go/internal/api/handler"
	"resume-match-go/internal/embedding"
	"resume-match-go/internal/extractor"
	"resume-match-go/internal/processor"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"gorm.io/gorm"
)

// RegisterRoutes 注册 API 路由
func RegisterRoutes(h *server.Hertz, analyzeHandler *handler.AnalyzeHandler, maxUploadBytes int64) {
	api := h.Group("/api/v1")

	// 同步分析：请求内完成整条流水线并直接返回结果
	api.POST("/analyze", func(c context.Context, ctx *app.RequestContext) {
		fileHeader, err := ctx.FormFile("file")
		if err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "文件未找到"})
			return
		}
		if maxUploadBytes > 0 && fileHeader.Size > maxUploadBytes {
			ctx.JSON(consts.StatusRequestEntityTooLarge, utils.H{"error": "文件超出大小限制"})
			return
		}

		jdText := strings.TrimSpace(ctx.PostForm("job_description"))
		if jdText == "" {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "job_description不能为空"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "打开文件失败"})
			return
		}
		defer file.Close()
		fileData, err := io.ReadAll(file)
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "读取文件失败"})
			return
		}

		result, err := analyzeHandler.HandleAnalyze(c, fileData, fileHeader.Filename, jdText)
		if err != nil {
			ctx.JSON(statusForError(err), utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, result)
	})

	// 异步分析：上传入队，结果走查询接口
	api.POST("/resume/upload", func(c context.Context, ctx *app.RequestContext) {
		fileHeader, err := ctx.FormFile("file")
		if err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "文件未找到"})
			return
		}
		if maxUploadBytes > 0 && fileHeader.Size > maxUploadBytes {
			ctx.JSON(consts.StatusRequestEntityTooLarge, utils.H{"error": "文件超出大小限制"})
			return
		}
		jdText := strings.TrimSpace(ctx.PostForm("job_description"))

		file, err := fileHeader.Open()
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "打开文件失败"})
			return
		}
		defer file.Close()

		resp, err := analyzeHandler.HandleResumeUpload(c, file, fileHeader.Filename, jdText)
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, resp)
	})

	// 查询异步分析结果
	api.GET("/analysis/:uuid", func(c context.Context, ctx *app.RequestContext) {
		submissionUUID := ctx.Param("uuid")
		resp, err := analyzeHandler.HandleGetAnalysis(c, submissionUUID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.JSON(consts.StatusNotFound, utils.H{"error": "分析记录不存在"})
				return
			}
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, resp)
	})

	// 健康检查
	api.GET("/health", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, utils.H{"status": "ok"})
	})
}

// statusForError 将流水线错误映射为HTTP状态码
func statusForError(err error) int {
	switch {
	case errors.Is(err, extractor.ErrUnsupportedFormat):
		return consts.StatusUnsupportedMediaType
	case errors.Is(err, extractor.ErrExtractionFailed),
		errors.Is(err, processor.ErrExtractTextFailed):
		return consts.StatusUnprocessableEntity
	case errors.Is(err, embedding.ErrModelUnavailable):
		return consts.StatusServiceUnavailable
	default:
		return consts.StatusInternalServerError
	}
}
