package router

import (
	"context"
	"errors"
	"io"
	"strconv"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/hertz-contrib/keyauth"

	"ats-score-go/internal/api/handler"
	"ats-score-go/internal/config"
	"ats-score-go/internal/scorer"
	"ats-score-go/internal/storage"
)

// RegisterRoutes 注册API路由。
// cfg.Server.APIKey非空时对/api/v1下的写接口启用X-API-Key鉴权。
func RegisterRoutes(h *server.Hertz, cfg *config.Config, scoreHandler *handler.ScoreHandler) {
	api := h.Group("/api/v1")

	if cfg.Server.APIKey != "" {
		api.Use(keyauth.New(
			keyauth.WithKeyLookUp("header:X-API-Key", ""),
			keyauth.WithValidator(func(c context.Context, ctx *app.RequestContext, key string) (bool, error) {
				return key == cfg.Server.APIKey, nil
			}),
		))
	}

	api.POST("/score", func(c context.Context, ctx *app.RequestContext) {
		req := &handler.ScoreUploadRequest{
			ResumeText: ctx.PostForm("resume_text"),
			JDText:     ctx.PostForm("jd_text"),
			Identity:   ctx.PostForm("identity"),
			Sector:     ctx.PostForm("sector"),
			Email:      ctx.PostForm("email"),
			Phone:      ctx.PostForm("phone"),
		}

		// 文件可选，不传文件时走resume_text
		if fileHeader, err := ctx.FormFile("resume"); err == nil {
			if fileHeader.Size > cfg.Server.MaxUploadBytes {
				ctx.JSON(consts.StatusRequestEntityTooLarge, utils.H{"error": "文件超过大小限制"})
				return
			}
			file, err := fileHeader.Open()
			if err != nil {
				ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "打开文件失败"})
				return
			}
			defer file.Close()

			fileBytes, err := io.ReadAll(file)
			if err != nil {
				ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "读取文件失败"})
				return
			}
			req.FileBytes = fileBytes
			req.Filename = fileHeader.Filename
			req.MimeType = fileHeader.Header.Get("Content-Type")
		}

		timeout := time.Duration(cfg.Server.TimeoutSeconds) * time.Second
		scoreCtx, cancel := context.WithTimeout(c, timeout)
		defer cancel()

		result, err := scoreHandler.HandleScoreUpload(scoreCtx, req)
		if err != nil {
			ctx.JSON(statusFor(err), utils.H{"error": scorer.UserMessage(err)})
			return
		}
		ctx.JSON(consts.StatusOK, result)
	})

	api.GET("/score/history", func(c context.Context, ctx *app.RequestContext) {
		identity := ctx.Query("identity")
		limit := queryInt(ctx, "limit", 10)
		entries, err := scoreHandler.HandleHistory(c, identity, limit)
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "查询评分历史失败"})
			return
		}
		ctx.JSON(consts.StatusOK, utils.H{"history": entries})
	})

	api.GET("/score/latest", func(c context.Context, ctx *app.RequestContext) {
		record, err := scoreHandler.HandleLatestRecord(c, ctx.Query("identity"))
		if err != nil {
			ctx.JSON(statusFor(err), utils.H{"error": queryErrorMessage(err)})
			return
		}
		ctx.JSON(consts.StatusOK, record)
	})

	api.GET("/score/records", func(c context.Context, ctx *app.RequestContext) {
		identity := ctx.Query("identity")
		limit := queryInt(ctx, "limit", 50)
		records, err := scoreHandler.HandleListRecords(c, identity, limit)
		if err != nil {
			ctx.JSON(statusFor(err), utils.H{"error": queryErrorMessage(err)})
			return
		}
		ctx.JSON(consts.StatusOK, utils.H{"records": records, "count": len(records)})
	})

	api.DELETE("/score/records/:uuid", func(c context.Context, ctx *app.RequestContext) {
		recordUUID := ctx.Param("uuid")
		if err := scoreHandler.HandleDeleteRecord(c, recordUUID); err != nil {
			ctx.JSON(statusFor(err), utils.H{"error": queryErrorMessage(err)})
			return
		}
		ctx.JSON(consts.StatusOK, utils.H{"deleted": recordUUID})
	})

	// 健康检查不走鉴权
	h.GET("/api/v1/health", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, utils.H{"status": "ok"})
	})
}

// statusFor 把错误链映射为HTTP状态码
func statusFor(err error) int {
	switch {
	case errors.Is(err, scorer.ErrEmptyDocument),
		errors.Is(err, scorer.ErrUnreadableDocument),
		errors.Is(err, scorer.ErrInvalidLimit),
		errors.Is(err, handler.ErrMissingResume):
		return consts.StatusBadRequest
	case errors.Is(err, storage.ErrRecordNotFound):
		return consts.StatusNotFound
	case errors.Is(err, handler.ErrStorageUnavailable):
		return consts.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return consts.StatusGatewayTimeout
	default:
		return consts.StatusInternalServerError
	}
}

func queryErrorMessage(err error) string {
	switch {
	case errors.Is(err, storage.ErrRecordNotFound):
		return "评分记录不存在"
	case errors.Is(err, handler.ErrStorageUnavailable):
		return "评分记录存储不可用"
	default:
		return "查询评分记录失败"
	}
}

func queryInt(ctx *app.RequestContext, key string, fallback int) int {
	raw := ctx.Query(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
