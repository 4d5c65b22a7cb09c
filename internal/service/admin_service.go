package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"portfolio-content-be/internal/dto"
	"portfolio-content-be/internal/pkg/logger"
	"portfolio-content-be/internal/pkg/serverutils"
)

// zap's ISO8601TimeEncoder layout
const logTimeLayout = "2006-01-02T15:04:05.000Z0700"

type IAdminService interface {
	// Logs
	GetSystemLogs(ctx context.Context, source string, page, limit int, level string) ([]*dto.LogListResponse, error)
	GetLogDetail(ctx context.Context, source, logId string) (*dto.LogDetailResponse, error)
}

type adminService struct {
	logs map[string]logger.ILogger // by source: "app", "render"
}

func NewAdminService(logs map[string]logger.ILogger) IAdminService {
	return &adminService{logs: logs}
}

func (s *adminService) source(name string) (logger.ILogger, error) {
	if name == "" {
		name = "app"
	}
	l, ok := s.logs[name]
	if !ok {
		return nil, serverutils.NewBadRequest(fmt.Sprintf("Unknown log source %q", name), nil)
	}
	return l, nil
}

func (s *adminService) GetSystemLogs(ctx context.Context, source string, page, limit int, level string) ([]*dto.LogListResponse, error) {
	l, err := s.source(source)
	if err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}

	logs, err := l.GetLogs(level, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.LogListResponse, 0, len(logs))
	for _, entry := range logs {
		item := toLogListResponse(entry)
		res = append(res, &item)
	}
	return res, nil
}

func (s *adminService) GetLogDetail(ctx context.Context, source, logId string) (*dto.LogDetailResponse, error) {
	l, err := s.source(source)
	if err != nil {
		return nil, err
	}

	entry, err := l.GetLogById(logId)
	if errors.Is(err, logger.ErrLogNotFound) {
		return nil, serverutils.NewNotFound("Log not found")
	}
	if err != nil {
		return nil, err
	}

	return &dto.LogDetailResponse{
		LogListResponse: toLogListResponse(*entry),
		Details:         entry.Details,
	}, nil
}

func toLogListResponse(entry logger.LogEntry) dto.LogListResponse {
	ts, err := time.Parse(logTimeLayout, entry.Timestamp)
	if err != nil {
		ts, _ = time.Parse(time.RFC3339, entry.Timestamp)
	}
	return dto.LogListResponse{
		Id:        entry.Id,
		Level:     entry.Level,
		Module:    entry.Module,
		Message:   entry.Message,
		CreatedAt: ts,
	}
}
