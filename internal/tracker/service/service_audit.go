package service

import (
	"context"

	"incidenthub/internal/tracker/model"
)

func (s *Service) ListAuditLogs(ctx context.Context, req model.ListAuditLogsReq) (*model.ListAuditLogsResp, error) {
	logs, total, err := s.Repo.FindAuditLogs(ctx, req)
	if err != nil {
		return nil, err
	}

	return &model.ListAuditLogsResp{
		Success:    true,
		Count:      len(logs),
		Pagination: model.BuildPagination(req.Page, req.Limit, total),
		TotalPages: model.TotalPages(total, req.Limit),
		Logs:       logs,
	}, nil
}

func (s *Service) ListResourceAuditLogs(ctx context.Context, resourceType, resourceID string) ([]*model.AuditLog, error) {
	switch resourceType {
	case model.ResourceTypeUser, model.ResourceTypeIncident, model.ResourceTypeComment, model.ResourceTypeSystem:
	default:
		return nil, ErrBadRequest
	}
	if resourceID == "" {
		return nil, ErrBadRequest
	}
	return s.Repo.FindAuditLogsByResource(ctx, resourceType, resourceID)
}
