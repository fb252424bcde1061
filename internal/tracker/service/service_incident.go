package service

import (
	"context"
	"fmt"
	"time"

	"incidenthub/internal/tracker/model"
)

func (s *Service) CreateIncident(ctx context.Context, actor model.Identity, meta RequestMeta, req model.CreateIncidentReq) (*model.Incident, error) {
	now := time.Now()

	// Status is forced to open and the reporter to the actor regardless of
	// input; the ledger is seeded with the initial entry.
	incident := &model.Incident{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
		Status:      model.StatusOpen,
		ReportedBy:  actor.ID,
		Evidence:    req.Evidence,
		StatusHistory: []model.StatusEntry{
			{
				Status:    model.StatusOpen,
				UpdatedBy: actor.ID,
				Timestamp: now,
				Comment:   "Incident reported",
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Repo.CreateIncident(ctx, incident); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, &actor, meta, model.ActionIncidentCreate,
		fmt.Sprintf("Incident %q created by %s", incident.Title, actor.Name),
		incident.ID, model.ResourceTypeIncident)

	s.fanOutNewIncident(ctx, actor, incident)

	return incident, nil
}

// fanOutNewIncident notifies the admin/superadmin population and broadcasts
// a lightweight summary to the admins room. Per-recipient delivery mirrors
// what operators expect to see in their mailbox; with a large admin
// population this loop would need batching.
func (s *Service) fanOutNewIncident(ctx context.Context, actor model.Identity, incident *model.Incident) {
	summary := model.IncidentSummary{
		ID:         incident.ID,
		Title:      incident.Title,
		Category:   incident.Category,
		Priority:   incident.Priority,
		Status:     incident.Status,
		ReportedBy: actor,
		CreatedAt:  incident.CreatedAt,
	}
	s.Hub.ToRoom(model.RoomAdmins, model.EventNewIncident, summary)

	admins, err := s.Repo.FindUsersByRoles(ctx, []string{model.RoleAdmin, model.RoleSuperAdmin})
	if err != nil {
		return
	}
	for _, admin := range admins {
		if admin.ID == actor.ID {
			continue
		}
		s.notify(ctx, admin.ID,
			"New Incident Reported",
			fmt.Sprintf("New incident %q reported by %s", incident.Title, actor.Name),
			model.NotificationTypeIncidentUpdate, incident.ID)
	}
}

func (s *Service) GetIncident(ctx context.Context, actor model.Identity, id string) (*model.IncidentDetail, error) {
	incident, err := s.Repo.FindIncidentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if incident == nil {
		return nil, ErrNotFound
	}
	if !model.IsElevated(actor.Role) && incident.ReportedBy != actor.ID {
		return nil, ErrForbidden
	}
	return s.populateIncident(ctx, incident, true)
}

func (s *Service) ListIncidents(ctx context.Context, req model.ListIncidentsReq) (*model.ListIncidentsResp, error) {
	incidents, total, err := s.Repo.FindIncidents(ctx, req)
	if err != nil {
		return nil, err
	}

	details, err := s.populateIncidents(ctx, incidents)
	if err != nil {
		return nil, err
	}

	return &model.ListIncidentsResp{
		Success:    true,
		Count:      len(details),
		Pagination: model.BuildPagination(req.Page, req.Limit, total),
		TotalPages: model.TotalPages(total, req.Limit),
		Incidents:  details,
	}, nil
}

func (s *Service) ListUserIncidents(ctx context.Context, actor model.Identity) ([]*model.IncidentDetail, error) {
	incidents, err := s.Repo.FindIncidentsByReporter(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return s.populateIncidents(ctx, incidents)
}

func (s *Service) UpdateIncident(ctx context.Context, actor model.Identity, meta RequestMeta, id string, req model.UpdateIncidentReq) (*model.Incident, error) {
	existing, err := s.Repo.FindIncidentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	updated, err := s.Repo.UpdateIncidentFields(ctx, id, req, time.Now())
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrNotFound
	}

	s.recordAudit(ctx, &actor, meta, model.ActionIncidentUpdate,
		fmt.Sprintf("Incident %q updated by %s", updated.Title, actor.Name),
		updated.ID, model.ResourceTypeIncident)

	// Generic updates only surface to the reporter; no fan-out.
	s.Hub.ToRoom(updated.ReportedBy, model.EventIncidentUpdate, map[string]interface{}{
		"incident": map[string]interface{}{
			"id":        updated.ID,
			"title":     updated.Title,
			"status":    updated.Status,
			"updatedAt": updated.UpdatedAt,
		},
	})

	return updated, nil
}

func (s *Service) ChangeStatus(ctx context.Context, actor model.Identity, meta RequestMeta, id string, req model.UpdateStatusReq) (*model.IncidentDetail, error) {
	incident, err := s.Repo.FindIncidentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if incident == nil {
		return nil, ErrNotFound
	}

	now := time.Now()
	comment := req.Comment
	if comment == "" {
		comment = "Status changed to " + req.Status
	}
	entry := model.StatusEntry{
		Status:    req.Status,
		UpdatedBy: actor.ID,
		Timestamp: now,
		Comment:   comment,
	}

	matched, err := s.Repo.UpdateIncidentStatus(ctx, id, req.Status, entry, now)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, ErrNotFound
	}

	if req.Status == model.StatusResolved {
		// Write-once: only incidents without a resolution timestamp match.
		if err := s.Repo.SetResolvedAt(ctx, []string{id}, now); err != nil {
			return nil, err
		}
	}

	updated, err := s.Repo.FindIncidentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrNotFound
	}

	s.recordAudit(ctx, &actor, meta, model.ActionIncidentStatusChange,
		fmt.Sprintf("Incident %q status changed to %s by %s", updated.Title, req.Status, actor.Name),
		updated.ID, model.ResourceTypeIncident)

	if updated.ReportedBy != "" && updated.ReportedBy != actor.ID {
		s.notify(ctx, updated.ReportedBy,
			"Incident Status Updated",
			fmt.Sprintf("Your incident %q status has been updated to %s", updated.Title, req.Status),
			model.NotificationTypeIncidentUpdate, updated.ID)
	}

	return s.populateIncident(ctx, updated, true)
}

func (s *Service) AssignIncident(ctx context.Context, actor model.Identity, meta RequestMeta, id string, req model.AssignIncidentReq) (*model.IncidentDetail, error) {
	incident, err := s.Repo.FindIncidentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if incident == nil {
		return nil, ErrNotFound
	}

	now := time.Now()
	// The compound entry only lands when the conditional open -> in-progress
	// transition fires; reassignment of a non-open incident appends nothing.
	entry := model.StatusEntry{
		Status:    model.StatusInProgress,
		UpdatedBy: actor.ID,
		Timestamp: now,
		Comment:   "Status changed to in-progress due to assignment",
	}

	found, _, err := s.Repo.AssignIncident(ctx, id, req.AssignedTo, entry, now)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}

	updated, err := s.Repo.FindIncidentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrNotFound
	}

	assigneeName := req.AssignedTo
	if assignee, err := s.Repo.FindUserByID(ctx, req.AssignedTo); err == nil && assignee != nil {
		assigneeName = assignee.Name
	}

	s.recordAudit(ctx, &actor, meta, model.ActionIncidentAssignment,
		fmt.Sprintf("Incident %q assigned to %s by %s", updated.Title, assigneeName, actor.Name),
		updated.ID, model.ResourceTypeIncident)

	if req.AssignedTo != actor.ID {
		s.notify(ctx, req.AssignedTo,
			"Incident Assigned",
			fmt.Sprintf("Incident %q has been assigned to you", updated.Title),
			model.NotificationTypeAssignment, updated.ID)
	}

	return s.populateIncident(ctx, updated, false)
}

func (s *Service) BulkUpdateStatus(ctx context.Context, actor model.Identity, meta RequestMeta, req model.BulkUpdateReq) (int64, error) {
	now := time.Now()
	entry := model.StatusEntry{
		Status:    req.Status,
		UpdatedBy: actor.ID,
		Timestamp: now,
		Comment:   fmt.Sprintf("Status changed to %s in bulk update", req.Status),
	}

	modified, err := s.Repo.BulkUpdateStatus(ctx, req.IDs, req.Status, entry, now)
	if err != nil {
		return 0, err
	}

	if req.Status == model.StatusResolved {
		// Only incidents resolved for the first time get a timestamp;
		// previously resolved ones keep their original resolvedAt.
		if err := s.Repo.SetResolvedAt(ctx, req.IDs, now); err != nil {
			return 0, err
		}
	}

	// One summarizing audit entry for the whole batch, no resource id.
	s.recordAudit(ctx, &actor, meta, model.ActionIncidentStatusChange,
		fmt.Sprintf("Bulk update: %d incidents status changed to %s by %s", modified, req.Status, actor.Name),
		"", model.ResourceTypeIncident)

	incidents, err := s.Repo.FindIncidentsByIDs(ctx, req.IDs)
	if err != nil {
		return modified, nil
	}
	for _, incident := range incidents {
		if incident.ReportedBy == "" || incident.ReportedBy == actor.ID {
			continue
		}
		s.notify(ctx, incident.ReportedBy,
			"Incident Status Updated",
			fmt.Sprintf("Your incident %q status has been updated to %s", incident.Title, req.Status),
			model.NotificationTypeIncidentUpdate, incident.ID)
	}

	return modified, nil
}

func (s *Service) BulkDeleteIncidents(ctx context.Context, actor model.Identity, meta RequestMeta, req model.BulkDeleteReq) (int64, error) {
	deleted, err := s.Repo.DeleteIncidents(ctx, req.IDs)
	if err != nil {
		return 0, err
	}

	if err := s.Repo.DeleteCommentsByIncidents(ctx, req.IDs); err != nil {
		return deleted, err
	}

	// Deletion is not individually announced; one summarizing entry only.
	s.recordAudit(ctx, &actor, meta, model.ActionIncidentDelete,
		fmt.Sprintf("Bulk delete: %d incidents deleted by %s", deleted, actor.Name),
		"", model.ResourceTypeIncident)

	return deleted, nil
}

func (s *Service) DeleteIncident(ctx context.Context, actor model.Identity, meta RequestMeta, id string) error {
	incident, err := s.Repo.FindIncidentByID(ctx, id)
	if err != nil {
		return err
	}
	if incident == nil {
		return ErrNotFound
	}

	// Captured before the delete so the entry still references the title.
	s.recordAudit(ctx, &actor, meta, model.ActionIncidentDelete,
		fmt.Sprintf("Incident %q deleted by %s", incident.Title, actor.Name),
		incident.ID, model.ResourceTypeIncident)

	if err := s.Repo.DeleteIncident(ctx, id); err != nil {
		return err
	}
	return s.Repo.DeleteCommentsByIncidents(ctx, []string{id})
}

func (s *Service) DashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	return s.Repo.IncidentStats(ctx)
}

// populateIncident resolves reporter/assignee references, and optionally the
// updater of every ledger entry.
func (s *Service) populateIncident(ctx context.Context, incident *model.Incident, withHistory bool) (*model.IncidentDetail, error) {
	ids := []string{incident.ReportedBy, incident.AssignedTo}
	if withHistory {
		for _, e := range incident.StatusHistory {
			ids = append(ids, e.UpdatedBy)
		}
	}
	users, err := s.userSummaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	detail := &model.IncidentDetail{
		Incident: *incident,
		Reporter: users[incident.ReportedBy],
		Assignee: users[incident.AssignedTo],
	}
	if withHistory {
		detail.History = make([]model.StatusEntryDetail, 0, len(incident.StatusHistory))
		for _, e := range incident.StatusHistory {
			detail.History = append(detail.History, model.StatusEntryDetail{
				StatusEntry: e,
				Updater:     users[e.UpdatedBy],
			})
		}
	}
	return detail, nil
}

func (s *Service) populateIncidents(ctx context.Context, incidents []*model.Incident) ([]*model.IncidentDetail, error) {
	ids := make([]string, 0, len(incidents)*2)
	for _, incident := range incidents {
		ids = append(ids, incident.ReportedBy, incident.AssignedTo)
	}
	users, err := s.userSummaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	details := make([]*model.IncidentDetail, 0, len(incidents))
	for _, incident := range incidents {
		details = append(details, &model.IncidentDetail{
			Incident: *incident,
			Reporter: users[incident.ReportedBy],
			Assignee: users[incident.AssignedTo],
		})
	}
	return details, nil
}
