package service

import (
	"context"
	"fmt"
	"time"

	"incidenthub/internal/tracker/model"
)

func (s *Service) AddComment(ctx context.Context, actor model.Identity, meta RequestMeta, incidentID string, req model.AddCommentReq) (*model.CommentDetail, error) {
	incident, err := s.Repo.FindIncidentByID(ctx, incidentID)
	if err != nil {
		return nil, err
	}
	if incident == nil {
		return nil, ErrNotFound
	}
	if !model.IsElevated(actor.Role) && incident.ReportedBy != actor.ID {
		return nil, ErrForbidden
	}

	comment := &model.Comment{
		IncidentID: incidentID,
		UserID:     actor.ID,
		Content:    req.Content,
		CreatedAt:  time.Now(),
	}
	if err := s.Repo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, &actor, meta, model.ActionCommentAdd,
		fmt.Sprintf("Comment added to incident %q by %s", incident.Title, actor.Name),
		comment.ID, model.ResourceTypeComment)

	// Reporter and assignee notifications are independent; both may fire.
	if incident.ReportedBy != "" && incident.ReportedBy != actor.ID {
		s.notify(ctx, incident.ReportedBy,
			"New Comment",
			fmt.Sprintf("%s commented on your incident %q", actor.Name, incident.Title),
			model.NotificationTypeComment, incident.ID)
	}
	if actor.Role == model.RoleUser && incident.AssignedTo != "" && incident.AssignedTo != actor.ID {
		s.notify(ctx, incident.AssignedTo,
			"New Comment",
			fmt.Sprintf("%s commented on incident %q assigned to you", actor.Name, incident.Title),
			model.NotificationTypeComment, incident.ID)
	}

	detail := &model.CommentDetail{
		Comment: *comment,
		Author:  &model.UserSummary{ID: actor.ID, Name: actor.Name},
	}

	// Everyone currently watching the incident sees the comment, regardless
	// of notification eligibility.
	s.Hub.ToRoom(model.IncidentRoom(incident.ID), model.EventNewComment, map[string]interface{}{
		"comment": detail,
	})

	return detail, nil
}

func (s *Service) ListComments(ctx context.Context, actor model.Identity, incidentID string) ([]*model.CommentDetail, error) {
	incident, err := s.Repo.FindIncidentByID(ctx, incidentID)
	if err != nil {
		return nil, err
	}
	if incident == nil {
		return nil, ErrNotFound
	}
	if !model.IsElevated(actor.Role) && incident.ReportedBy != actor.ID {
		return nil, ErrForbidden
	}

	comments, err := s.Repo.FindCommentsByIncident(ctx, incidentID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.UserID)
	}
	users, err := s.userSummaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	details := make([]*model.CommentDetail, 0, len(comments))
	for _, c := range comments {
		details = append(details, &model.CommentDetail{
			Comment: *c,
			Author:  users[c.UserID],
		})
	}
	return details, nil
}

func (s *Service) DeleteComment(ctx context.Context, actor model.Identity, meta RequestMeta, id string) error {
	comment, err := s.Repo.FindCommentByID(ctx, id)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrNotFound
	}
	if comment.UserID != actor.ID && !model.IsElevated(actor.Role) {
		return ErrForbidden
	}

	// Written before removal so the trail keeps the reference.
	s.recordAudit(ctx, &actor, meta, model.ActionCommentDelete,
		fmt.Sprintf("Comment deleted by %s", actor.Name),
		comment.ID, model.ResourceTypeComment)

	return s.Repo.DeleteComment(ctx, id)
}
