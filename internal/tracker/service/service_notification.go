package service

import (
	"context"

	"incidenthub/internal/tracker/model"
)

// notificationPageSize caps the mailbox read; older entries age out of view.
const notificationPageSize = 20

func (s *Service) ListNotifications(ctx context.Context, actor model.Identity) ([]*model.Notification, error) {
	return s.Repo.FindNotificationsByUser(ctx, actor.ID, notificationPageSize)
}

func (s *Service) MarkNotificationRead(ctx context.Context, actor model.Identity, id string) (*model.Notification, error) {
	notification, err := s.Repo.FindNotificationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if notification == nil {
		return nil, ErrNotFound
	}
	if notification.UserID != actor.ID {
		return nil, ErrForbidden
	}

	updated, err := s.Repo.MarkNotificationRead(ctx, id)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrNotFound
	}
	return updated, nil
}

func (s *Service) MarkAllNotificationsRead(ctx context.Context, actor model.Identity) error {
	return s.Repo.MarkAllNotificationsRead(ctx, actor.ID)
}

func (s *Service) DeleteNotification(ctx context.Context, actor model.Identity, id string) error {
	notification, err := s.Repo.FindNotificationByID(ctx, id)
	if err != nil {
		return err
	}
	if notification == nil {
		return ErrNotFound
	}
	if notification.UserID != actor.ID {
		return ErrForbidden
	}
	return s.Repo.DeleteNotification(ctx, id)
}

func (s *Service) DeleteReadNotifications(ctx context.Context, actor model.Identity) error {
	return s.Repo.DeleteReadNotifications(ctx, actor.ID)
}
