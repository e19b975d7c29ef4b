package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/BangJepp56/ini-dashboard-admin/internal/email"
	"github.com/BangJepp56/ini-dashboard-admin/internal/model"
	"github.com/BangJepp56/ini-dashboard-admin/internal/repository"
	apperrors "github.com/BangJepp56/ini-dashboard-admin/pkg/errors"
	"github.com/BangJepp56/ini-dashboard-admin/pkg/logger"
	"github.com/BangJepp56/ini-dashboard-admin/pkg/messaging"
	"github.com/BangJepp56/ini-dashboard-admin/pkg/metrics"
)

const (
	sinkBroker = "broker"
	sinkStream = "stream"
	sinkEmail  = "email"

	emailTimeout = 30 * time.Second
)

// Pusher delivers a payload to live dashboard sessions.
type Pusher interface {
	Broadcast(message []byte) bool
}

type Options struct {
	Broker  messaging.Broker
	Channel string
	Pusher  Pusher
	Mailer  email.Service
	Metrics *metrics.Metrics
	Logger  *logger.Logger
	Now     func() time.Time
}

type Service struct {
	repo    repository.NotificationRepository
	broker  messaging.Broker
	channel string
	pusher  Pusher
	mailer  email.Service
	metrics *metrics.Metrics
	logger  *logger.Logger
	now     func() time.Time

	mail sync.WaitGroup
}

func NewService(repo repository.NotificationRepository, opts Options) *Service {
	if opts.Broker == nil {
		opts.Broker = messaging.Nop()
	}
	if opts.Channel == "" {
		opts.Channel = "notifications"
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New("dashboard")
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{
		repo:    repo,
		broker:  opts.Broker,
		channel: opts.Channel,
		pusher:  opts.Pusher,
		mailer:  opts.Mailer,
		metrics: opts.Metrics,
		logger:  opts.Logger,
		now:     opts.Now,
	}
}

// Notify appends a notification describing a change to schedule and fans it
// out. Only the append can fail the call.
func (s *Service) Notify(ctx context.Context, t model.NotificationType, schedule *model.Schedule) (*model.Notification, error) {
	n := &model.Notification{
		ID:         uuid.New(),
		Type:       t,
		Message:    model.NotificationMessage(t, schedule),
		DoctorID:   schedule.DoctorID,
		DoctorName: schedule.DoctorName,
		ScheduleID: schedule.ID,
		Poly:       schedule.Poly,
		Timestamp:  s.now(),
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	s.metrics.Notifications.WithLabelValues(string(t)).Inc()

	s.fanOut(ctx, n)
	return n, nil
}

func (s *Service) fanOut(ctx context.Context, n *model.Notification) {
	msg := messaging.Message{Type: string(n.Type), Payload: n}

	if err := s.broker.Publish(ctx, s.channel, msg); err != nil {
		s.metrics.NotificationFanout.WithLabelValues(sinkBroker).Inc()
		s.logger.Error(err, "failed to publish notification", "notification_id", n.ID.String())
	}

	if s.pusher != nil {
		payload, err := json.Marshal(msg)
		if err == nil && !s.pusher.Broadcast(payload) {
			err = fmt.Errorf("stream queue full")
		}
		if err != nil {
			s.metrics.NotificationFanout.WithLabelValues(sinkStream).Inc()
			s.logger.Error(err, "failed to push notification", "notification_id", n.ID.String())
		}
	}

	if s.mailer != nil && n.Type.IsHoliday() {
		s.mail.Add(1)
		go func() {
			defer s.mail.Done()
			mailCtx, cancel := context.WithTimeout(context.Background(), emailTimeout)
			defer cancel()
			if err := s.mailer.Send(mailCtx, subjectFor(n), n.Message); err != nil {
				s.metrics.NotificationFanout.WithLabelValues(sinkEmail).Inc()
				s.logger.Error(err, "failed to email notification", "notification_id", n.ID.String())
			}
		}()
	}
}

func subjectFor(n *model.Notification) string {
	switch n.Type {
	case model.NotificationHolidaySet:
		return fmt.Sprintf("Libur dokter %s", n.DoctorName)
	case model.NotificationHolidayCancelled:
		return fmt.Sprintf("Libur dokter %s dibatalkan", n.DoctorName)
	default:
		return fmt.Sprintf("Dokter %s kembali aktif", n.DoctorName)
	}
}

// Wait blocks until queued emails are delivered or have failed.
func (s *Service) Wait() {
	s.mail.Wait()
}

func (s *Service) List(ctx context.Context, filter model.NotificationFilter) (*model.NotificationList, error) {
	notifications, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperrors.Internal("Gagal memuat notifikasi", err)
	}
	unread, err := s.repo.CountUnread(ctx)
	if err != nil {
		return nil, apperrors.Internal("Gagal memuat notifikasi", err)
	}
	if notifications == nil {
		notifications = []*model.Notification{}
	}
	return &model.NotificationList{Notifications: notifications, UnreadCount: unread}, nil
}

func (s *Service) MarkRead(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.MarkRead(ctx, id); err != nil {
		return wrapNotFound(err, "notification")
	}
	return nil
}

func (s *Service) MarkAllRead(ctx context.Context) (int64, error) {
	n, err := s.repo.MarkAllRead(ctx)
	if err != nil {
		return 0, apperrors.Internal("Gagal menandai notifikasi", err)
	}
	return n, nil
}

func wrapNotFound(err error, resource string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound(resource, err)
	}
	return apperrors.Internal("", err)
}
