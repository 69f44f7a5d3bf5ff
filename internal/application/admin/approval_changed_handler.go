package admin

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/merchant"
	"github.com/marketplace/backend/internal/domain/shared"
)

// ApprovalChangedHandler reacts to approval decisions on products and
// companies and notifies other contexts about them
type ApprovalChangedHandler struct {
	logger   *zap.Logger
	notifier ApprovalNotifier
}

// ApprovalNotifier is the interface for notifying about approval decisions
// Implementations can support different notification channels (in-app, webhook, etc.)
type ApprovalNotifier interface {
	// NotifyApprovalChanged sends a notification when an approval flag flips
	NotifyApprovalChanged(ctx context.Context, notification ApprovalNotification) error
}

// ApprovalNotification represents a notification about an approval decision
type ApprovalNotification struct {
	AggregateType string `json:"aggregate_type"`
	AggregateID   string `json:"aggregate_id"`
	CompanyID     string `json:"company_id,omitempty"`
	IsApproved    bool   `json:"is_approved"`
}

// NewApprovalChangedHandler creates a new handler for approval changed events
func NewApprovalChangedHandler(logger *zap.Logger) *ApprovalChangedHandler {
	return &ApprovalChangedHandler{
		logger: logger,
	}
}

// WithNotifier sets the notifier for sending notifications
func (h *ApprovalChangedHandler) WithNotifier(notifier ApprovalNotifier) *ApprovalChangedHandler {
	h.notifier = notifier
	return h
}

// EventTypes returns the event types this handler is interested in
func (h *ApprovalChangedHandler) EventTypes() []string {
	return []string{
		catalog.EventTypeProductApprovalChanged,
		merchant.EventTypeCompanyApprovalChanged,
	}
}

// Handle processes an approval changed event
func (h *ApprovalChangedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	var notification ApprovalNotification

	switch e := event.(type) {
	case *catalog.ProductApprovalChangedEvent:
		notification = ApprovalNotification{
			AggregateType: catalog.AggregateTypeProduct,
			AggregateID:   e.ProductID.String(),
			CompanyID:     e.CompanyID.String(),
			IsApproved:    e.IsApproved,
		}
	case *merchant.CompanyApprovalChangedEvent:
		notification = ApprovalNotification{
			AggregateType: merchant.AggregateTypeCompany,
			AggregateID:   e.CompanyID.String(),
			IsApproved:    e.IsApproved,
		}
	default:
		h.logger.Error("unexpected event type",
			zap.String("event_type", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}

	h.logger.Info("approval changed",
		zap.String("aggregate_type", notification.AggregateType),
		zap.String("aggregate_id", notification.AggregateID),
		zap.Bool("is_approved", notification.IsApproved),
	)

	// Send notification if notifier is configured
	if h.notifier != nil {
		if err := h.notifier.NotifyApprovalChanged(ctx, notification); err != nil {
			h.logger.Error("failed to send approval notification",
				zap.String("aggregate_id", notification.AggregateID),
				zap.Error(err),
			)
			// Don't return error - notification failure shouldn't fail the event handling
		}
	}

	return nil
}

// Ensure ApprovalChangedHandler implements shared.EventHandler
var _ shared.EventHandler = (*ApprovalChangedHandler)(nil)

// LoggingApprovalNotifier is a simple notifier that logs notifications
// This is useful for development and testing
type LoggingApprovalNotifier struct {
	logger *zap.Logger
}

// NewLoggingApprovalNotifier creates a new logging notifier
func NewLoggingApprovalNotifier(logger *zap.Logger) *LoggingApprovalNotifier {
	return &LoggingApprovalNotifier{
		logger: logger,
	}
}

// NotifyApprovalChanged logs the notification
func (n *LoggingApprovalNotifier) NotifyApprovalChanged(_ context.Context, notification ApprovalNotification) error {
	n.logger.Info("approval notification",
		zap.String("aggregate_type", notification.AggregateType),
		zap.String("aggregate_id", notification.AggregateID),
		zap.Bool("is_approved", notification.IsApproved),
	)
	return nil
}

var _ ApprovalNotifier = (*LoggingApprovalNotifier)(nil)
