package notification

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"gorm.io/gorm"

	"locker-admin-backend/internal/model"
)

// Sender defines the interface for sending a web push notification.
type Sender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is the real implementation backed by the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// Alert describes one locker state transition worth notifying about.
type Alert struct {
	LockerID string
	Label    string
	Status   model.DoorStatus
}

// WorkerPool delivers operator alerts off the watcher goroutine so a slow
// push endpoint never stalls snapshot processing.
type WorkerPool struct {
	size    int
	jobs    chan Alert
	db      *gorm.DB
	webpush *webpush.Options
	sender  Sender
}

// NewWorkerPool creates a new worker pool over the subscription registry.
func NewWorkerPool(size int, db *gorm.DB, webpushOptions *webpush.Options) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan Alert, size),
		db:      db,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("notification worker %d started", id)
	for {
		select {
		case alert := <-wp.jobs:
			wp.deliver(ctx, alert)
		case <-ctx.Done():
			log.Printf("notification worker %d shutting down", id)
			return
		}
	}
}

// Dispatch queues an alert for delivery.
func (wp *WorkerPool) Dispatch(alert Alert) {
	wp.jobs <- alert
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan Alert {
	return wp.jobs
}

// deliver fans the alert out to every subscription watching the locker.
func (wp *WorkerPool) deliver(ctx context.Context, alert Alert) {
	var subscriptions []model.PushSubscription
	err := wp.db.WithContext(ctx).
		Joins("JOIN watched_lockers wl ON wl.endpoint = push_subscriptions.endpoint").
		Where("wl.locker_id = ?", alert.LockerID).
		Find(&subscriptions).Error
	if err != nil {
		log.Printf("Error fetching subscriptions for locker %s: %v", alert.LockerID, err)
		return
	}

	if len(subscriptions) == 0 {
		return
	}

	label := alert.Label
	if label == "" {
		label = alert.LockerID
	}
	message := fmt.Sprintf("Locker %s reported status %q", label, alert.Status)

	log.Printf("Sending %d notifications for locker %s", len(subscriptions), alert.LockerID)
	for _, sub := range subscriptions {
		wp.send(ctx, sub, []byte(message))
	}
}

// send pushes a single notification and expires the subscription when the
// push service reports it gone.
func (wp *WorkerPool) send(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.Printf("Error sending notification to %s: %v", sub.Endpoint, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusGone {
		log.Printf("Subscription for endpoint %s is expired. Deleting.", sub.Endpoint)
		if err := wp.db.WithContext(ctx).Delete(&sub).Error; err != nil {
			log.Printf("Failed to delete expired subscription %s: %v", sub.Endpoint, err)
		}
	}
}
