package services

import (
	"kikehq/internal/store"
	"kikehq/internal/widgets"
)

type ServiceManager struct {
	Store        *store.Store
	Widgets      *widgets.Set
	Notification *NotificationService
	Analytics    *AnalyticsService
	Task         *TaskService
	Feedback     *Feedback
}

func NewServiceManager(st *store.Store, w *widgets.Set) *ServiceManager {
	return &ServiceManager{
		Store:        st,
		Widgets:      w,
		Notification: nil,
		Analytics:    NewAnalyticsService(st, w),
		Task:         NewTaskService(st),
		Feedback:     NewFeedback(nil),
	}
}

func (sm *ServiceManager) SetNotificationSender(sender NotificationSender) {
	sm.Notification = NewNotificationService(sender, sm.Analytics, sm.Task)
}

// SetFeedbackSender routes success/failure cues to sender.
func (sm *ServiceManager) SetFeedbackSender(sender NotificationSender) {
	sm.Feedback = NewFeedback(sender)
}
