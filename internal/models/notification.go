package models

type NotificationType string

const (
	NotificationReviewerAssigned  NotificationType = "reviewer_assigned"
	NotificationPaperDecision     NotificationType = "paper_decision"
	NotificationPaperReset        NotificationType = "paper_reset"
	NotificationEmailVerification NotificationType = "email_verification"
	NotificationPasswordReset     NotificationType = "password_reset"
	NotificationReviewerMessage   NotificationType = "reviewer_message"
)
