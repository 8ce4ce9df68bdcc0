package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// Email template names.
const (
	EmailWelcome            = "welcome"
	EmailBookingConfirmed   = "booking_confirmed"
	EmailBookingRequested   = "booking_requested"
	EmailBookingCancelled   = "booking_cancelled"
	EmailBookingRescheduled = "booking_rescheduled"
	EmailBookingRejected    = "booking_rejected"
)

// WelcomeMessageEmailData holds data for the welcome email.
type WelcomeMessageEmailData struct {
	Email    string
	Name     string
	Username string
}

// BookingEmailData holds data for every booking email. Times are formatted in
// the recipient's time zone.
type BookingEmailData struct {
	RecipientEmail   string
	RecipientName    string
	OrganizerName    string
	AttendeeName     string
	Title            string
	Start            string
	End              string
	TimeZone         string
	Location         string
	UID              string
	SeatReferenceUID string
	Reason           string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendWelcomeMessage(ctx context.Context, data *WelcomeMessageEmailData) error
	SendBookingEmail(ctx context.Context, templateName string, data *BookingEmailData) error
}
