package notification

import (
	"fmt"
	"html"
	"time"

	"localbooker/models"
)

// Header colors keyed by booking status.
const (
	colorApproved  = "#28a745"
	colorCompleted = "#007bff"
	colorCancelled = "#dc3545"
	colorDefault   = "#6c757d"
)

func headerColor(status string) string {
	switch status {
	case models.BookingStatusApproved, models.BookingStatusConfirmed:
		return colorApproved
	case models.BookingStatusCompleted:
		return colorCompleted
	case models.BookingStatusCancelled:
		return colorCancelled
	default:
		return colorDefault
	}
}

// BookingEmail renders the branded booking email: a colored header bar keyed
// to the booking's status, an intro line, and the booking details.
func BookingEmail(b *models.Booking, serviceName, intro string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="margin:0;padding:0;background:#f4f4f4;font-family:Arial,sans-serif;">
  <div style="max-width:600px;margin:20px auto;background:#ffffff;border-radius:8px;overflow:hidden;">
    <div style="background:%s;color:#ffffff;padding:20px;text-align:center;">
      <h2 style="margin:0;">Local Service Booker</h2>
    </div>
    <div style="padding:24px;color:#333333;">
      <p>%s</p>
      <table style="width:100%%;border-collapse:collapse;">
        <tr><td style="padding:6px 0;color:#888;">Service</td><td style="padding:6px 0;">%s</td></tr>
        <tr><td style="padding:6px 0;color:#888;">From</td><td style="padding:6px 0;">%s</td></tr>
        <tr><td style="padding:6px 0;color:#888;">To</td><td style="padding:6px 0;">%s</td></tr>
        <tr><td style="padding:6px 0;color:#888;">Status</td><td style="padding:6px 0;">%s</td></tr>
        <tr><td style="padding:6px 0;color:#888;">Price</td><td style="padding:6px 0;">%.2f</td></tr>
      </table>
    </div>
    <div style="padding:16px;text-align:center;color:#999;font-size:12px;">
      This is an automated message; replies are not monitored.
    </div>
  </div>
</body>
</html>`,
		headerColor(b.Status),
		html.EscapeString(intro),
		html.EscapeString(serviceName),
		b.CheckIn.Format(time.RFC1123),
		b.CheckOut.Format(time.RFC1123),
		html.EscapeString(b.Status),
		b.Price,
	)
}

// FeedbackReplyEmail renders the admin-reply email for a feedback thread.
func FeedbackReplyEmail(f *models.Feedback) string {
	reply := ""
	if f.Reply != nil {
		reply = f.Reply.Message
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="margin:0;padding:0;background:#f4f4f4;font-family:Arial,sans-serif;">
  <div style="max-width:600px;margin:20px auto;background:#ffffff;border-radius:8px;overflow:hidden;">
    <div style="background:%s;color:#ffffff;padding:20px;text-align:center;">
      <h2 style="margin:0;">Local Service Booker</h2>
    </div>
    <div style="padding:24px;color:#333333;">
      <p>You wrote:</p>
      <blockquote style="border-left:3px solid #ddd;margin:0;padding-left:12px;color:#666;">%s</blockquote>
      <p>Our reply:</p>
      <p>%s</p>
    </div>
  </div>
</body>
</html>`,
		colorDefault,
		html.EscapeString(f.Message),
		html.EscapeString(reply),
	)
}
