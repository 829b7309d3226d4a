package notification

import (
	"strings"
	"testing"
	"time"

	"localbooker/models"
)

func sampleBooking(status string) *models.Booking {
	return &models.Booking{
		ID:       "b-1",
		Status:   status,
		Price:    150,
		CheckIn:  time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC),
	}
}

func TestBookingEmailHeaderColorFollowsStatus(t *testing.T) {
	cases := []struct {
		status string
		color  string
	}{
		{models.BookingStatusApproved, colorApproved},
		{models.BookingStatusConfirmed, colorApproved},
		{models.BookingStatusCompleted, colorCompleted},
		{models.BookingStatusCancelled, colorCancelled},
		{models.BookingStatusPending, colorDefault},
	}
	for _, c := range cases {
		body := BookingEmail(sampleBooking(c.status), "Deep Clean", "hello")
		if !strings.Contains(body, c.color) {
			t.Fatalf("status %q: expected header color %s in body", c.status, c.color)
		}
	}
}

func TestBookingEmailEscapesUserContent(t *testing.T) {
	body := BookingEmail(sampleBooking(models.BookingStatusPending), `<script>alert("x")</script>`, "hi")
	if strings.Contains(body, "<script>") {
		t.Fatal("service name must be HTML-escaped")
	}
}

func TestFeedbackReplyEmail(t *testing.T) {
	f := &models.Feedback{
		Message: "The cleaner was late",
		Reply:   &models.FeedbackReply{Message: "Sorry about that, next visit is on us."},
	}
	body := FeedbackReplyEmail(f)
	if !strings.Contains(body, "The cleaner was late") {
		t.Fatal("original message missing from reply email")
	}
	if !strings.Contains(body, "next visit is on us") {
		t.Fatal("reply missing from reply email")
	}
}
