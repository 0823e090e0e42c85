// services/reminder_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"salon-admin-backend/models"
	"salon-admin-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// ReminderService messages clients the day before their booked event.
type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewReminderService(db *gorm.DB) *ReminderService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", s.SendEventReminders)

	c.Start()
	log.Println("Reminder scheduler started")
}

// SendEventReminders finds bookings with an event, henna session or hair
// straightening appointment tomorrow and messages each client once.
func (s *ReminderService) SendEventReminders() {
	log.Println("Starting daily reminder processing...")

	start, end := utils.DayWindow(time.Now().AddDate(0, 0, 1))

	var bookings []models.Booking
	err := s.db.
		Where("event_date >= ? AND event_date < ?", start, end).
		Or("henna_date >= ? AND henna_date < ?", start, end).
		Or("hair_straightening_date >= ? AND hair_straightening_date < ?", start, end).
		Find(&bookings).Error
	if err != nil {
		log.Printf("Failed to fetch tomorrow's bookings: %v", err)
		return
	}

	for _, booking := range bookings {
		s.sendReminder(booking)
	}

	log.Println("Daily reminder processing completed")
}

func (s *ReminderService) sendReminder(booking models.Booking) {
	message := fmt.Sprintf(
		"Hello %s, this is a reminder of your appointment on %s. We look forward to seeing you!",
		booking.ClientName, booking.EventDate.Format("2006-01-02"))

	// WhatsApp for E.164 numbers, SMS otherwise
	channel := "sms"
	to := booking.ClientPhone
	if strings.HasPrefix(booking.ClientPhone, "+") {
		to = "whatsapp:" + booking.ClientPhone
		channel = "whatsapp"
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)

	if channel == "whatsapp" {
		params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	} else {
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}

	resp, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		log.Printf("Failed to send reminder to %s: %v", booking.ClientPhone, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("Reminder sent to %s, SID: %s", booking.ClientPhone, *resp.Sid)
	} else {
		log.Printf("Reminder sent to %s, but no SID returned", booking.ClientPhone)
	}

	reminderLog := models.ReminderLog{
		BookingID:    booking.ID,
		Phone:        booking.ClientPhone,
		Message:      message,
		Status:       status,
		ErrorMessage: errorMsg,
		Channel:      channel,
		SentAt:       time.Now(),
	}

	if err := s.db.Create(&reminderLog).Error; err != nil {
		log.Printf("Failed to log reminder for booking %s: %v", booking.ID, err)
	}
}
