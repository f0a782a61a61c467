package notify

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/satsangkankpul/donation-services/internal/donationsvc/models"
	log "github.com/sirupsen/logrus"
)

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier messages every configured chat when a donation lands.
type TelegramNotifier struct {
	bot     sender
	chatIDs []int64
}

// NewTelegramNotifier creates the bot client; tgbotapi checks the token
// against the API before returning.
func NewTelegramNotifier(botToken string, chatIDs []int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return &TelegramNotifier{
		bot:     bot,
		chatIDs: chatIDs,
	}, nil
}

// SendNotification fans message out to all chats without blocking the caller.
func (tn *TelegramNotifier) SendNotification(message string) {
	if tn == nil || tn.bot == nil {
		return
	}

	for _, chatID := range tn.chatIDs {
		go func(cid int64) {
			if _, err := tn.bot.Send(tgbotapi.NewMessage(cid, message)); err != nil {
				log.Errorf("Failed to send telegram message to chat %d: %v", cid, err)
			}
		}(chatID)
	}
}

// DonationCreated implements service.Notifier.
func (tn *TelegramNotifier) DonationCreated(d *models.Donation) {
	tn.SendNotification(FormatDonation(d))
}

func FormatDonation(d *models.Donation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New %s donation: Rs %s\n", d.PaymentMethod, d.AmountINR.StringFixed(2))
	fmt.Fprintf(&b, "From: %s\n", d.FullName)
	if d.Mobile != "" {
		fmt.Fprintf(&b, "Mobile: %s\n", d.Mobile)
	}
	if d.PaymentID != "" {
		fmt.Fprintf(&b, "Payment: %s\n", d.PaymentID)
	}
	if d.Comment != "" {
		fmt.Fprintf(&b, "Comment: %s\n", d.Comment)
	}
	fmt.Fprintf(&b, "Receipt: %s", d.ID)
	return b.String()
}
