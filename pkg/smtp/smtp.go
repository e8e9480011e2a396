package smtp

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// Client sends the site's transactional emails.
type Client struct {
	dialer dialer
	from   string
	domain string
}

func NewClient(dialer dialer, from, domain string) *Client {
	return &Client{
		dialer: dialer,
		from:   from,
		domain: domain,
	}
}

// Promotion is the content of the email sent when a substitute gets a seat.
type Promotion struct {
	To          string
	DisplayName string
	EventTitle  string
	EventDate   time.Time
	Venue       string
	EventLink   string
	SiteName    string
}

var promotionTemplate = template.Must(template.New("promotion").Parse(
	`<p>Hi {{.DisplayName}},</p>
<p>A seat opened up and you are now in the line-up for <b>{{.EventTitle}}</b>
on {{.EventDate.Format "Mon 2 Jan, 15:04"}} at {{.Venue}}.</p>
<p><a href="{{.EventLink}}">Open the event</a> if you can no longer make it.</p>
<p>{{.SiteName}}</p>`))

// SendPromotionEmail tells a member they moved from the substitutes to the line-up.
func (c *Client) SendPromotionEmail(p Promotion) error {
	var html bytes.Buffer
	if err := promotionTemplate.Execute(&html, p); err != nil {
		return fmt.Errorf("render promotion email: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("Message-ID", generateMessageID(c.domain))
	msg.SetHeader("Date", time.Now().Format(time.RFC1123Z))
	msg.SetHeader("From", c.from)
	msg.SetHeader("To", p.To)
	msg.SetHeader("Subject", fmt.Sprintf("You're in: %s", p.EventTitle))
	msg.SetBody("text/plain", fmt.Sprintf(
		"Hi %s,\n\nA seat opened up and you are now in the line-up for %s on %s at %s.\n\n%s\n",
		p.DisplayName, p.EventTitle, p.EventDate.Format("Mon 2 Jan, 15:04"), p.Venue, p.EventLink,
	))
	msg.AddAlternative("text/html", html.String())

	return c.dialer.DialAndSend(msg)
}

func generateMessageID(domain string) string {
	uniqueID := uuid.New().String()
	return fmt.Sprintf("<%s@%s>", uniqueID, domain)
}
