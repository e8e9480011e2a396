package smtp

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type fakeDialer struct {
	sent []*gomail.Message
	err  error
}

func (d *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	d.sent = append(d.sent, m...)
	return d.err
}

func TestClient_SendPromotionEmail(t *testing.T) {
	d := &fakeDialer{}
	client := NewClient(d, "team@quiz.example", "quiz.example")

	err := client.SendPromotionEmail(Promotion{
		To:          "alice@example.com",
		DisplayName: "Alice",
		EventTitle:  "Quiz night #12",
		EventDate:   time.Date(2026, 3, 5, 20, 0, 0, 0, time.UTC),
		Venue:       "The Crown",
		EventLink:   "https://quiz.example/events/42",
		SiteName:    "Quizzly Bears",
	})
	require.NoError(t, err)
	require.Len(t, d.sent, 1)

	msg := d.sent[0]
	assert.Equal(t, []string{"alice@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"team@quiz.example"}, msg.GetHeader("From"))
	assert.Equal(t, []string{"You're in: Quiz night #12"}, msg.GetHeader("Subject"))
	require.Len(t, msg.GetHeader("Message-ID"), 1)
	assert.True(t, strings.HasSuffix(msg.GetHeader("Message-ID")[0], "@quiz.example>"))

	var raw bytes.Buffer
	_, err = msg.WriteTo(&raw)
	require.NoError(t, err)
	assert.Contains(t, raw.String(), "Thu 5 Mar, 20:00")
	assert.Contains(t, raw.String(), "https://quiz.example/events/42")
}

func TestClient_SendPromotionEmailError(t *testing.T) {
	d := &fakeDialer{err: errors.New("connection refused")}
	client := NewClient(d, "team@quiz.example", "quiz.example")

	err := client.SendPromotionEmail(Promotion{To: "bob@example.com", EventTitle: "Quiz"})
	assert.EqualError(t, err, "connection refused")
}
