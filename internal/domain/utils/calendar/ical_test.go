package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/pubquiz-fans/site/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportEvents(t *testing.T) {
	date := time.Date(2026, 3, 5, 19, 30, 0, 0, time.UTC)
	events := []entity.Event{
		{ID: "e1", Title: "Quiz night #12", Venue: "The Crown", Date: date, CreatedAt: date.Add(-72 * time.Hour), UpdatedAt: date.Add(-72 * time.Hour)},
		{ID: "e2", Title: "Christmas special", Venue: "Old Mill", Date: date.AddDate(0, 9, 0), CreatedAt: date, UpdatedAt: date},
	}

	data, err := ExportEvents(events, Options{SiteName: "Quizzly Bears", Domain: "quiz.example", BaseURL: "https://quiz.example"})
	require.NoError(t, err)
	out := string(data)

	assert.Equal(t, 2, strings.Count(out, "BEGIN:VEVENT"))
	assert.Contains(t, out, "UID:e1@quiz.example")
	assert.Contains(t, out, "SUMMARY:Quiz night #12")
	assert.Contains(t, out, "LOCATION:The Crown")
	assert.Contains(t, out, "DTSTART:20260305T193000Z")
	assert.Contains(t, out, "DTEND:20260305T220000Z")
	assert.Contains(t, out, "URL:https://quiz.example/events/e1")
	assert.Equal(t, 4, strings.Count(out, "BEGIN:VALARM"))
}

func TestExportEventCustomDuration(t *testing.T) {
	date := time.Date(2026, 3, 5, 19, 30, 0, 0, time.UTC)

	data, err := ExportEvent(entity.Event{ID: "e1", Title: "Quiz", Date: date}, Options{Domain: "quiz.example", Duration: time.Hour})
	require.NoError(t, err)
	assert.Contains(t, string(data), "DTEND:20260305T203000Z")
	assert.NotContains(t, string(data), "URL:")
}
