package calendar

import (
	"bytes"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/pubquiz-fans/site/internal/domain/entity"
)

// DefaultDuration is how long a quiz night blocks the calendar.
const DefaultDuration = 150 * time.Minute

type Options struct {
	SiteName string
	Domain   string // used in UIDs
	BaseURL  string // links back to the event page
	Duration time.Duration
}

// ExportEvents renders the events as an iCalendar feed with reminders a day and an hour ahead.
func ExportEvents(events []entity.Event, opts Options) ([]byte, error) {
	duration := opts.Duration
	if duration <= 0 {
		duration = DefaultDuration
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(fmt.Sprintf("-//%s//Quiz nights//EN", opts.SiteName))
	cal.SetVersion("2.0")
	cal.SetCalscale("GREGORIAN")
	cal.SetName(opts.SiteName)

	now := time.Now()
	for _, event := range events {
		e := cal.AddEvent(fmt.Sprintf("%s@%s", event.ID, opts.Domain))

		e.SetDtStampTime(now)
		e.SetCreatedTime(event.CreatedAt)
		e.SetModifiedAt(event.UpdatedAt)
		e.SetStartAt(event.Date)
		e.SetEndAt(event.Date.Add(duration))

		e.SetSummary(event.Title)
		e.SetDescription(event.Description)
		e.SetLocation(event.Venue)
		if opts.BaseURL != "" {
			e.SetURL(event.Link(opts.BaseURL))
		}
		e.SetStatus(ics.ObjectStatusConfirmed)
		e.SetTimeTransparency(ics.TransparencyOpaque)
		e.SetClass(ics.ClassificationPublic)
		e.SetSequence(int(event.UpdatedAt.Unix() - event.CreatedAt.Unix()))

		dayAlarm := e.AddAlarm()
		dayAlarm.SetAction(ics.ActionDisplay)
		dayAlarm.AddProperty("TRIGGER;VALUE=DURATION", "-P1D")
		dayAlarm.SetDescription(fmt.Sprintf("Tomorrow: %s", event.Title))

		hourAlarm := e.AddAlarm()
		hourAlarm.SetAction(ics.ActionDisplay)
		hourAlarm.AddProperty("TRIGGER;VALUE=DURATION", "-PT1H")
		hourAlarm.SetDescription(fmt.Sprintf("In an hour: %s at %s", event.Title, event.Venue))
	}

	var buf bytes.Buffer
	if err := cal.SerializeTo(&buf); err != nil {
		return nil, fmt.Errorf("error serializing calendar: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportEvent renders a single event.
func ExportEvent(event entity.Event, opts Options) ([]byte, error) {
	return ExportEvents([]entity.Event{event}, opts)
}
