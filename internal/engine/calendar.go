package engine

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-age/internal/config"
)

// AnniversaryGenerator renders birthday anniversaries as an iCalendar feed.
type AnniversaryGenerator struct {
	Clock Clock

	// FormatSummary allows the UI to inject localized strings into the logic layer.
	FormatSummary func(age int) string
}

// Generate builds events for the previous, current and next year around today.
// No event is created before the birth year. A non-empty reminderTrigger
// (ISO 8601 duration, e.g. "-P1D") adds a DISPLAY alarm to every event.
func (g *AnniversaryGenerator) Generate(birth CalendarDate, reminderTrigger string) ([]byte, error) {
	return g.GenerateOn(Today(g.Clock), birth, reminderTrigger)
}

// GenerateOn is Generate for an explicit day. The output depends only on its
// arguments: DTSTAMP is midnight UTC of today, so a feed stays byte-identical
// (and keeps its ETag) for the whole day.
func (g *AnniversaryGenerator) GenerateOn(today, birth CalendarDate, reminderTrigger string) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(today.Time(time.UTC))

	uidBase := anniversaryUID(birth)
	for _, e := range g.createEvents(birth, today, reminderTrigger, uidBase) {
		e.Props.Set(dtStampProp)
		cal.Children = append(cal.Children, e.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Info(config.MsgExportSuccess,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyEvents, len(cal.Children),
		config.LogKeySizeBytes, buf.Len(),
	)
	return buf.Bytes(), nil
}

func (g *AnniversaryGenerator) createEvents(birth, today CalendarDate, reminderTrigger, uidBase string) []*ical.Event {
	var events []*ical.Event

	for _, y := range []int{today.Year - 1, today.Year, today.Year + 1} {
		if y < birth.Year {
			continue
		}
		age := y - birth.Year

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, uidBase, y, config.ICalDomain))

		summary := g.summary(age)
		event.Props.SetText(config.PropSummary, summary)

		// time.Date moves Feb 29 to Mar 1 in common years.
		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(time.Date(y, birth.Month, birth.Day, 0, 0, 0, 0, time.UTC))
		event.Props.Set(dtStartProp)

		if reminderTrigger != "" {
			addAlarm(event, reminderTrigger, summary)
		}

		events = append(events, event)
	}
	return events
}

func (g *AnniversaryGenerator) summary(age int) string {
	if g.FormatSummary != nil {
		if s := g.FormatSummary(age); s != "" {
			return s
		}
	}
	if age == 0 {
		return config.FallbackSummaryBirth
	}
	return fmt.Sprintf(config.FallbackSummary, age)
}

// ReminderDaysBefore builds the ISO 8601 trigger for an alarm n days ahead.
// Zero or negative n disables the alarm.
func ReminderDaysBefore(n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("%s%d%s", config.ISONegativePrefix, n, config.ISODay)
}

// addAlarm appends a DISPLAY alarm (notification) to the event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Set trigger manually to avoid "VALUE=TEXT" param
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}

// anniversaryUID is stable for a given birth date across exports.
func anniversaryUID(birth CalendarDate) string {
	input := fmt.Sprintf(config.FormatHashInput, birth.String(), config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%x", hash[:config.UIDHashLength])
}
