package calendar

import (
	"time"

	"google.golang.org/api/calendar/v3"

	"github.com/alignai/alignai/internal/model"
	"github.com/alignai/alignai/internal/timeutil"
)

// maxAttachments caps how many attachment links are carried per event.
const maxAttachments = 10

// NormalizeEvent maps one provider event into the canonical CalendarEvent.
// It never fails: absent fields resolve to documented defaults, and an
// inverted or unparseable start/end range yields nil duration fields.
func NormalizeEvent(item *calendar.Event, defaultTimezone string) model.CalendarEvent {
	ev := model.CalendarEvent{
		Timezone:    defaultTimezone,
		Attachments: []model.Attachment{},
	}
	if item == nil {
		return ev
	}

	ev.ID = item.Id
	ev.Summary = item.Summary
	ev.Description = item.Description
	ev.Location = item.Location
	ev.HTMLLink = item.HtmlLink
	ev.Status = item.Status
	ev.ConferenceLink = extractConferenceLink(item)

	var startRaw, endRaw, startDate, endDate, tz string
	if item.Start != nil {
		startDate = item.Start.Date
		if item.Start.DateTime != "" {
			startRaw = item.Start.DateTime
		} else {
			startRaw = item.Start.Date
		}
		tz = item.Start.TimeZone
	}
	if item.End != nil {
		endDate = item.End.Date
		if item.End.DateTime != "" {
			endRaw = item.End.DateTime
		} else {
			endRaw = item.End.Date
		}
	}
	ev.Start = startRaw
	ev.End = endRaw
	ev.AllDay = item.Start != nil && item.Start.Date != "" && item.Start.DateTime == ""
	if tz != "" {
		ev.Timezone = tz
	}

	// Timezone is the provider-reported display zone; the date key is always
	// bucketed in the configured reference zone so it lines up with week
	// windows and today resolution.
	loc := timeutil.LoadLocation(defaultTimezone)
	if ev.AllDay {
		// A date-only start is already a date key.
		ev.DateKey = startDate
		start, serr := time.Parse(timeutil.DateKeyLayout, startDate)
		end, eerr := time.Parse(timeutil.DateKeyLayout, endDate)
		if serr == nil && eerr == nil && end.After(start) {
			days := int(end.Sub(start).Hours() / 24)
			ev.DurationDays = &days
		}
	} else {
		start, serr := time.Parse(time.RFC3339, startRaw)
		end, eerr := time.Parse(time.RFC3339, endRaw)
		if serr == nil {
			ev.DateKey = timeutil.DateKeyOf(start.In(loc))
		}
		if serr == nil && eerr == nil && end.After(start) {
			minutes := int(end.Sub(start).Minutes())
			ev.DurationMinutes = &minutes
		}
	}

	for _, att := range item.Attachments {
		if att == nil || (att.Title == "" && att.FileUrl == "") {
			continue
		}
		ev.Attachments = append(ev.Attachments, model.Attachment{
			Title:    att.Title,
			FileURL:  att.FileUrl,
			MimeType: att.MimeType,
			IconLink: att.IconLink,
		})
		if len(ev.Attachments) == maxAttachments {
			break
		}
	}

	return ev
}

// extractConferenceLink pulls the video conferencing URI from conference
// data, falling back to the legacy hangout link.
func extractConferenceLink(item *calendar.Event) string {
	if item.ConferenceData != nil {
		for _, entry := range item.ConferenceData.EntryPoints {
			if entry != nil && entry.EntryPointType == "video" && entry.Uri != "" {
				return entry.Uri
			}
		}
	}
	return item.HangoutLink
}
