package models

// AppointmentEventTitle is the fixed title shown for every calendar entry
const AppointmentEventTitle = "Appointment"

// Appointment is a booked slot as stored by the external automation service.
// Values are carried verbatim; nothing here parses or validates them.
type Appointment struct {
	PreferredDate      string `json:"preferredDate"`      // YYYY-MM-DD
	PreferredStartTime string `json:"preferredStartTime"` // HH:MM
	PreferredEndTime   string `json:"preferredEndTime"`   // HH:MM
}

// CalendarEvent is the shape consumed by the calendar widget
type CalendarEvent struct {
	Title         string      `json:"title"`
	Start         string      `json:"start"`
	End           string      `json:"end"`
	ExtendedProps Appointment `json:"extendedProps"`
}

// ToCalendarEvent builds local date-times by concatenation; no timezone is attached.
func (a Appointment) ToCalendarEvent() CalendarEvent {
	return CalendarEvent{
		Title:         AppointmentEventTitle,
		Start:         a.PreferredDate + "T" + a.PreferredStartTime + ":00",
		End:           a.PreferredDate + "T" + a.PreferredEndTime + ":00",
		ExtendedProps: a,
	}
}

// EventsFromAppointments maps every appointment to an event. The result is never nil
// so it always encodes as a JSON array.
func EventsFromAppointments(items []Appointment) []CalendarEvent {
	events := make([]CalendarEvent, 0, len(items))
	for _, item := range items {
		events = append(events, item.ToCalendarEvent())
	}
	return events
}

// Popover holds what the event details popover shows for a clicked event
type Popover struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// NewPopover copies the event's stored fields unmodified
func NewPopover(event CalendarEvent) Popover {
	return Popover{
		Date:      event.ExtendedProps.PreferredDate,
		StartTime: event.ExtendedProps.PreferredStartTime,
		EndTime:   event.ExtendedProps.PreferredEndTime,
	}
}
