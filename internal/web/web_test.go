package web

import (
	"bytes"
	"io"
	"testing"

	"github.com/lumenstudio/booking-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, data PageData) string {
	t.Helper()
	tmpl, err := Templates()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, IndexTemplate, data))
	return buf.String()
}

func TestIndex_RendersEventsAsJSON(t *testing.T) {
	events := models.EventsFromAppointments([]models.Appointment{
		{PreferredDate: "2024-05-01", PreferredStartTime: "10:00", PreferredEndTime: "11:00"},
	})

	html := render(t, PageData{ShootTypes: models.ShootTypeOptions, Events: events})

	assert.Contains(t, html, `"start":"2024-05-01T10:00:00"`)
	assert.Contains(t, html, `"title":"Appointment"`)
	assert.Contains(t, html, `href="/?event=0"`)
}

func TestIndex_EmptyCalendar(t *testing.T) {
	html := render(t, PageData{ShootTypes: models.ShootTypeOptions, Events: []models.CalendarEvent{}})

	assert.Contains(t, html, `<script id="calendar-events" type="application/json">[]</script>`)
}

func TestIndex_KeepsEnteredValuesAndAlert(t *testing.T) {
	html := render(t, PageData{
		ShootTypes: models.ShootTypeOptions,
		Events:     []models.CalendarEvent{},
		Alert:      "Please fill in all required fields",
		Form: models.BookingRequest{
			Name:      "Ada <script>",
			ShootType: string(models.ShootTypeEvent),
		},
	})

	assert.Contains(t, html, "Please fill in all required fields")
	assert.Contains(t, html, `value="Ada &lt;script&gt;"`)
	assert.Contains(t, html, `<option value="event" selected>Event</option>`)
	assert.NotContains(t, html, `<option value="wedding" selected>`)
}

func TestIndex_ResultPanel(t *testing.T) {
	msg := &models.Message{Type: models.MessageTypeError, Message: "Studio closed that day"}
	html := render(t, PageData{
		ShootTypes: models.ShootTypeOptions,
		Events:     []models.CalendarEvent{},
		View:       models.NewResultView(msg, false),
	})

	assert.Contains(t, html, "panel border-destructive")
	assert.Contains(t, html, "Photography Studio Assistant")
	assert.Contains(t, html, "Studio closed that day")
}

func TestIndex_Popover(t *testing.T) {
	html := render(t, PageData{
		ShootTypes: models.ShootTypeOptions,
		Events:     []models.CalendarEvent{},
		Popover:    &models.Popover{Date: "2024-05-01", StartTime: "10:00", EndTime: "11:00"},
	})

	assert.Contains(t, html, `<dd data-field="date">2024-05-01</dd>`)
	assert.Contains(t, html, `<dd data-field="startTime">10:00</dd>`)
	assert.Contains(t, html, `<dd data-field="endTime">11:00</dd>`)
}

func TestIndex_AuthLinks(t *testing.T) {
	html := render(t, PageData{ShootTypes: models.ShootTypeOptions, Events: []models.CalendarEvent{}, AuthEnabled: true})
	assert.Contains(t, html, `href="/api/v1/auth/google"`)

	html = render(t, PageData{
		ShootTypes:  models.ShootTypeOptions,
		Events:      []models.CalendarEvent{},
		AuthEnabled: true,
		Session:     &models.Session{Name: "Ada Lovelace"},
	})
	assert.Contains(t, html, "Ada Lovelace")
	assert.Contains(t, html, "Sign out")
}

func TestStatic_ServesAppJS(t *testing.T) {
	f, err := Static().Open("app.js")
	require.NoError(t, err)
	defer f.Close()

	body, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Contains(t, string(body), "eventClick")
}
