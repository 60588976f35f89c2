package models

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ShootType is the category of photography session
type ShootType string

const (
	ShootTypeWedding  ShootType = "wedding"
	ShootTypePortrait ShootType = "portrait"
	ShootTypeEvent    ShootType = "event"
)

// ShootTypeOption is one entry of the shoot type select
type ShootTypeOption struct {
	Value ShootType
	Label string
}

// ShootTypeOptions lists the choices offered by the booking form, in display order
var ShootTypeOptions = []ShootTypeOption{
	{Value: ShootTypeWedding, Label: "Wedding"},
	{Value: ShootTypePortrait, Label: "Portrait"},
	{Value: ShootTypeEvent, Label: "Event"},
}

// BookingRequest is a booking form submission. Only presence is checked:
// values (including the time ordering) are passed through as typed.
type BookingRequest struct {
	Name               string `json:"name" form:"name" binding:"required"`
	Email              string `json:"email" form:"email" binding:"required"`
	Phone              string `json:"phone" form:"phone" binding:"required"`
	ShootType          string `json:"shootType" form:"shootType" binding:"required"`
	PreferredDate      string `json:"preferredDate" form:"preferredDate" binding:"required"`
	PreferredStartTime string `json:"preferredStartTime" form:"preferredStartTime" binding:"required"`
	PreferredEndTime   string `json:"preferredEndTime" form:"preferredEndTime" binding:"required"`
	Notes              string `json:"notes" form:"notes"`
	RecaptchaToken     string `json:"recaptchaToken,omitempty" form:"g-recaptcha-response"`
}

// BookingPayload is the body forwarded to the intake webhook
type BookingPayload struct {
	Name               string `json:"name"`
	Email              string `json:"email"`
	Phone              string `json:"phone"`
	ShootType          string `json:"shootType"`
	PreferredDate      string `json:"preferredDate"`
	PreferredStartTime string `json:"preferredStartTime"`
	PreferredEndTime   string `json:"preferredEndTime"`
	Notes              string `json:"notes"`
}

// Payload copies the form fields verbatim, leaving out the captcha token
func (r *BookingRequest) Payload() BookingPayload {
	return BookingPayload{
		Name:               r.Name,
		Email:              r.Email,
		Phone:              r.Phone,
		ShootType:          r.ShootType,
		PreferredDate:      r.PreferredDate,
		PreferredStartTime: r.PreferredStartTime,
		PreferredEndTime:   r.PreferredEndTime,
		Notes:              r.Notes,
	}
}

// BookingResponse is returned by the JSON booking endpoint
type BookingResponse struct {
	Result *Message   `json:"result"`
	View   ResultView `json:"view"`
}

var (
	bookingValidator     *validator.Validate
	bookingValidatorOnce sync.Once
)

// BookingValidator returns a validator that reads the same `binding` tags gin uses
// and reports fields by their JSON names.
func BookingValidator() *validator.Validate {
	bookingValidatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.SetTagName("binding")
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		bookingValidator = v
	})
	return bookingValidator
}

// Validate checks that every required field is non-empty
func (r *BookingRequest) Validate() error {
	return BookingValidator().Struct(r)
}
