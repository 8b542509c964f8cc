// Package validation checks reservation payloads against the restaurant's booking rules.
// Rules run in a fixed order and the first one that fails decides the message.
package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"tablebook/internal/domains/reservation/model"
	"tablebook/internal/domains/reservation/model/dto"
	"tablebook/internal/domains/reservation/policy"
	"tablebook/shared/failure"
	"tablebook/shared/timezone"
)

var (
	requiredFields = []string{
		model.FieldFirstName,
		model.FieldLastName,
		model.FieldMobileNumber,
		model.FieldDate,
		model.FieldTime,
		model.FieldPeople,
	}

	createFields = append(slices.Clone(requiredFields), model.FieldStatus)
	updateFields = append(slices.Clone(createFields), model.FieldID, "created_at", "updated_at")
	statusFields = []string{model.FieldStatus}
)

// Validator is safe for concurrent use.
type Validator interface {
	ValidateCreate(data *dto.Payload) (dto.ReservationRequest, error)
	ValidateUpdate(data *dto.Payload, existing model.Reservation) (dto.ReservationRequest, error)
	ValidateStatus(data *dto.Payload, existing model.Reservation) (string, error)
}

type validatorImpl struct {
	now func() time.Time
}

func New() Validator {
	return NewWithClock(timezone.Now)
}

// NewWithClock evaluates the past-date rule against now instead of the wall clock.
func NewWithClock(now func() time.Time) Validator {
	return &validatorImpl{now: now}
}

type rule struct {
	valid   func(in *input) bool
	message func(in *input) string
}

func fixed(msg string) func(*input) string {
	return func(*input) string { return msg }
}

// input is what the rules look at. Values are extracted once, up front.
type input struct {
	payload  dto.Payload
	present  bool
	allowed  []string
	existing model.Reservation
	now      time.Time
}

func newInput(data *dto.Payload, allowed []string, existing model.Reservation, now time.Time) *input {
	in := &input{allowed: allowed, existing: existing, now: now}
	if data != nil && *data != nil {
		in.present = true
		in.payload = *data
	}

	return in
}

// raw returns a field's JSON literal, or nil when it is absent or null.
func (in *input) raw(field string) []byte {
	raw := bytes.TrimSpace(in.payload[field])
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	return raw
}

// text returns a JSON string field. Anything else reads as "", except that a mobile number
// sent as a bare number such as 5551234 keeps its literal form.
func (in *input) text(field string) string {
	raw := in.raw(field)
	if raw == nil {
		return ""
	}

	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return str
	}

	var number json.Number
	if field == model.FieldMobileNumber && json.Unmarshal(raw, &number) == nil {
		return number.String()
	}

	return ""
}

// people accepts only a JSON integer literal; "3" and 3.5 are rejected.
func (in *input) people() (int, bool) {
	raw := in.raw(model.FieldPeople)

	var number json.Number
	if raw == nil || raw[0] == '"' || json.Unmarshal(raw, &number) != nil {
		return 0, false
	}

	people, err := strconv.Atoi(number.String())
	if err != nil {
		return 0, false
	}

	return people, true
}

func (in *input) unknownFields() []string {
	unknown := []string{}

	for field := range in.payload {
		if !slices.Contains(in.allowed, field) {
			unknown = append(unknown, field)
		}
	}

	slices.Sort(unknown)

	return unknown
}

func (in *input) firstMissing() string {
	for _, field := range requiredFields {
		// people is checked for presence only; its type is the next rule's job
		if field == model.FieldPeople {
			if in.raw(field) == nil {
				return field
			}

			continue
		}

		if in.text(field) == "" {
			return field
		}
	}

	return ""
}

func (in *input) request() dto.ReservationRequest {
	people, _ := in.people()

	return dto.ReservationRequest{
		FirstName:       in.text(model.FieldFirstName),
		LastName:        in.text(model.FieldLastName),
		MobileNumber:    in.text(model.FieldMobileNumber),
		ReservationDate: in.text(model.FieldDate),
		ReservationTime: in.text(model.FieldTime),
		People:          people,
		Status:          in.text(model.FieldStatus),
	}
}

var (
	presentRule = rule{
		valid:   func(in *input) bool { return in.present },
		message: fixed(failure.MissingBody.Message),
	}
	knownFieldsRule = rule{
		valid: func(in *input) bool { return len(in.unknownFields()) == 0 },
		message: func(in *input) string {
			return "invalid field(s): " + strings.Join(in.unknownFields(), ", ")
		},
	}
)

// payloadRules are shared by create and full update.
var payloadRules = []rule{
	presentRule,
	knownFieldsRule,
	{
		valid:   func(in *input) bool { return in.firstMissing() == "" },
		message: func(in *input) string { return in.firstMissing() + " is missing." },
	},
	{
		valid: func(in *input) bool {
			people, ok := in.people()

			return ok && people > 0
		},
		message: fixed("people field must be a valid integer greater than 0"),
	},
	{
		valid:   func(in *input) bool { return policy.IsValidTimeFormat(in.text(model.FieldTime)) },
		message: fixed("reservation time must be in HH:MM format"),
	},
	{
		valid:   func(in *input) bool { return policy.IsValidDateFormat(in.text(model.FieldDate)) },
		message: fixed("date must be in YYYY-MM-DD format"),
	},
	{
		valid: func(in *input) bool {
			return !policy.IsPast(in.text(model.FieldDate), in.text(model.FieldTime), in.now)
		},
		message: fixed("reservations cannot be made for a past date/time"),
	},
	{
		valid:   func(in *input) bool { return !policy.IsClosedDay(in.text(model.FieldDate)) },
		message: fixed("location is closed on Tuesdays"),
	},
	{
		valid:   func(in *input) bool { return policy.IsWithinBusinessHours(in.text(model.FieldTime)) },
		message: fixed("must be booked between 10:30 AM and 9:30 PM"),
	},
}

var createRules = append(slices.Clone(payloadRules), rule{
	valid: func(in *input) bool {
		status := in.text(model.FieldStatus)

		return status == "" || status == model.StatusBooked
	},
	message: func(in *input) string {
		return fmt.Sprintf("%q is not a valid status for a new reservation", in.text(model.FieldStatus))
	},
})

var updateRules = append(slices.Clone(payloadRules), rule{
	valid: func(in *input) bool { return in.existing.Status == model.StatusBooked },
	message: func(in *input) string {
		if in.existing.Status == model.StatusFinished {
			return "a finished reservation cannot be edited"
		}

		return "only booked reservations can be edited"
	},
})

// statusRules leave seated and finished to the table routes, which move the reservation and
// its table together.
var statusRules = []rule{
	presentRule,
	knownFieldsRule,
	{
		valid:   func(in *input) bool { return in.text(model.FieldStatus) != "" },
		message: fixed(model.FieldStatus + " is missing."),
	},
	{
		valid:   func(in *input) bool { return model.IsStatus(in.text(model.FieldStatus)) },
		message: func(in *input) string { return "invalid status: " + in.text(model.FieldStatus) },
	},
	{
		valid:   func(in *input) bool { return in.existing.Status != model.StatusFinished },
		message: fixed("a finished reservation cannot be updated"),
	},
	{
		valid: func(in *input) bool {
			return model.CanTransition(in.existing.Status, in.text(model.FieldStatus))
		},
		message: func(in *input) string {
			return fmt.Sprintf("cannot change status from %s to %s", in.existing.Status, in.text(model.FieldStatus))
		},
	},
	{
		valid: func(in *input) bool { return !model.IsSetByTable(in.text(model.FieldStatus)) },
		message: func(in *input) string {
			if in.text(model.FieldStatus) == model.StatusSeated {
				return "reservations are seated through PUT /tables/{table_id}/seat"
			}

			return "reservations are finished through DELETE /tables/{table_id}/seat"
		},
	},
}

func evaluate(rules []rule, in *input) error {
	for _, r := range rules {
		if !r.valid(in) {
			return failure.BadRequestFromString(r.message(in))
		}
	}

	return nil
}

func (v *validatorImpl) ValidateCreate(data *dto.Payload) (dto.ReservationRequest, error) {
	in := newInput(data, createFields, model.Reservation{}, v.now())
	if err := evaluate(createRules, in); err != nil {
		return dto.ReservationRequest{}, err
	}

	return in.request(), nil
}

// ValidateUpdate checks a full edit of existing. The status field is accepted but ignored;
// status changes go through ValidateStatus.
func (v *validatorImpl) ValidateUpdate(data *dto.Payload, existing model.Reservation) (dto.ReservationRequest, error) {
	in := newInput(data, updateFields, existing, v.now())
	if err := evaluate(updateRules, in); err != nil {
		return dto.ReservationRequest{}, err
	}

	req := in.request()
	req.Status = existing.Status

	return req, nil
}

// ValidateStatus returns the requested status once the transition from existing is allowed.
func (v *validatorImpl) ValidateStatus(data *dto.Payload, existing model.Reservation) (string, error) {
	in := newInput(data, statusFields, existing, v.now())
	if err := evaluate(statusRules, in); err != nil {
		return "", err
	}

	return in.text(model.FieldStatus), nil
}
