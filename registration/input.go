package registration

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	// report fields by their json name so errors match the request body
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Input is the request accepted by Register
type Input struct {
	PersonID          string    `json:"personID" validate:"required"`
	CaseID            string    `json:"caseID" validate:"required"`
	ArrestDate        DateInput `json:"arrestDate" validate:"required"`
	LocationID        string    `json:"locationID" validate:"required"`
	ChargeDescription string    `json:"chargeDescription" validate:"required"`
	StatuteCode       string    `json:"statuteCode" validate:"required"`
	IsConvicted       Flag      `json:"isConvicted"`
	OfficerID         *string   `json:"officerID,omitempty"`
}

// DateInput holds an arrest date given either as a string or as a numeric
// timestamp in epoch milliseconds
type DateInput string

// UnmarshalJSON implements json.Unmarshaler
func (d *DateInput) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*d = DateInput(s)
		return nil
	}
	var ms float64
	if err := json.Unmarshal(b, &ms); err != nil {
		return fmt.Errorf("arrestDate must be a date string or a timestamp: %w", err)
	}
	*d = DateInput(time.UnixMilli(int64(ms)).UTC().Format(time.RFC3339Nano))
	return nil
}

// Flag is a boolean that accepts any JSON value and keeps its truthiness. false,
// null, 0, NaN and "" are false, everything else is true.
type Flag bool

// UnmarshalJSON implements json.Unmarshaler
func (f *Flag) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case nil:
		*f = false
	case bool:
		*f = Flag(t)
	case float64:
		*f = Flag(t != 0 && !math.IsNaN(t))
	case string:
		*f = t != ""
	default:
		*f = true
	}
	return nil
}

// NormalizeDate reduces a date or timestamp string to its calendar date by dropping
// everything from the first "T"
func NormalizeDate(raw string) string {
	if i := strings.IndexByte(raw, 'T'); i >= 0 {
		return raw[:i]
	}
	return raw
}

// Validate reports every required field missing from in
func Validate(in Input) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return &ValidationError{Fields: fields}
}

// officerOrNil only replaces a missing officerID, an empty string is kept
func officerOrNil(officerID *string) *string {
	if officerID == nil {
		return nil
	}
	id := *officerID
	return &id
}
