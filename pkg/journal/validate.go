package journal

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"tableflip.dev/devo/pkg/entry"
)

// draftRules is the validated shape of an entry.Draft after trimming.
type draftRules struct {
	Title   string `json:"title" validate:"required"`
	Date    string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Mood    string `json:"mood" validate:"required,mood"`
	Content string `json:"content" validate:"required"`
}

var fieldMessages = map[string]string{
	"title.required":   "Please enter a title.",
	"content.required": "Please write something in your entry.",
	"mood.required":    "Please select a mood.",
	"mood.mood":        "Please select a valid mood.",
	"date.datetime":    "Please enter the date as YYYY-MM-DD.",
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	})
	_ = v.RegisterValidation("mood", func(fl validator.FieldLevel) bool {
		_, err := entry.ParseMood(fl.Field().String())
		return err == nil
	})
	return v
}

// check validates d and returns the parsed date and mood. An empty date
// resolves to today.
func (s *Store) check(d entry.Draft) (entry.Date, entry.Mood, error) {
	rules := draftRules{
		Title:   strings.TrimSpace(d.Title),
		Date:    strings.TrimSpace(d.Date),
		Mood:    strings.TrimSpace(d.Mood),
		Content: strings.TrimSpace(d.Content),
	}

	if err := s.validate.Struct(rules); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return entry.Date{}, "", err
		}
		out := &ValidationError{}
		for _, fe := range verrs {
			msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]
			if !ok {
				msg = fe.Field() + " is invalid"
			}
			out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Message: msg})
		}
		return entry.Date{}, "", out
	}

	mood, _ := entry.ParseMood(rules.Mood)
	if rules.Date == "" {
		return entry.Today(s.now()), mood, nil
	}
	date, err := entry.ParseDate(rules.Date)
	if err != nil {
		return entry.Date{}, "", &ValidationError{Fields: []FieldError{{Field: "date", Message: fieldMessages["date.datetime"]}}}
	}
	return date, mood, nil
}
