package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Login    string `json:"login" validate:"login"`
	Birthday string `json:"birthday" validate:"required,notfuture"`
	Release  string `json:"releaseDate" validate:"required,cinemaepoch"`
}

func TestCustomValidator(t *testing.T) {
	fixedNow := time.Date(2024, time.June, 1, 15, 0, 0, 0, time.UTC)
	cv := newWithClock(func() time.Time { return fixedNow })

	valid := sample{Login: "neo", Birthday: "2024-06-01", Release: "1895-12-28"}

	tests := []struct {
		name    string
		mutate  func(s *sample)
		wantErr string
	}{
		{name: "Valid", mutate: func(*sample) {}},
		{name: "EmptyLogin", mutate: func(s *sample) { s.Login = "" }, wantErr: "login must not be empty or contain whitespace"},
		{name: "LoginWithSpace", mutate: func(s *sample) { s.Login = "the one" }, wantErr: "login must not be empty"},
		{name: "LoginWithTab", mutate: func(s *sample) { s.Login = "neo\t" }, wantErr: "login must not be empty"},
		{name: "BirthdayTomorrow", mutate: func(s *sample) { s.Birthday = "2024-06-02" }, wantErr: "birthday must not be in the future"},
		{name: "BirthdayMalformed", mutate: func(s *sample) { s.Birthday = "01/06/2024" }, wantErr: "birthday must not be in the future"},
		{name: "BeforeCinema", mutate: func(s *sample) { s.Release = "1895-12-27" }, wantErr: "releaseDate must not be before 1895-12-28"},
		{
			name:    "SeveralFailures",
			mutate:  func(s *sample) { s.Login = ""; s.Release = "1800-01-01" },
			wantErr: "login must not be empty or contain whitespace; releaseDate must not be before 1895-12-28",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)

			err := cv.Validate(&s)
			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestCustomValidator_TimeFields(t *testing.T) {
	cv := newWithClock(time.Now)

	type dated struct {
		At time.Time `json:"at" validate:"notfuture"`
	}

	assert.NoError(t, cv.Validate(&dated{At: time.Now().Add(-time.Hour)}))
	assert.Error(t, cv.Validate(&dated{At: time.Now().AddDate(0, 0, 2)}))
}

func TestCustomValidator_NotBlank(t *testing.T) {
	cv := New()

	type named struct {
		Name string `json:"name" validate:"notblank"`
	}

	assert.NoError(t, cv.Validate(&named{Name: "Heat"}))
	err := cv.Validate(&named{Name: "  \t"})
	if assert.Error(t, err) {
		assert.Equal(t, "name is required", err.Error())
	}
}
