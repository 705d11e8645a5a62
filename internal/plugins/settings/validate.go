package settings

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/hywep/alerts/internal/apperror"
	"github.com/hywep/alerts/internal/plugins/auth"
)

// ValidateUpdate schema-checks the settings form. Name, email, and password
// are optional: left empty they produce no error and no change. Majors and
// grade are always submitted by the page, so they stay required. Tags may
// legitimately be cleared, so an empty tags field means "remove all".
func ValidateUpdate(req *UpdateRequest) (*UpdateInput, apperror.FieldErrors) {
	errs := apperror.FieldErrors{}
	input := &UpdateInput{}

	if name := strings.TrimSpace(req.Name); name != "" {
		auth.CheckName(errs, "name", name, false)
		input.Name = &name
	}

	if email := strings.TrimSpace(req.Email); email != "" {
		auth.CheckEmail(errs, email)
		input.Email = &email
	}

	// The confirm field is only consulted when a new password was typed.
	if req.Password != "" {
		if n := utf8.RuneCountInString(req.Password); n < 4 || n > 20 {
			errs.Add("password", auth.MsgPasswordLength)
		} else if req.Password != req.ConfirmPassword {
			errs.Add("confirmPassword", auth.MsgConfirmMismatch)
		} else {
			input.Password = &req.Password
		}
	}

	input.Majors = auth.SplitList(req.Majors)
	if len(input.Majors) == 0 {
		errs.Add("majors", auth.MsgMajorsRequired)
	}

	grade, err := strconv.Atoi(strings.TrimSpace(req.Grade))
	if err != nil || grade < 1 {
		errs.Add("grade", auth.MsgGradeRequired)
	}
	input.Grade = grade

	// Checkbox semantics: present means checked, absent means off.
	input.IsActive = req.IsActive != ""
	input.Tags = auth.SplitList(req.Tags)
	if input.Tags == nil {
		input.Tags = []string{}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return input, nil
}
