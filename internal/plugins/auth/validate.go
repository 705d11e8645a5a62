package auth

import (
	"net/mail"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/hywep/alerts/internal/apperror"
)

// User-facing validation messages. Kept identical to the original portal's
// wording so existing users see the exact same feedback.
const (
	MsgNameTooShort     = "사용자 이름은 최소 1자 이상이어야 합니다."
	MsgNameTooLong      = "사용자 이름은 최대 20자 이하여야 합니다."
	MsgEmailInvalid     = "올바른 이메일 주소를 입력해주세요."
	MsgPasswordLength   = "비밀번호는 4자 이상 20자 이하여야 합니다."
	MsgPasswordRequired = "비밀번호를 입력해주세요."
	MsgConfirmMismatch  = "비밀번호가 일치하지 않습니다."
	MsgMajorsRequired   = "최소 하나의 학과를 선택해야 합니다."
	MsgGradeRequired    = "학년은 필수 입력 항목입니다."
)

// ValidateRegister schema-checks the raw registration form and returns the
// coerced input bundle, or field-keyed errors. Pure check: no side effects,
// and nothing past this function runs on malformed input.
func ValidateRegister(req *RegisterRequest) (*RegisterInput, apperror.FieldErrors) {
	errs := apperror.FieldErrors{}

	name := strings.TrimSpace(req.Name)
	CheckName(errs, "name", name, true)

	email := strings.TrimSpace(req.Email)
	CheckEmail(errs, email)

	if n := utf8.RuneCountInString(req.Password); n < 4 || n > 20 {
		errs.Add("password", MsgPasswordLength)
	} else if req.Password != req.ConfirmPassword {
		errs.Add("confirmPassword", MsgConfirmMismatch)
	}

	majors := SplitList(req.Majors)
	if len(majors) == 0 {
		errs.Add("majors", MsgMajorsRequired)
	}

	grade, err := strconv.Atoi(strings.TrimSpace(req.Grade))
	if err != nil || grade < 1 {
		errs.Add("grade", MsgGradeRequired)
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return &RegisterInput{
		Name:     name,
		Email:    email,
		Password: req.Password,
		Majors:   majors,
		Grade:    grade,
	}, nil
}

// ValidateLogin schema-checks the sign-in form.
func ValidateLogin(req *LoginRequest) (*LoginInput, apperror.FieldErrors) {
	errs := apperror.FieldErrors{}

	email := strings.TrimSpace(req.Email)
	CheckEmail(errs, email)

	if req.Password == "" {
		errs.Add("password", MsgPasswordRequired)
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return &LoginInput{Email: email, Password: req.Password}, nil
}

// CheckName validates the 1-20 character display name rule. Counted in
// runes so Korean names are measured the way users expect.
func CheckName(errs apperror.FieldErrors, field, name string, required bool) {
	n := utf8.RuneCountInString(name)
	if n == 0 {
		if required {
			errs.Add(field, MsgNameTooShort)
		}
		return
	}
	if n > 20 {
		errs.Add(field, MsgNameTooLong)
	}
}

// CheckEmail validates the email shape. The parsed address must round-trip
// to the input so display-name forms like "Kim <a@b.com>" are rejected.
func CheckEmail(errs apperror.FieldErrors, email string) {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		errs.Add("email", MsgEmailInvalid)
	}
}

// SplitList turns a comma-separated form value into a trimmed list,
// dropping empty entries. Order is preserved; duplicates are kept.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
