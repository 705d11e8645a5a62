package auth

import (
	"reflect"
	"strings"
	"testing"
)

func validRegisterRequest() *RegisterRequest {
	return &RegisterRequest{
		Name:            "Kim",
		Email:           "a@b.com",
		Password:        "pass1234",
		ConfirmPassword: "pass1234",
		Majors:          "컴퓨터공학, 소프트웨어학",
		Grade:           "3",
	}
}

func TestValidateRegister_Success(t *testing.T) {
	input, errs := ValidateRegister(validRegisterRequest())
	if errs != nil {
		t.Fatalf("unexpected field errors: %v", errs)
	}

	if input.Name != "Kim" {
		t.Errorf("expected name Kim, got %s", input.Name)
	}
	if input.Email != "a@b.com" {
		t.Errorf("expected email a@b.com, got %s", input.Email)
	}
	want := []string{"컴퓨터공학", "소프트웨어학"}
	if !reflect.DeepEqual(input.Majors, want) {
		t.Errorf("expected majors %v, got %v", want, input.Majors)
	}
	if input.Grade != 3 {
		t.Errorf("expected grade 3, got %d", input.Grade)
	}
}

func TestValidateRegister_FieldErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RegisterRequest)
		field   string
		message string
	}{
		{
			name:    "empty name",
			mutate:  func(r *RegisterRequest) { r.Name = "  " },
			field:   "name",
			message: MsgNameTooShort,
		},
		{
			name:    "name too long",
			mutate:  func(r *RegisterRequest) { r.Name = strings.Repeat("가", 21) },
			field:   "name",
			message: MsgNameTooLong,
		},
		{
			name:    "bad email",
			mutate:  func(r *RegisterRequest) { r.Email = "not-an-email" },
			field:   "email",
			message: MsgEmailInvalid,
		},
		{
			name:    "email with display name",
			mutate:  func(r *RegisterRequest) { r.Email = "Kim <a@b.com>" },
			field:   "email",
			message: MsgEmailInvalid,
		},
		{
			name:    "password too short",
			mutate:  func(r *RegisterRequest) { r.Password = "abc"; r.ConfirmPassword = "abc" },
			field:   "password",
			message: MsgPasswordLength,
		},
		{
			name:    "password too long",
			mutate:  func(r *RegisterRequest) { p := strings.Repeat("x", 21); r.Password = p; r.ConfirmPassword = p },
			field:   "password",
			message: MsgPasswordLength,
		},
		{
			name:    "confirm mismatch",
			mutate:  func(r *RegisterRequest) { r.ConfirmPassword = "different" },
			field:   "confirmPassword",
			message: MsgConfirmMismatch,
		},
		{
			name:    "no majors",
			mutate:  func(r *RegisterRequest) { r.Majors = " , ," },
			field:   "majors",
			message: MsgMajorsRequired,
		},
		{
			name:    "missing grade",
			mutate:  func(r *RegisterRequest) { r.Grade = "" },
			field:   "grade",
			message: MsgGradeRequired,
		},
		{
			name:    "non-numeric grade",
			mutate:  func(r *RegisterRequest) { r.Grade = "three" },
			field:   "grade",
			message: MsgGradeRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegisterRequest()
			tt.mutate(req)

			input, errs := ValidateRegister(req)
			if input != nil {
				t.Fatal("expected nil input on validation failure")
			}
			if errs.First(tt.field) != tt.message {
				t.Errorf("expected %q on field %s, got %q", tt.message, tt.field, errs.First(tt.field))
			}
		})
	}
}

func TestValidateRegister_CollectsMultipleErrors(t *testing.T) {
	req := &RegisterRequest{}
	_, errs := ValidateRegister(req)

	for _, field := range []string{"name", "email", "password", "majors", "grade"} {
		if !errs.Has(field) {
			t.Errorf("expected an error on field %s", field)
		}
	}
}

func TestValidateLogin(t *testing.T) {
	input, errs := ValidateLogin(&LoginRequest{Email: " a@b.com ", Password: "pw"})
	if errs != nil {
		t.Fatalf("unexpected field errors: %v", errs)
	}
	if input.Email != "a@b.com" {
		t.Errorf("expected trimmed email, got %q", input.Email)
	}

	_, errs = ValidateLogin(&LoginRequest{Email: "nope", Password: ""})
	if errs.First("email") != MsgEmailInvalid {
		t.Errorf("expected email error, got %q", errs.First("email"))
	}
	if errs.First("password") != MsgPasswordRequired {
		t.Errorf("expected password error, got %q", errs.First("password"))
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b ", []string{"a", "b"}},
		{"a,,b,", []string{"a", "b"}},
		{"", nil},
		{" , ", nil},
		{"a,a", []string{"a", "a"}},
	}

	for _, tt := range tests {
		if got := SplitList(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitList(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
