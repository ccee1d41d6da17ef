package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/pdanilin/go-mesto-backend/internal/apperr"
	"github.com/pdanilin/go-mesto-backend/internal/domain"
	"github.com/pdanilin/go-mesto-backend/internal/messages"
)

func str(s string) *string { return &s }

// validUser returns a payload that passes the User schema.
func validUser() map[string]*string {
	return map[string]*string{
		"name":     str("Жак-Ив Кусто"),
		"about":    str("Исследователь океана"),
		"avatar":   str("https://example.com/a.png"),
		"email":    str("e@e.com"),
		"password": str("p"),
	}
}

func wantReason(t *testing.T, err error, field, reason string) {
	t.Helper()
	var e *apperr.Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *apperr.Error, got %v", err)
	}
	if e.Status != 400 || e.Field != field {
		t.Fatalf("got status=%d field=%q, want 400/%q", e.Status, e.Field, field)
	}
	if !strings.HasSuffix(e.Message, ": "+reason) {
		t.Fatalf("message %q does not end in reason %q", e.Message, reason)
	}
}

func TestUser_ValidPayloadNormalized(t *testing.T) {
	vals, err := User.Validate(validUser())
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if vals["name"] != "Жак-Ив Кусто" || vals["email"] != "e@e.com" {
		t.Fatalf("unexpected values: %#v", vals)
	}
}

func TestUser_DefaultsApplied(t *testing.T) {
	p := validUser()
	delete(p, "name")
	delete(p, "about")
	delete(p, "avatar")

	vals, err := User.Validate(p)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if vals["name"] != domain.UserNameDefault {
		t.Fatalf("name default = %q", vals["name"])
	}
	if vals["about"] != domain.UserAboutDefault {
		t.Fatalf("about default = %q", vals["about"])
	}
	if vals["avatar"] != domain.UserAvatarDefault {
		t.Fatalf("avatar default = %q", vals["avatar"])
	}
}

func TestUser_NoDefaultsForEmailPassword(t *testing.T) {
	p := validUser()
	delete(p, "email")
	wantReason(t, mustErr(t, User, p), "email", messages.Required)

	p = validUser()
	delete(p, "password")
	wantReason(t, mustErr(t, User, p), "password", messages.Required)

	p = validUser()
	p["password"] = str("")
	wantReason(t, mustErr(t, User, p), "password", messages.Required)
}

func TestUser_NameBoundsAndCharset(t *testing.T) {
	tests := []struct {
		testName string
		name     string
		reason   string
	}{
		{"too_short", "Я", messages.MinLength},
		{"too_long", strings.Repeat("а", domain.UserNameMaxLen+1), messages.MaxLength},
		{"plus_sign", "Кусто+", messages.InvalidName},
		{"digits", "agent 007", messages.InvalidName},
	}
	for _, tt := range tests {
		t.Run(tt.testName, func(t *testing.T) {
			p := validUser()
			p["name"] = str(tt.name)
			wantReason(t, mustErr(t, User, p), "name", tt.reason)
		})
	}

	// Boundary values and the full allowed charset pass.
	for _, okName := range []string{
		"Ян",
		strings.Repeat("а", domain.UserNameMaxLen),
		"Jacques-Yves Cousteau",
	} {
		p := validUser()
		p["name"] = str(okName)
		if _, err := User.Validate(p); err != nil {
			t.Fatalf("name %q should pass: %v", okName, err)
		}
	}
}

func TestUser_RuneLengthNotByteLength(t *testing.T) {
	// 30 Cyrillic runes are 60 bytes; the bound is on runes.
	p := validUser()
	p["name"] = str(strings.Repeat("ж", domain.UserNameMaxLen))
	if _, err := User.Validate(p); err != nil {
		t.Fatalf("30-rune Cyrillic name should pass: %v", err)
	}
}

func TestUser_AboutBounds(t *testing.T) {
	p := validUser()
	p["about"] = str("a")
	wantReason(t, mustErr(t, User, p), "about", messages.MinLength)

	p = validUser()
	p["about"] = str(strings.Repeat("a", domain.UserAboutMaxLen+1))
	wantReason(t, mustErr(t, User, p), "about", messages.MaxLength)
}

func TestUser_AvatarURL(t *testing.T) {
	for _, bad := range []string{"invalid url", "ftp://example.com/a", "/relative/path", "https://"} {
		p := validUser()
		p["avatar"] = str(bad)
		wantReason(t, mustErr(t, User, p), "avatar", messages.InvalidURL)
	}
}

func TestUser_EmailFormat(t *testing.T) {
	for _, bad := range []string{"not-an-email", "a@", "User <u@e.com>"} {
		p := validUser()
		p["email"] = str(bad)
		wantReason(t, mustErr(t, User, p), "email", messages.InvalidEmail)
	}
}

// The evaluator reports the first offending field in schema order; with both
// name and email invalid, name wins.
func TestUser_FieldOrderPinned(t *testing.T) {
	p := validUser()
	p["name"] = str("Я")
	p["email"] = str("broken")
	wantReason(t, mustErr(t, User, p), "name", messages.MinLength)
}

func TestCard_Schema(t *testing.T) {
	valid := map[string]*string{
		"name": str("Эльбрус"),
		"link": str("https://example.com/mountain.png"),
	}
	if _, err := Card.Validate(valid); err != nil {
		t.Fatalf("valid card rejected: %v", err)
	}

	p := map[string]*string{"link": valid["link"]}
	wantReason(t, mustErr(t, Card, p), "name", messages.Required)

	p = map[string]*string{"name": str("Э"), "link": valid["link"]}
	wantReason(t, mustErr(t, Card, p), "name", messages.MinLength)

	p = map[string]*string{"name": valid["name"], "link": str("nowhere")}
	wantReason(t, mustErr(t, Card, p), "link", messages.InvalidURL)
}

func TestLogin_Schema(t *testing.T) {
	if _, err := Login.Validate(map[string]*string{
		"email":    str("e@e.com"),
		"password": str("p"),
	}); err != nil {
		t.Fatalf("valid login rejected: %v", err)
	}
	wantReason(t, mustErr(t, Login, map[string]*string{"password": str("p")}), "email", messages.Required)
	wantReason(t, mustErr(t, Login, map[string]*string{"email": str("e@e.com")}), "password", messages.Required)
}

func mustErr(t *testing.T, s Schema, p map[string]*string) error {
	t.Helper()
	_, err := s.Validate(p)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	return err
}
