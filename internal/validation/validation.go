// Package validation implements declarative, per-field payload validation.
//
// Each entity declares a Schema once: an ordered list of fields and a rule
// table (bounds, format, pattern, default). One generic evaluator consumes
// the table; there are no ad hoc per-field checks scattered elsewhere.
//
// Per field the checks run in a fixed order: presence (defaults applied for
// omitted optional fields) → format → rune-length bounds → pattern. The first
// failing check short-circuits and the evaluator reports the first offending
// field in schema order, as a 400 apperr carrying entity, field, and one of
// the contract reason tokens from the messages package.
package validation

import (
	"net/mail"
	"net/url"
	"regexp"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/pdanilin/go-mesto-backend/internal/apperr"
	"github.com/pdanilin/go-mesto-backend/internal/domain"
	"github.com/pdanilin/go-mesto-backend/internal/messages"
)

// Format selects an optional well-formedness check for a field.
type Format int

const (
	// FormatNone applies no format check.
	FormatNone Format = iota
	// FormatURL requires an absolute http(s) URL with a host.
	FormatURL
	// FormatEmail requires a plain RFC 5322 address without a display name.
	FormatEmail
)

// Rule is the declarative validation rule for one field.
//
// A zero MinLen/MaxLen disables the corresponding bound. Pattern, when set,
// must match the whole value and fails with PatternReason. Exactly one of
// Required or Default is expected for every field: required fields have no
// default, defaulted fields are optional.
type Rule struct {
	Required      bool
	Default       string
	MinLen        int
	MaxLen        int
	Format        Format
	Pattern       *regexp.Regexp
	PatternReason string
}

// Schema is the validation contract of one entity: the field evaluation
// order and the rule per field.
type Schema struct {
	Entity string
	Order  []string
	Rules  map[string]Rule
}

// namePattern allows Unicode letters, spaces, and hyphens.
var namePattern = regexp.MustCompile(`^[\p{L} -]+$`)

// User is the registration payload schema.
var User = Schema{
	Entity: "user",
	Order:  []string{"name", "about", "avatar", "email", "password"},
	Rules: map[string]Rule{
		"name": {
			Default:       domain.UserNameDefault,
			MinLen:        domain.UserNameMinLen,
			MaxLen:        domain.UserNameMaxLen,
			Pattern:       namePattern,
			PatternReason: messages.InvalidName,
		},
		"about": {
			Default: domain.UserAboutDefault,
			MinLen:  domain.UserAboutMinLen,
			MaxLen:  domain.UserAboutMaxLen,
		},
		"avatar": {
			Default: domain.UserAvatarDefault,
			Format:  FormatURL,
		},
		"email":    {Required: true, Format: FormatEmail},
		"password": {Required: true},
	},
}

// Card is the card creation payload schema.
var Card = Schema{
	Entity: "card",
	Order:  []string{"name", "link"},
	Rules: map[string]Rule{
		"name": {Required: true, MinLen: domain.CardNameMinLen, MaxLen: domain.CardNameMaxLen},
		"link": {Required: true, Format: FormatURL},
	},
}

// Login is the credential payload schema. Password gets a presence check
// only; its content is matched against the stored digest, not validated.
var Login = Schema{
	Entity: "user",
	Order:  []string{"email", "password"},
	Rules: map[string]Rule{
		"email":    {Required: true, Format: FormatEmail},
		"password": {Required: true},
	},
}

// Validate evaluates the schema against raw field values. A nil pointer
// means the field was omitted from the payload. On success it returns the
// normalized values (defaults filled in, NFC-normalized); on the first
// failure it returns a 400 apperr for that field.
func (s Schema) Validate(values map[string]*string) (map[string]string, error) {
	out := make(map[string]string, len(s.Order))
	for _, field := range s.Order {
		rule := s.Rules[field]
		raw, ok := presence(values[field], rule)
		if !ok {
			return nil, apperr.Validation(s.Entity, field, messages.Required)
		}
		v := norm.NFC.String(raw)

		switch rule.Format {
		case FormatURL:
			if !validURL(v) {
				return nil, apperr.Validation(s.Entity, field, messages.InvalidURL)
			}
		case FormatEmail:
			if !validEmail(v) {
				return nil, apperr.Validation(s.Entity, field, messages.InvalidEmail)
			}
		}

		n := utf8.RuneCountInString(v)
		if rule.MinLen > 0 && n < rule.MinLen {
			return nil, apperr.Validation(s.Entity, field, messages.MinLength)
		}
		if rule.MaxLen > 0 && n > rule.MaxLen {
			return nil, apperr.Validation(s.Entity, field, messages.MaxLength)
		}

		if rule.Pattern != nil && !rule.Pattern.MatchString(v) {
			return nil, apperr.Validation(s.Entity, field, rule.PatternReason)
		}

		out[field] = v
	}
	return out, nil
}

// presence resolves the raw value of a field: omitted optional fields take
// their default, omitted or empty required fields fail. The returned bool is
// false only for a required-field failure.
func presence(raw *string, rule Rule) (string, bool) {
	if raw == nil {
		if rule.Default != "" {
			return rule.Default, true
		}
		return "", !rule.Required
	}
	if rule.Required && *raw == "" {
		return "", false
	}
	return *raw, true
}

// validURL reports whether v is an absolute http or https URL with a host.
func validURL(v string) bool {
	u, err := url.Parse(v)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// validEmail reports whether v is a bare address like "user@example.com".
// Addresses with a display name ("User <user@example.com>") are rejected.
func validEmail(v string) bool {
	addr, err := mail.ParseAddress(v)
	return err == nil && addr.Address == v
}
