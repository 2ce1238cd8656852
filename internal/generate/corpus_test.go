package generate

import (
	"regexp"
	"strings"
	"testing"

	"github.com/guimmamanna/synthforge/internal/rng"
)

func TestGenerateEmailIsLowercaseWithDomain(t *testing.T) {
	r := rng.WithSeed(11)
	for i := 0; i < 50; i++ {
		email := GenerateEmail(r)
		if email != strings.ToLower(email) {
			t.Fatalf("expected lowercase email, got %q", email)
		}
		if !strings.Contains(email, "@") {
			t.Fatalf("expected email to contain @, got %q", email)
		}
	}
}

func TestGeneratePhoneMatchesPrefixAndTenDigits(t *testing.T) {
	r := rng.WithSeed(12)
	re := regexp.MustCompile(`^\+\d{1,2}\d{10}$`)
	for i := 0; i < 50; i++ {
		phone := GeneratePhone(r)
		if !re.MatchString(phone) {
			t.Fatalf("expected phone to match prefix+10 digits, got %q", phone)
		}
	}
}

func TestGeneratePostcodeUKMatchesFormat(t *testing.T) {
	r := rng.WithSeed(13)
	re := regexp.MustCompile(`^[A-Z]{1,2}\d \d[A-Z]{2}$`)
	for i := 0; i < 50; i++ {
		postcode := GeneratePostcodeUK(r)
		if !re.MatchString(postcode) {
			t.Fatalf("expected UK postcode format, got %q", postcode)
		}
	}
}

func TestGenerateNameHasTwoWords(t *testing.T) {
	r := rng.WithSeed(14)
	name := GenerateName(r)
	if len(strings.Fields(name)) != 2 {
		t.Fatalf("expected 'First Last' shape, got %q", name)
	}
}
