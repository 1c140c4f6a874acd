package cli

import "testing"

func TestValidateOutputFormat(t *testing.T) {
	for _, format := range []string{"text", "json", "yaml"} {
		if err := ValidateOutputFormat(format); err != nil {
			t.Errorf("ValidateOutputFormat(%q) = %v, want nil", format, err)
		}
	}
	if err := ValidateOutputFormat("xml"); err == nil {
		t.Error("ValidateOutputFormat(\"xml\") should fail")
	}
}

func TestValidatePlatform(t *testing.T) {
	p, err := ValidatePlatform("  Google ")
	if err != nil {
		t.Fatalf("ValidatePlatform: %v", err)
	}
	if string(p) != "google" {
		t.Errorf("got %q, want google", p)
	}

	if _, err := ValidatePlatform("myspace"); err == nil {
		t.Error("unknown platform should fail")
	}
}

func TestParsePlatforms(t *testing.T) {
	got, err := ParsePlatforms("google, facebook")
	if err != nil {
		t.Fatalf("ParsePlatforms: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d platforms, want 2", len(got))
	}

	if _, err := ParsePlatforms(""); err == nil {
		t.Error("empty list should fail")
	}
	if _, err := ParsePlatforms("google,bogus"); err == nil {
		t.Error("bogus platform should fail")
	}
}

func TestTruncateString(t *testing.T) {
	if got := TruncateString("hello world", 8); got != "hello..." {
		t.Errorf("got %q", got)
	}
	if got := TruncateString("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
}
