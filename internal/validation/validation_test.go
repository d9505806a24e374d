package validation

import (
	"net"
	"strings"
	"testing"
)

func TestValidateTag(t *testing.T) {
	tests := []struct {
		name string
		tag  string
		want bool
	}{
		{"valid alphanumeric", "buttons2", true},
		{"valid with hyphen", "dark-mode", true},
		{"valid with underscore", "form_controls", true},
		{"empty string", "", false},
		{"too long", strings.Repeat("a", 51), false},
		{"contains space", "dark mode", false},
		{"contains dot", "v1.2", false},
		{"contains slash", "ui/kit", false},
		{"special chars", "tag@#$", false},
		{"unicode", "日本語", false},
		{"single char", "a", true},
		{"numbers only", "12345", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateTag(tt.tag)
			if got != tt.want {
				t.Errorf("ValidateTag(%q) = %v, want %v", tt.tag, got, tt.want)
			}
		})
	}
}

func TestValidateSubmission(t *testing.T) {
	valid := SubmissionInput{
		Name:        "Shade UI",
		Description: "Composable dark-mode components",
		Author:      "Shade Labs",
		Website:     "https://shade.example.com",
		GitHub:      "https://github.com/shade/ui",
		Tags:        []string{"dark-mode", "components"},
	}

	if problems := ValidateSubmission(valid); len(problems) != 0 {
		t.Errorf("ValidateSubmission(valid) = %v, want no problems", problems)
	}

	tests := []struct {
		name      string
		mutate    func(*SubmissionInput)
		wantField string
	}{
		{"empty name", func(in *SubmissionInput) { in.Name = "" }, "name"},
		{"whitespace name", func(in *SubmissionInput) { in.Name = "   " }, "name"},
		{"name too long", func(in *SubmissionInput) { in.Name = strings.Repeat("x", MaxNameLength+1) }, "name"},
		{"empty description", func(in *SubmissionInput) { in.Description = "" }, "description"},
		{"empty author", func(in *SubmissionInput) { in.Author = "" }, "author"},
		{"bad website scheme", func(in *SubmissionInput) { in.Website = "javascript:alert(1)" }, "website"},
		{"bad github url", func(in *SubmissionInput) { in.GitHub = "not a url" }, "github"},
		{"invalid tag", func(in *SubmissionInput) { in.Tags = []string{"ok", "not ok"} }, "tags"},
		{"too many tags", func(in *SubmissionInput) { in.Tags = make([]string, MaxTags+1) }, "tags"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			problems := ValidateSubmission(in)
			if _, ok := problems[tt.wantField]; !ok {
				t.Errorf("ValidateSubmission() problems = %v, want entry for %q", problems, tt.wantField)
			}
		})
	}
}

func TestValidateSubmission_OptionalURLs(t *testing.T) {
	in := SubmissionInput{Name: "Plain", Description: "No links at all", Author: "Anon"}
	if problems := ValidateSubmission(in); len(problems) != 0 {
		t.Errorf("ValidateSubmission() = %v, want no problems for empty optional URLs", problems)
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		valid   bool
		wantMsg string
	}{
		{"valid https", "https://example.com", true, ""},
		{"valid http", "http://example.com", true, ""},
		{"valid with path", "https://example.com/path/to/page", true, ""},
		{"valid with query", "https://example.com?foo=bar", true, ""},
		{"valid with port", "https://example.com:8080", true, ""},
		{"empty string", "", false, "URL is required"},
		{"javascript scheme", "javascript:alert(1)", false, "URL must use http:// or https:// scheme"},
		{"data scheme", "data:text/html,<script>alert(1)</script>", false, "URL must use http:// or https:// scheme"},
		{"file scheme", "file:///etc/passwd", false, "URL must use http:// or https:// scheme"},
		{"no scheme", "example.com", false, "URL must use http:// or https:// scheme"},
		{"relative url", "/path/to/page", false, "URL must use http:// or https:// scheme"},
		{"uppercase scheme", "HTTPS://example.com", true, ""},
		{"scheme only", "https://", false, "URL must have a valid host"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, msg := ValidateURL(tt.url)
			if valid != tt.valid {
				t.Errorf("ValidateURL(%q) valid = %v, want %v", tt.url, valid, tt.valid)
			}
			if !valid && msg != tt.wantMsg {
				t.Errorf("ValidateURL(%q) msg = %q, want %q", tt.url, msg, tt.wantMsg)
			}
		})
	}
}

func TestIsPrivateIP(t *testing.T) {
	tests := []struct {
		name string
		ip   string
		want bool
	}{
		{"localhost IPv4", "127.0.0.1", true},
		{"localhost IPv6", "::1", true},
		{"10.x.x.x range", "10.0.0.1", true},
		{"172.16.x.x range", "172.16.0.1", true},
		{"192.168.x.x range", "192.168.0.1", true},
		{"link-local IPv4", "169.254.1.1", true},
		{"link-local IPv6", "fe80::1", true},
		{"AWS/GCP metadata", "169.254.169.254", true},
		{"Azure metadata", "168.63.129.16", true},
		{"unspecified IPv4", "0.0.0.0", true},
		{"unspecified IPv6", "::", true},
		{"Google DNS", "8.8.8.8", false},
		{"Cloudflare DNS", "1.1.1.1", false},
		{"random public IP", "203.0.113.1", false},
		{"public IPv6", "2001:4860:4860::8888", false},
		{"nil IP", "", false},
		{"172.15.x.x not private", "172.15.255.255", false},
		{"172.32.x.x not private", "172.32.0.0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ip net.IP
			if tt.ip != "" {
				ip = net.ParseIP(tt.ip)
			}
			got := IsPrivateIP(ip)
			if got != tt.want {
				t.Errorf("IsPrivateIP(%q) = %v, want %v", tt.ip, got, tt.want)
			}
		})
	}
}

func TestValidateURLForHealthCheck(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		valid   bool
		wantMsg string
	}{
		{"javascript scheme", "javascript:alert(1)", false, "URL must use http:// or https:// scheme"},
		{"empty url", "", false, "URL is required"},
		{"localhost", "http://localhost", false, "URL points to a private or reserved IP address"},
		{"127.0.0.1", "http://127.0.0.1", false, "URL points to a private or reserved IP address"},
		{"loopback with port", "http://127.0.0.1:8080", false, "URL points to a private or reserved IP address"},
		{"10.x range", "http://10.0.0.1", false, "URL points to a private or reserved IP address"},
		{"192.168.x range", "http://192.168.1.1", false, "URL points to a private or reserved IP address"},
		{"172.16.x range", "http://172.16.0.1", false, "URL points to a private or reserved IP address"},
		{"AWS metadata", "http://169.254.169.254/latest/meta-data/", false, "URL points to a private or reserved IP address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, msg := ValidateURLForHealthCheck(tt.url)
			if valid != tt.valid {
				t.Errorf("ValidateURLForHealthCheck(%q) valid = %v, want %v (msg: %s)", tt.url, valid, tt.valid, msg)
			}
			if !valid && tt.wantMsg != "" && msg != tt.wantMsg {
				t.Errorf("ValidateURLForHealthCheck(%q) msg = %q, want %q", tt.url, msg, tt.wantMsg)
			}
		})
	}
}

func TestFirstProblem(t *testing.T) {
	// An empty submission fails several fields at once; the reported message
	// must not depend on map iteration order.
	for i := 0; i < 50; i++ {
		problems := ValidateSubmission(SubmissionInput{})
		if got := FirstProblem(problems); got != "Name is required" {
			t.Fatalf("FirstProblem() = %q, want %q", got, "Name is required")
		}
	}

	problems := ValidateSubmission(SubmissionInput{Name: "Acme UI", Author: "Acme"})
	if got := FirstProblem(problems); got != "Description is required" {
		t.Errorf("FirstProblem() = %q, want %q", got, "Description is required")
	}

	if got := FirstProblem(map[string]string{}); got != "" {
		t.Errorf("FirstProblem(empty) = %q, want empty", got)
	}
}
