package validation

import (
	"net"
	"net/url"
	"regexp"
	"strings"
)

// TagPattern defines the valid tag format: alphanumeric, hyphens, underscores.
var TagPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

const (
	MaxNameLength        = 120
	MaxAuthorLength      = 120
	MaxDescriptionLength = 500
	MaxAboutLength       = 5000
	MaxTags              = 10
)

// ValidateTag checks if a tag matches the allowed pattern.
func ValidateTag(tag string) bool {
	if tag == "" || len(tag) > 50 {
		return false
	}
	return TagPattern.MatchString(tag)
}

// NormalizeTag lowercases a tag so filtering is case-insensitive.
func NormalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// SubmissionInput carries the user-supplied fields of a library submission.
type SubmissionInput struct {
	Name        string
	Description string
	About       string
	Author      string
	AuthorBio   string
	Website     string
	GitHub      string
	Tags        []string
}

// ValidateSubmission checks required fields and limits. It returns a map of
// field name to message, empty when the input is valid.
func ValidateSubmission(in SubmissionInput) map[string]string {
	problems := make(map[string]string)

	if strings.TrimSpace(in.Name) == "" {
		problems["name"] = "Name is required"
	} else if len(in.Name) > MaxNameLength {
		problems["name"] = "Name is too long"
	}

	if strings.TrimSpace(in.Description) == "" {
		problems["description"] = "Description is required"
	} else if len(in.Description) > MaxDescriptionLength {
		problems["description"] = "Description is too long"
	}

	if len(in.About) > MaxAboutLength {
		problems["about"] = "About section is too long"
	}

	if strings.TrimSpace(in.Author) == "" {
		problems["author"] = "Author is required"
	} else if len(in.Author) > MaxAuthorLength {
		problems["author"] = "Author is too long"
	}

	if in.Website != "" {
		if valid, msg := ValidateURL(in.Website); !valid {
			problems["website"] = msg
		}
	}
	if in.GitHub != "" {
		if valid, msg := ValidateURL(in.GitHub); !valid {
			problems["github"] = msg
		}
	}

	if len(in.Tags) > MaxTags {
		problems["tags"] = "Too many tags"
	} else {
		for _, tag := range in.Tags {
			if !ValidateTag(NormalizeTag(tag)) {
				problems["tags"] = "Tags may only contain letters, numbers, hyphens, and underscores"
				break
			}
		}
	}

	return problems
}

// fieldOrder matches the submission form layout, so error reporting always
// surfaces the same message for the same input.
var fieldOrder = []string{"name", "description", "about", "author", "website", "github", "tags"}

// FirstProblem returns the first validation message in form field order.
func FirstProblem(problems map[string]string) string {
	for _, field := range fieldOrder {
		if msg, ok := problems[field]; ok {
			return msg
		}
	}
	for _, msg := range problems {
		return msg
	}
	return ""
}

// ValidateURL checks if a URL is valid and uses an allowed scheme (http/https only).
// This prevents javascript:, data:, vbscript:, and other dangerous URL schemes.
func ValidateURL(urlStr string) (bool, string) {
	if urlStr == "" {
		return false, "URL is required"
	}

	u, err := url.Parse(urlStr)
	if err != nil {
		return false, "Invalid URL format"
	}

	// Check scheme - only allow http and https
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false, "URL must use http:// or https:// scheme"
	}

	if u.Host == "" {
		return false, "URL must have a valid host"
	}

	return true, ""
}

// IsPrivateIP checks if an IP address is in a private/reserved range.
// Used to prevent SSRF attacks against internal networks.
func IsPrivateIP(ip net.IP) bool {
	if ip == nil {
		return false
	}

	if ip.IsLoopback() {
		return true
	}

	if ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() {
		return true
	}

	if ip.IsPrivate() {
		return true
	}

	// 0.0.0.0 or ::
	if ip.IsUnspecified() {
		return true
	}

	// Cloud metadata endpoints: 169.254.169.254 (AWS/GCP/Azure standard)
	// and 168.63.129.16 (Azure).
	if ip.Equal(net.ParseIP("169.254.169.254")) || ip.Equal(net.ParseIP("168.63.129.16")) {
		return true
	}

	return false
}

// IsPrivateHost checks if a hostname resolves to a private IP address.
// Returns true if the host is private/blocked, false if it's safe to access.
func IsPrivateHost(host string) (bool, error) {
	hostname := host
	if h, _, err := net.SplitHostPort(host); err == nil {
		hostname = h
	}

	ips, err := net.LookupIP(hostname)
	if err != nil {
		// If we can't resolve, be conservative and block
		return true, err
	}

	for _, ip := range ips {
		if IsPrivateIP(ip) {
			return true, nil
		}
	}

	return false, nil
}

// ValidateURLForHealthCheck validates a URL is safe for health checking.
// Blocks private IPs, localhost, and cloud metadata endpoints.
func ValidateURLForHealthCheck(urlStr string) (bool, string) {
	valid, msg := ValidateURL(urlStr)
	if !valid {
		return false, msg
	}

	u, _ := url.Parse(urlStr)

	isPrivate, err := IsPrivateHost(u.Host)
	if err != nil {
		return false, "Cannot resolve hostname"
	}
	if isPrivate {
		return false, "URL points to a private or reserved IP address"
	}

	return true, ""
}
