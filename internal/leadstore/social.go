package leadstore

import (
	"fmt"
	"regexp"
	"strings"
)

// instagramPatterns match Instagram profile URLs and capture the handle.
var instagramPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^https?://(?:www\.)?instagram\.com/([A-Za-z0-9_.]+)/?(?:\?.*)?$`),
	regexp.MustCompile(`(?i)^https?://(?:www\.)?instagr\.am/([A-Za-z0-9_.]+)/?(?:\?.*)?$`),
}

// reservedInstagramPaths are instagram.com paths that are not profiles.
var reservedInstagramPaths = map[string]bool{
	"p": true, "reel": true, "reels": true, "explore": true,
	"stories": true, "accounts": true, "direct": true,
}

// InstagramHandle returns the profile handle of an Instagram URL, without
// the leading "@". It reports false for anything that is not a profile link.
func InstagramHandle(raw string) (string, bool) {
	for _, p := range instagramPatterns {
		m := p.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		// Instagram paths are case-insensitive.
		if reservedInstagramPaths[strings.ToLower(m[1])] {
			return "", false
		}
		return m[1], true
	}
	return "", false
}

func validateInstagram(raw string) error {
	if err := validateURL(raw); err != nil {
		return err
	}
	if _, ok := InstagramHandle(raw); !ok {
		return fmt.Errorf("%w: not an Instagram profile: %s", ErrInvalidURL, raw)
	}
	return nil
}
