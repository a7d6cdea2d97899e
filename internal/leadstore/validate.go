package leadstore

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strings"

	"golang.org/x/net/idna"

	"github.com/nao1215/leaddeck/internal/model"
)

// Validate checks every lead and returns all violations joined together,
// or nil when the leads form a valid store.
func Validate(leads []model.Lead) error {
	if len(leads) == 0 {
		return ErrEmptyStore
	}

	var errs []error
	seen := make(map[string]int, len(leads))

	for i, lead := range leads {
		label := lead.ID
		if label == "" {
			label = fmt.Sprintf("#%d", i)
		}

		if lead.ID != "" {
			if first, ok := seen[lead.ID]; ok {
				errs = append(errs, fmt.Errorf("lead %q: %w (first seen at #%d)", label, ErrDuplicateID, first))
			} else {
				seen[lead.ID] = i
			}
		}

		if err := validateLead(lead); err != nil {
			errs = append(errs, fmt.Errorf("lead %q: %w", label, err))
		}
	}

	return errors.Join(errs...)
}

func validateLead(lead model.Lead) error {
	var errs []error

	required := []struct {
		name  string
		value string
	}{
		{"id", lead.ID},
		{"name", lead.Name},
		{"industry", string(lead.Industry)},
		{"location", string(lead.Location)},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingField, f.name))
		}
	}

	names := [4]string{"design", "storytelling", "innovation", "responsiveness"}
	for i, v := range lead.Metrics.Values() {
		if math.IsNaN(v) || v < model.MetricMin || v > model.MetricMax {
			errs = append(errs, fmt.Errorf("%w: %s=%v", ErrMetricRange, names[i], v))
		}
	}

	if err := validateURL(lead.Website); err != nil {
		errs = append(errs, fmt.Errorf("website: %w", err))
	}
	if lead.Instagram != "" {
		if err := validateInstagram(lead.Instagram); err != nil {
			errs = append(errs, fmt.Errorf("instagram: %w", err))
		}
	}

	return errors.Join(errs...)
}

// validateURL accepts absolute http and https URLs whose host passes IDNA
// lookup rules. An empty website is reported as a missing field.
func validateURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("%w: website", ErrMissingField)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidURL, raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme must be http or https: %s", ErrInvalidURL, raw)
	}

	host := u.Hostname()
	if host == "" {
		return fmt.Errorf("%w: missing host: %s", ErrInvalidURL, raw)
	}
	if _, err := idna.Lookup.ToASCII(host); err != nil {
		return fmt.Errorf("%w: host %q: %v", ErrInvalidURL, host, err)
	}
	return nil
}
