package leadstore

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/sha3"

	"github.com/nao1215/leaddeck/internal/model"
)

// Store is an immutable, validated collection of leads.
//
// All accessors return copies; nothing handed out by a Store can be used to
// change it. A Store is safe for concurrent reads without locking.
type Store struct {
	leads      []model.Lead
	industries []model.Industry
	regions    []model.Region
	digest     string
}

// New validates leads and builds a store from a deep copy of them.
// It fails on the first invalid store, reporting every violation at once.
func New(leads []model.Lead) (*Store, error) {
	if err := Validate(leads); err != nil {
		return nil, err
	}

	s := &Store{
		leads: make([]model.Lead, len(leads)),
	}

	seenIndustry := make(map[model.Industry]struct{})
	seenRegion := make(map[model.Region]struct{})

	for i, lead := range leads {
		s.leads[i] = lead.Clone()

		if _, ok := seenIndustry[lead.Industry]; !ok {
			seenIndustry[lead.Industry] = struct{}{}
			s.industries = append(s.industries, lead.Industry)
		}
		if _, ok := seenRegion[lead.Location]; !ok {
			seenRegion[lead.Location] = struct{}{}
			s.regions = append(s.regions, lead.Location)
		}
	}

	digest, err := computeDigest(s.leads)
	if err != nil {
		return nil, err
	}
	s.digest = digest

	return s, nil
}

// Leads returns a deep copy of the leads in store order.
func (s *Store) Leads() []model.Lead {
	out := make([]model.Lead, len(s.leads))
	for i, lead := range s.leads {
		out[i] = lead.Clone()
	}
	return out
}

// Len returns the number of leads.
func (s *Store) Len() int {
	return len(s.leads)
}

// Industries returns the distinct industries in first-occurrence order.
func (s *Store) Industries() []model.Industry {
	return append([]model.Industry(nil), s.industries...)
}

// Regions returns the distinct locations in first-occurrence order.
func (s *Store) Regions() []model.Region {
	return append([]model.Region(nil), s.regions...)
}

// HasIndustry reports whether any lead belongs to industry.
func (s *Store) HasIndustry(industry string) bool {
	for _, v := range s.industries {
		if string(v) == industry {
			return true
		}
	}
	return false
}

// HasRegion reports whether any lead is located in region.
func (s *Store) HasRegion(region string) bool {
	for _, v := range s.regions {
		if string(v) == region {
			return true
		}
	}
	return false
}

// Digest returns the hex-encoded SHA3-256 of the store's canonical JSON form.
// Two stores with the same leads in the same order have the same digest.
func (s *Store) Digest() string {
	return s.digest
}

func computeDigest(leads []model.Lead) (string, error) {
	data, err := json.Marshal(leads)
	if err != nil {
		return "", fmt.Errorf("failed to encode leads for digest: %w", err)
	}
	sum := sha3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
