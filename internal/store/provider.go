package store

import (
	"bytes"
	"cmp"
	"encoding/json"
	"slices"
	"time"

	"github.com/thoreinstein/switchboard/internal/document"
	"github.com/thoreinstein/switchboard/internal/errors"
)

// Provider is one credential/endpoint profile for an application.
type Provider struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// SettingsConfig holds the application-specific live fields this
	// provider supplies. Its shape depends on the application:
	//
	//	claude  the settings.json object (env, model, permissions, ...)
	//	codex   {"auth": {...}, "config": "<config.toml text>"}
	//	gemini  {"env": {...}, "config": {...settings.json keys}}
	SettingsConfig document.Document `json:"settings_config"`

	WebsiteURL      string        `json:"website_url,omitempty"`
	Category        string        `json:"category,omitempty"`
	CreatedAt       time.Time     `json:"created_at,omitzero"`
	SortIndex       *int          `json:"sort_index,omitempty"`
	Notes           string        `json:"notes,omitempty"`
	Meta            *ProviderMeta `json:"meta,omitempty"`
	UsageScript     *UsageScript  `json:"usage_script,omitempty"`
	InFailoverQueue bool          `json:"in_failover_queue,omitempty"`
}

// ProviderMeta carries descriptive fields the synchronization core does not
// interpret, except PartnerPromotionKey which selects Gemini's auth mode.
type ProviderMeta struct {
	Tags                []string          `json:"tags,omitempty"`
	PartnerPromotionKey string            `json:"partner_promotion_key,omitempty"`
	Custom              document.Document `json:"custom,omitempty"`
}

// UsageScript describes how to query a provider's usage or balance. APIKey
// and BaseURL may be empty, in which case the provider's own settings are
// used at query time.
type UsageScript struct {
	Enabled      bool   `json:"enabled"`
	Language     string `json:"language,omitempty"`
	Code         string `json:"code,omitempty"`
	TimeoutSec   int    `json:"timeout,omitempty"`
	APIKey       string `json:"api_key,omitempty"`
	BaseURL      string `json:"base_url,omitempty"`
	AccessToken  string `json:"access_token,omitempty"`
	UserID       string `json:"user_id,omitempty"`
	TemplateType string `json:"template_type,omitempty"`

	// AutoQueryInterval is in minutes; 0 disables automatic queries.
	AutoQueryInterval int `json:"auto_query_interval,omitempty"`
}

// MaxAutoQueryInterval caps UsageScript.AutoQueryInterval at one day.
const MaxAutoQueryInterval = 1440

// Clone returns a deep copy of p.
func (p *Provider) Clone() *Provider {
	if p == nil {
		return nil
	}
	c := *p
	c.SettingsConfig = document.Clone(p.SettingsConfig)
	if p.SortIndex != nil {
		idx := *p.SortIndex
		c.SortIndex = &idx
	}
	if p.Meta != nil {
		m := *p.Meta
		m.Tags = slices.Clone(p.Meta.Tags)
		m.Custom = document.Clone(p.Meta.Custom)
		c.Meta = &m
	}
	if p.UsageScript != nil {
		u := *p.UsageScript
		c.UsageScript = &u
	}
	return &c
}

// compareProviders orders by sort index (set before unset, ascending), then
// creation time (set before unset, ascending). Equal providers keep their
// insertion order because callers use a stable sort.
func compareProviders(a, b *Provider) int {
	switch {
	case a.SortIndex != nil && b.SortIndex != nil:
		if c := cmp.Compare(*a.SortIndex, *b.SortIndex); c != 0 {
			return c
		}
	case a.SortIndex != nil:
		return -1
	case b.SortIndex != nil:
		return 1
	}
	switch {
	case !a.CreatedAt.IsZero() && !b.CreatedAt.IsZero():
		return a.CreatedAt.Compare(b.CreatedAt)
	case !a.CreatedAt.IsZero():
		return -1
	case !b.CreatedAt.IsZero():
		return 1
	}
	return 0
}

// SortProviders sorts ps in display order in place.
func SortProviders(ps []*Provider) {
	slices.SortStableFunc(ps, compareProviders)
}

// ProviderSet is an insertion-ordered map of providers keyed by id. Its
// JSON form is an object whose key order is the insertion order.
type ProviderSet struct {
	order []string
	items map[string]*Provider
}

// NewProviderSet returns an empty set.
func NewProviderSet() *ProviderSet {
	return &ProviderSet{items: make(map[string]*Provider)}
}

// Len returns the number of providers.
func (s *ProviderSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Get returns the provider with id, or nil.
func (s *ProviderSet) Get(id string) *Provider {
	if s == nil {
		return nil
	}
	return s.items[id]
}

// Has reports whether id is present.
func (s *ProviderSet) Has(id string) bool {
	return s.Get(id) != nil
}

// Set inserts p at the end, or replaces the existing entry in place.
func (s *ProviderSet) Set(p *Provider) {
	if s.items == nil {
		s.items = make(map[string]*Provider)
	}
	if _, ok := s.items[p.ID]; !ok {
		s.order = append(s.order, p.ID)
	}
	s.items[p.ID] = p
}

// Delete removes id, keeping the order of the remaining entries. It reports
// whether anything was removed.
func (s *ProviderSet) Delete(id string) bool {
	if _, ok := s.items[id]; !ok {
		return false
	}
	delete(s.items, id)
	s.order = slices.DeleteFunc(s.order, func(k string) bool { return k == id })
	return true
}

// IDs returns the ids in insertion order.
func (s *ProviderSet) IDs() []string {
	if s == nil {
		return nil
	}
	return slices.Clone(s.order)
}

// All returns the providers in insertion order.
func (s *ProviderSet) All() []*Provider {
	if s == nil {
		return nil
	}
	out := make([]*Provider, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id])
	}
	return out
}

// Sorted returns the providers in display order.
func (s *ProviderSet) Sorted() []*Provider {
	out := s.All()
	SortProviders(out)
	return out
}

// MarshalJSON implements json.Marshaler, writing keys in insertion order.
func (s *ProviderSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range s.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(s.items[id])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler, recording keys in file order.
// Each provider's id is taken from its key.
func (s *ProviderSet) UnmarshalJSON(data []byte) error {
	*s = ProviderSet{items: make(map[string]*Provider)}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.New("providers: expected a JSON object")
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key := tok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return errors.Newf("provider %q is null", key)
		}
		var p Provider
		rd := json.NewDecoder(bytes.NewReader(raw))
		rd.UseNumber()
		if err := rd.Decode(&p); err != nil {
			return err
		}
		p.SettingsConfig = document.NormalizeNumbers(p.SettingsConfig)
		if p.Meta != nil {
			p.Meta.Custom = document.NormalizeNumbers(p.Meta.Custom)
		}
		// Keyed by map key so a mismatched inner id cannot shadow another entry.
		p.ID = key
		s.Set(&p)
	}
	_, err = dec.Token()
	return err
}
