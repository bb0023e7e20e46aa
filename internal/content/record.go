package content

import (
	"slices"
	"time"
)

// Record is what list, lookup and cleanup code needs from any entity.
type Record interface {
	RecordID() string
	IsActive() bool
	CreatedAt() string
	// Files lists every uploaded path the record references.
	Files() []string
	// SearchText lists the fields free-text search looks at.
	SearchText() []string
}

// Categorized is implemented by records that can be filtered by categoria.
type Categorized interface {
	Category() string
}

// Ordered is implemented by records with an explicit display order.
type Ordered interface {
	Order() int
}

// ParseTimestamp accepts stored creado/actualizado values. Unparseable input
// yields the zero time so it sorts last in newest-first listings.
func ParseTimestamp(s string) time.Time {
	for _, layout := range []string{TimestampLayout, time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

type RedesSociales struct {
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
	Tiktok    string `json:"tiktok"`
	Youtube   string `json:"youtube"`
}

type RedesPatch struct {
	Facebook  *string
	Instagram *string
	Tiktok    *string
	Youtube   *string
}

// ParseRedesPatch reads the four social links from top-level form fields.
func ParseRedesPatch(f Fields) RedesPatch {
	return RedesPatch{
		Facebook:  optString(f, "facebook"),
		Instagram: optString(f, "instagram"),
		Tiktok:    optString(f, "tiktok"),
		Youtube:   optString(f, "youtube"),
	}
}

func (r RedesSociales) Apply(p RedesPatch) RedesSociales {
	setString(&r.Facebook, p.Facebook)
	setString(&r.Instagram, p.Instagram)
	setString(&r.Tiktok, p.Tiktok)
	setString(&r.Youtube, p.Youtube)
	return r
}

// filesOf lists the non-empty paths once each, in first-seen order.
func filesOf(paths ...string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if p != "" && !slices.Contains(out, p) {
			out = append(out, p)
		}
	}
	return out
}

// IndexOf returns the position of the record with id, or -1.
func IndexOf[T Record](items []T, id string) int {
	for i, it := range items {
		if it.RecordID() == id {
			return i
		}
	}
	return -1
}
