package acquire

import (
	"strconv"
	"strings"
)

// Param is a single query string entry
type Param struct {
	Key   string
	Value string
}

// Params is an ordered set of query parameters. Keys are unique; order is
// the order in which a key was first set.
type Params []Param

// NewParams builds a Params from alternating key, value pairs
func NewParams(kv ...string) Params {
	var p Params
	for i := 0; i+1 < len(kv); i += 2 {
		p = p.Set(kv[i], kv[i+1])
	}
	return p
}

// Set overwrites the value of an existing key in place, or appends the key.
func (p Params) Set(key, value string) Params {
	for i := range p {
		if p[i].Key == key {
			p[i].Value = value
			return p
		}
	}
	return append(p, Param{Key: key, Value: value})
}

// Get returns the value stored under key
func (p Params) Get(key string) (string, bool) {
	for _, kv := range p {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

// Clone returns a copy that can be mutated without touching p
func (p Params) Clone() Params {
	if p == nil {
		return nil
	}
	out := make(Params, len(p))
	copy(out, p)
	return out
}

// Merge applies call first and defaults second, so a default overwrites a
// call parameter with the same key. Neither argument is modified.
//
// NOTE: this precedence looks backwards (a default could clobber league or
// season) but it is what existing consumers of the generated files rely on.
// None of the shipped defaults collide with call keys today.
func Merge(call, defaults Params) Params {
	merged := make(Params, 0, len(call)+len(defaults))
	merged = append(merged, call...)
	for _, kv := range defaults {
		merged = merged.Set(kv.Key, kv.Value)
	}
	return merged
}

// Encode joins the parameters as key=value pairs separated by '&'.
// Values are not escaped.
func (p Params) Encode() string {
	var sb strings.Builder
	for i, kv := range p {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(kv.Key)
		sb.WriteByte('=')
		sb.WriteString(kv.Value)
	}
	return sb.String()
}

// LeagueSeason identifies one (league, season) query unit
type LeagueSeason struct {
	League int `mapstructure:"league" json:"league"`
	Season int `mapstructure:"season" json:"season"`
}

// Params returns the call parameters for this league and season
func (ls LeagueSeason) Params() Params {
	return Params{
		{Key: "league", Value: strconv.Itoa(ls.League)},
		{Key: "season", Value: strconv.Itoa(ls.Season)},
	}
}
