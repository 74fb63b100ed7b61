package models

import (
	"errors"
	"strings"
)

// Impact is the five-way market sentiment attached to a post. The zero
// value means "not selected".
type Impact int

const (
	ImpactUnset Impact = iota
	ImpactVeryBearish
	ImpactBearish
	ImpactNeutral
	ImpactBullish
	ImpactVeryBullish
)

var ErrUnknownImpact = errors.New("unknown impact")

var impactLabels = map[Impact]string{
	ImpactVeryBearish: "Very Bearish",
	ImpactBearish:     "Bearish",
	ImpactNeutral:     "Neutral",
	ImpactBullish:     "Bullish",
	ImpactVeryBullish: "Very Bullish",
}

// Impacts lists the selectable values from most bearish to most bullish.
func Impacts() []Impact {
	return []Impact{ImpactVeryBearish, ImpactBearish, ImpactNeutral, ImpactBullish, ImpactVeryBullish}
}

func (i Impact) Valid() bool {
	_, ok := impactLabels[i]
	return ok
}

// Label is the human form, e.g. "Very Bullish".
func (i Impact) Label() string {
	return impactLabels[i]
}

func (i Impact) String() string {
	if !i.Valid() {
		return "unset"
	}
	return i.Label()
}

// Slug is the lower-case, dash separated tag, e.g. "very-bullish".
func (i Impact) Slug() string {
	return strings.ReplaceAll(strings.ToLower(i.Label()), " ", "-")
}

// Sentiment is the badge text shown next to a post.
func (i Impact) Sentiment() string {
	switch i {
	case ImpactNeutral:
		return "= Neutral"
	case ImpactBullish, ImpactVeryBullish:
		return "↗️ " + i.Label()
	case ImpactBearish, ImpactVeryBearish:
		return "↘️ " + i.Label()
	default:
		return ""
	}
}

// ParseImpact accepts a label ("Very Bullish"), a slug ("very-bullish") or
// a compact name ("VeryBullish"), in any case. A blank string yields
// ImpactUnset.
func ParseImpact(s string) (Impact, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return ImpactUnset, nil
	}
	key = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(key)
	for _, i := range Impacts() {
		if strings.ReplaceAll(strings.ToLower(i.Label()), " ", "") == key {
			return i, nil
		}
	}
	return ImpactUnset, ErrUnknownImpact
}
