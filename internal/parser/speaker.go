package parser

import (
	"regexp"
	"strings"
)

var honorificPrefix = regexp.MustCompile(`(?i)^(Mr\.|Mrs\.|Miss|Ms\.|Dr\.|Sir|Lady)\s+`)

// NormalizeSpeaker reduces a raw attribution descriptor to a short key:
// the leading honorific is stripped and only the last remaining word is
// kept. "Mr. Bennet" -> "Bennet", "Lady Catherine" -> "Catherine".
// A bare title ("Lady" with no name after it) falls back to itself.
// Deeper resolution belongs to the character registry.
func NormalizeSpeaker(raw string) string {
	raw = strings.TrimSpace(raw)

	normalized := strings.TrimSpace(honorificPrefix.ReplaceAllString(raw, ""))
	if normalized == "" {
		return raw
	}

	parts := strings.Fields(normalized)
	if len(parts) > 1 {
		return parts[len(parts)-1]
	}
	return normalized
}

// SpeakerResolver reconciles a normalized speaker descriptor into a
// canonical character name, using the surrounding paragraphs as context.
// Implemented by registry.Registry.
type SpeakerResolver interface {
	IdentifySpeaker(descriptor, paragraph, prevParagraph string) string
}
