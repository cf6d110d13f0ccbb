// Package registry maintains book-scoped character identities. Speaker
// descriptors found during parsing are reconciled into canonical names:
// a heuristic fast path answers from already-known names and aliases, and
// an optional AI collaborator handles the ambiguous rest.
package registry

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"fablecast/internal/ai"
	"fablecast/internal/parser"
)

// Character is one registry record. Callers always receive copies; the
// registry owns the stored values.
type Character struct {
	CanonicalName    string   `json:"canonical_name"`
	Aliases          []string `json:"aliases"`
	Context          string   `json:"context"`
	FirstSeenChapter int      `json:"first_seen_chapter"`
}

const defaultLookupTimeout = 30 * time.Second

// Registry tracks characters for the lifetime of one book parse. It is
// safe for concurrent use; AI-path lookups are serialized so updates from
// chapter N are visible to chapter N+1.
type Registry struct {
	mu             sync.Mutex
	provider       ai.Provider
	characters     map[string]*Character
	resolved       map[string]string
	currentChapter int
	lookupTimeout  time.Duration
	log            *logrus.Entry
}

// New creates a registry. A nil provider disables the AI path entirely;
// unknown descriptors then resolve to their normalized form.
func New(provider ai.Provider) *Registry {
	return &Registry{
		provider:      provider,
		characters:    make(map[string]*Character),
		resolved:      make(map[string]string),
		lookupTimeout: defaultLookupTimeout,
		log:           logrus.WithField("component", "registry"),
	}
}

// SetChapter records the chapter currently being parsed. New characters
// discovered from here on are first-seen in this chapter.
func (r *Registry) SetChapter(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.currentChapter = n
}

// CanonicalName resolves a descriptor against known canonical names and
// aliases, case-insensitively. It never calls the AI collaborator.
func (r *Registry) CanonicalName(descriptor string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.canonicalNameLocked(descriptor)
}

func (r *Registry) canonicalNameLocked(descriptor string) (string, bool) {
	lower := strings.ToLower(descriptor)

	for name, char := range r.characters {
		if strings.ToLower(name) == lower {
			return name, true
		}
		for _, alias := range char.Aliases {
			if strings.ToLower(alias) == lower {
				return name, true
			}
		}
	}
	return "", false
}

// IdentifySpeaker returns the canonical name for a speaker descriptor.
// Fast path first; the AI collaborator only runs on a miss, and its
// results are memoized for the life of the registry. Any AI failure falls
// back to the normalized descriptor and leaves the registry unmodified;
// this method never fails.
func (r *Registry) IdentifySpeaker(descriptor, paragraph, prevParagraph string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if name, ok := r.canonicalNameLocked(descriptor); ok {
		return name
	}

	if name, ok := r.resolved[strings.ToLower(descriptor)]; ok {
		return name
	}

	fallback := parser.NormalizeSpeaker(descriptor)
	if r.provider == nil {
		return fallback
	}

	name, err := r.identifyWithAILocked(descriptor, paragraph, prevParagraph)
	if err != nil {
		r.log.WithError(err).WithField("descriptor", descriptor).Warn("AI identification failed")
		r.resolved[strings.ToLower(descriptor)] = fallback
		return fallback
	}

	r.resolved[strings.ToLower(descriptor)] = name
	return name
}

func (r *Registry) identifyWithAILocked(descriptor, paragraph, prevParagraph string) (string, error) {
	prompt := r.buildPromptLocked(descriptor, paragraph, prevParagraph)

	ctx, cancel := context.WithTimeout(context.Background(), r.lookupTimeout)
	defer cancel()

	response, err := r.provider.Generate(ctx, prompt, 2000)
	if err != nil {
		return "", err
	}

	result, err := parseIdentification(response)
	if err != nil {
		return "", err
	}

	r.applyLocked(result)
	return result.Speaker, nil
}

func (r *Registry) applyLocked(result identification) {
	for name, entry := range result.Registry {
		char, ok := r.characters[name]
		if !ok {
			firstSeen := r.currentChapter
			if entry.FirstSeenChapter != nil {
				firstSeen = *entry.FirstSeenChapter
			}
			aliases := entry.Aliases
			if len(aliases) == 0 {
				aliases = []string{name}
			}
			r.characters[name] = &Character{
				CanonicalName:    name,
				Aliases:          dedupeAliases(aliases),
				Context:          entry.Context,
				FirstSeenChapter: firstSeen,
			}
			continue
		}

		char.Aliases = dedupeAliases(append(char.Aliases, entry.Aliases...))
		if entry.Context != "" {
			char.Context = entry.Context
		}
	}
}

// dedupeAliases unions aliases with case-insensitive membership, keeping
// first-seen casing and order.
func dedupeAliases(aliases []string) []string {
	seen := make(map[string]bool, len(aliases))
	out := make([]string, 0, len(aliases))
	for _, a := range aliases {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		lower := strings.ToLower(a)
		if seen[lower] {
			continue
		}
		seen[lower] = true
		out = append(out, a)
	}
	return out
}

// AllCharacters returns a snapshot of the registry. The returned records
// are copies; mutating them does not touch registry state.
func (r *Registry) AllCharacters() map[string]Character {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]Character, len(r.characters))
	for name, char := range r.characters {
		out[name] = copyCharacter(char)
	}
	return out
}

// ToMap dumps the registry as a plain nested mapping, the durable format
// checkpointed between runs of the same book.
func (r *Registry) ToMap() map[string]Character {
	return r.AllCharacters()
}

// FromMap replaces registry contents from a previously dumped mapping.
// Unlike parse-time degradation, a malformed mapping is a caller bug and
// is reported as an error.
func (r *Registry) FromMap(data map[string]Character) error {
	characters := make(map[string]*Character, len(data))
	for name, char := range data {
		if strings.TrimSpace(name) == "" {
			return errors.New("registry entry with empty canonical name")
		}
		c := copyCharacter(&char)
		c.CanonicalName = name
		characters[name] = &c
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.characters = characters
	r.resolved = make(map[string]string)
	return nil
}

func copyCharacter(c *Character) Character {
	out := *c
	out.Aliases = append([]string(nil), c.Aliases...)
	return out
}
