package registry

import (
	"encoding/json"
	"fmt"
	"strings"
)

// identification is the expected shape of the AI response: the resolved
// speaker plus the complete updated registry snapshot.
type identification struct {
	Speaker  string                   `json:"speaker"`
	Registry map[string]registryEntry `json:"registry"`
}

type registryEntry struct {
	Aliases          []string `json:"aliases"`
	Context          string   `json:"context"`
	FirstSeenChapter *int     `json:"first_seen_chapter"`
}

func (r *Registry) buildPromptLocked(descriptor, paragraph, prevParagraph string) string {
	snapshot := make(map[string]registryEntry, len(r.characters))
	for name, char := range r.characters {
		first := char.FirstSeenChapter
		snapshot[name] = registryEntry{
			Aliases:          char.Aliases,
			Context:          char.Context,
			FirstSeenChapter: &first,
		}
	}

	registryJSON := "{}"
	if len(snapshot) > 0 {
		if data, err := json.MarshalIndent(snapshot, "", "  "); err == nil {
			registryJSON = string(data)
		}
	}

	var context strings.Builder
	if prevParagraph != "" {
		fmt.Fprintf(&context, "Previous paragraph:\n%s\n\n", prevParagraph)
	}
	fmt.Fprintf(&context, "Current paragraph:\n%s", paragraph)

	return fmt.Sprintf(`You are analyzing a novel to identify characters and maintain a character registry.

Current character registry (JSON):
%s

%s

Task:
The text contains a speaker descriptor: %q

1. Identify who %q refers to based on the context and registry
2. If this is a NEW character:
   - Create an entry with a canonical name (e.g., "Mrs. Bennet", "Elizabeth Bennet")
   - Add 2-3 sentences of context for future identification (relationships, role, traits)
3. If this is an EXISTING character with a new alias:
   - Add %q to their aliases list
   - Optionally refine their context if new information is revealed
4. Return the COMPLETE updated registry

Respond with JSON only:
{
  "speaker": "canonical name",
  "registry": {
    "Canonical Name": {
      "aliases": ["list", "of", "aliases"],
      "context": "2-3 sentences about the character",
      "first_seen_chapter": chapter_number
    }
  }
}

Guidelines:
- Use full names for canonical names (e.g., "Mrs. Bennet" not "Bennet")
- Context should focus on: relationships, role, key traits (not plot details)
- Don't add generic pronouns like "he"/"she" as permanent aliases
- Keep existing registry entries and only add/update as needed`,
		registryJSON, context.String(), descriptor, descriptor, descriptor)
}

// parseIdentification defensively parses the model output. Models wrap
// JSON in code fences or prose often enough that a failed direct parse
// retries on the outermost object literal.
func parseIdentification(response string) (identification, error) {
	trimmed := strings.TrimSpace(response)

	var result identification
	if err := json.Unmarshal([]byte(trimmed), &result); err != nil {
		start := strings.Index(trimmed, "{")
		end := strings.LastIndex(trimmed, "}")
		if start < 0 || end <= start {
			return identification{}, fmt.Errorf("response is not JSON: %w", err)
		}
		if err := json.Unmarshal([]byte(trimmed[start:end+1]), &result); err != nil {
			return identification{}, fmt.Errorf("response is not JSON: %w", err)
		}
	}

	if strings.TrimSpace(result.Speaker) == "" {
		return identification{}, fmt.Errorf("response missing speaker field")
	}
	return result, nil
}
