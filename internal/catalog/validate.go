package catalog

import (
	"fmt"
	"strings"
)

// Validate performs structural checks on a template set. In strict mode
// every topic in AllTopics must have at least one template.
// Returns a combined error describing all problems found, or nil if valid.
func Validate(templates []Template, strict bool) error {
	var errs []string

	if len(templates) == 0 {
		errs = append(errs, "catalog has no templates")
	}

	seen := make(map[string]bool, len(templates))
	topicSet := make(map[TopicKey]bool)

	for i, t := range templates {
		prefix := fmt.Sprintf("template %d (%s)", i, t.Topic)

		if !t.Topic.Valid() {
			errs = append(errs, fmt.Sprintf("%s: unknown topic %q", prefix, t.Topic))
		}
		topicSet[t.Topic] = true

		q := strings.TrimSpace(t.Question)
		if q == "" {
			errs = append(errs, fmt.Sprintf("%s: empty question", prefix))
		} else if n := strings.Count(q, Blank); n != 1 {
			errs = append(errs, fmt.Sprintf("%s: question %q must contain exactly one %s, found %d", prefix, q, Blank, n))
		}
		if strings.TrimSpace(t.Answer) == "" {
			errs = append(errs, fmt.Sprintf("%s: empty answer", prefix))
		}

		key := strings.ToLower(q)
		if q != "" && seen[key] {
			errs = append(errs, fmt.Sprintf("%s: duplicate question %q", prefix, q))
		}
		seen[key] = true
	}

	if strict {
		for _, topic := range AllTopics() {
			if !topicSet[topic] {
				errs = append(errs, fmt.Sprintf("topic %q has no templates", topic))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
