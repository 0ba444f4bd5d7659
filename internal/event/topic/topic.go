package topic

import "strings"

// Split splits s on delimiter and validates the result.
// A valid topic:
//   - Is not empty
//   - Contains at least one word
//   - Does not contain empty words (no leading, trailing or doubled delimiter)
func Split(s, delimiter string) ([]string, error) {
	if s == "" {
		return nil, &ValidationError{Topic: s, Reason: "topic must not be empty"}
	}

	words := strings.Split(s, delimiter)
	if len(words) == 0 {
		return nil, &ValidationError{Topic: s, Reason: "topic must contain at least one word"}
	}

	for _, word := range words {
		if word == "" {
			return nil, &ValidationError{Topic: s, Reason: "topic must not contain empty words"}
		}
	}
	return words, nil
}

// Join joins words into a topic using delimiter.
func Join(words []string, delimiter string) string {
	return strings.Join(words, delimiter)
}

// words tokenizes a pattern for Add, Remove and RemoveAll.
func (t *Tree) words(pattern string) ([]string, error) {
	return Split(pattern, t.delimiter)
}

// concreteWords tokenizes a published topic and rejects wildcard tokens.
func (t *Tree) concreteWords(topic string) ([]string, error) {
	words, err := Split(topic, t.delimiter)
	if err != nil {
		return nil, err
	}

	for _, word := range words {
		if t.IsWildcard(word) {
			return nil, &ValidationError{
				Topic:  topic,
				Reason: "published topic can't contain wildcards ('" + t.config.single + "' or '" + t.config.multi + "')",
			}
		}
	}
	return words, nil
}

// IsWildcard returns true if word is one of the tree's wildcard tokens.
func (t *Tree) IsWildcard(word string) bool {
	return word == t.config.single || word == t.config.multi
}
