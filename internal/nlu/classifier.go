package nlu

import (
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// intentGroup is one named group of match patterns. Groups are evaluated in
// declaration order; within a group, patterns are tried in order and the
// first hit wins.
type intentGroup struct {
	label    Intent
	patterns []*regexp.Regexp
}

func compileGroup(label Intent, exprs ...string) intentGroup {
	patterns := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		patterns = append(patterns, regexp.MustCompile("(?i)"+expr))
	}
	return intentGroup{label: label, patterns: patterns}
}

// builtinGroups returns the fixed-priority intent table. The declaration
// order is load-bearing: two groups may match the same text and the earlier
// one must win.
func builtinGroups() []intentGroup {
	return []intentGroup{
		compileGroup(IntentTimeQuery, `what.*time`, `current time`, `time.*now`),
		compileGroup(IntentDateQuery, `what.*date`, `today.*date`, `current date`),
		compileGroup(IntentWeatherQuery, `weather.*like`, `temperature.*today`, `forecast`),
		compileGroup(IntentSearchQuery, `search.*for`, `look.*up`, `find.*information`),
		compileGroup(IntentEmail, `send.*email`, `compose.*email`, `email.*to`),
		compileGroup(IntentReminder, `remind.*me`, `set.*reminder`, `don't.*forget`),
		compileGroup(IntentSmartHome, `turn.*on`, `turn.*off`, `dim.*lights`, `set.*temperature`),
	}
}

// Classifier matches text against the ordered intent table. Classification
// is pure, so results for recently seen inputs are memoized in an LRU cache.
type Classifier struct {
	groups []intentGroup
	cache  *lru.Cache[string, Intent]
}

// NewClassifier builds a classifier over the built-in intent table.
// cacheSize <= 0 disables memoization.
func NewClassifier(cacheSize int) *Classifier {
	c := &Classifier{groups: builtinGroups()}
	if cacheSize > 0 {
		// lru.New only fails on non-positive size, which is excluded here.
		cache, err := lru.New[string, Intent](cacheSize)
		if err == nil {
			c.cache = cache
		}
	}
	return c
}

// Classify returns the label of the first group with a matching pattern, or
// IntentUnknown when nothing matches. Matching is case-insensitive.
func (c *Classifier) Classify(text string) Intent {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return IntentUnknown
	}
	if c.cache != nil {
		if intent, ok := c.cache.Get(normalized); ok {
			return intent
		}
	}

	intent := IntentUnknown
groups:
	for _, group := range c.groups {
		for _, pattern := range group.patterns {
			if pattern.MatchString(normalized) {
				intent = group.label
				break groups
			}
		}
	}

	if c.cache != nil {
		c.cache.Add(normalized, intent)
	}
	return intent
}

// Interpret runs classification and extraction in one pass.
func (c *Classifier) Interpret(text string) Result {
	return Result{
		Intent:   c.Classify(text),
		Entities: ExtractEntities(text),
		Text:     text,
	}
}
