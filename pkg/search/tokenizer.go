package search

import (
	"strings"

	"miniecom/pkg/catalog"
)

const maxTokens = 5

// Tokenize: нижний регистр, только [a-z0-9], без стоп-слов и односимвольных токенов.
// Если строгий разбор ничего не оставил, берётся мягкий вариант без этих фильтров.
func (e *Engine) Tokenize(query string) []string {
	fields := strings.Fields(strings.ToLower(query))

	strict := collect(fields, func(token string) bool {
		if len(token) <= 1 {
			return false
		}
		_, stop := e.stopWords[token]
		return !stop
	})
	if len(strict) > 0 {
		return strict
	}

	return collect(fields, func(token string) bool { return token != "" })
}

func collect(fields []string, keep func(string) bool) []string {
	tokens := make([]string, 0, maxTokens)
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		token := catalog.Condense(f)
		if !keep(token) {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		tokens = append(tokens, token)
		if len(tokens) == maxTokens {
			break
		}
	}
	return tokens
}
