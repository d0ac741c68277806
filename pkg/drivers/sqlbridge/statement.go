// Copyright 2026 Teradata
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package sqlbridge

import (
	"strings"
	"unicode"
)

var rowKeywords = map[string]bool{
	"SELECT":   true,
	"SHOW":     true,
	"DESCRIBE": true,
	"DESC":     true,
	"EXPLAIN":  true,
	"PRAGMA":   true,
	"WITH":     true,
	"VALUES":   true,
	"TABLE":    true,
	"CALL":     true,
}

// ReturnsRows guesses whether stmt produces a row set from its leading
// keyword, skipping whitespace, comments and opening parentheses. DML with a
// RETURNING clause also counts.
func ReturnsRows(stmt string) bool {
	rest := skipNoise(stmt)
	end := strings.IndexFunc(rest, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	word := rest
	if end >= 0 {
		word = rest[:end]
	}
	word = strings.ToUpper(word)
	if rowKeywords[word] {
		return true
	}
	switch word {
	case "INSERT", "UPDATE", "DELETE":
		return hasWord(strings.ToUpper(rest), "RETURNING")
	}
	return false
}

func skipNoise(s string) string {
	for {
		s = strings.TrimLeftFunc(s, func(r rune) bool {
			return unicode.IsSpace(r) || r == '('
		})
		switch {
		case strings.HasPrefix(s, "--"):
			i := strings.IndexByte(s, '\n')
			if i < 0 {
				return ""
			}
			s = s[i+1:]
		case strings.HasPrefix(s, "/*"):
			i := strings.Index(s, "*/")
			if i < 0 {
				return ""
			}
			s = s[i+2:]
		default:
			return s
		}
	}
}

func hasWord(s, word string) bool {
	for i := 0; ; {
		j := strings.Index(s[i:], word)
		if j < 0 {
			return false
		}
		start := i + j
		end := start + len(word)
		before := start == 0 || !isIdent(rune(s[start-1]))
		after := end == len(s) || !isIdent(rune(s[end]))
		if before && after {
			return true
		}
		i = end
	}
}

func isIdent(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
