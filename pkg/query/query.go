// Copyright (c) 2026 Encore. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query holds helpers for building SQL predicates from user input.
package query

import "strings"

// LikeEscape is the escape character paired with [Contains] patterns.
const LikeEscape = `\`

var likeReplacer = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Contains turns a raw search term into a LIKE pattern matching it as a
// literal substring. Use it with "LIKE $n ESCAPE '\'".
//
// An empty term yields "%%", which matches every non-null value.
func Contains(term string) string {
	return "%" + likeReplacer.Replace(term) + "%"
}
