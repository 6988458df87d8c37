//go:build namedgen

// Package demo holds functions called through their generated named
// argument forms.
package demo

import (
	"fmt"
	"strings"
)

// D carries a single small value.
type D struct {
	Value uint8
}

const defaultValue uint8 = 1

var defaultD = D{Value: 1}

//named:defaults(a = false, b = false)
func or(a, b bool) bool {
	return a || b
}

//named:defaults(b = false)
func orRequired(a, b bool) bool {
	return a || b
}

//named:defaults(a = false, b = false, c = false)
func or3(a, b, c bool) bool {
	return a || b || c
}

//named:defaults(a = defaultValue)
func isOne(a uint8) bool {
	return a == 1
}

//named:defaults(a = defaultD.Value)
func isOneField(a uint8) bool {
	return a == 1
}

// describe formats its arguments.
//
//named:defaults(c = 3, b = 2, a = 1)
func describe(a, b, c uint8) string {
	return fmt.Sprintf("a=[%d], b=[%d], c=[%d]", a, b, c)
}

//named:defaults(a = 1)
func describeTail(a, b, c uint8) string {
	return fmt.Sprintf("a=[%d], b=[%d], c=[%d]", a, b, c)
}

//named:defaults()
func describeAll(a, b, c uint8) string {
	return fmt.Sprintf("a=[%d], b=[%d], c=[%d]", a, b, c)
}

//named:defaults(sep = ", ", words = nil)
func join(sep string, words ...string) string {
	return strings.Join(words, sep)
}

var limit = 10

//named:defaults(n = limit)
func take(limit, n int) int {
	return limit + n
}

var base = 10

//named:defaults(a = base)
func offset(a int) (base int) {
	base = a + 1
	return base
}
