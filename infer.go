// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package qs

import (
	"math"
	"strconv"
	"strings"
)

// MaxSafeInteger is the largest integer magnitude a float64 holds without
// precision loss (2^53 - 1). Numeric text beyond it stays a string.
const MaxSafeInteger = 1<<53 - 1

// Infer converts a raw parameter value into a typed scalar using the
// default limits. See [Codec.Infer].
func Infer(raw string) Value {
	return defaultCodec.Infer(raw)
}

// Infer converts a raw parameter value into a typed scalar.
//
// Rules, in order:
//   - text longer than the scalar limit is returned unchanged as a string
//   - whitespace-only text becomes the empty string
//   - decimal numbers within ±[MaxSafeInteger] become numbers
//   - "true", "false", "null" and "undefined" become their keywords
//   - anything else is returned unchanged as a string
//
// Infer never fails.
func (c *Codec) Infer(raw string) Value {
	return inferScalar(raw, c.cfg.maxScalarLen)
}

func inferScalar(raw string, maxLen int) Value {
	if len(raw) > maxLen {
		return String(raw)
	}

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return String("")
	}

	if n, ok := parseNumber(trimmed); ok {
		return Number(n)
	}

	switch trimmed {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	case "null":
		return Null()
	case "undefined":
		return Undefined()
	}

	return String(raw)
}

// parseNumber accepts plain decimal notation only. strconv.ParseFloat alone
// would also take "inf", "0x1p4" and digit separators.
func parseNumber(s string) (float64, bool) {
	if !isDecimal(s) {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
		return 0, false
	}
	if math.Abs(n) > MaxSafeInteger {
		return 0, false
	}
	return n, true
}

// isDecimal matches [+-]?(d+(.d*)?|.d+)([eE][+-]?d+)?
func isDecimal(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	intDigits := skipDigits(s, i)
	fracDigits := 0
	i += intDigits
	if i < len(s) && s[i] == '.' {
		i++
		fracDigits = skipDigits(s, i)
		i += fracDigits
	}
	if intDigits == 0 && fracDigits == 0 {
		return false
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		expDigits := skipDigits(s, i)
		if expDigits == 0 {
			return false
		}
		i += expDigits
	}

	return i == len(s)
}

func skipDigits(s string, i int) int {
	n := 0
	for i+n < len(s) && s[i+n] >= '0' && s[i+n] <= '9' {
		n++
	}
	return n
}

// formatNumber renders n the way it reads back: shortest round-trip
// digits, exponent form only for very small magnitudes.
func formatNumber(n float64) string {
	if n == 0 {
		return "0"
	}
	abs := math.Abs(n)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}

	s := strconv.FormatFloat(n, 'e', -1, 64)
	// 1e-07 -> 1e-7
	mant, exp, _ := strings.Cut(s, "e")
	sign := exp[:1]
	digits := strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	if sign == "+" {
		return mant + "e+" + digits
	}
	return mant + "e-" + digits
}
