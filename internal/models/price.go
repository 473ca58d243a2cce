package models

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Money is a price that always serializes with two decimals.
type Money float64

// Round rounds the exact binary value to cents, ties to even.
func (m Money) Round() Money {
	f := float64(m)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return m
	}
	rounded, _ := strconv.ParseFloat(strconv.FormatFloat(f, 'f', 2, 64), 64)
	return Money(rounded)
}

func (m Money) String() string {
	return strconv.FormatFloat(float64(m), 'f', 2, 64)
}

func (m Money) MarshalJSON() ([]byte, error) {
	f := float64(m)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, errors.New("money: non-finite value")
	}
	return []byte(m.String()), nil
}

// ParsePrice extracts the amount and currency symbol from a price cell such as
// "$1,299.99" or "1299.99 EUR". Commas are treated as thousands separators,
// so decimal commas such as "1.299,99" are rejected.
func ParsePrice(price string) (float64, string, error) {
	price = strings.TrimSpace(price)

	if price == "" {
		return 0, "", errors.New("empty price")
	}

	if plain, err := strconv.ParseFloat(price, 64); err == nil {
		return plain, "", nil
	}

	if dot := strings.IndexByte(price, '.'); dot >= 0 && strings.LastIndexByte(price, ',') > dot {
		return 0, "", errors.New("comma after decimal point")
	}

	currency, number := "", ""

	for _, char := range price {
		currency, number = processCharacter(char, currency, number)
	}

	float, err := strconv.ParseFloat(number, 64)

	if err != nil {
		return 0, "", err
	}

	return float, strings.TrimSpace(currency), nil
}

func processCharacter(char rune, currency, number string) (string, string) {
	if isSpaceOrPlus(char) || char == ',' {
		return currency, number
	} else if char == '.' || char == '-' || unicode.IsDigit(char) {
		number += string(char)
	} else {
		currency += string(char)
	}
	return currency, number
}

func isSpaceOrPlus(char rune) bool {
	return char == ' ' || char == '+'
}
