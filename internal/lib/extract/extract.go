// Package extract pulls a product name, expiry date and category out of a
// free-form request such as "add milk expiring in 3 days".
package extract

import (
	"ShelfGuardian/entity"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	unnamedProduct = "Unnamed Product"

	// maxOffsetDays bounds "in N days" well past year 9999 without
	// overflowing the date arithmetic.
	maxOffsetDays = 10000 * 366
)

var ErrNoExpiry = errors.New("could not determine expiry date")

var numberWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
}

var (
	userIDSuffix = regexp.MustCompile(`(?i)\(\s*user\s*id[:=]?\s*\d+\s*\)$`)
	leadingVerb  = regexp.MustCompile(`^(?:please\s+add|add|insert|create)\s+`)
	nameStop     = regexp.MustCompile(`\s*(?:\bin\s+(?:\d+|one|two|three|four|five|six|seven|eight|nine|ten)\s+days?\b|expir|\bon\s+\d|\bwith\b|\bcategory\b|\btomorrow\b|\bday after tomorrow\b|\d{1,2}[-/]\d{1,2}[-/]\d{2,4}|\d{4}-\d{1,2}-\d{1,2})`)
	trailingJunk = regexp.MustCompile(`[(),]+$`)
	explicitDate = regexp.MustCompile(`(\d{4}-\d{1,2}-\d{1,2}|\d{1,2}[-/]\d{1,2}[-/]\d{2,4})`)
	inDays       = regexp.MustCompile(`in\s+(\d+)\s+days?`)
	inDaysWord   = regexp.MustCompile(`in\s+(one|two|three|four|five|six|seven|eight|nine|ten)\s+days?`)
)

var dateLayouts = []string{"02-01-2006", "2-1-2006", "02/01/2006", "2/1/2006", "2006-01-02", "2006-1-2", "02-01-06", "2-1-06", "02/01/06", "2/1/06"}

var foodKeywords = []string{
	"bread", "flour", "milk", "biscuit", "egg", "eggs", "rice", "cheese", "cookie", "juice", "butter",
	"noodle", "noodles", "curd", "yogurt", "vegetable", "vegetables", "fruit", "fruits", "meat",
	"chicken", "fish", "grocery",
}

var medicineKeywords = []string{
	"paracetamol", "tablet", "syrup", "medicine", "ibuprofen", "antacid", "cough", "pain killer",
}

type Item struct {
	Name       string
	ExpiryDate entity.Date
	Category   entity.Category
}

// Parse extracts an item from description relative to today. Name and
// category always resolve; a missing expiry returns ErrNoExpiry.
func Parse(description string, today entity.Date) (Item, error) {
	desc := Clean(description)

	item := Item{Name: Name(desc)}
	item.Category = Categorize(item.Name)

	expiry, ok := Expiry(desc, today)
	if !ok {
		return item, ErrNoExpiry
	}
	item.ExpiryDate = expiry

	return item, nil
}

// Clean lowercases and strips a trailing "(user id: N)" and punctuation.
func Clean(description string) string {
	desc := strings.TrimRight(strings.ToLower(strings.TrimSpace(description)), " .,")
	desc = strings.TrimSpace(userIDSuffix.ReplaceAllString(desc, ""))
	return strings.TrimRight(desc, " .,")
}

func Name(desc string) string {
	rest := leadingVerb.ReplaceAllString(desc, "")

	raw := rest
	if loc := nameStop.FindStringIndex(rest); loc != nil {
		raw = rest[:loc[0]]
	}
	raw = strings.TrimSpace(trailingJunk.ReplaceAllString(strings.TrimSpace(raw), ""))
	if raw == "" {
		return unnamedProduct
	}

	return cases.Title(language.English).String(raw)
}

func Expiry(desc string, today entity.Date) (entity.Date, bool) {
	if m := explicitDate.FindStringSubmatch(desc); m != nil {
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, m[1]); err == nil {
				d := entity.DateOf(t)
				return d, d.InRange()
			}
		}
	}

	if strings.Contains(desc, "day after tomorrow") {
		return today.AddDays(2), true
	}
	if strings.Contains(desc, "tomorrow") {
		return today.AddDays(1), true
	}

	if m := inDays.FindStringSubmatch(desc); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil || n > maxOffsetDays {
			return entity.Date{}, false
		}
		expiry := today.AddDays(n)
		return expiry, expiry.InRange()
	}
	if m := inDaysWord.FindStringSubmatch(desc); m != nil {
		return today.AddDays(numberWords[m[1]]), true
	}

	return entity.Date{}, false
}

// Categorize guesses the category from keywords in the product name.
func Categorize(name string) entity.Category {
	lowered := strings.ToLower(name)
	for _, k := range foodKeywords {
		if strings.Contains(lowered, k) {
			return entity.CategoryFood
		}
	}
	for _, k := range medicineKeywords {
		if strings.Contains(lowered, k) {
			return entity.CategoryMedicine
		}
	}
	return entity.CategoryMiscellaneous
}

// NormalizeCategory maps a user-supplied category or synonym onto the
// canonical category.
func NormalizeCategory(s string) (entity.Category, bool) {
	c, err := entity.ParseCategory(s)
	return c, err == nil
}
