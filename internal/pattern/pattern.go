// Package pattern classifies a plate's facets into the catalog of lucky-number
// categories. Classification is pure: the same facets always yield the same
// set of categories, and a plate may satisfy any number of them at once.
package pattern

import "strings"

// Category names a lucky-number classification. The name doubles as the
// membership key persisted by the pattern repository, so it is validated
// against the catalog before it is ever used in a query predicate.
type Category string

const (
	// Exact auspicious back numbers.
	Cat168  Category = "168"
	Cat789  Category = "789"
	Cat289  Category = "289"
	Cat456  Category = "456"
	Cat911  Category = "911"
	Cat718  Category = "718"
	Cat992  Category = "992"
	Cat35   Category = "35"
	Cat488  Category = "488"
	Cat1    Category = "1"
	Cat5    Category = "5"
	Cat55   Category = "55"
	Cat555  Category = "555"
	Cat5555 Category = "5555"
	Cat7    Category = "7"
	Cat77   Category = "77"
	Cat777  Category = "777"
	Cat7777 Category = "7777"
	Cat8    Category = "8"
	Cat88   Category = "88"
	Cat888  Category = "888"
	Cat8888 Category = "8888"
	Cat9    Category = "9"
	Cat99   Category = "99"
	Cat999  Category = "999"
	Cat9999 Category = "9999"

	// Five/nine composites. Exact values, not a generative rule.
	Cat599  Category = "599"
	Cat595  Category = "595"
	Cat959  Category = "959"
	Cat955  Category = "955"
	Cat5959 Category = "5959"
	Cat9595 Category = "9595"
	Cat5599 Category = "5599"
	Cat9955 Category = "9955"
	Cat5995 Category = "5995"
	Cat9559 Category = "9559"

	// Structural digit families over the back number.
	CatX    Category = "x"
	CatXX   Category = "xx"
	CatXXX  Category = "xxx"
	CatXXXX Category = "xxxx"
	CatXY   Category = "xy"
	CatXYX  Category = "xyx"
	CatXYY  Category = "xyy"
	CatXYYY Category = "xyyy"
	CatXXYY Category = "xxyy"
	CatXYXY Category = "xyxy"
	CatXYYX Category = "xyyx"
	CatXYZ  Category = "xyz"
	CatZYX  Category = "zyx"
	CatWXYZ Category = "wxyz"
	CatZYXW Category = "zyxw"
	CatX00  Category = "x00"
	CatX000 Category = "x000"
	CatX99  Category = "x99"
	CatX999 Category = "x999"
	CatX55  Category = "x55"
	CatX555 Category = "x555"

	// Front-text compounds.
	CatRakhang Category = "rakhang"
	CatKob     Category = "kob"
	CatTorthan Category = "torthan"
)

// Facets are the classification inputs taken from a listing.
type Facets struct {
	FrontText     string
	FrontNumber   int
	BackNumber    int
	VehicleTypeID int
}

type rule struct {
	category Category
	match    func(f Facets) bool
}

func backEquals(n int) func(Facets) bool {
	return func(f Facets) bool { return f.BackNumber == n }
}

func backIn(ns ...int) func(Facets) bool {
	return func(f Facets) bool {
		for _, n := range ns {
			if f.BackNumber == n {
				return true
			}
		}
		return false
	}
}

// digitRule applies match to the decimal digits of the back number when it has
// exactly width digits; any other width falls through silently.
func digitRule(width int, match func(d []int) bool) func(Facets) bool {
	return func(f Facets) bool {
		d := digits(f.BackNumber)
		if len(d) != width {
			return false
		}
		return match(d)
	}
}

func digits(n int) []int {
	if n <= 0 {
		return nil
	}
	var d []int
	for n > 0 {
		d = append([]int{n % 10}, d...)
		n /= 10
	}
	return d
}

// frontPrefix matches private-vehicle plates with no front number whose text
// starts with the given Thai character.
func frontPrefix(prefix string) func(Facets) bool {
	return func(f Facets) bool {
		return f.FrontNumber == 0 && f.VehicleTypeID == 1 && strings.HasPrefix(f.FrontText, prefix)
	}
}

// catalog is the full rule table. Rules are independent; every matching rule
// contributes its category. Order here is the deterministic output order.
var catalog = []rule{
	{Cat168, backEquals(168)},
	{Cat789, backEquals(789)},
	{Cat289, backEquals(289)},
	{Cat456, backEquals(456)},
	{Cat911, backEquals(911)},
	{Cat718, backEquals(718)},
	{Cat992, backEquals(992)},
	{Cat35, backEquals(35)},
	{Cat488, backEquals(488)},
	{Cat1, backEquals(1)},
	{Cat5, backEquals(5)},
	{Cat55, backEquals(55)},
	{Cat555, backEquals(555)},
	{Cat5555, backEquals(5555)},
	{Cat7, backEquals(7)},
	{Cat77, backEquals(77)},
	{Cat777, backEquals(777)},
	{Cat7777, backEquals(7777)},
	{Cat8, backEquals(8)},
	{Cat88, backEquals(88)},
	{Cat888, backEquals(888)},
	{Cat8888, backEquals(8888)},
	{Cat9, backEquals(9)},
	{Cat99, backEquals(99)},
	{Cat999, backEquals(999)},
	{Cat9999, backEquals(9999)},

	{Cat599, backEquals(599)},
	{Cat595, backEquals(595)},
	{Cat959, backEquals(959)},
	{Cat955, backEquals(955)},
	{Cat5959, backEquals(5959)},
	{Cat9595, backEquals(9595)},
	{Cat5599, backEquals(5599)},
	{Cat9955, backEquals(9955)},
	{Cat5995, backEquals(5995)},
	{Cat9559, backEquals(9559)},

	{CatX, digitRule(1, func(d []int) bool { return true })},
	{CatXX, digitRule(2, func(d []int) bool { return d[0] == d[1] })},
	{CatXXX, digitRule(3, func(d []int) bool { return d[0] == d[1] && d[1] == d[2] })},
	{CatXXXX, digitRule(4, func(d []int) bool { return d[0] == d[1] && d[1] == d[2] && d[2] == d[3] })},
	{CatXY, digitRule(2, func(d []int) bool { return d[0] != d[1] })},
	{CatXYX, digitRule(3, func(d []int) bool { return d[0] != d[1] && d[0] == d[2] })},
	{CatXYY, digitRule(3, func(d []int) bool { return d[0] != d[1] && d[1] == d[2] })},
	{CatXYYY, digitRule(4, func(d []int) bool { return d[0] != d[1] && d[1] == d[2] && d[2] == d[3] })},
	{CatXXYY, digitRule(4, func(d []int) bool { return d[0] == d[1] && d[2] == d[3] && d[0] != d[2] })},
	{CatXYXY, digitRule(4, func(d []int) bool { return d[0] == d[2] && d[1] == d[3] && d[0] != d[1] })},
	{CatXYYX, digitRule(4, func(d []int) bool { return d[0] == d[3] && d[1] == d[2] && d[0] != d[1] })},
	{CatXYZ, backIn(123, 234, 345, 456, 567, 678, 789)},
	{CatZYX, backIn(987, 876, 765, 654, 543, 432, 321)},
	{CatWXYZ, backIn(1234, 2345, 3456, 4567, 5678, 6789)},
	{CatZYXW, backIn(9876, 8765, 7654, 6543, 5432, 4321)},
	{CatX00, digitRule(3, func(d []int) bool { return d[1] == 0 && d[2] == 0 })},
	{CatX000, digitRule(4, func(d []int) bool { return d[1] == 0 && d[2] == 0 && d[3] == 0 })},
	{CatX99, digitRule(3, func(d []int) bool { return d[1] == 9 && d[2] == 9 })},
	{CatX999, digitRule(4, func(d []int) bool { return d[1] == 9 && d[2] == 9 && d[3] == 9 })},
	{CatX55, digitRule(3, func(d []int) bool { return d[1] == 5 && d[2] == 5 })},
	{CatX555, digitRule(4, func(d []int) bool { return d[1] == 5 && d[2] == 5 && d[3] == 5 })},

	{CatRakhang, frontPrefix("ฆ")},
	{CatKob, func(f Facets) bool { return f.FrontText == "กบ" }},
	{CatTorthan, frontPrefix("ฐ")},
}

var catalogIndex = func() map[Category]struct{} {
	m := make(map[Category]struct{}, len(catalog))
	for _, r := range catalog {
		m[r.category] = struct{}{}
	}
	return m
}()

// Classify returns every category the facets satisfy, in catalog order.
// It never fails; facets outside every rule's range yield an empty result.
func Classify(f Facets) []Category {
	var matched []Category
	for _, r := range catalog {
		if r.match(f) {
			matched = append(matched, r.category)
		}
	}
	return matched
}

// Valid reports whether name belongs to the fixed catalog. Callers must check
// this before using a caller-supplied category in a query.
func Valid(name Category) bool {
	_, ok := catalogIndex[name]
	return ok
}

// Catalog returns all category names in catalog order.
func Catalog() []Category {
	out := make([]Category, 0, len(catalog))
	for _, r := range catalog {
		out = append(out, r.category)
	}
	return out
}
