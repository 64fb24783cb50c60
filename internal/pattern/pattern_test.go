package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classifyBack(back int) []Category {
	return Classify(Facets{BackNumber: back})
}

func TestClassify_ExactNumbers(t *testing.T) {
	tests := []struct {
		name string
		back int
		want []Category
	}{
		{"168 is only itself plus nothing structural", 168, []Category{Cat168}},
		{"789 is auspicious and an ascending run", 789, []Category{Cat789, CatXYZ}},
		{"456 is auspicious and an ascending run", 456, []Category{Cat456, CatXYZ}},
		{"911 ends with a repeated pair", 911, []Category{Cat911, CatXYY}},
		{"35 is a plain two-digit number", 35, []Category{Cat35, CatXY}},
		{"488 ends with a repeated pair", 488, []Category{Cat488, CatXYY}},
		{"289 matches nothing structural", 289, []Category{Cat289}},
		{"718 matches nothing structural", 718, []Category{Cat718}},
		{"992 matches nothing structural", 992, []Category{Cat992}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyBack(tt.back))
		})
	}
}

func TestClassify_MultipleFamilies(t *testing.T) {
	// 999 belongs to the literal 999 catalog entry, the all-same triple
	// family, and the x99 round family at once.
	got := classifyBack(999)
	assert.ElementsMatch(t, []Category{Cat999, CatXXX, CatX99}, got)

	got = classifyBack(9999)
	assert.ElementsMatch(t, []Category{Cat9999, CatXXXX, CatX999}, got)

	got = classifyBack(5555)
	assert.ElementsMatch(t, []Category{Cat5555, CatXXXX, CatX555}, got)

	got = classifyBack(555)
	assert.ElementsMatch(t, []Category{Cat555, CatXXX, CatX55}, got)

	// 955 is an exact five/nine composite, ends with a 55 round tail, and
	// has the xyy digit structure.
	got = classifyBack(955)
	assert.ElementsMatch(t, []Category{Cat955, CatXYY, CatX55}, got)
}

func TestClassify_StructuralFamilies(t *testing.T) {
	tests := []struct {
		name string
		back int
		want []Category
	}{
		{"single digit", 4, []Category{CatX}},
		{"repeated pair", 44, []Category{CatXX}},
		{"distinct pair", 47, []Category{CatXY}},
		{"aba", 232, []Category{CatXYX}},
		{"abb", 122, []Category{CatXYY}},
		{"abbb", 1222, []Category{CatXYYY}},
		{"aabb", 1122, []Category{CatXXYY}},
		{"abab", 1212, []Category{CatXYXY}},
		{"abba", 1221, []Category{CatXYYX}},
		{"ascending triple", 234, []Category{CatXYZ}},
		{"descending triple", 876, []Category{CatZYX}},
		{"ascending quad", 3456, []Category{CatWXYZ}},
		{"descending quad", 7654, []Category{CatZYXW}},
		{"round hundred", 400, []Category{CatXYY, CatX00}},
		{"round thousand", 4000, []Category{CatXYYY, CatX000}},
		{"x99 tail", 399, []Category{CatXYY, CatX99}},
		{"x999 tail", 3999, []Category{CatXYYY, CatX999}},
		{"x55 tail", 355, []Category{CatXYY, CatX55}},
		{"x555 tail", 3555, []Category{CatXYYY, CatX555}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyBack(tt.back))
		})
	}
}

func TestClassify_FiveNineComposites(t *testing.T) {
	// Each composite is an exact value; near misses stay out.
	assert.Contains(t, classifyBack(5959), Cat5959)
	assert.Contains(t, classifyBack(9595), Cat9595)
	assert.Contains(t, classifyBack(5599), Cat5599)
	assert.Contains(t, classifyBack(9955), Cat9955)
	assert.Contains(t, classifyBack(5995), Cat5995)
	assert.Contains(t, classifyBack(9559), Cat9559)
	assert.NotContains(t, classifyBack(5958), Cat5959)

	// 5959 also satisfies the alternating-pair structure.
	assert.Contains(t, classifyBack(5959), CatXYXY)
	// 5995 also reads as a palindrome.
	assert.Contains(t, classifyBack(5995), CatXYYX)
}

func TestClassify_FrontTextCompounds(t *testing.T) {
	rakhang := Facets{FrontText: "ฆข", FrontNumber: 0, BackNumber: 42, VehicleTypeID: 1}
	assert.Contains(t, Classify(rakhang), CatRakhang)

	torthan := Facets{FrontText: "ฐก", FrontNumber: 0, BackNumber: 42, VehicleTypeID: 1}
	assert.Contains(t, Classify(torthan), CatTorthan)

	// The guard requires front number 0 and vehicle type 1.
	withFrontNumber := Facets{FrontText: "ฆข", FrontNumber: 2, BackNumber: 42, VehicleTypeID: 1}
	assert.NotContains(t, Classify(withFrontNumber), CatRakhang)

	wrongVehicle := Facets{FrontText: "ฐก", FrontNumber: 0, BackNumber: 42, VehicleTypeID: 2}
	assert.NotContains(t, Classify(wrongVehicle), CatTorthan)

	// kob requires exact equality, no guard.
	kob := Facets{FrontText: "กบ", FrontNumber: 3, BackNumber: 42, VehicleTypeID: 2}
	assert.Contains(t, Classify(kob), CatKob)
	almostKob := Facets{FrontText: "กบข", BackNumber: 42}
	assert.NotContains(t, Classify(almostKob), CatKob)
}

func TestClassify_OutOfRangeMatchesNothing(t *testing.T) {
	assert.Empty(t, classifyBack(0))
	assert.Empty(t, classifyBack(-5))
	assert.Empty(t, classifyBack(12345))
}

func TestClassify_Deterministic(t *testing.T) {
	// Every value in range yields the same result on repeated runs.
	for back := 1; back <= 9999; back++ {
		first := classifyBack(back)
		second := classifyBack(back)
		require.Equal(t, first, second, "back number %d", back)
	}
}

func TestClassify_EveryTwoDigitNumberHasAStructure(t *testing.T) {
	// Two-digit numbers are exhaustively either xx or xy.
	for back := 10; back <= 99; back++ {
		got := classifyBack(back)
		if back%11 == 0 {
			assert.Contains(t, got, CatXX, "back number %d", back)
			assert.NotContains(t, got, CatXY, "back number %d", back)
		} else {
			assert.Contains(t, got, CatXY, "back number %d", back)
			assert.NotContains(t, got, CatXX, "back number %d", back)
		}
	}
}

func TestValid(t *testing.T) {
	for _, c := range Catalog() {
		assert.True(t, Valid(c))
	}
	assert.False(t, Valid("plates; DROP TABLE plates"))
	assert.False(t, Valid(""))
	assert.False(t, Valid("XXX"))
}

func TestCatalog_Stable(t *testing.T) {
	require.Equal(t, Catalog(), Catalog())
	assert.Len(t, Catalog(), 60)
}
