// Package scoring converts raw assessment and fitness inputs into normalised performance
// indices and projects those indices under hypothetical future inputs.
//
// Every function in this package is pure: no I/O, no logging and no retained state, so
// concurrent callers need no coordination.
package scoring

import (
	"math"
	"strings"
)

// LetterGrade is one of the thirteen letter tokens from A+ down to F.
type LetterGrade string

const (
	GradeAPlus  LetterGrade = "A+"
	GradeA      LetterGrade = "A"
	GradeAMinus LetterGrade = "A-"
	GradeBPlus  LetterGrade = "B+"
	GradeB      LetterGrade = "B"
	GradeBMinus LetterGrade = "B-"
	GradeCPlus  LetterGrade = "C+"
	GradeC      LetterGrade = "C"
	GradeCMinus LetterGrade = "C-"
	GradeDPlus  LetterGrade = "D+"
	GradeD      LetterGrade = "D"
	GradeDMinus LetterGrade = "D-"
	GradeF      LetterGrade = "F"
)

// WeightedBonus is added to the grade points of weighted (honors/advanced) courses.
const WeightedBonus = 1.0

// MaxGradePoints caps grade points after the weighted bonus is applied.
const MaxGradePoints = 4.0

type letterBand struct {
	floor  float64
	letter LetterGrade
	points float64
}

// bands is ordered by descending floor; each floor is inclusive.
var bands = []letterBand{
	{97, GradeAPlus, 4.0},
	{93, GradeA, 4.0},
	{90, GradeAMinus, 3.7},
	{87, GradeBPlus, 3.3},
	{83, GradeB, 3.0},
	{80, GradeBMinus, 2.7},
	{77, GradeCPlus, 2.3},
	{73, GradeC, 2.0},
	{70, GradeCMinus, 1.7},
	{67, GradeDPlus, 1.3},
	{63, GradeD, 1.0},
	{60, GradeDMinus, 0.7},
}

// LetterGrades returns every letter grade from best to worst.
func LetterGrades() []LetterGrade {
	letters := make([]LetterGrade, 0, len(bands)+1)
	for _, b := range bands {
		letters = append(letters, b.letter)
	}
	return append(letters, GradeF)
}

// PercentageToLetterGrade maps a percentage onto the letter table. The percentage is used as
// supplied; values above 100 land on A+ and anything below 60 (including NaN) is an F.
func PercentageToLetterGrade(percentage float64) LetterGrade {
	for _, b := range bands {
		if percentage >= b.floor {
			return b.letter
		}
	}
	return GradeF
}

// LetterGradeToPoints returns the 4.0-scale grade points for a letter. Weighted courses earn
// WeightedBonus on top, capped at MaxGradePoints. Unknown letters are worth 0, weighted or not.
func LetterGradeToPoints(letter LetterGrade, weighted bool) float64 {
	for _, b := range bands {
		if b.letter != letter {
			continue
		}
		if weighted {
			return math.Min(b.points+WeightedBonus, MaxGradePoints)
		}
		return b.points
	}
	return 0
}

// PercentageToGradePoints maps a percentage straight to grade points via its letter grade.
func PercentageToGradePoints(percentage float64, weighted bool) float64 {
	return LetterGradeToPoints(PercentageToLetterGrade(percentage), weighted)
}

// ParseLetterGrade normalises user input such as " b+ " and reports whether it names a
// known letter grade.
func ParseLetterGrade(raw string) (LetterGrade, bool) {
	candidate := LetterGrade(strings.ToUpper(strings.TrimSpace(raw)))
	for _, letter := range LetterGrades() {
		if letter == candidate {
			return letter, true
		}
	}
	return "", false
}
