// Package grade derives the ESO grade label (curso) of a student text from
// its document identifier.
package grade

import "fmt"

// Fallback is used when the identifier carries no usable grade digit.
const Fallback = "4t ESO"

// Catalan ordinals are irregular up to the fourth grade.
var ordinals = map[byte]string{
	'1': "1r ESO",
	'2': "2n ESO",
	'3': "3r ESO",
	'4': "4t ESO",
	'5': "5è ESO",
	'6': "6è ESO",
}

// FromID maps a document identifier to its grade label. The third character
// of the identifier encodes the grade level ("11410003" is a 4t ESO text).
func FromID(id string) string {
	if len(id) < 3 {
		return Fallback
	}
	c := id[2]
	if label, ok := ordinals[c]; ok {
		return label
	}
	if c >= '0' && c <= '9' {
		return fmt.Sprintf("%cè ESO", c)
	}
	return Fallback
}
