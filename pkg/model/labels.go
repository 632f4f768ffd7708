package model

// ChoiceLabel returns the positional label for a choice index: A..Z, then
// AA, AB, … for banks with more than 26 choices.
func ChoiceLabel(index int) string {
	if index < 0 {
		return ""
	}
	var label []byte
	for n := index; ; n = n/26 - 1 {
		label = append([]byte{byte('A' + n%26)}, label...)
		if n < 26 {
			break
		}
	}
	return string(label)
}

// LabelIndex is the inverse of ChoiceLabel for single letters. It returns -1
// when the input is not a single ASCII letter.
func LabelIndex(label string) int {
	if len(label) != 1 {
		return -1
	}
	c := label[0]
	switch {
	case c >= 'A' && c <= 'Z':
		return int(c - 'A')
	case c >= 'a' && c <= 'z':
		return int(c - 'a')
	default:
		return -1
	}
}
