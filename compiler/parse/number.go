package parse

// skipNum returns the end of a decimal number literal starting at st,
// or st if there is none.
func skipNum(b []byte, st int) (i int) {
	i = st

	dst := i
	dot := false

loop:
	for ; i < len(b); i++ {
		switch {
		case isDigit(b[i]):
		case !dot && b[i] == '.':
			dot = true
		default:
			break loop
		}
	}

	if i == dst || i == dst+1 && b[dst] == '.' {
		return st
	}

	if i < len(b) && (b[i] == 'e' || b[i] == 'E') {
		j := i + 1

		if j < len(b) && (b[j] == '+' || b[j] == '-') {
			j++
		}

		if j < len(b) && isDigit(b[j]) {
			for j < len(b) && isDigit(b[j]) {
				j++
			}

			i = j
		}
	}

	return i
}

// skipString returns the end of a quoted literal starting at st,
// or -1 if it is not terminated on the same line.
func skipString(b []byte, st int) int {
	q := b[st]

	for i := st + 1; i < len(b); i++ {
		switch b[i] {
		case '\\':
			i++
		case '\n':
			return -1
		case q:
			return i + 1
		}
	}

	return -1
}
