package billdoc

// SerialLabel returns the lowercase serial label for a zero-based position:
// "a)", "b)", … "z)", "aa)", "ab)", … (bijective base-26).
func SerialLabel(index int) string {
	n := index + 1
	var letters []byte
	for n > 0 {
		n--
		letters = append([]byte{byte('a' + n%26)}, letters...)
		n /= 26
	}
	return string(letters) + ")"
}

// relabel renumbers sub-item labels contiguously from "a)".
func relabel(main *MainItem) {
	for i := range main.SubItems {
		main.SubItems[i].Label = SerialLabel(i)
	}
}
