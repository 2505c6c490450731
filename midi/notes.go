package midi

import "fmt"

var noteNames = [12]string{
	"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B",
}

// NoteName returns the scientific pitch name of a note number, "A4"
// for 69.
func NoteName(note int8) string {
	return fmt.Sprintf("%s%d", noteNames[int(note)%12], int(note)/12-1)
}
