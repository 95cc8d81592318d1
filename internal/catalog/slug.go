package catalog

import "strings"

// Arabic letters folded to rough Latin equivalents so display names typed
// by staff produce stable machine keys.
var arabicFolder = strings.NewReplacer(
	"أ", "a", "ب", "b", "ت", "t", "ث", "th", "ج", "j", "ح", "h",
	"خ", "kh", "د", "d", "ذ", "th", "ر", "r", "ز", "z", "س", "s",
	"ش", "sh", "ص", "s", "ض", "d", "ط", "t", "ظ", "z", "ع", "a",
	"غ", "gh", "ف", "f", "ق", "q", "ك", "k", "ل", "l", "م", "m",
	"ن", "n", "ه", "h", "و", "w", "ي", "y", "ة", "h", "ى", "a",
	"ئ", "a", "ا", "a",
)

// Slugify derives a machine key from a display name: lowercase, spaces to
// underscores, Arabic letters transliterated.
func Slugify(displayName string) string {
	key := strings.ToLower(strings.TrimSpace(displayName))
	key = strings.ReplaceAll(key, " ", "_")
	return arabicFolder.Replace(key)
}
