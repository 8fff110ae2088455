package media

import (
	"regexp"
	"strings"
)

var translit = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "yo",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "y", 'к': "k", 'л': "l", 'м': "m",
	'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "h", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "sch",
	'ъ': "", 'ы': "y", 'ь': "", 'э': "e", 'ю': "yu", 'я': "ya",
	'А': "A", 'Б': "B", 'В': "V", 'Г': "G", 'Д': "D", 'Е': "E", 'Ё': "Yo",
	'Ж': "Zh", 'З': "Z", 'И': "I", 'Й': "Y", 'К': "K", 'Л': "L", 'М': "M",
	'Н': "N", 'О': "O", 'П': "P", 'Р': "R", 'С': "S", 'Т': "T", 'У': "U",
	'Ф': "F", 'Х': "H", 'Ц': "Ts", 'Ч': "Ch", 'Ш': "Sh", 'Щ': "Sch",
	'Ъ': "", 'Ы': "Y", 'Ь': "", 'Э': "E", 'Ю': "Yu", 'Я': "Ya",
}

var (
	unsafeChars    = regexp.MustCompile(`[^a-zA-Z0-9._-]`)
	repeatedUnders = regexp.MustCompile(`_{2,}`)
)

// SafeFileName transliterates Cyrillic characters and collapses anything
// unsafe for a filename into underscores.
func SafeFileName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if latin, ok := translit[r]; ok {
			b.WriteString(latin)
			continue
		}
		b.WriteRune(r)
	}
	out := unsafeChars.ReplaceAllString(b.String(), "_")
	return repeatedUnders.ReplaceAllString(out, "_")
}
