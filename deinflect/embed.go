package deinflect

import _ "embed"

//go:embed data/japanese.json
var japaneseTransforms []byte

//go:embed data/english.json
var englishTransforms []byte

//go:embed data/korean.json
var koreanTransforms []byte

//go:embed data/chinese.json
var chineseTransforms []byte

//go:embed data/arabic.json
var arabicTransforms []byte

//go:embed data/spanish.json
var spanishTransforms []byte

//go:embed data/french.json
var frenchTransforms []byte

//go:embed data/german.json
var germanTransforms []byte

//go:embed data/portuguese.json
var portugueseTransforms []byte

//go:embed data/latin.json
var latinTransforms []byte

//go:embed data/tagalog.json
var tagalogTransforms []byte

//go:embed data/empty.json
var emptyTransforms []byte
