package vocabulary

import (
	"github.com/conorfennell/namepick/internal/domain"
	"github.com/mozillazg/go-pinyin"
)

var (
	spellingArgs = pinyinArgs(pinyin.Normal)
	soundArgs    = pinyinArgs(pinyin.Tone)
)

func pinyinArgs(style int) pinyin.Args {
	a := pinyin.NewArgs()
	a.Style = style
	a.Heteronym = true
	return a
}

// Group files each character under every reading it has. Characters without
// a known reading are returned separately.
func Group(chars []domain.Character) (Mapping, []domain.Character) {
	m := Mapping{}
	var unknown []domain.Character
	for _, c := range chars {
		spellings := readings(c, spellingArgs)
		sounds := readings(c, soundArgs)
		if len(spellings) == 0 || len(sounds) == 0 {
			unknown = append(unknown, c)
			continue
		}
		for i, sound := range sounds {
			spelling := spellings[0]
			if i < len(spellings) {
				spelling = spellings[i]
			}
			m.Add(spelling, sound, c)
		}
	}
	return m, unknown
}

func readings(c domain.Character, a pinyin.Args) []string {
	py := pinyin.Pinyin(string(c), a)
	if len(py) == 0 {
		return nil
	}
	return py[0]
}
