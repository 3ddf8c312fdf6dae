package tui

import "petdex/pkg/domain"

// poweredThreshold is the energy level above which a pet shows its
// powered-up portrait.
const poweredThreshold = 70

type spritePair struct {
	base    string
	powered string
}

var sprites = map[domain.PetType]spritePair{
	domain.TypeVegeta: {
		base: `
   /\_/\
  ( -_- )
  /|___|\
   d   b `,
		powered: `
  \/\_/\/
  ( >_< )
 \\|###|//
   d   b `,
	},
	domain.TypeFrezer: {
		base: `
   .-^-.
  ( o_o )
   \___/
   /   \ `,
		powered: `
   .*^*.
  ( 0_0 )
  =\###/=
   /   \ `,
	},
	domain.TypeMrSatan: {
		base: `
   ,www,
  ( ^o^ )
   |\_/|
   d   b `,
		powered: `
   ,WWW,
  ( ^O^ )/
  \|###|
   d   b `,
	},
	domain.TypeGoku: {
		base: `
   /\^/\
  ( o_o )
  /|___|\
   d   b `,
		powered: `
  \/\^/\/
  ( O_O )
 \\|###|//
   d   b `,
	},
	domain.TypeKrillin: {
		base: `
   .---.
  ( o.o )
   |...|
   d   b `,
		powered: `
   .***.
  ( O.O )
  =|###|=
   d   b `,
	},
}

const defaultSprite = `
   .---.
  ( ?_? )
   |___|
   d   b `

// sprite returns the ASCII portrait for a pet. Unknown types fall back to a
// generic companion.
func sprite(t domain.PetType, energy int) string {
	pair, ok := sprites[t]
	if !ok {
		return defaultSprite
	}
	if energy > poweredThreshold {
		return pair.powered
	}
	return pair.base
}
