package grid

// Role is the single tag a cell carries
type Role uint8

const (
	Empty Role = iota
	Wall
	Start
	Goal
	Visited
	Path
)

var roleNames = [...]string{"empty", "wall", "start", "goal", "visited", "path"}

// Layout glyphs, indexed by Role
var roleGlyphs = [...]byte{'.', '#', 'S', 'G', 'o', '*'}

func (r Role) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return "unknown"
}

// Glyph returns the ASCII layout character for the role
func (r Role) Glyph() byte {
	if int(r) < len(roleGlyphs) {
		return roleGlyphs[r]
	}
	return '?'
}

// IsSearchMark reports whether the role is written by a search run
func (r Role) IsSearchMark() bool {
	return r == Visited || r == Path
}

func roleFromGlyph(b byte) (Role, bool) {
	for i, g := range roleGlyphs {
		if g == b {
			return Role(i), true
		}
	}
	return Empty, false
}
