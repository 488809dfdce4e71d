package ui

import "termsuji-chess/types"

// NoGlyph is drawn for hidden squares and unknown codes.
const NoGlyph rune = 0

var glyphs = map[types.CellCode]rune{
	types.WhiteKing:    '♔',
	types.WhiteQueen:   '♕',
	types.WhiteRook:    '♖',
	types.WhiteBishop:  '♗',
	types.WhiteKnight:  '♘',
	types.WhitePawn:    '♙',
	types.BlackKing:    '♚',
	types.BlackQueen:   '♛',
	types.BlackRook:    '♜',
	types.BlackBishop:  '♝',
	types.BlackKnight:  '♞',
	types.BlackPawn:    '♟',
	types.VisibleEmpty: '·',
	types.Hidden:       NoGlyph,
}

// ResolveGlyph maps a cell code to the rune drawn for it.
// Codes outside the known set draw as an empty square.
func ResolveGlyph(code types.CellCode) rune {
	return glyphs[code]
}
