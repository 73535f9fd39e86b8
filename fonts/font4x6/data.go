package font4x6

// glyphData holds 6 row bytes per glyph, ASCII 0x20..0x5F followed by '°'.
// Bit 3 of each row byte is the leftmost pixel.
var glyphData = [...]uint8{
	0x0, 0x0, 0x0, 0x0, 0x0, 0x0, // ' '
	0x4, 0x4, 0x4, 0x0, 0x4, 0x0, // '!'
	0xA, 0xA, 0x0, 0x0, 0x0, 0x0, // '"'
	0xA, 0xE, 0xA, 0xA, 0xE, 0xA, // '#'
	0x4, 0x6, 0xC, 0x6, 0xC, 0x4, // '$'
	0xA, 0x2, 0x4, 0x8, 0xA, 0x0, // '%'
	0x4, 0xA, 0x4, 0xA, 0x6, 0x0, // '&'
	0x4, 0x4, 0x0, 0x0, 0x0, 0x0, // '\''
	0x2, 0x4, 0x4, 0x4, 0x2, 0x0, // '('
	0x8, 0x4, 0x4, 0x4, 0x8, 0x0, // ')'
	0x0, 0xA, 0x4, 0xA, 0x0, 0x0, // '*'
	0x0, 0x4, 0xE, 0x4, 0x0, 0x0, // '+'
	0x0, 0x0, 0x0, 0x0, 0x4, 0x8, // ','
	0x0, 0x0, 0xE, 0x0, 0x0, 0x0, // '-'
	0x0, 0x0, 0x0, 0x0, 0x4, 0x0, // '.'
	0x2, 0x2, 0x4, 0x8, 0x8, 0x0, // '/'
	0x4, 0xA, 0xA, 0xA, 0x4, 0x0, // '0'
	0x4, 0xC, 0x4, 0x4, 0xE, 0x0, // '1'
	0xC, 0x2, 0x4, 0x8, 0xE, 0x0, // '2'
	0xC, 0x2, 0x4, 0x2, 0xC, 0x0, // '3'
	0xA, 0xA, 0xE, 0x2, 0x2, 0x0, // '4'
	0xE, 0x8, 0xC, 0x2, 0xC, 0x0, // '5'
	0x6, 0x8, 0xC, 0xA, 0x4, 0x0, // '6'
	0xE, 0x2, 0x4, 0x4, 0x4, 0x0, // '7'
	0x4, 0xA, 0x4, 0xA, 0x4, 0x0, // '8'
	0x4, 0xA, 0x6, 0x2, 0xC, 0x0, // '9'
	0x0, 0x4, 0x0, 0x4, 0x0, 0x0, // ':'
	0x0, 0x4, 0x0, 0x4, 0x8, 0x0, // ';'
	0x2, 0x4, 0x8, 0x4, 0x2, 0x0, // '<'
	0x0, 0xE, 0x0, 0xE, 0x0, 0x0, // '='
	0x8, 0x4, 0x2, 0x4, 0x8, 0x0, // '>'
	0xC, 0x2, 0x4, 0x0, 0x4, 0x0, // '?'
	0x4, 0xA, 0xE, 0x8, 0x6, 0x0, // '@'
	0x4, 0xA, 0xE, 0xA, 0xA, 0x0, // 'A'
	0xC, 0xA, 0xC, 0xA, 0xC, 0x0, // 'B'
	0x6, 0x8, 0x8, 0x8, 0x6, 0x0, // 'C'
	0xC, 0xA, 0xA, 0xA, 0xC, 0x0, // 'D'
	0xE, 0x8, 0xC, 0x8, 0xE, 0x0, // 'E'
	0xE, 0x8, 0xC, 0x8, 0x8, 0x0, // 'F'
	0x6, 0x8, 0xA, 0xA, 0x6, 0x0, // 'G'
	0xA, 0xA, 0xE, 0xA, 0xA, 0x0, // 'H'
	0xE, 0x4, 0x4, 0x4, 0xE, 0x0, // 'I'
	0x2, 0x2, 0x2, 0xA, 0x4, 0x0, // 'J'
	0xA, 0xA, 0xC, 0xA, 0xA, 0x0, // 'K'
	0x8, 0x8, 0x8, 0x8, 0xE, 0x0, // 'L'
	0xA, 0xE, 0xE, 0xA, 0xA, 0x0, // 'M'
	0xA, 0xE, 0xE, 0xE, 0xA, 0x0, // 'N'
	0x4, 0xA, 0xA, 0xA, 0x4, 0x0, // 'O'
	0xC, 0xA, 0xC, 0x8, 0x8, 0x0, // 'P'
	0x4, 0xA, 0xA, 0xC, 0x6, 0x0, // 'Q'
	0xC, 0xA, 0xC, 0xA, 0xA, 0x0, // 'R'
	0x6, 0x8, 0x4, 0x2, 0xC, 0x0, // 'S'
	0xE, 0x4, 0x4, 0x4, 0x4, 0x0, // 'T'
	0xA, 0xA, 0xA, 0xA, 0x6, 0x0, // 'U'
	0xA, 0xA, 0xA, 0x4, 0x4, 0x0, // 'V'
	0xA, 0xA, 0xE, 0xE, 0xA, 0x0, // 'W'
	0xA, 0xA, 0x4, 0xA, 0xA, 0x0, // 'X'
	0xA, 0xA, 0x4, 0x4, 0x4, 0x0, // 'Y'
	0xE, 0x2, 0x4, 0x8, 0xE, 0x0, // 'Z'
	0x6, 0x4, 0x4, 0x4, 0x6, 0x0, // '['
	0x8, 0x8, 0x4, 0x2, 0x2, 0x0, // '\\'
	0xC, 0x4, 0x4, 0x4, 0xC, 0x0, // ']'
	0x4, 0xA, 0x0, 0x0, 0x0, 0x0, // '^'
	0x0, 0x0, 0x0, 0x0, 0x0, 0xE, // '_'
	0x4, 0xA, 0x4, 0x0, 0x0, 0x0, // '°'
}
