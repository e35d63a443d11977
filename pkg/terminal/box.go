package terminal

import (
	"strings"
	"unicode/utf8"
)

// Box drawing characters.
const (
	BoxHorizontal       = "─"
	BoxHeavyHorizontal  = "━"
	BoxHeavyVertical    = "┃"
	BoxHeavyTopLeft     = "┏"
	BoxHeavyTopRight    = "┓"
	BoxHeavyBottomLeft  = "┗"
	BoxHeavyBottomRight = "┛"
)

// HeaderPadding is the space around header content.
const HeaderPadding = 1

// DrawSeparator draws a thin horizontal separator line.
func DrawSeparator(width int) string {
	if width <= 0 {
		return ""
	}

	return strings.Repeat(BoxHorizontal, width)
}

// DrawHeader draws a heavy-bordered section header.
//
//	┏━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┓
//	┃ TITLE                     rightText ┃
//	┗━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┛
func DrawHeader(title, rightText string, width int) string {
	titleLen, rightLen := utf8.RuneCountInString(title), utf8.RuneCountInString(rightText)

	minRequired := titleLen + rightLen + 4 + (HeaderPadding * 2)
	width = max(width, minRequired)

	innerWidth := width - 2
	contentWidth := innerWidth - (HeaderPadding * 2)
	gap := max(contentWidth-titleLen-rightLen, 1)

	pad := strings.Repeat(" ", HeaderPadding)
	content := title + strings.Repeat(" ", gap) + rightText

	return BoxHeavyTopLeft + strings.Repeat(BoxHeavyHorizontal, innerWidth) + BoxHeavyTopRight + "\n" +
		BoxHeavyVertical + pad + content + pad + BoxHeavyVertical + "\n" +
		BoxHeavyBottomLeft + strings.Repeat(BoxHeavyHorizontal, innerWidth) + BoxHeavyBottomRight
}
