package generate

import (
	"github.com/stlalpha/boxes/internal/bxstring"
	"github.com/stlalpha/boxes/internal/input"
	"github.com/stlalpha/boxes/internal/shape"
	"github.com/stlalpha/boxes/internal/sizing"
)

// HAlign is the box's horizontal placement of fill relative to its
// minimum content width. It does not affect JAlign, which is set on its
// own and defaults to JLeft.
type HAlign int

const (
	HLeft HAlign = iota
	HCenter
	HRight
)

// VAlign is the box's vertical placement of fill.
type VAlign int

const (
	VTop VAlign = iota
	VCenter
	VBottom
)

// JAlign is per-line text justification within the box.
type JAlign int

const (
	JLeft JAlign = iota
	JCenter
	JRight
)

// Options configures generation (-a/-p/-s/-e/-i/-t).
type Options struct {
	HAlign     HAlign
	VAlign     VAlign
	JAlign     JAlign
	Padding    shape.Padding
	MinWidth   int // 0 means "use the design's own minimum"
	MinHeight  int
	EOL        string // "\n", "\r\n", or "\r"
	IndentMode shape.IndentMode
	TabMode    input.TabMode
	TabWidth   int // 0 means the default tab stop distance of 8
}

// Generate renders in as a sequence of complete output lines (without
// trailing EOL) drawn in d.
func Generate(d *shape.Design, in *input.Input, opts Options) ([]string, error) {
	if opts.EOL == "" {
		opts.EOL = "\n"
	}

	minWidth := d.MinWidth
	if opts.MinWidth > minWidth {
		minWidth = opts.MinWidth
	}
	minHeight := d.MinHeight
	if opts.MinHeight > minHeight {
		minHeight = opts.MinHeight
	}

	nwW, neW := cornerWidth(d, shape.NW), cornerWidth(d, shape.NE)
	nwH, swH := cornerHeight(d, shape.NW), cornerHeight(d, shape.SW)

	targetWidth := in.MaxColumns + opts.Padding.Left + opts.Padding.Right
	if w := minWidth - nwW - neW; w > targetWidth {
		targetWidth = w
	}
	h := sizing.HorizontalPrecalc(d, targetWidth)

	contentRows := len(in.Lines) + opts.Padding.Top + opts.Padding.Bottom
	targetHeight := contentRows
	if ht := minHeight - nwH - swH; ht > targetHeight {
		targetHeight = ht
	}
	v := sizing.VerticalPrecalc(d, targetHeight)

	top := AssembleSide(d, shape.Top, h.TopILTF, h.Width)
	bot := AssembleSide(d, shape.Bottom, h.BotILTF, h.Width)
	left := AssembleSide(d, shape.Left, v.LeftILTF, v.Height)
	right := AssembleSide(d, shape.Right, v.RightILTF, v.Height)

	totalRows := len(left)
	if totalRows == 0 {
		totalRows = len(right)
	}
	if totalRows == 0 {
		totalRows = len(top) + len(bot) + contentRows
	}

	vfill := totalRows - len(top) - len(bot) - len(in.Lines) - opts.Padding.Top - opts.Padding.Bottom
	if vfill < 0 {
		vfill = 0
	}
	vfill1, vfill2 := splitVFill(vfill, opts.VAlign)

	hfill := h.Width - in.MaxColumns
	hpl, hpr := splitHFill(hfill, opts.Padding, opts.HAlign)

	indent := indentPrefix(in, opts)

	var out []string
	row := 0

	emit := func(content *bxstring.BXString) {
		line := bxstring.Concat(indent, leftAt(d, left, row), content, rightAt(d, right, row))
		out = append(out, line.TrimRight().String())
	}

	for ; row < len(top); row++ {
		emit(top[row])
	}
	for i := 0; i < opts.Padding.Top; i++ {
		emit(bxstring.FromASCII("").PrependSpaces(h.Width))
		row++
	}
	for i := 0; i < vfill1; i++ {
		emit(bxstring.FromASCII("").PrependSpaces(h.Width))
		row++
	}
	for _, line := range in.Lines {
		emit(justify(line.Text, h.Width, hpl, hpr, opts.JAlign))
		row++
	}
	for i := 0; i < vfill2; i++ {
		emit(bxstring.FromASCII("").PrependSpaces(h.Width))
		row++
	}
	for i := 0; i < opts.Padding.Bottom; i++ {
		emit(bxstring.FromASCII("").PrependSpaces(h.Width))
		row++
	}
	for i := 0; i < len(bot); i++ {
		emit(bot[i])
		row++
	}

	return out, nil
}

func cornerWidth(d *shape.Design, p shape.Position) int {
	if d.Shapes[p].Empty() {
		return 0
	}
	return d.Shapes[p].Width
}

func cornerHeight(d *shape.Design, p shape.Position) int {
	if d.Shapes[p].Empty() {
		return 0
	}
	return d.Shapes[p].Height
}

func leftAt(d *shape.Design, rows []*bxstring.BXString, i int) *bxstring.BXString {
	if d.SideEmpty(shape.Left) || i >= len(rows) {
		return bxstring.FromRunes(nil)
	}
	return rows[i]
}

func rightAt(d *shape.Design, rows []*bxstring.BXString, i int) *bxstring.BXString {
	if d.SideEmpty(shape.Right) || i >= len(rows) {
		return bxstring.FromRunes(nil)
	}
	return rows[i]
}

func splitVFill(vfill int, align VAlign) (int, int) {
	switch align {
	case VTop:
		return 0, vfill
	case VBottom:
		return vfill, 0
	default:
		v1 := vfill / 2
		return v1, vfill - v1
	}
}

// splitHFill distributes the box's horizontal slack into a left and
// right blank-column count, each never falling below its side's padding
// minimum; the remainder beyond both paddings goes where halign points.
func splitHFill(hfill int, p shape.Padding, align HAlign) (int, int) {
	extra := hfill - p.Left - p.Right
	if extra < 0 {
		extra = 0
	}
	switch align {
	case HLeft:
		return p.Left, p.Right + extra
	case HRight:
		return p.Left + extra, p.Right
	default:
		e1 := extra / 2
		return p.Left + e1, p.Right + extra - e1
	}
}

// justify places one content line within the box's inner width, given
// the box-level left/right fill already reserved by splitHFill, shifted
// further per jalign. When the line is wider than the room left for it,
// a negative left shift trims that many leading columns from the line
// itself; a negative right shift is treated as zero, so trailing columns
// are never trimmed.
func justify(line *bxstring.BXString, innerWidth, hpl, hpr int, align JAlign) *bxstring.BXString {
	area := innerWidth - hpl - hpr
	room := area - line.NumColumns

	var shiftLeft, shiftRight int
	switch align {
	case JLeft:
		shiftLeft, shiftRight = 0, room
	case JRight:
		shiftLeft, shiftRight = room, 0
	default:
		shiftLeft = room / 2
		shiftRight = room - shiftLeft
	}

	if shiftLeft < 0 {
		line = line.CutFrontColumns(-shiftLeft)
		shiftLeft = 0
	}
	if shiftRight < 0 {
		shiftRight = 0
	}

	return bxstring.FromASCII("").
		PrependSpaces(hpl + shiftLeft).
		Concat(line).
		Concat(bxstring.FromASCII("").PrependSpaces(shiftRight + hpr))
}

// indentPrefix builds the literal indent string re-applied to every row
// when the design indents the whole box.
// Text mode keeps indentation embedded in each line already (input.Read
// never strips it in that mode), and none mode drops it, so both return
// an empty prefix here.
func indentPrefix(in *input.Input, opts Options) *bxstring.BXString {
	if opts.IndentMode != shape.IndentBox || in.CommonIndent <= 0 {
		return bxstring.FromRunes(nil)
	}
	tw := opts.TabWidth
	if tw <= 0 {
		tw = 8
	}

	switch opts.TabMode {
	case input.TabKeep:
		var tabPositions []int
		for _, l := range in.Lines {
			if !l.Text.IsBlank() {
				tabPositions = l.TabPositions
				break
			}
		}
		if len(tabPositions) > 0 {
			return tabbedIndent(in.CommonIndent, tw, tabPositions)
		}
	case input.TabUnexpand:
		var positions []int
		for c := 0; c+tw-c%tw <= in.CommonIndent; c += tw - c%tw {
			positions = append(positions, c)
		}
		if len(positions) > 0 {
			return tabbedIndent(in.CommonIndent, tw, positions)
		}
	}
	return bxstring.FromASCII("").PrependSpaces(in.CommonIndent)
}

// tabbedIndent renders a width-column indent with a TAB at each recorded
// column, each tab consuming the columns up to the next tab stop, and
// spaces elsewhere. A tab whose stop would overshoot the indent is
// rendered as spaces instead, since the indent must come out exactly
// width columns wide.
func tabbedIndent(width, tw int, tabPositions []int) *bxstring.BXString {
	tabAt := make(map[int]bool, len(tabPositions))
	for _, p := range tabPositions {
		if p < width {
			tabAt[p] = true
		}
	}
	var runes []rune
	for c := 0; c < width; {
		stop := c + tw - c%tw
		if tabAt[c] && stop <= width {
			runes = append(runes, '\t')
			c = stop
			continue
		}
		runes = append(runes, ' ')
		c++
	}
	return bxstring.FromRunes(runes)
}
