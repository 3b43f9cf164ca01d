// Package remove implements the four-phase box remover: it brackets the
// box vertically by matching input lines against the top and bottom
// slabs, matches the vertical rules on each body row, then writes the
// unboxed body back with indentation restored and the design's reverse
// rules applied.
package remove

import (
	"github.com/stlalpha/boxes/internal/bxstring"
	"github.com/stlalpha/boxes/internal/hmm"
	"github.com/stlalpha/boxes/internal/input"
	"github.com/stlalpha/boxes/internal/shape"
)

// MinBodyMatchQuality is the fraction of the maximum possible vertical
// match quality a comparison mode must reach before it is accepted as
// good enough.
const MinBodyMatchQuality = 0.5

// Options configures a removal run.
type Options struct {
	// KillBlank requests stripping of all-blank lines immediately inside
	// the box, without regard to the design's padding.
	KillBlank bool
	// Mend indicates this removal is the first half of a mend: in that
	// case blank-line killing is bounded by the design's own top/bottom
	// padding rather than unlimited.
	Mend bool
	// IndentMode controls whether the stripped common indent is restored
	// to body lines (anything but IndentNone restores it).
	IndentMode shape.IndentMode
}

// lineCtx records, for one body row, where the west and east vertical
// shapes were found to match and how good that match was.
type lineCtx struct {
	westStart, westEnd, westQuality int
	eastStart, eastEnd, eastQuality int
}

// Remove strips a box of design d from in, returning the unboxed body as
// a new Input. If the input has no non-blank content at all, in is
// returned unchanged.
func Remove(d *shape.Design, in *input.Input, opts Options) (*input.Input, error) {
	emptyTop := d.SideEmpty(shape.Top)
	emptyRight := d.SideEmpty(shape.Right)
	emptyBottom := d.SideEmpty(shape.Bottom)
	emptyLeft := d.SideEmpty(shape.Left)

	topStart, hasContent := firstNonBlank(in)
	if !hasContent {
		return in, nil
	}
	bottomEnd := lastNonBlank(in) + 1

	topEnd := topStart
	if !emptyTop {
		topEnd = findTopEnd(d, in, topStart, emptyLeft, emptyRight)
	}

	bottomStart := bottomEnd
	if !emptyBottom {
		bottomStart = findBottomStart(d, in, bottomEnd, emptyLeft, emptyRight)
	}
	if bottomStart < topEnd {
		bottomStart = topEnd
	}

	var body []lineCtx
	if bottomStart > topEnd {
		body = findVerticalShapes(d, in, topEnd, bottomStart, emptyLeft, emptyRight)
	}

	stripped := stripVertical(d, in, topEnd, bottomStart, body, opts.IndentMode)

	start, end := 0, len(stripped)
	if opts.KillBlank || opts.Mend {
		start, end = killBlank(d, stripped, opts)
	}

	return finish(d, stripped[start:end], in.FinalNewline, emptyLeft)
}

func firstNonBlank(in *input.Input) (int, bool) {
	for i, l := range in.Lines {
		if !l.Text.IsBlank() {
			return i, true
		}
	}
	return 0, false
}

func lastNonBlank(in *input.Input) int {
	for i := len(in.Lines) - 1; i >= 0; i-- {
		if !in.Lines[i].Text.IsBlank() {
			return i
		}
	}
	return -1
}

// sideHeight returns the shared row height of a horizontal side's shapes
// (Validate guarantees they all agree).
func sideHeight(d *shape.Design, side shape.Side) int {
	for _, p := range shape.SidePositions[side] {
		if e := d.Shapes[p]; !e.Empty() {
			return e.Height
		}
	}
	return 1
}

// bracketOrder returns side's five positions in west-to-east order. Top
// is already west-to-east; Bottom's tuple runs east-to-west and must be
// reversed.
func bracketOrder(side shape.Side) [5]shape.Position {
	p := shape.SidePositions[side]
	if side == shape.Bottom {
		return [5]shape.Position{p[4], p[3], p[2], p[1], p[0]}
	}
	return p
}

func findTopEnd(d *shape.Design, in *input.Input, topStart int, emptyLeft, emptyRight bool) int {
	height := sideHeight(d, shape.Top)
	result := topStart
	for lineIdx := topStart; lineIdx < len(in.Lines) && lineIdx < topStart+height; lineIdx++ {
		if !matchAnyRow(d, shape.Top, in.Lines[lineIdx].Text, height, emptyLeft, emptyRight) {
			break
		}
		result = lineIdx + 1
	}
	return result
}

func findBottomStart(d *shape.Design, in *input.Input, bottomEnd int, emptyLeft, emptyRight bool) int {
	height := sideHeight(d, shape.Bottom)
	result := bottomEnd
	for lineIdx := bottomEnd - 1; lineIdx >= 0 && lineIdx >= bottomEnd-height; lineIdx-- {
		if !matchAnyRow(d, shape.Bottom, in.Lines[lineIdx].Text, height, emptyLeft, emptyRight) {
			break
		}
		result = lineIdx
	}
	return result
}

func matchAnyRow(d *shape.Design, side shape.Side, row *bxstring.BXString, height int, emptyLeft, emptyRight bool) bool {
	for k := 0; k < height; k++ {
		if matchHorizLine(d, side, row, k, emptyLeft, emptyRight) {
			return true
		}
	}
	return false
}

// stripPair names, for one comparison mode, whether invisible characters
// are stripped from the input side and/or the shape side before
// comparison. The remover tries the same four modes as the detector.
type stripPair struct {
	input bool
	shape bool
}

func viableStripPairs(hasInvisibleInput bool) []stripPair {
	pairs := []stripPair{{false, false}}
	if hasInvisibleInput {
		pairs = append(pairs, stripPair{true, false})
	}
	pairs = append(pairs, stripPair{false, true}, stripPair{true, true})
	return pairs
}

func prepB(b *bxstring.BXString, strip bool) *bxstring.BXString {
	if strip {
		return b.VisibleOnly()
	}
	return b
}

func cornerLine(d *shape.Design, pos shape.Position, rowInShape int) *bxstring.BXString {
	e := d.Shapes[pos]
	if e.Empty() {
		return bxstring.FromRunes(nil)
	}
	return e.Lines[rowInShape%e.Height]
}

func matchHorizLine(d *shape.Design, side shape.Side, row *bxstring.BXString, rowInShape int, emptyLeftSide, emptyRightSide bool) bool {
	order := bracketOrder(side)
	hasInvisible := row.NumInvisible > 0
	for _, strip := range viableStripPairs(hasInvisible) {
		line := prepB(row, strip.input)
		cur, end := 0, line.NumVisible
		anchoredLeft, anchoredRight := false, false

		if !emptyLeftSide {
			wc := prepB(cornerLine(d, order[0], rowInShape), strip.shape)
			if n, shiftable, ok := matchOuterWest(line, wc); ok {
				cur = n
				anchoredLeft = !shiftable
			}
		}
		if !emptyRightSide {
			ec := prepB(cornerLine(d, order[4], rowInShape), strip.shape)
			if pos, shiftable, ok := matchOuterEast(line, ec); ok {
				end = pos
				anchoredRight = !shiftable
			}
		}

		lines := make([]hmm.Line, 3)
		for i, p := range order[1:4] {
			e := d.Shapes[p]
			if e.Empty() {
				continue
			}
			lines[i] = hmm.Line{
				Text:    prepB(e.Lines[rowInShape%e.Height], strip.shape),
				Elastic: e.Elastic,
			}
		}
		if hmm.Match(line, cur, end, lines, 0, anchoredLeft, anchoredRight) {
			return true
		}
	}
	return false
}

// matchOuterWest finds shapeText anchored at the front of line,
// shortening its leading blanks if an exact match isn't found. It
// reports the visible index just past the match, whether the match was
// trivial ("shiftable", meaning the shape was blank or empty), and
// whether any match was found at all.
func matchOuterWest(line, shapeText *bxstring.BXString) (next int, shiftable bool, ok bool) {
	if shapeText.NumVisible == 0 || shapeText.IsBlank() {
		return 0, true, true
	}
	text := shapeText
	for text.NumVisible > 0 {
		n := text.NumVisible
		if line.NumVisible >= n && line.Substring(0, n).Equal(text) {
			return n, false, true
		}
		if !text.Substring(0, 1).IsBlank() {
			break
		}
		text = text.Substring(1, text.NumVisible)
	}
	return 0, false, false
}

// matchOuterEast is matchOuterWest's mirror image, anchoring at the end
// of line.
func matchOuterEast(line, shapeText *bxstring.BXString) (pos int, shiftable bool, ok bool) {
	if shapeText.NumVisible == 0 || shapeText.IsBlank() {
		return line.NumVisible, true, true
	}
	text := shapeText
	for text.NumVisible > 0 {
		n := text.NumVisible
		if line.NumVisible >= n && line.Substring(line.NumVisible-n, line.NumVisible).Equal(text) {
			return line.NumVisible - n, false, true
		}
		if !text.Substring(text.NumVisible-1, text.NumVisible).IsBlank() {
			break
		}
		text = text.Substring(0, text.NumVisible-1)
	}
	return 0, false, false
}

// verticalShapeLines flattens a side's three non-corner shapes into one
// row-major list of matchable lines.
func verticalShapeLines(d *shape.Design, side shape.Side, stripShape bool) []hmm.Line {
	var out []hmm.Line
	for _, p := range shape.SidePositions[side][1:4] {
		e := d.Shapes[p]
		if e.Empty() {
			continue
		}
		for _, l := range e.Lines {
			out = append(out, hmm.Line{Text: prepB(l, stripShape), Elastic: e.Elastic})
		}
	}
	return out
}

func findVerticalShapes(d *shape.Design, in *input.Input, topEnd, bottomStart int, emptyLeft, emptyRight bool) []lineCtx {
	n := bottomStart - topEnd
	if emptyLeft && emptyRight {
		return make([]lineCtx, n)
	}

	hasInvisible := false
	for i := topEnd; i < bottomStart; i++ {
		if in.Lines[i].Text.NumInvisible > 0 {
			hasInvisible = true
			break
		}
	}

	var best []lineCtx
	bestTotal := -1
	for _, strip := range viableStripPairs(hasInvisible) {
		cur := make([]lineCtx, n)
		var westLines, eastLines []hmm.Line
		if !emptyLeft {
			westLines = verticalShapeLines(d, shape.Left, strip.shape)
		}
		if !emptyRight {
			eastLines = verticalShapeLines(d, shape.Right, strip.shape)
		}
		for i := 0; i < n; i++ {
			row := prepB(in.Lines[topEnd+i].Text, strip.input)
			if !emptyLeft {
				matchVerticalSide(row, westLines, true, &cur[i])
			}
			if !emptyRight {
				matchVerticalSide(row, eastLines, false, &cur[i])
			}
		}
		total, max := bodyQuality(cur, emptyLeft, emptyRight, d)
		if best == nil || total > bestTotal {
			best, bestTotal = cur, total
		}
		if sufficientQuality(total, max) {
			break
		}
	}
	return best
}

func matchVerticalSide(row *bxstring.BXString, lines []hmm.Line, isWest bool, lc *lineCtx) {
	for _, l := range lines {
		if l.Text == nil || l.Text.NumVisible == 0 {
			continue
		}
		text := l.Text
		for text.NumVisible > 0 {
			pos, ok := findEdgeOccurrence(row, text, isWest)
			if ok {
				q := text.NumVisible
				if isWest && q > lc.westQuality {
					lc.westStart, lc.westEnd, lc.westQuality = pos, pos+q, q
				} else if !isWest && q > lc.eastQuality {
					lc.eastStart, lc.eastEnd, lc.eastQuality = pos, pos+q, q
				}
				break
			}
			if isWest {
				if !text.Substring(0, 1).IsBlank() {
					break
				}
				text = text.Substring(1, text.NumVisible)
			} else {
				if !text.Substring(text.NumVisible-1, text.NumVisible).IsBlank() {
					break
				}
				text = text.Substring(0, text.NumVisible-1)
			}
		}
	}
}

// findEdgeOccurrence finds text within row, preferring the leftmost
// occurrence for the west side and the rightmost for the east side.
func findEdgeOccurrence(row, text *bxstring.BXString, isWest bool) (int, bool) {
	n := text.NumVisible
	if isWest {
		for pos := 0; pos+n <= row.NumVisible; pos++ {
			if row.Substring(pos, pos+n).Equal(text) {
				return pos, true
			}
		}
		return 0, false
	}
	for pos := row.NumVisible - n; pos >= 0; pos-- {
		if row.Substring(pos, pos+n).Equal(text) {
			return pos, true
		}
	}
	return 0, false
}

func bodyQuality(cur []lineCtx, emptyLeft, emptyRight bool, d *shape.Design) (total, max int) {
	for _, lc := range cur {
		total += lc.westQuality + lc.eastQuality
	}
	perLine := 0
	if !emptyLeft {
		perLine += d.Shapes[shape.NW].Width
	}
	if !emptyRight {
		perLine += d.Shapes[shape.NE].Width
	}
	max = perLine * len(cur)
	return total, max
}

func sufficientQuality(total, max int) bool {
	if max == 0 {
		return total == 0
	}
	return float64(total) >= MinBodyMatchQuality*float64(max)
}

func confirmedPadding(line *bxstring.BXString, start, maxN int) int {
	count := 0
	for count < maxN && start+count < line.NumVisible && line.Substring(start+count, start+count+1).IsBlank() {
		count++
	}
	return count
}

// stripVertical strips the west/east vertical shapes from every body row
// and restores the common indent. It runs before kill-blank, which must
// judge blankness on the already-stripped lines.
func stripVertical(d *shape.Design, in *input.Input, topEnd, bottomStart int, body []lineCtx, indentMode shape.IndentMode) []input.Line {
	n := bottomStart - topEnd
	lines := make([]input.Line, n)
	for i := 0; i < n; i++ {
		orig := in.Lines[topEnd+i].Text
		lc := lineCtx{}
		if i < len(body) {
			lc = body[i]
		}

		start := 0
		if lc.westQuality > 0 {
			start = lc.westEnd + confirmedPadding(orig, lc.westEnd, d.Padding.Left)
		}
		end := orig.NumVisible
		if lc.eastQuality > 0 {
			end = lc.eastStart
		}

		content := orig.Substring(start, end)
		if indentMode != shape.IndentNone {
			content = content.PrependSpaces(in.CommonIndent)
		}
		lines[i] = input.Line{Text: content}
	}
	return lines
}

// killBlank returns the [start,end) slice bounds of stripped that remain
// after trimming all-blank lines from both ends. Callers only reach
// this when opts.KillBlank || opts.Mend. In mend mode, at most the
// design's own top/bottom padding is trimmed from each end, regardless
// of -k's own value: -m overrides whatever -k was given, so an explicit
// -k alongside -m is accepted but has no additional effect beyond what
// mend already does.
func killBlank(d *shape.Design, stripped []input.Line, opts Options) (start, end int) {
	maxTop, maxBottom := 1<<31, 1<<31
	if opts.Mend {
		maxTop = max(d.Padding.Top, 0)
		maxBottom = max(d.Padding.Bottom, 0)
	}

	start, end = 0, len(stripped)
	removed := 0
	for start < end && removed < maxTop && stripped[start].Text.IsBlank() {
		start++
		removed++
	}
	removed = 0
	for end > start && removed < maxBottom && stripped[end-1].Text.IsBlank() {
		end--
		removed++
	}
	return start, end
}

// finish builds the final Input from the already vertically-stripped and
// kill-blank-trimmed body lines, removing any remaining default left
// padding for empty-left designs and applying the design's reverse
// rules.
func finish(d *shape.Design, lines []input.Line, finalNewline, emptyLeft bool) (*input.Input, error) {
	out := &input.Input{Lines: append([]input.Line(nil), lines...), FinalNewline: finalNewline}
	out.Recompute()

	if emptyLeft {
		padLeft := min(d.Padding.Left, out.CommonIndent)
		if padLeft > 0 {
			for i := range out.Lines {
				out.Lines[i].Text = out.Lines[i].Text.CutFrontColumns(padLeft)
			}
			out.Recompute()
		}
	}

	if len(d.Reverse) > 0 {
		if err := out.ApplyReverseRules(d.Reverse); err != nil {
			return nil, err
		}
	}

	return out, nil
}
