// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package images

import (
	"github.com/pdiddy/content-engine/pkg/types"
)

// Positions returns the paragraph indexes after which images go in
// interval mode, for n paragraphs and k images. One image sits after the
// midpoint paragraph n/2. More images are spaced step = n/(k+1) apart,
// image i after paragraph (i+1)*step; indexes past the end are skipped
// and repeated indexes collapse, so fewer than k positions may result.
func Positions(n, k int) []int {
	if n <= 0 || k <= 0 {
		return nil
	}
	if k == 1 {
		return []int{n / 2}
	}
	step := n / (k + 1)
	var out []int
	for i := 0; i < k; i++ {
		pos := (i + 1) * step
		if pos >= n {
			continue
		}
		if len(out) > 0 && out[len(out)-1] == pos {
			continue
		}
		out = append(out, pos)
	}
	return out
}

// Place interleaves images into a body stream. In heading mode one image
// follows each heading in document order until images or headings run
// out; a body without headings falls back to interval mode. In interval
// mode images follow the paragraphs chosen by Positions. Images that find
// no slot are dropped, or appended at the end under LeftoverAppend. At
// most len(imgs) image blocks are ever added.
func Place(blocks []types.Block, imgs []types.ImageRef, mode types.ImageMode, leftover types.LeftoverPolicy) []types.Block {
	if len(imgs) == 0 {
		return append([]types.Block(nil), blocks...)
	}

	var out []types.Block
	var used int
	if mode == types.ImagesByHeading && countKind(blocks, types.HeadingBlock) > 0 {
		out, used = placeAfterHeadings(blocks, imgs)
	} else {
		out, used = placeAfterParagraphs(blocks, imgs)
	}

	if leftover == types.LeftoverAppend {
		for _, img := range imgs[used:] {
			out = append(out, types.Block{Kind: types.ImageBlock, Image: img})
		}
	}
	return out
}

func placeAfterHeadings(blocks []types.Block, imgs []types.ImageRef) ([]types.Block, int) {
	out := make([]types.Block, 0, len(blocks)+len(imgs))
	used := 0
	for _, b := range blocks {
		out = append(out, b)
		if b.Kind == types.HeadingBlock && used < len(imgs) {
			out = append(out, types.Block{Kind: types.ImageBlock, Image: imgs[used]})
			used++
		}
	}
	return out, used
}

func placeAfterParagraphs(blocks []types.Block, imgs []types.ImageRef) ([]types.Block, int) {
	slots := make(map[int]bool)
	for _, p := range Positions(countKind(blocks, types.ParagraphBlock), len(imgs)) {
		slots[p] = true
	}

	out := make([]types.Block, 0, len(blocks)+len(imgs))
	used, para := 0, 0
	for _, b := range blocks {
		out = append(out, b)
		if b.Kind != types.ParagraphBlock {
			continue
		}
		if slots[para] && used < len(imgs) {
			out = append(out, types.Block{Kind: types.ImageBlock, Image: imgs[used]})
			used++
		}
		para++
	}
	return out, used
}

func countKind(blocks []types.Block, kind types.BlockKind) int {
	n := 0
	for _, b := range blocks {
		if b.Kind == kind {
			n++
		}
	}
	return n
}
