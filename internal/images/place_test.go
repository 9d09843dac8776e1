// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package images

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/content-engine/pkg/types"
)

func paragraphs(n int) []types.Block {
	out := make([]types.Block, n)
	for i := range out {
		out[i] = types.Block{Kind: types.ParagraphBlock, Text: fmt.Sprintf("p%d", i)}
	}
	return out
}

func imgs(n int) []types.ImageRef {
	out := make([]types.ImageRef, n)
	for i := range out {
		out[i] = types.ImageRef{URL: fmt.Sprintf("https://img.test/%d.jpg", i)}
	}
	return out
}

// layout renders a block stream as short tokens for comparison.
func layout(blocks []types.Block) []string {
	out := make([]string, len(blocks))
	for i, b := range blocks {
		switch b.Kind {
		case types.ParagraphBlock:
			out[i] = b.Text
		case types.HeadingBlock:
			out[i] = "h:" + b.Heading.Text
		case types.ImageBlock:
			out[i] = "img:" + b.Image.URL[len("https://img.test/"):]
		}
	}
	return out
}

func TestPositions(t *testing.T) {
	tests := []struct {
		n, k int
		want []int
	}{
		{10, 1, []int{5}},
		{1, 1, []int{0}},
		{10, 3, []int{2, 4, 6}},
		{9, 2, []int{3, 6}},
		{2, 2, []int{0}},
		{3, 5, []int{0}},
		{0, 2, nil},
		{5, 0, nil},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("n=%d,k=%d", tt.n, tt.k), func(t *testing.T) {
			assert.Equal(t, tt.want, Positions(tt.n, tt.k))
		})
	}
}

func TestPlaceSingleImageAtMidpoint(t *testing.T) {
	got := Place(paragraphs(5), imgs(1), types.ImagesByInterval, types.LeftoverDrop)
	assert.Equal(t, []string{"p0", "p1", "p2", "img:0.jpg", "p3", "p4"}, layout(got))
}

func TestPlaceInterval(t *testing.T) {
	got := Place(paragraphs(9), imgs(2), types.ImagesByInterval, types.LeftoverDrop)
	assert.Equal(t, []string{"p0", "p1", "p2", "p3", "img:0.jpg", "p4", "p5", "p6", "img:1.jpg", "p7", "p8"}, layout(got))
}

func TestPlaceIntervalSkipsHeadingsWhenCounting(t *testing.T) {
	blocks := []types.Block{
		{Kind: types.HeadingBlock, Heading: types.Heading{Text: "A"}},
		{Kind: types.ParagraphBlock, Text: "p0"},
		{Kind: types.HeadingBlock, Heading: types.Heading{Text: "B"}},
		{Kind: types.ParagraphBlock, Text: "p1"},
	}
	got := Place(blocks, imgs(1), types.ImagesByInterval, types.LeftoverDrop)
	assert.Equal(t, []string{"h:A", "p0", "h:B", "p1", "img:0.jpg"}, layout(got))
}

func TestPlaceByHeading(t *testing.T) {
	blocks := []types.Block{
		{Kind: types.HeadingBlock, Heading: types.Heading{Text: "Why It Matters"}},
		{Kind: types.ParagraphBlock, Text: "p0"},
		{Kind: types.HeadingBlock, Heading: types.Heading{Text: "How To Make It"}},
		{Kind: types.ParagraphBlock, Text: "p1"},
	}

	got := Place(blocks, imgs(2), types.ImagesByHeading, types.LeftoverDrop)
	assert.Equal(t, []string{"h:Why It Matters", "img:0.jpg", "p0", "h:How To Make It", "img:1.jpg", "p1"}, layout(got))

	got = Place(blocks, imgs(1), types.ImagesByHeading, types.LeftoverDrop)
	assert.Equal(t, []string{"h:Why It Matters", "img:0.jpg", "p0", "h:How To Make It", "p1"}, layout(got))
}

func TestPlaceLeftovers(t *testing.T) {
	blocks := []types.Block{
		{Kind: types.HeadingBlock, Heading: types.Heading{Text: "A"}},
		{Kind: types.ParagraphBlock, Text: "p0"},
	}

	dropped := Place(blocks, imgs(3), types.ImagesByHeading, types.LeftoverDrop)
	assert.Equal(t, []string{"h:A", "img:0.jpg", "p0"}, layout(dropped))

	appended := Place(blocks, imgs(3), types.ImagesByHeading, types.LeftoverAppend)
	assert.Equal(t, []string{"h:A", "img:0.jpg", "p0", "img:1.jpg", "img:2.jpg"}, layout(appended))
}

func TestPlaceHeadingModeWithoutHeadingsUsesIntervals(t *testing.T) {
	got := Place(paragraphs(4), imgs(1), types.ImagesByHeading, types.LeftoverDrop)
	assert.Equal(t, []string{"p0", "p1", "p2", "img:0.jpg", "p3"}, layout(got))
}

func TestPlaceNeverExceedsImageCount(t *testing.T) {
	for _, mode := range []types.ImageMode{types.ImagesByInterval, types.ImagesByHeading} {
		for n := 0; n <= 12; n++ {
			for k := 0; k <= 6; k++ {
				blocks := paragraphs(n)
				if n > 0 {
					blocks = append([]types.Block{{Kind: types.HeadingBlock, Heading: types.Heading{Text: "H"}}}, blocks...)
				}

				dropped := Place(blocks, imgs(k), mode, types.LeftoverDrop)
				require.LessOrEqual(t, countKind(dropped, types.ImageBlock), k, "mode=%s n=%d k=%d", mode, n, k)
				require.Equal(t, len(blocks), len(dropped)-countKind(dropped, types.ImageBlock))

				appended := Place(blocks, imgs(k), mode, types.LeftoverAppend)
				require.Equal(t, k, countKind(appended, types.ImageBlock), "mode=%s n=%d k=%d", mode, n, k)
			}
		}
	}
}

func TestPlaceDoesNotModifyInput(t *testing.T) {
	blocks := paragraphs(3)
	Place(blocks, imgs(2), types.ImagesByInterval, types.LeftoverAppend)
	assert.Equal(t, []string{"p0", "p1", "p2"}, layout(blocks))
}
