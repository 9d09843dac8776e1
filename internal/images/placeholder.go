// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package images

import (
	"fmt"
	"hash/fnv"

	"github.com/pdiddy/content-engine/pkg/types"
)

// placeholderBase is the Picsum seeded-image endpoint.
const placeholderBase = "https://picsum.photos/seed"

// Placeholders returns n placeholder images for topic numbered from
// start. The URL is seeded from the topic and index, so the same topic
// always yields the same images.
func Placeholders(topic string, start, n int) []types.ImageRef {
	out := make([]types.ImageRef, 0, n)
	for i := start; i < start+n; i++ {
		out = append(out, types.ImageRef{
			URL:               fmt.Sprintf("%s/%d/800/600", placeholderBase, placeholderSeed(topic, i)),
			AltText:           fmt.Sprintf("%s - Image %d", topic, i+1),
			Caption:           "Image related to " + topic,
			SourceAttribution: "Picsum Photos",
		})
	}
	return out
}

func placeholderSeed(topic string, i int) uint32 {
	h := fnv.New32a()
	fmt.Fprintf(h, "%s-%d", topic, i)
	return h.Sum32() % 100000
}
