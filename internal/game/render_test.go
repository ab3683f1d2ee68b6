package game

import (
	"bytes"
	"log"
	"testing"
	"testing/fstest"

	"github.com/plus3/bunnymark/internal/assets"
	"github.com/stretchr/testify/assert"
)

func TestImageCacheSkipsBrokenAssets(t *testing.T) {
	var buf bytes.Buffer
	server := assets.NewServer(fstest.MapFS{"broken.png": {Data: []byte("not a png file")}})
	cache := NewImageCache(server, log.New(&buf, "", 0))

	assert.Nil(t, cache.Get("broken.png"))
	assert.Nil(t, cache.Get("broken.png"))
	assert.Nil(t, cache.Get("missing.png"))

	assert.Equal(t,
		"render: skipping sprite: assets: decode broken.png: png: invalid format: not a PNG file\n"+
			"render: skipping sprite: assets: open missing.png: open missing.png: file does not exist\n",
		buf.String())
}
