// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

// Command example previews custom textures outside the game. It runs the
// bridge against the in-memory engine, animates one texture through
// UpdateCustomTexture and draws every custom texture with Ebiten.
package main

import (
	"fmt"
	"image/color"
	"log"
	"strings"

	nativeui "github.com/YindSoft/rage-nativeui-helper"
	"github.com/YindSoft/rage-nativeui-helper/internal/fakeengine"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"go.uber.org/zap"
)

const (
	screenWidth  = 800
	screenHeight = 600
	texSize      = 128
	brushSize    = 16
)

// preview mirrors one custom texture into an Ebiten image.
type preview struct {
	hash   uint32
	handle uintptr
	image  *ebiten.Image
	rgba   []byte
	width  int
	height int
}

type Game struct {
	engine   *fakeengine.Engine
	bridge   *nativeui.Bridge
	previews []*preview
	brush    []byte
	counter  int
}

func newGame() (*Game, error) {
	eng := fakeengine.New()
	eng.AddDictionary("commonmenu",
		fakeengine.TextureSpec{Name: "gradient_bgd", Width: 512, Height: 512},
		fakeengine.TextureSpec{Name: "shop_box_tick", Width: 64, Height: 64},
	)
	b, err := nativeui.NewBridge(eng)
	if err != nil {
		return nil, fmt.Errorf("bridge: %w", err)
	}
	g := &Game{engine: eng, bridge: b, brush: solid(brushSize, brushSize, 0x20, 0x20, 0xE0)}

	for _, tex := range []struct {
		name   string
		pixels []byte
	}{
		{"rnui_gradient", gradient(texSize, texSize)},
		{"rnui_checker", checker(texSize, texSize, 16)},
	} {
		if err := b.CreateCustomTexture(tex.name, texSize, texSize, tex.pixels, true); err != nil {
			return nil, fmt.Errorf("creating %s: %w", tex.name, err)
		}
		g.previews = append(g.previews, &preview{
			hash:   nativeui.Hash(tex.name),
			handle: eng.Created[len(eng.Created)-1],
			image:  ebiten.NewImage(texSize, texSize),
			rgba:   make([]byte, texSize*texSize*4),
			width:  texSize,
			height: texSize,
		})
	}
	return g, nil
}

func (g *Game) Update() error {
	g.counter++

	// Paint a square that walks across the gradient texture.
	x := int32(g.counter % (texSize - brushSize))
	y := int32((g.counter / 4) % (texSize - brushSize))
	dst := nativeui.Rect{Left: x, Top: y, Right: x + brushSize, Bottom: y + brushSize}
	if err := g.bridge.UpdateCustomTexture(g.previews[0].hash, g.brush, dst); err != nil {
		return fmt.Errorf("update: %w", err)
	}

	for _, p := range g.previews {
		p.copyPixels(g.engine.Pixels(p.handle))
	}
	return nil
}

// copyPixels converts the engine's BGRA store to RGBA for Ebiten.
func (p *preview) copyPixels(src []byte) {
	if len(src) < p.width*p.height*4 {
		return
	}
	for i := 0; i < p.width*p.height*4; i += 4 {
		p.rgba[i+0] = src[i+2] // BGRA -> RGBA
		p.rgba[i+1] = src[i+1]
		p.rgba[i+2] = src[i+0]
		p.rgba[i+3] = src[i+3]
	}
	p.image.WritePixels(p.rgba)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{30, 30, 40, 255})

	for i, p := range g.previews {
		opts := &ebiten.DrawImageOptions{}
		opts.GeoM.Scale(2, 2)
		opts.GeoM.Translate(float64(40+i*(2*texSize+40)), 80)
		screen.DrawImage(p.image, opts)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "TPS: %.1f\n", ebiten.ActualTPS())
	fmt.Fprintf(&sb, "custom textures: %d\n", g.bridge.CustomTextureCount())
	for _, d := range g.bridge.CustomTextures() {
		fmt.Fprintf(&sb, "  %08x %dx%d updatable=%v\n", d.Name, d.Width, d.Height, d.Updatable)
	}
	fmt.Fprintf(&sb, "commonmenu: %d textures", g.bridge.DictionaryTextureCount("commonmenu"))
	ebitenutil.DebugPrintAt(screen, sb.String(), 40, 380)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return screenWidth, screenHeight
}

func gradient(w, h int) []byte {
	px := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 4
			px[i+0] = byte(255 * x / w) // B
			px[i+1] = byte(255 * y / h) // G
			px[i+2] = 0x80              // R
			px[i+3] = 0xFF              // A
		}
	}
	return px
}

func checker(w, h, cell int) []byte {
	px := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := byte(0x30)
			if (x/cell+y/cell)%2 == 0 {
				v = 0xD0
			}
			i := (y*w + x) * 4
			px[i+0], px[i+1], px[i+2], px[i+3] = v, v, v, 0xFF
		}
	}
	return px
}

func solid(w, h int, b, g, r byte) []byte {
	px := make([]byte, w*h*4)
	for i := 0; i < len(px); i += 4 {
		px[i+0], px[i+1], px[i+2], px[i+3] = b, g, r, 0xFF
	}
	return px
}

func main() {
	logger, err := zap.NewDevelopment()
	if err == nil {
		nativeui.SetLogger(logger)
		defer logger.Sync()
	}

	game, err := newGame()
	if err != nil {
		log.Fatalf("init: %v", err)
	}
	defer game.bridge.Close()

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("nativeui - custom texture preview")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatalf("run: %v", err)
	}
}
