package viz

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/boingboomtschak/tekhne/cuda"
)

const (
	cellWidth = 110
	rowHeight = 56
	marginX   = 20
	marginY   = 24
	boxHalfW  = 48
	boxHalfH  = 12
)

// layoutNode is one positioned AST node in the diagram.
type layoutNode struct {
	label    string
	children []*layoutNode
	x, y     int
}

// RenderPNG renders the program's AST as a top-down tree diagram.
func RenderPNG(prog *cuda.Program) (image.Image, error) {
	root := &layoutNode{label: "program"}
	for _, k := range prog.Kernels {
		root.children = append(root.children, buildLayout(k))
	}

	leaves := 0
	depth := 0
	place(root, 0, &leaves, &depth)

	width := leaves*cellWidth + 2*marginX
	height := (depth+1)*rowHeight + 2*marginY
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	drawNode(img, root)
	return img, nil
}

// WritePNG renders the AST diagram and encodes it as PNG.
func WritePNG(w io.Writer, prog *cuda.Program) error {
	img, err := RenderPNG(prog)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

func buildLayout(n cuda.Node) *layoutNode {
	ln := &layoutNode{label: nodeLabel(n)}
	for _, c := range cuda.Children(n) {
		ln.children = append(ln.children, buildLayout(c))
	}
	return ln
}

// place assigns grid positions: leaves take successive columns, inner
// nodes center above their children.
func place(n *layoutNode, depth int, nextLeaf, maxDepth *int) {
	if depth > *maxDepth {
		*maxDepth = depth
	}
	n.y = marginY + depth*rowHeight + boxHalfH

	if len(n.children) == 0 {
		n.x = marginX + *nextLeaf*cellWidth + cellWidth/2
		*nextLeaf++
		return
	}

	for _, c := range n.children {
		place(c, depth+1, nextLeaf, maxDepth)
	}
	n.x = (n.children[0].x + n.children[len(n.children)-1].x) / 2
}

func drawNode(img *image.RGBA, n *layoutNode) {
	for _, c := range n.children {
		drawLine(img, n.x, n.y+boxHalfH, c.x, c.y-boxHalfH)
		drawNode(img, c)
	}
	drawBox(img, n)
}

func drawBox(img *image.RGBA, n *layoutNode) {
	border := color.RGBA{R: 60, G: 60, B: 60, A: 255}
	fill := color.RGBA{R: 235, G: 240, B: 250, A: 255}
	rect := image.Rect(n.x-boxHalfW, n.y-boxHalfH, n.x+boxHalfW, n.y+boxHalfH)
	draw.Draw(img, rect, image.NewUniform(fill), image.Point{}, draw.Src)
	for x := rect.Min.X; x < rect.Max.X; x++ {
		img.Set(x, rect.Min.Y, border)
		img.Set(x, rect.Max.Y-1, border)
	}
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		img.Set(rect.Min.X, y, border)
		img.Set(rect.Max.X-1, y, border)
	}

	label := n.label
	face := basicfont.Face7x13
	maxChars := (2*boxHalfW - 8) / 7
	if len(label) > maxChars {
		label = label[:maxChars]
	}
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(n.x - len(label)*7/2),
			Y: fixed.I(n.y + 4),
		},
	}
	d.DrawString(label)
}

// drawLine draws a straight segment between two points.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int) {
	gray := color.RGBA{R: 120, G: 120, B: 120, A: 255}
	steps := abs(x1-x0)
	if abs(y1-y0) > steps {
		steps = abs(y1 - y0)
	}
	if steps == 0 {
		img.Set(x0, y0, gray)
		return
	}
	for i := 0; i <= steps; i++ {
		x := x0 + (x1-x0)*i/steps
		y := y0 + (y1-y0)*i/steps
		img.Set(x, y, gray)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
