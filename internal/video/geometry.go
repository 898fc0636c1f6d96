package video

// Geometry is the placement plan for the captured content on the canvas.
type Geometry struct {
	OrigWidth  int
	OrigHeight int

	CanvasWidth  int
	CanvasHeight int

	PaddingX int
	PaddingY int

	ContentWidth  int
	ContentHeight int

	OffsetX int
	OffsetY int
}

// PlanGeometry derives padding and the final content size from the capture
// and canvas dimensions. padding in [0, 1] is a fraction of the canvas
// dimension; anything larger is an absolute pixel count.
//
// The axis with the smaller canvas-minus-capture slack drives: its padding
// is computed directly and the other axis derives its padding from the
// capture aspect ratio, so a single padding value yields visually consistent
// margins for any capture shape. Ties go to the X axis.
func PlanGeometry(origWidth, origHeight, canvasWidth, canvasHeight int, padding float64) Geometry {
	spaceX := max(0, canvasWidth-origWidth)
	spaceY := max(0, canvasHeight-origHeight)

	var paddingX, paddingY int
	if spaceX <= spaceY {
		paddingX = resolvePadding(padding, canvasWidth)
		paddingY = paddingX * origHeight / origWidth
	} else {
		paddingY = resolvePadding(padding, canvasHeight)
		paddingX = paddingY * origWidth / origHeight
	}

	// Content never upscales beyond the original capture.
	contentWidth := min(canvasWidth-2*paddingX, origWidth)
	contentHeight := min(canvasHeight-2*paddingY, origHeight)

	return Geometry{
		OrigWidth:     origWidth,
		OrigHeight:    origHeight,
		CanvasWidth:   canvasWidth,
		CanvasHeight:  canvasHeight,
		PaddingX:      paddingX,
		PaddingY:      paddingY,
		ContentWidth:  contentWidth,
		ContentHeight: contentHeight,
		OffsetX:       (canvasWidth - contentWidth) / 2,
		OffsetY:       (canvasHeight - contentHeight) / 2,
	}
}

func resolvePadding(padding float64, canvasDim int) int {
	if padding >= 0 && padding <= 1 {
		return int(padding * float64(canvasDim))
	}
	return int(padding)
}
