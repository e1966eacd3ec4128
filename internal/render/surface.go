package render

// Surface is anything able to draw a game: a browser over websocket, a terminal, a test double.
type Surface interface {
	RenderCell(event CellEvent)
	RenderStatus(event StatusEvent)
	RenderMode(event ModeEvent)
	RenderScores(event ScoresEvent)
}

// Apply replays events on surface in order.
func Apply(surface Surface, events []Event) {
	for _, event := range events {
		switch e := event.(type) {
		case CellEvent:
			surface.RenderCell(e)
		case StatusEvent:
			surface.RenderStatus(e)
		case ModeEvent:
			surface.RenderMode(e)
		case ScoresEvent:
			surface.RenderScores(e)
		}
	}
}
