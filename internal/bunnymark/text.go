package bunnymark

import (
	"strconv"

	"github.com/plus3/bunnymark/ecs"
)

// TextSystem keeps the counter label in sync with BunnyCount.Current.
type TextSystem struct {
	Count  ecs.Singleton[BunnyCount]
	Labels ecs.Query[struct {
		*Label
		*BunnyText
	}]
}

func (s *TextSystem) Execute(frame *ecs.UpdateFrame) {
	text := CountText(s.Count.MustGet().Current)
	for l := range s.Labels.Values() {
		l.Label.Text = text
	}
}

// CountText formats the counter label.
func CountText(n uint64) string {
	return TextPrefix + strconv.FormatUint(n, 10)
}
