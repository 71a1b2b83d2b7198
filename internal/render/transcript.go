package render

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/good-yellow-bee/analyzeme/internal/models"
)

// LikedMarker is printed after the sender of a liked message.
const LikedMarker = "[<3]"

const transcriptTimeLayout = "2006/01/02 15:04"

// Transcript writes newest-first messages oldest first, one line each:
//
//	[2024/03/07 09:30] Alice [<3]: hello
//
// Send times are shown in loc (time.Local if nil).
func Transcript(w io.Writer, msgs []models.Message, loc *time.Location) error {
	bw := bufio.NewWriter(w)
	for i := len(msgs) - 1; i >= 0; i-- {
		m := &msgs[i]
		liked := ""
		if m.Liked() {
			liked = LikedMarker
		}
		fmt.Fprintf(bw, "[%s] %s %s: %s\n",
			m.Time(loc).Format(transcriptTimeLayout), m.Name, liked, m.Text)
	}
	return bw.Flush()
}
